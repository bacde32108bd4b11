package app_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plate/internal/adapters/digest"
	"go.trai.ch/plate/internal/adapters/document"
	"go.trai.ch/plate/internal/adapters/telemetry"
	"go.trai.ch/plate/internal/app"
	"go.trai.ch/plate/internal/core/domain"
	"go.trai.ch/plate/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const boxDiagram = "+--+\n|a |\n+--+"

type fixture struct {
	app    *app.App
	cfg    *domain.Config
	loader *mocks.MockConfigLoader
	runner *mocks.MockProcessRunner
	logger *mocks.MockLogger
	stdout *bytes.Buffer
}

func newFixture(t *testing.T, stdin string) *fixture {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	ctrl := gomock.NewController(t)
	f := &fixture{
		cfg:    domain.DefaultConfig(),
		loader: mocks.NewMockConfigLoader(ctrl),
		runner: mocks.NewMockProcessRunner(ctrl),
		logger: mocks.NewMockLogger(ctrl),
		stdout: &bytes.Buffer{},
	}
	f.cfg.OutDir = t.TempDir()
	f.cfg.Parallelism = 2

	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.loader.EXPECT().Load(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_, _ string) (*domain.Config, error) {
			cfg := *f.cfg
			return &cfg, nil
		}).AnyTimes()

	f.app = app.New(f.loader, digest.NewBuilder(), f.runner, document.NewScanner(),
		newFakeWatcher(), telemetry.NewNoOpTracer(), f.logger).
		WithIO(strings.NewReader(stdin), f.stdout)
	return f
}

// writeOutput makes the runner behave like a renderer that succeeds.
func writeOutput(_ context.Context, argv []string, _ []byte) (*domain.ProcessResult, error) {
	out := argv[len(argv)-1]
	if err := os.WriteFile(out, []byte("PNG"), 0o600); err != nil {
		return nil, err
	}
	return &domain.ProcessResult{}, nil
}

func (f *fixture) expectRenders(n int) {
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(writeOutput).Times(n)
}

func TestApp_Render_Stdin(t *testing.T) {
	f := newFixture(t, boxDiagram)
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any(), []byte(boxDiagram)).DoAndReturn(writeOutput)

	outcome, err := f.app.Render(t.Context(), app.RenderRequest{Path: "-"})
	require.NoError(t, err)

	rendered, ok := outcome.(domain.Rendered)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(rendered.Paths.OutputName, domain.DefaultPrefix+"-"))
	assert.FileExists(t, rendered.Paths.OutputPath)
}

func TestApp_Render_FileWithPrefixAndInline(t *testing.T) {
	f := newFixture(t, "")
	path := filepath.Join(t.TempDir(), "box.ditaa")
	require.NoError(t, os.WriteFile(path, []byte(boxDiagram), 0o600))

	f.runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, argv []string, stdin []byte) (*domain.ProcessResult, error) {
			assert.Contains(t, argv, "--transparent")
			return writeOutput(ctx, argv, stdin)
		})

	outcome, err := f.app.Render(t.Context(), app.RenderRequest{Path: path, Inline: true, Prefix: "fig"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(outcome.(domain.Rendered).Paths.OutputName, "fig-"))
}

func TestApp_Render_PrefixMustStayInImagesDir(t *testing.T) {
	for _, prefix := range []string{"../../escaped", `..\escaped`, "sub/fig"} {
		t.Run(prefix, func(t *testing.T) {
			f := newFixture(t, boxDiagram)

			_, err := f.app.Render(t.Context(), app.RenderRequest{Prefix: prefix})
			require.ErrorIs(t, err, domain.ErrConfigInvalid)

			_, _, err = f.app.Key(t.Context(), app.RenderRequest{Prefix: prefix})
			require.ErrorIs(t, err, domain.ErrConfigInvalid)

			assert.NoDirExists(t, filepath.Join(f.cfg.OutDir, f.cfg.ImagesDir))
			escaped, err := filepath.Glob(filepath.Join(filepath.Dir(f.cfg.OutDir), "escaped-*"))
			require.NoError(t, err)
			assert.Empty(t, escaped)
		})
	}
}

func TestApp_Render_MissingFile(t *testing.T) {
	f := newFixture(t, "")

	_, err := f.app.Render(t.Context(), app.RenderRequest{Path: filepath.Join(t.TempDir(), "missing.ditaa")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read diagram")
}

func TestApp_Render_ConfigError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(gomock.Any(), "broken.yaml").
		Return(nil, errors.Join(domain.ErrConfigParseFailed, zerr.New("bad yaml")))

	a := app.New(loader, digest.NewBuilder(), mocks.NewMockProcessRunner(ctrl), document.NewScanner(),
		newFakeWatcher(), telemetry.NewNoOpTracer(), mocks.NewMockLogger(ctrl))

	_, err := a.Render(t.Context(), app.RenderRequest{ConfigPath: "broken.yaml"})
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestApp_Key_DoesNotRender(t *testing.T) {
	f := newFixture(t, boxDiagram)

	key, paths, err := f.app.Key(t.Context(), app.RenderRequest{})
	require.NoError(t, err)

	want := digest.NewBuilder().ComputeKey([]byte(boxDiagram), nil, domain.DefaultRenderer, nil)
	assert.Equal(t, want, key)
	assert.Equal(t, "ditaa-"+want.String()+".png", paths.OutputName)
	assert.NoFileExists(t, paths.OutputPath)
}

func TestApp_ConfigureLogging(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := &controlledLogger{MockLogger: mocks.NewMockLogger(ctrl)}
	a := app.New(nil, nil, nil, nil, nil, nil, log)

	a.ConfigureLogging(true, true)
	assert.True(t, log.verbose)
	assert.True(t, log.json)

	// Loggers without runtime control are left alone.
	app.New(nil, nil, nil, nil, nil, nil, mocks.NewMockLogger(ctrl)).ConfigureLogging(true, false)
}

type controlledLogger struct {
	*mocks.MockLogger
	verbose bool
	json    bool
}

func (l *controlledLogger) SetVerbose(enable bool) { l.verbose = enable }
func (l *controlledLogger) SetJSON(enable bool)    { l.json = enable }

func newFailingLoader(ctrl *gomock.Controller) *mocks.MockConfigLoader {
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(gomock.Any(), gomock.Any()).
		Return(nil, errors.Join(domain.ErrConfigInvalid, zerr.New("bad renderer")))
	return loader
}
