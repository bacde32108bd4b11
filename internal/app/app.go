// Package app implements the application layer for plate.
package app

import (
	"context"
	"io"
	"os"
	"time"

	"go.trai.ch/plate/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/plate/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/plate/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/plate/internal/core/domain"
	"go.trai.ch/plate/internal/core/ports"
	"go.trai.ch/plate/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	keys         ports.KeyBuilder
	runner       ports.ProcessRunner
	scanner      ports.DocumentScanner
	watcher      ports.Watcher
	tracer       ports.Tracer
	logger       ports.Logger

	stdin    io.Reader
	stdout   io.Writer
	debounce time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	keys ports.KeyBuilder,
	runner ports.ProcessRunner,
	scanner ports.DocumentScanner,
	w ports.Watcher,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		keys:         keys,
		runner:       runner,
		scanner:      scanner,
		watcher:      w,
		tracer:       tracer,
		logger:       log,
		stdin:        os.Stdin,
		stdout:       os.Stdout,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithIO replaces the standard streams used for diagram input and build
// summaries.
func (a *App) WithIO(stdin io.Reader, stdout io.Writer) *App {
	a.stdin = stdin
	a.stdout = stdout
	return a
}

// WithDebounceWindow sets how long watch mode waits for further changes
// before rebuilding.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounce = d
	return a
}

// LogControl is implemented by loggers whose level and format can change at
// runtime.
type LogControl interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
}

// ConfigureLogging applies the global logging flags.
func (a *App) ConfigureLogging(verbose, json bool) {
	ctl, ok := a.logger.(LogControl)
	if !ok {
		return
	}
	ctl.SetVerbose(verbose)
	ctl.SetJSON(json)
}

// EnableTracing logs every finished span at debug level. The returned
// function flushes and uninstalls the span pipeline.
func (a *App) EnableTracing() func(context.Context) error {
	return telemetry.Install(a.logger)
}

// RenderRequest names one diagram to render outside a document.
type RenderRequest struct {
	ConfigPath string
	// Path is the diagram file. Empty or "-" reads standard input.
	Path   string
	Inline bool
	// Prefix overrides the configured artifact prefix.
	Prefix string
}

// Render renders a single diagram.
func (a *App) Render(ctx context.Context, req RenderRequest) (domain.Outcome, error) {
	if err := domain.CheckPrefix(req.Prefix); err != nil {
		return nil, err
	}

	s, err := a.newSession(req.ConfigPath)
	if err != nil {
		return nil, err
	}

	src, err := a.readSource(req, s.cfg)
	if err != nil {
		return nil, err
	}

	return s.pipeline.Render(ctx, src, s.prefix(req))
}

// Key returns the cache key and artifact paths of a diagram without rendering it.
func (a *App) Key(_ context.Context, req RenderRequest) (domain.CacheKey, domain.ArtifactPaths, error) {
	if err := domain.CheckPrefix(req.Prefix); err != nil {
		return domain.CacheKey{}, domain.ArtifactPaths{}, err
	}

	s, err := a.newSession(req.ConfigPath)
	if err != nil {
		return domain.CacheKey{}, domain.ArtifactPaths{}, err
	}

	src, err := a.readSource(req, s.cfg)
	if err != nil {
		return domain.CacheKey{}, domain.ArtifactPaths{}, err
	}

	return s.pipeline.Key(src), s.pipeline.Paths(src, s.prefix(req)), nil
}

// prefix returns the request's prefix override, or the configured one.
func (s *session) prefix(req RenderRequest) string {
	if req.Prefix != "" {
		return req.Prefix
	}
	return s.cfg.Prefix
}

// session is the configuration and pipeline of one command run.
type session struct {
	cfg      *domain.Config
	pipeline *pipeline.Pipeline
}

func (a *App) newSession(configPath string) (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get working directory")
	}

	cfg, err := a.configLoader.Load(cwd, configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	store, err := cas.NewStore(cfg.Layout())
	if err != nil {
		return nil, err
	}

	p := pipeline.New(cfg.RendererConfig(), a.keys, store, a.runner, a.tracer, a.logger)
	return &session{cfg: cfg, pipeline: p}, nil
}

func (a *App) readSource(req RenderRequest, cfg *domain.Config) (domain.DiagramSource, error) {
	var (
		code []byte
		err  error
	)
	if req.Path == "" || req.Path == "-" {
		code, err = io.ReadAll(a.stdin)
	} else {
		code, err = os.ReadFile(req.Path)
	}
	if err != nil {
		return domain.DiagramSource{}, zerr.With(zerr.Wrap(err, "failed to read diagram"), "path", req.Path)
	}

	d := domain.Directive{Code: string(code), Inline: req.Inline}
	return d.Source(cfg.InlineArgs), nil
}
