package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/plate/internal/adapters/cas"
	"go.trai.ch/plate/internal/adapters/digest"
	"go.trai.ch/plate/internal/adapters/shell"
	"go.trai.ch/plate/internal/adapters/telemetry"
	"go.trai.ch/plate/internal/core/domain"
	"go.trai.ch/plate/internal/core/ports/mocks"
	"go.trai.ch/plate/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

func attributes(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range s.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	return attrs
}

func TestPipeline_Render_Spans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	store, err := cas.NewStore(domain.Layout{OutDir: t.TempDir(), ImagesDir: "_images", ImagePath: "_images"})
	require.NoError(t, err)

	s := newRenderingStub(t)
	p := pipeline.New(
		domain.RendererConfig{Executable: s.path},
		digest.NewBuilder(),
		store,
		shell.NewRunner(log),
		telemetry.NewOTelTracerFromProvider(tp, telemetry.InstrumentationName),
		log,
	)

	src := domain.NewDiagramSource([]byte(boxDiagram), nil)
	_, err = p.Render(t.Context(), src, "fig")
	require.NoError(t, err)
	_, err = p.Render(t.Context(), src, "fig")
	require.NoError(t, err)

	ended := recorder.Ended()
	require.Len(t, ended, 2)

	miss := attributes(ended[0])
	assert.Equal(t, "render", ended[0].Name())
	assert.Equal(t, p.Key(src).String(), miss["key"].AsString())
	assert.Equal(t, "fig", miss["prefix"].AsString())
	assert.False(t, miss["cache_hit"].AsBool())
	assert.Equal(t, int64(0), miss["exit_code"].AsInt64())
	assert.Equal(t, "rendered", miss["outcome"].AsString())

	hit := attributes(ended[1])
	assert.True(t, hit["cache_hit"].AsBool())
	assert.Equal(t, "cached", hit["outcome"].AsString())
	_, ran := hit["exit_code"]
	assert.False(t, ran)
}

func TestPipeline_Render_SpanRecordsFailure(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	store, err := cas.NewStore(domain.Layout{OutDir: t.TempDir(), ImagesDir: "_images", ImagePath: "_images"})
	require.NoError(t, err)

	s := newStub(t, "ditaa", "cat > /dev/null\nexit 4")
	p := pipeline.New(
		domain.RendererConfig{Executable: s.path},
		digest.NewBuilder(),
		store,
		shell.NewRunner(log),
		telemetry.NewOTelTracerFromProvider(tp, telemetry.InstrumentationName),
		log,
	)

	_, err = p.Render(t.Context(), domain.NewDiagramSource([]byte(boxDiagram), nil), "")
	require.ErrorIs(t, err, domain.ErrRenderFailed)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	attrs := attributes(ended[0])
	assert.Equal(t, "failed", attrs["outcome"].AsString())
	assert.Equal(t, int64(4), attrs["exit_code"].AsInt64())
}
