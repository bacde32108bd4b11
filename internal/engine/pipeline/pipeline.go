// Package pipeline renders diagrams with the external renderer and caches the
// resulting artifacts by content.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.trai.ch/plate/internal/core/domain"
	"go.trai.ch/plate/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// Span attribute values for the render outcome.
const (
	outcomeRendered    = "rendered"
	outcomeCached      = "cached"
	outcomeUnavailable = "unavailable"
	outcomeFailed      = "failed"
)

// Pipeline renders diagrams into the artifact store. It is safe for
// concurrent use; concurrent misses for the same artifact run the renderer once.
type Pipeline struct {
	renderer domain.RendererConfig
	keys     ports.KeyBuilder
	store    ports.ArtifactStore
	runner   ports.ProcessRunner
	tracer   ports.Tracer
	logger   ports.Logger

	flight   singleflight.Group
	warnOnce sync.Once
}

// New creates a Pipeline. The renderer configuration is copied and not
// changed afterwards.
func New(
	renderer domain.RendererConfig,
	keys ports.KeyBuilder,
	store ports.ArtifactStore,
	runner ports.ProcessRunner,
	tracer ports.Tracer,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		renderer: renderer.Clone(),
		keys:     keys,
		store:    store,
		runner:   runner,
		tracer:   tracer,
		logger:   logger,
	}
}

// Key returns the cache key of src under the pipeline's renderer configuration.
func (p *Pipeline) Key(src domain.DiagramSource) domain.CacheKey {
	return p.keys.ComputeKey(src.Code, src.Flags, p.renderer.Executable, p.renderer.Args)
}

// Paths returns the artifact pair src would be stored under.
func (p *Pipeline) Paths(src domain.DiagramSource, prefix string) domain.ArtifactPaths {
	return p.store.Paths(prefix, p.Key(src))
}

// Render returns the artifacts for src, running the renderer on a cache miss.
//
// A renderer that cannot be started yields domain.Unavailable and no error.
// Renderer failures are returned as *domain.RenderError; filesystem failures
// match the domain sentinels of the failing step.
func (p *Pipeline) Render(ctx context.Context, src domain.DiagramSource, prefix string) (domain.Outcome, error) {
	if prefix == "" {
		prefix = domain.DefaultPrefix
	}
	if err := domain.CheckPrefix(prefix); err != nil {
		return nil, err
	}

	ctx, span := p.tracer.Start(ctx, "render")
	defer span.End()

	key := p.Key(src)
	paths := p.store.Paths(prefix, key)
	span.SetAttribute("key", key.String())
	span.SetAttribute("prefix", prefix)

	hit, err := p.store.Exists(paths)
	if err != nil {
		span.SetAttribute("outcome", outcomeFailed)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("cache_hit", hit)
	if hit {
		span.SetAttribute("outcome", outcomeCached)
		return domain.Rendered{Paths: paths, Cached: true}, nil
	}

	v, err, _ := p.flight.Do(paths.OutputPath, func() (any, error) {
		return p.render(ctx, src, paths, span)
	})
	if err != nil {
		span.SetAttribute("outcome", outcomeFailed)
		span.RecordError(err)
		return nil, err
	}

	outcome := v.(domain.Outcome)
	switch o := outcome.(type) {
	case domain.Unavailable:
		span.SetAttribute("outcome", outcomeUnavailable)
	case domain.Rendered:
		if o.Cached {
			span.SetAttribute("outcome", outcomeCached)
		} else {
			span.SetAttribute("outcome", outcomeRendered)
		}
	}
	return outcome, nil
}

// render runs on a cache miss, at most once at a time per output path.
func (p *Pipeline) render(ctx context.Context, src domain.DiagramSource, paths domain.ArtifactPaths, span ports.Span) (domain.Outcome, error) {
	// A render of the same artifact may have finished since the first lookup.
	hit, err := p.store.Exists(paths)
	if err != nil {
		return nil, err
	}
	if hit {
		return domain.Rendered{Paths: paths, Cached: true}, nil
	}

	if err := p.store.Prepare(); err != nil {
		return nil, err
	}
	if err := p.store.WriteInput(paths, src.Code); err != nil {
		return nil, err
	}

	argv := p.renderer.Argv(src.Flags, paths.InputPath, paths.OutputPath)
	p.logger.Debug("render: " + strings.Join(argv, " "))

	runCtx := ctx
	if p.renderer.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.renderer.Timeout)
		defer cancel()
	}

	res, err := p.runner.Run(runCtx, argv, src.Code)
	if err != nil {
		if errors.Is(err, domain.ErrRendererUnavailable) {
			p.warnUnavailable()
			return domain.Unavailable{Renderer: p.renderer.Executable, Reason: err}, nil
		}
		return nil, err
	}
	span.SetAttribute("exit_code", res.ExitCode)

	return p.classify(res, paths)
}

// classify turns a finished process into an outcome. A timeout wins over the
// exit status, and a non-zero exit wins over an early input close. Any output
// left by a failed run is discarded so it is not served as a cache hit.
//
// The renderer reads the diagram from its input file, so an early close of
// the stdin copy only counts as a failure when no output was produced.
func (p *Pipeline) classify(res *domain.ProcessResult, paths domain.ArtifactPaths) (domain.Outcome, error) {
	exe := p.renderer.Executable

	switch {
	case res.TimedOut:
		return nil, p.discard(paths, domain.NewRenderError(domain.KindTimeout, exe, res))
	case res.ExitCode != 0:
		return nil, p.discard(paths, domain.NewRenderError(domain.KindRenderFailure, exe, res))
	case res.InputClosed:
		produced, err := p.store.Exists(paths)
		if err != nil {
			return nil, err
		}
		switch {
		case produced:
			p.logger.Debug(fmt.Sprintf("renderer %q closed its input early; output accepted", exe))
		case p.renderer.TolerateClosedInput:
			p.logger.Warn(fmt.Sprintf("renderer %q closed its input early without output; continuing", exe))
		default:
			return nil, domain.NewRenderError(domain.KindInputClosed, exe, res)
		}
	}

	return domain.Rendered{Paths: paths}, nil
}

// discard removes the output of a failed run and returns cause, joined with
// the removal error if there was one.
func (p *Pipeline) discard(paths domain.ArtifactPaths, cause error) error {
	if err := p.store.Discard(paths); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (p *Pipeline) warnUnavailable() {
	p.warnOnce.Do(func() {
		p.logger.Warn(fmt.Sprintf(
			"renderer %q cannot be run (needed for diagram output), check the renderer setting",
			p.renderer.Executable))
	})
}
