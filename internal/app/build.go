package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/plate/internal/adapters/present" //nolint:depguard // Wired in app layer
	"go.trai.ch/plate/internal/core/domain"
	"go.trai.ch/plate/internal/core/ports"
	"go.trai.ch/plate/internal/ui/output"
	"go.trai.ch/plate/internal/ui/style"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// FragmentSuffix precedes the presenter extension in fragment file names.
const FragmentSuffix = ".fragment"

// BuildOptions overrides configuration values for one build.
type BuildOptions struct {
	ConfigPath string
	// Format selects the presenter. Empty uses the configured format.
	Format string
	// Parallelism bounds concurrent renders. Zero uses the configured value.
	Parallelism int
}

// BuildSummary counts what happened to the diagrams of a build.
type BuildSummary struct {
	Rendered    int
	Cached      int
	Unavailable int
	Failed      int
	Skipped     int
}

// Add merges the counts of other into s.
func (s *BuildSummary) Add(other BuildSummary) {
	s.Rendered += other.Rendered
	s.Cached += other.Cached
	s.Unavailable += other.Unavailable
	s.Failed += other.Failed
	s.Skipped += other.Skipped
}

type result struct {
	outcome domain.Outcome
	err     error
}

type docRun struct {
	path       string
	directives []domain.Directive
	results    []result
	skipped    int
	readErr    error
}

// Build renders every diagram of docs and writes one fragment per document
// under the output root. Hard render failures are logged and skipped; Build
// then returns domain.ErrBuildFailed once all documents are written.
func (a *App) Build(ctx context.Context, docs []string, opts BuildOptions) error {
	if len(docs) == 0 {
		return domain.ErrNoDocumentsSpecified
	}

	s, err := a.newSession(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Format != "" {
		s.cfg.Format = opts.Format
	}
	if opts.Parallelism > 0 {
		s.cfg.Parallelism = opts.Parallelism
	}

	presenter, err := present.ForFormat(s.cfg.Format)
	if err != nil {
		return err
	}

	documents := a.scan(docs)
	summary := a.renderAll(ctx, s, documents)
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.cfg.OutDir, domain.DirPerm); err != nil {
		return errors.Join(domain.ErrFragmentWriteFailed,
			zerr.With(zerr.Wrap(err, "create output directory"), "path", s.cfg.OutDir))
	}

	var errs error
	for _, doc := range documents {
		if doc.readErr != nil {
			continue
		}
		path, err := writeFragment(s.cfg.OutDir, doc, presenter)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		a.logger.Debug("build: wrote " + path)
	}

	a.printSummary(summary)

	if errs != nil {
		return errs
	}
	if summary.Failed > 0 {
		return domain.ErrBuildFailed
	}
	return nil
}

func (a *App) scan(paths []string) []*docRun {
	documents := make([]*docRun, 0, len(paths))
	for _, path := range paths {
		doc := &docRun{path: path}
		documents = append(documents, doc)

		directives, diagnostics, err := a.scanner.Scan(path)
		if err != nil {
			doc.readErr = err
			continue
		}
		for _, d := range diagnostics {
			a.logger.Warn(fmt.Sprintf("%s:%d: %s", d.Document, d.Line, d.Message))
		}
		doc.directives = directives
		doc.skipped = len(diagnostics)
		doc.results = make([]result, len(directives))
	}
	return documents
}

// renderAll renders the directives of all documents with bounded parallelism.
func (a *App) renderAll(ctx context.Context, s *session, documents []*docRun) BuildSummary {
	var g errgroup.Group
	g.SetLimit(s.cfg.Workers())

	for _, doc := range documents {
		for i, d := range doc.directives {
			g.Go(func() error {
				outcome, err := s.pipeline.Render(ctx, d.Source(s.cfg.InlineArgs), s.cfg.Prefix)
				doc.results[i] = result{outcome: outcome, err: err}
				return nil
			})
		}
	}
	_ = g.Wait()

	var summary BuildSummary
	for _, doc := range documents {
		if doc.readErr != nil {
			a.logger.Error(doc.readErr)
			summary.Failed++
			continue
		}
		summary.Skipped += doc.skipped
		for i, r := range doc.results {
			summary.Add(a.tally(doc.directives[i], r))
		}
	}
	return summary
}

func (a *App) tally(d domain.Directive, r result) BuildSummary {
	if r.err != nil {
		if !errors.Is(r.err, context.Canceled) {
			a.logger.Error(zerr.With(zerr.With(r.err, "document", d.Document), "line", d.Line))
		}
		return BuildSummary{Failed: 1}
	}

	switch o := r.outcome.(type) {
	case domain.Unavailable:
		return BuildSummary{Unavailable: 1}
	case domain.Rendered:
		if o.Cached {
			return BuildSummary{Cached: 1}
		}
		return BuildSummary{Rendered: 1}
	}
	return BuildSummary{}
}

// writeFragment writes the presented directives of doc. Directives whose
// render failed are left out.
func writeFragment(outDir string, doc *docRun, presenter ports.Presenter) (string, error) {
	var b strings.Builder
	for i, d := range doc.directives {
		r := doc.results[i]
		if r.err != nil {
			continue
		}
		b.WriteString(presenter.Present(d, r.outcome))
	}

	path := FragmentPath(outDir, doc.path, presenter.Extension())
	if err := os.WriteFile(path, []byte(b.String()), domain.FilePerm); err != nil {
		return "", errors.Join(domain.ErrFragmentWriteFailed,
			zerr.With(zerr.Wrap(err, "write fragment"), "path", path))
	}
	return path, nil
}

// FragmentPath returns where the fragment of the document at docPath is written.
func FragmentPath(outDir, docPath, ext string) string {
	base := filepath.Base(docPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, stem+FragmentSuffix+ext)
}

func (a *App) printSummary(s BuildSummary) {
	r := lipgloss.NewRenderer(a.stdout)
	out := output.New(a.stdout)
	r.SetOutput(out)
	r.SetColorProfile(out.Profile)

	parts := []string{
		style.Success.Renderer(r).Render(fmt.Sprintf("%s %d rendered", style.Check, s.Rendered)),
		style.Muted.Renderer(r).Render(fmt.Sprintf("%s %d cached", style.Tilde, s.Cached)),
	}
	if s.Unavailable > 0 {
		parts = append(parts, style.Notice.Renderer(r).Render(fmt.Sprintf("%s %d unavailable", style.Warning, s.Unavailable)))
	}
	if s.Skipped > 0 {
		parts = append(parts, style.Notice.Renderer(r).Render(fmt.Sprintf("%s %d skipped", style.Warning, s.Skipped)))
	}
	if s.Failed > 0 {
		parts = append(parts, style.Failure.Renderer(r).Render(fmt.Sprintf("%s %d failed", style.Cross, s.Failed)))
	}

	sep := style.Muted.Renderer(r).Render(" " + style.Dot + " ")
	_, _ = fmt.Fprintln(a.stdout, strings.Join(parts, sep))
}
