package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/plate/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/plate/internal/core/domain"
	"go.trai.ch/plate/internal/core/ports"
	"go.trai.ch/zerr"
)

// Watch builds docs, then rebuilds each document whose content changes until
// ctx is done. Failed builds are logged and watching continues.
func (a *App) Watch(ctx context.Context, docs []string, opts BuildOptions) error {
	if len(docs) == 0 {
		return domain.ErrNoDocumentsSpecified
	}

	watched := make(map[string]struct{}, len(docs))
	dirs := make([]string, 0, len(docs))
	paths := make([]string, 0, len(docs))
	fingerprints := watcher.NewFingerprints()
	for _, doc := range docs {
		abs, err := filepath.Abs(doc)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve document path"), "path", doc)
		}
		watched[abs] = struct{}{}
		dirs = append(dirs, filepath.Dir(abs))
		paths = append(paths, abs)
		// Unreadable documents are reported by the build below.
		_, _ = fingerprints.Changed(abs)
	}

	if err := a.rebuild(ctx, paths, opts); err != nil {
		return err
	}

	if err := a.watcher.Start(ctx, dirs); err != nil {
		return err
	}
	defer func() { _ = a.watcher.Stop() }()
	a.logger.Info("watching " + strings.Join(paths, ", "))

	var mu sync.Mutex
	debouncer := watcher.NewDebouncer(a.debounce, func(batch []string) {
		mu.Lock()
		defer mu.Unlock()

		changed := make([]string, 0, len(batch))
		for _, path := range batch {
			ok, err := fingerprints.Changed(path)
			if err != nil {
				fingerprints.Forget(path)
				a.logger.Debug("watch: skipping " + path + ": " + err.Error())
				continue
			}
			if ok {
				changed = append(changed, path)
			}
		}
		if len(changed) == 0 || ctx.Err() != nil {
			return
		}

		a.logger.Info("rebuilding " + strings.Join(changed, ", "))
		if err := a.rebuild(ctx, changed, opts); err != nil {
			a.logger.Error(err)
		}
	})

	for event := range a.watcher.Events() {
		if _, ok := watched[event.Path]; !ok {
			continue
		}
		// Editors that save by rename recreate the file right after.
		if event.Operation == ports.OpRemove || event.Operation == ports.OpRename {
			continue
		}
		debouncer.Add(event.Path)
	}
	debouncer.Flush()

	return nil
}

// rebuild runs a build, treating diagram failures as already reported.
func (a *App) rebuild(ctx context.Context, docs []string, opts BuildOptions) error {
	err := a.Build(ctx, docs, opts)
	if errors.Is(err, domain.ErrBuildFailed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
