package app_test

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plate/internal/adapters/digest"
	"go.trai.ch/plate/internal/adapters/document"
	"go.trai.ch/plate/internal/adapters/telemetry"
	"go.trai.ch/plate/internal/app"
	"go.trai.ch/plate/internal/core/domain"
	"go.trai.ch/plate/internal/core/ports"
	"go.uber.org/mock/gomock"
)

// fakeWatcher delivers events sent by the test until the watch context ends.
type fakeWatcher struct {
	events  chan ports.WatchEvent
	started chan []string
	once    sync.Once
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{
		events:  make(chan ports.WatchEvent),
		started: make(chan []string, 1),
	}
}

func (w *fakeWatcher) Start(ctx context.Context, dirs []string) error {
	w.started <- dirs
	go func() {
		<-ctx.Done()
		w.once.Do(func() { close(w.events) })
	}()
	return nil
}

func (w *fakeWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *fakeWatcher) Stop() error { return nil }

func TestApp_Watch_RebuildsChangedDocuments(t *testing.T) {
	f := newFixture(t, "")
	w := newFakeWatcher()
	f.app = app.New(f.loader, digest.NewBuilder(), f.runner, document.NewScanner(),
		w, telemetry.NewNoOpTracer(), f.logger).
		WithIO(nil, f.stdout).
		WithDebounceWindow(10 * time.Millisecond)

	// Initial build, then one rebuild for the edited diagram.
	f.expectRenders(2)

	doc := writeDoc(t, "guide.rst", ".. ditaa::\n\n   +--+\n")
	other := filepath.Join(filepath.Dir(doc), "notes.txt")

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- f.app.Watch(ctx, []string{doc}, app.BuildOptions{}) }()

	dirs := <-w.started
	assert.Equal(t, []string{filepath.Dir(doc)}, dirs)
	first := readFragment(t, f, doc, ".html")

	w.events <- ports.WatchEvent{Path: other, Operation: ports.OpWrite}

	require.NoError(t, os.WriteFile(doc, []byte(".. ditaa::\n\n   +----+\n"), 0o600))
	w.events <- ports.WatchEvent{Path: doc, Operation: ports.OpRemove}
	w.events <- ports.WatchEvent{Path: doc, Operation: ports.OpCreate}

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(app.FragmentPath(f.cfg.OutDir, doc, ".html"))
		return err == nil && string(data) != first
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestApp_Watch_NoDocuments(t *testing.T) {
	f := newFixture(t, "")
	require.ErrorIs(t, f.app.Watch(t.Context(), nil, app.BuildOptions{}), domain.ErrNoDocumentsSpecified)
}

func TestApp_Watch_ConfigErrorStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := newFailingLoader(ctrl)
	w := newFakeWatcher()

	a := app.New(loader, digest.NewBuilder(), nil, document.NewScanner(), w, telemetry.NewNoOpTracer(), nil)
	doc := writeDoc(t, "guide.rst", ".. ditaa::\n\n   +--+\n")

	err := a.Watch(t.Context(), []string{doc}, app.BuildOptions{})
	require.ErrorIs(t, err, domain.ErrConfigInvalid)
	assert.Empty(t, w.started)
}
