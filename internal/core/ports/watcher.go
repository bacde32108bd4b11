package ports

import (
	"context"
	"iter"
)

// WatchOp is the kind of a file system change.
type WatchOp int

const (
	// OpWrite means a file was written.
	OpWrite WatchOp = iota + 1
	// OpCreate means a file or directory was created.
	OpCreate
	// OpRemove means a file or directory was removed.
	OpRemove
	// OpRename means a file or directory was renamed.
	OpRename
)

// WatchEvent is a single file system change.
type WatchEvent struct {
	Path      string
	Operation WatchOp
}

// Watcher observes document directories for changes.
type Watcher interface {
	// Start begins watching the given directories.
	Start(ctx context.Context, dirs []string) error
	// Events yields changes until the watcher stops.
	Events() iter.Seq[WatchEvent]
	// Stop releases the watcher.
	Stop() error
}
