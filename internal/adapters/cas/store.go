// Package cas implements the content-addressed artifact store.
package cas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.trai.ch/plate/internal/core/domain"
	"go.trai.ch/plate/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactStore = (*Store)(nil)

// Store implements ports.ArtifactStore on a flat directory of
// <prefix>-<key>.ditaa / <prefix>-<key>.png files. Only the output of a
// failed render is ever removed.
type Store struct {
	layout domain.Layout
}

// NewStore creates a Store for the given layout. A relative output root is
// resolved against the current working directory.
func NewStore(layout domain.Layout) (*Store, error) {
	if !filepath.IsAbs(layout.OutDir) {
		abs, err := filepath.Abs(layout.OutDir)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve output directory"), "path", layout.OutDir)
		}
		layout.OutDir = abs
	}
	return &Store{layout: layout}, nil
}

// Dir returns the artifact directory.
func (s *Store) Dir() string {
	return s.layout.ImagesPath()
}

// Paths derives the artifact pair for a prefix and key.
func (s *Store) Paths(prefix string, key domain.CacheKey) domain.ArtifactPaths {
	return s.layout.Artifacts(prefix, key)
}

// Exists reports whether the output artifact is a regular file on disk.
func (s *Store) Exists(paths domain.ArtifactPaths) (bool, error) {
	info, err := os.Stat(paths.OutputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.Join(domain.ErrArtifactStatFailed,
			zerr.With(zerr.Wrap(err, "stat failed"), "path", paths.OutputPath))
	}
	return info.Mode().IsRegular(), nil
}

// Prepare creates the artifact directory. MkdirAll treats an existing
// directory as success, so concurrent callers do not race.
func (s *Store) Prepare() error {
	if err := os.MkdirAll(s.Dir(), domain.DirPerm); err != nil {
		return errors.Join(domain.ErrImagesDirCreateFailed,
			zerr.With(zerr.Wrap(err, "mkdir failed"), "path", s.Dir()))
	}
	return nil
}

// WriteInput writes code to the input artifact. The bytes go to a uniquely
// named sibling first and are renamed into place, so a concurrent writer of
// the same key never observes a truncated file.
func (s *Store) WriteInput(paths domain.ArtifactPaths, code []byte) error {
	tmp := filepath.Join(filepath.Dir(paths.InputPath), "."+paths.InputName+"."+uuid.NewString()+".tmp")

	//nolint:gosec // Path is built from the configured output directory and a hex digest
	if err := os.WriteFile(tmp, code, domain.FilePerm); err != nil {
		return errors.Join(domain.ErrInputWriteFailed,
			zerr.With(zerr.Wrap(err, "write failed"), "path", tmp))
	}

	if err := os.Rename(tmp, paths.InputPath); err != nil {
		_ = os.Remove(tmp)
		return errors.Join(domain.ErrInputWriteFailed,
			zerr.With(zerr.Wrap(err, "rename failed"), "path", paths.InputPath))
	}

	return nil
}

// Discard removes the output artifact. The input artifact is kept for
// inspection.
func (s *Store) Discard(paths domain.ArtifactPaths) error {
	if err := os.Remove(paths.OutputPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Join(domain.ErrArtifactDiscardFailed,
			zerr.With(zerr.Wrap(err, "remove failed"), "path", paths.OutputPath))
	}
	return nil
}
