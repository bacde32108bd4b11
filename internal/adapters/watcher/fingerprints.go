package watcher

import (
	"io"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Fingerprints remembers a content hash per file so that events which leave
// a file unchanged, such as editor touch-saves, can be ignored.
type Fingerprints struct {
	mu     sync.Mutex
	hashes map[string]uint64
}

// NewFingerprints creates an empty set of fingerprints.
func NewFingerprints() *Fingerprints {
	return &Fingerprints{hashes: make(map[string]uint64)}
}

// Changed hashes the file at path, stores the result and reports whether it
// differs from the previous fingerprint. The first call for a path reports true.
func (f *Fingerprints) Changed(path string) (bool, error) {
	sum, err := hashFile(path)
	if err != nil {
		return false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	prev, seen := f.hashes[path]
	f.hashes[path] = sum
	return !seen || prev != sum, nil
}

// Forget drops the fingerprint of path.
func (f *Fingerprints) Forget(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.hashes, path)
}

func hashFile(path string) (uint64, error) {
	// #nosec G304 -- watched documents are named by the user
	file, err := os.Open(path)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open watched file"), "path", path)
	}
	defer func() { _ = file.Close() }()

	h := xxhash.New()
	if _, err := io.Copy(h, file); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash watched file"), "path", path)
	}
	return h.Sum64(), nil
}
