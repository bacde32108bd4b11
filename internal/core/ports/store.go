package ports

import "go.trai.ch/plate/internal/core/domain"

// ArtifactStore defines the content-addressed artifact cache.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Paths derives the artifact pair for a prefix and key without touching disk.
	Paths(prefix string, key domain.CacheKey) domain.ArtifactPaths

	// Exists reports whether the output artifact is present.
	// Presence of the output file is the whole cache-hit test.
	Exists(paths domain.ArtifactPaths) (bool, error)

	// Prepare creates the artifact directory. It is idempotent and safe to
	// call concurrently.
	Prepare() error

	// WriteInput stores the diagram source at the input artifact path,
	// replacing any previous file.
	WriteInput(paths domain.ArtifactPaths, code []byte) error

	// Discard removes the output artifact so a failed render is not served
	// as a cache hit. A missing output is not an error.
	Discard(paths domain.ArtifactPaths) error
}
