// Package digest implements the cache-key builder.
package digest

import (
	"encoding/binary"
	"hash"

	"go.trai.ch/plate/internal/core/domain"
	"go.trai.ch/plate/internal/core/ports"
	"golang.org/x/crypto/blake2b"
)

var _ ports.KeyBuilder = (*Builder)(nil)

// Builder computes BLAKE2b-256 cache keys.
type Builder struct{}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// ComputeKey hashes, in this order: the diagram source, the per-call options,
// the renderer path and the renderer default arguments.
//
// Every field and every list element is length-prefixed, so two inputs hash
// to the same key only if all four fields are byte-identical.
func (b *Builder) ComputeKey(
	source []byte,
	options []string,
	rendererPath string,
	rendererArgs []string,
) domain.CacheKey {
	h := newHash()

	writeField(h, source)
	writeList(h, options)
	writeField(h, []byte(rendererPath))
	writeList(h, rendererArgs)

	var key domain.CacheKey
	copy(key[:], h.Sum(nil))
	return key
}

func newHash() hash.Hash {
	// blake2b.New256 only fails for keys longer than 64 bytes.
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	return h
}

// writeField writes the length of p followed by p.
func writeField(h hash.Hash, p []byte) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
	_, _ = h.Write(n[:])
	_, _ = h.Write(p)
}

// writeList writes the element count followed by each element as a field.
func writeList(h hash.Hash, items []string) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(items)))
	_, _ = h.Write(n[:])
	for _, item := range items {
		writeField(h, []byte(item))
	}
}
