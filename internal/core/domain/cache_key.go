package domain

import "encoding/hex"

// KeySize is the length in bytes of a CacheKey.
const KeySize = 32

// CacheKey identifies a (source, options, renderer configuration) tuple.
type CacheKey [KeySize]byte

// String returns the key as fixed-width lowercase hex, suitable for filenames.
func (k CacheKey) String() string {
	return hex.EncodeToString(k[:])
}

// IsZero reports whether the key is unset.
func (k CacheKey) IsZero() bool {
	return k == CacheKey{}
}
