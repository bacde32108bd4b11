package ports

import "go.trai.ch/plate/internal/core/domain"

// KeyBuilder derives cache keys for diagrams.
//
//go:generate go run go.uber.org/mock/mockgen -source=key_builder.go -destination=mocks/mock_key_builder.go -package=mocks
type KeyBuilder interface {
	// ComputeKey hashes the diagram source, the per-call options, the renderer
	// path and the renderer default arguments, in that order.
	// It is a pure function of its inputs.
	ComputeKey(source []byte, options []string, rendererPath string, rendererArgs []string) domain.CacheKey
}
