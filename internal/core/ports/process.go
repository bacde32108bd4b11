// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/plate/internal/core/domain"
)

// ProcessRunner runs the external renderer.
//
//go:generate go run go.uber.org/mock/mockgen -source=process.go -destination=mocks/mock_process.go -package=mocks
type ProcessRunner interface {
	// Run starts argv[0] with argv[1:], writes stdin to the process, drains
	// its output streams and waits for it to exit.
	//
	// A process that cannot be started yields an error matching
	// domain.ErrRendererUnavailable and a nil result. Once the process has
	// started, a non-zero exit is not an error: it is reported through the
	// result, as is an early close of the process input.
	Run(ctx context.Context, argv []string, stdin []byte) (*domain.ProcessResult, error)
}
