package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrRendererUnavailable is returned when the renderer executable cannot be found or started.
	ErrRendererUnavailable = zerr.New("renderer cannot be run")

	// ErrRendererClosedInput is returned when the renderer closed its input before reading the diagram.
	ErrRendererClosedInput = zerr.New("renderer closed its input early")

	// ErrRenderFailed is returned when the renderer exits with a non-zero status.
	ErrRenderFailed = zerr.New("renderer exited with error")

	// ErrRenderTimedOut is returned when the renderer exceeds the configured timeout.
	ErrRenderTimedOut = zerr.New("renderer timed out")

	// ErrImagesDirCreateFailed is returned when the artifact directory cannot be created.
	ErrImagesDirCreateFailed = zerr.New("failed to create images directory")

	// ErrInputWriteFailed is returned when the diagram source artifact cannot be written.
	ErrInputWriteFailed = zerr.New("failed to write diagram source")

	// ErrArtifactStatFailed is returned when the cache lookup cannot stat the output artifact.
	ErrArtifactStatFailed = zerr.New("failed to stat output artifact")

	// ErrArtifactDiscardFailed is returned when the output of a failed render cannot be removed.
	ErrArtifactDiscardFailed = zerr.New("failed to remove output artifact")

	// ErrProcessIOFailed is returned when the renderer streams fail for reasons other than early closure.
	ErrProcessIOFailed = zerr.New("failed to communicate with renderer")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config file holds invalid values.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrDocumentReadFailed is returned when a document cannot be read.
	ErrDocumentReadFailed = zerr.New("failed to read document")

	// ErrFragmentWriteFailed is returned when a presentation fragment cannot be written.
	ErrFragmentWriteFailed = zerr.New("failed to write fragment")

	// ErrNoDocumentsSpecified is returned when build is invoked without documents.
	ErrNoDocumentsSpecified = zerr.New("no documents specified")

	// ErrBuildFailed is returned when at least one diagram failed to render during a build.
	ErrBuildFailed = zerr.New("build failed")
)

// ErrorKind classifies what went wrong while running the renderer process.
type ErrorKind int

const (
	// KindUnavailable means the executable could not be found or started.
	KindUnavailable ErrorKind = iota + 1
	// KindInputClosed means the process closed its input stream early.
	KindInputClosed
	// KindRenderFailure means the process exited with a non-zero status.
	KindRenderFailure
	// KindTimeout means the process was killed after exceeding its timeout.
	KindTimeout
)

// String returns the name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindInputClosed:
		return "input-closed"
	case KindRenderFailure:
		return "render-failure"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Sentinel returns the sentinel error matching the kind.
func (k ErrorKind) Sentinel() error {
	switch k {
	case KindUnavailable:
		return ErrRendererUnavailable
	case KindInputClosed:
		return ErrRendererClosedInput
	case KindTimeout:
		return ErrRenderTimedOut
	default:
		return ErrRenderFailed
	}
}

// RenderError is a hard renderer failure. It carries both captured streams
// verbatim so the caller can show them in the build log.
type RenderError struct {
	Kind     ErrorKind
	Renderer string
	ExitCode int
	Stdout   string
	Stderr   string
}

// NewRenderError builds a RenderError from a finished process.
func NewRenderError(kind ErrorKind, renderer string, res *ProcessResult) *RenderError {
	return &RenderError{
		Kind:     kind,
		Renderer: renderer,
		ExitCode: res.ExitCode,
		Stdout:   string(res.Stdout),
		Stderr:   string(res.Stderr),
	}
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s (%s, exit code %d):\n[stderr]\n%s\n[stdout]\n%s",
		e.Kind.Sentinel().Error(), e.Renderer, e.ExitCode, e.Stderr, e.Stdout)
}

// Unwrap exposes the sentinel of the error's kind to errors.Is.
func (e *RenderError) Unwrap() error {
	return e.Kind.Sentinel()
}
