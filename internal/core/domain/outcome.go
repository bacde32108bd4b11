package domain

// Outcome is the result of a render that did not fail hard.
// It is either Rendered or Unavailable.
type Outcome interface {
	outcome()
}

// Rendered means the artifact pair exists on disk.
type Rendered struct {
	Paths ArtifactPaths
	// Cached is set when the output was already present and no renderer ran.
	Cached bool
}

// Unavailable means the renderer could not be started; callers fall back to
// presenting the literal diagram source.
type Unavailable struct {
	Renderer string
	Reason   error
}

func (Rendered) outcome()    {}
func (Unavailable) outcome() {}
