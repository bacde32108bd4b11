package domain

import "slices"

// DiagramSource is one diagram to render: the raw UTF-8 diagram text plus the
// ordered renderer flags derived from its per-use options.
type DiagramSource struct {
	Code  []byte
	Flags []string
}

// NewDiagramSource copies code and flags so the source cannot be mutated
// through the caller's slices.
func NewDiagramSource(code []byte, flags []string) DiagramSource {
	return DiagramSource{
		Code:  slices.Clone(code),
		Flags: slices.Clone(flags),
	}
}

// Directive is a diagram request found in a document, together with the
// presentation options that travel with it.
type Directive struct {
	Document string
	Line     int
	Code     string
	Alt      string
	Caption  string
	Inline   bool
}

// Source derives the DiagramSource for the directive. Inline directives get
// inlineArgs as their per-call flags; all others get none.
func (d Directive) Source(inlineArgs []string) DiagramSource {
	var flags []string
	if d.Inline {
		flags = inlineArgs
	}
	return NewDiagramSource([]byte(d.Code), flags)
}

// Diagnostic is a non-fatal problem found while scanning a document.
type Diagnostic struct {
	Document string
	Line     int
	Message  string
}
