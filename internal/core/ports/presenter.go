package ports

import "go.trai.ch/plate/internal/core/domain"

// Presenter turns a render outcome into output-format markup.
type Presenter interface {
	// Format is the output format name, e.g. "html".
	Format() string
	// Extension is the fragment file extension, including the dot.
	Extension() string
	// Present renders the markup for one directive.
	Present(directive domain.Directive, outcome domain.Outcome) string
}
