package present

import (
	"fmt"
	"html"
	"strings"

	"go.trai.ch/plate/internal/core/domain"
)

// HTML presents diagrams as <img> tags inside a paragraph, or a span for
// inline diagrams.
type HTML struct{}

// Format implements ports.Presenter.
func (HTML) Format() string { return domain.FormatHTML }

// Extension implements ports.Presenter.
func (HTML) Extension() string { return ".html" }

// Present implements ports.Presenter. An unavailable renderer falls back to
// the escaped diagram source.
func (HTML) Present(d domain.Directive, outcome domain.Outcome) string {
	wrapper := "p"
	if d.Inline {
		wrapper = "span"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<%s class="ditaa">`, wrapper)

	switch o := outcome.(type) {
	case domain.Rendered:
		sb.WriteString(`<img src="` + html.EscapeString(o.Paths.OutputURI) + `"`)
		if d.Alt != "" {
			sb.WriteString(` alt="` + html.EscapeString(d.Alt) + `"`)
		}
		sb.WriteString("/>\n")
	default:
		sb.WriteString(html.EscapeString(d.Code) + "\n")
	}

	if d.Caption != "" {
		sb.WriteString(`<span class="caption">` + html.EscapeString(d.Caption) + "</span>\n")
	}

	fmt.Fprintf(&sb, "</%s>\n", wrapper)
	return sb.String()
}
