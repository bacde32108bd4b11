package present

import (
	"path/filepath"
	"strings"

	"go.trai.ch/plate/internal/core/domain"
)

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`#`, `\#`,
	`_`, `\_`,
	`%`, `\%`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// LaTeX presents rendered diagrams with \includegraphics on the absolute
// output path. Unavailable diagrams produce nothing.
type LaTeX struct{}

// Format implements ports.Presenter.
func (LaTeX) Format() string { return domain.FormatLaTeX }

// Extension implements ports.Presenter.
func (LaTeX) Extension() string { return ".tex" }

// Present implements ports.Presenter.
func (LaTeX) Present(d domain.Directive, outcome domain.Outcome) string {
	rendered, ok := outcome.(domain.Rendered)
	if !ok {
		return ""
	}

	out := `\par\includegraphics{` + filepath.ToSlash(rendered.Paths.OutputPath) + `}\par`
	if d.Caption != "" {
		out += `\par{\small ` + latexEscaper.Replace(d.Caption) + `}\par`
	}
	return out + "\n"
}
