// Package document finds ditaa directives in reStructuredText documents.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/plate/internal/core/domain"
	"go.trai.ch/zerr"
)

const tabWidth = 8

var (
	directiveRe = regexp.MustCompile(`(?i)^(\s*)\.\.\s+(?:\|[^|]+\|\s+)?ditaa::(?:\s+(.*?))?\s*$`)
	optionRe    = regexp.MustCompile(`^:([A-Za-z][\w-]*):(?:\s+(.*?))?\s*$`)
)

// Scanner implements ports.DocumentScanner.
type Scanner struct{}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan reads the document at path and extracts its directives.
func (s *Scanner) Scan(path string) ([]domain.Directive, []domain.Diagnostic, error) {
	// #nosec G304 -- documents are named by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Join(domain.ErrDocumentReadFailed, zerr.With(err, "path", path))
	}

	directives, diagnostics := s.ScanBytes(path, data)
	return directives, diagnostics, nil
}

// ScanBytes extracts directives from document text. Filename arguments are
// resolved relative to the directory of name.
func (s *Scanner) ScanBytes(name string, data []byte) ([]domain.Directive, []domain.Diagnostic) {
	lines := splitLines(string(data))

	var directives []domain.Directive
	var diagnostics []domain.Diagnostic

	for i := 0; i < len(lines); i++ {
		m := directiveRe.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}

		b := block{
			document: name,
			line:     i + 1,
			indent:   len(m[1]),
			argument: m[2],
		}
		i = b.collect(lines, i+1) - 1

		directive, diag := b.directive()
		if diag != nil {
			diagnostics = append(diagnostics, *diag)
			continue
		}
		directives = append(directives, directive)
	}

	return directives, diagnostics
}

// block is the raw text of one directive.
type block struct {
	document string
	line     int
	indent   int
	argument string
	options  []string
	content  []string
}

// collect consumes the option and content lines that follow the directive
// line and returns the index of the first line outside the block.
func (b *block) collect(lines []string, start int) int {
	i := start
	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || indentOf(lines[i]) <= b.indent || !optionRe.MatchString(trimmed) {
			break
		}
		b.options = append(b.options, trimmed)
	}

	for ; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" && indentOf(lines[i]) <= b.indent {
			break
		}
		b.content = append(b.content, lines[i])
	}

	b.content = dedent(trimBlank(b.content))
	return i
}

func (b *block) directive() (domain.Directive, *domain.Diagnostic) {
	d := domain.Directive{Document: b.document, Line: b.line}

	for _, opt := range b.options {
		m := optionRe.FindStringSubmatch(opt)
		name, value := strings.ToLower(m[1]), m[2]
		switch name {
		case "alt":
			d.Alt = value
		case "caption":
			d.Caption = value
		case "inline":
			if value != "" {
				return d, b.warn(`Option "inline" takes no value`)
			}
			d.Inline = true
		default:
			return d, b.warn(fmt.Sprintf("Unknown option %q in ditaa directive", name))
		}
	}

	if b.argument != "" {
		if len(b.content) > 0 {
			return d, b.warn("Ditaa directive cannot have both content and a filename argument")
		}
		filename := b.argument
		if !filepath.IsAbs(filename) {
			filename = filepath.Join(filepath.Dir(b.document), filename)
		}
		// #nosec G304 -- diagram files are named by the document author
		code, err := os.ReadFile(filename)
		if err != nil {
			return d, b.warn(fmt.Sprintf("External Ditaa file %q not found or reading it failed", filename))
		}
		d.Code = string(code)
		return d, nil
	}

	d.Code = strings.Join(b.content, "\n")
	if strings.TrimSpace(d.Code) == "" {
		return d, b.warn(`Ignoring "ditaa" directive without content.`)
	}
	return d, nil
}

func (b *block) warn(msg string) *domain.Diagnostic {
	return &domain.Diagnostic{Document: b.document, Line: b.line, Message: msg}
}

// splitLines splits text into lines the way docutils sees them: tabs
// expanded to 8-column stops and trailing whitespace removed.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(expandTabs(line), " ")
	}
	return lines
}

func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var sb strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col++
	}
	return sb.String()
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// dedent removes the indentation common to all non-blank lines.
func dedent(lines []string) []string {
	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if n := indentOf(line); common < 0 || n < common {
			common = n
		}
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			out[i] = line[common:]
		}
	}
	return out
}
