// Package present turns render outcomes into HTML or LaTeX fragments.
package present

import (
	"errors"

	"go.trai.ch/plate/internal/core/domain"
	"go.trai.ch/plate/internal/core/ports"
	"go.trai.ch/zerr"
)

// ForFormat returns the presenter for a configured output format.
func ForFormat(format string) (ports.Presenter, error) {
	switch format {
	case domain.FormatHTML:
		return HTML{}, nil
	case domain.FormatLaTeX:
		return LaTeX{}, nil
	default:
		return nil, errors.Join(domain.ErrConfigInvalid, zerr.With(zerr.New("unknown output format"), "format", format))
	}
}
