package ports

import "go.trai.ch/plate/internal/core/domain"

// DocumentScanner extracts diagram directives from documents.
//
//go:generate go run go.uber.org/mock/mockgen -source=document.go -destination=mocks/mock_document.go -package=mocks
type DocumentScanner interface {
	// Scan returns the directives of the document at path in document order,
	// and the problems that caused directives to be skipped.
	Scan(path string) ([]domain.Directive, []domain.Diagnostic, error)
}
