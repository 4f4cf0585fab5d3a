// Package source opens PDF documents and turns their pages into positioned
// text for the outline engine.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ivlev/pdfoutline/internal/layout"
	"github.com/ivlev/pdfoutline/internal/logging"
)

var (
	// ErrDocumentUnreadable is returned when a file cannot be opened or
	// parsed as a PDF at all.
	ErrDocumentUnreadable = errors.New("document unreadable")

	// ErrPageUnreadable is returned when a single page fails to parse.
	ErrPageUnreadable = errors.New("page unreadable")

	ErrUnknownBackend = errors.New("unknown source backend")
)

// Source gives page-by-page access to one open document
type Source interface {
	PageCount() int
	// Page parses the page at the zero-based index
	Page(index int) (layout.Page, error)
	Metadata() map[string]string
	Close() error
}

// Open opens path with the named backend: "fitz" (MuPDF, the default) or
// "native" (pure Go).
func Open(backend, path string) (Source, error) {
	switch backend {
	case "fitz", "":
		return NewFitzSource(path)
	case "native":
		return NewNativeSource(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}

// Load reads every page of src. A page that fails to parse is logged and
// kept empty so that page numbers stay aligned; if every page fails the
// document is unreadable.
func Load(ctx context.Context, src Source, path string) (layout.Document, error) {
	doc := layout.Document{Path: path, Metadata: src.Metadata()}

	n := src.PageCount()
	failed := 0
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return doc, err
		}
		page, err := src.Page(i)
		if err != nil {
			logging.Logger().Warn("page skipped",
				slog.String("path", path),
				slog.Int("page", i+1),
				slog.Any("error", err))
			page = layout.Page{Number: i + 1}
			failed++
		}
		doc.Pages = append(doc.Pages, page)
	}

	if n > 0 && failed == n {
		return doc, fmt.Errorf("%w: %s: no page could be parsed", ErrDocumentUnreadable, path)
	}
	return doc, nil
}
