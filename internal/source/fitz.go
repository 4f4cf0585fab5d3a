package source

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/ivlev/pdfoutline/internal/layout"
)

// FitzSource reads pages through MuPDF structured text
type FitzSource struct {
	doc  *fitz.Document
	path string
}

func NewFitzSource(path string) (*FitzSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocumentUnreadable, path, err)
	}
	return &FitzSource{doc: doc, path: path}, nil
}

func (f *FitzSource) PageCount() int {
	return f.doc.NumPage()
}

func (f *FitzSource) Page(index int) (layout.Page, error) {
	raw, err := f.doc.HTML(index, false)
	if err != nil {
		return layout.Page{}, fmt.Errorf("%w: %s page %d: %v", ErrPageUnreadable, f.path, index+1, err)
	}

	page, err := parseStextHTML(strings.NewReader(raw), index+1)
	if err != nil {
		return layout.Page{}, fmt.Errorf("%w: %s page %d: %v", ErrPageUnreadable, f.path, index+1, err)
	}

	if page.Width <= 0 || page.Height <= 0 {
		rect, err := f.doc.Bound(index)
		if err != nil {
			return layout.Page{}, fmt.Errorf("%w: %s page %d: %v", ErrPageUnreadable, f.path, index+1, err)
		}
		page.Width, page.Height = float64(rect.Dx()), float64(rect.Dy())
	}
	return page, nil
}

// Metadata returns the non-empty info dictionary entries. MuPDF hands
// back fixed-size NUL padded buffers.
func (f *FitzSource) Metadata() map[string]string {
	meta := make(map[string]string)
	for k, v := range f.doc.Metadata() {
		if v = strings.TrimSpace(strings.TrimRight(v, "\x00")); v != "" {
			meta[k] = v
		}
	}
	return meta
}

func (f *FitzSource) Close() error {
	return f.doc.Close()
}
