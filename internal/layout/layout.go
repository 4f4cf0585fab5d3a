// Package layout describes the positioned text structure a document parser
// hands to the outline engine: pages made of blocks, lines and spans.
package layout

// Span style flag bits, as reported by MuPDF structured text.
const (
	FlagSuperscript uint32 = 1 << 0
	FlagItalic      uint32 = 1 << 1
	FlagSerif       uint32 = 1 << 2
	FlagMonospace   uint32 = 1 << 3
	FlagBold        uint32 = 1 << 4
)

// BlockType distinguishes text blocks from everything else on a page
type BlockType int

const (
	BlockText BlockType = iota
	BlockImage
)

// BBox is an axis-aligned box in page points, origin at the top-left corner
type BBox struct {
	X0 float64 `json:"x0" yaml:"x0"`
	Y0 float64 `json:"y0" yaml:"y0"`
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
}

// Union returns the smallest box containing both b and o
func (b BBox) Union(o BBox) BBox {
	return BBox{
		X0: min(b.X0, o.X0),
		Y0: min(b.Y0, o.Y0),
		X1: max(b.X1, o.X1),
		Y1: max(b.Y1, o.Y1),
	}
}

// Span is one run of text sharing a single font
type Span struct {
	Text  string
	Font  string
	Size  float64
	Flags uint32
	BBox  BBox
}

// Line is a sequence of spans the parser placed on one baseline
type Line struct {
	BBox  BBox
	Spans []Span
}

// Block groups lines; only BlockText blocks carry lines
type Block struct {
	Type  BlockType
	BBox  BBox
	Lines []Line
}

// Page is one parsed page. Number is 1-based.
type Page struct {
	Number int
	Width  float64
	Height float64
	Blocks []Block
}

// Document is the full parser output for one file
type Document struct {
	Path     string
	Pages    []Page
	Metadata map[string]string
}
