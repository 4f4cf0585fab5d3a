package source

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/ivlev/pdfoutline/internal/layout"
)

// US Letter, used when a page has no usable MediaBox
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// NativeSource reads pages with the pure-Go ledongthuc/pdf reader. It needs
// no cgo but only sees glyph positions, so lines are rebuilt by grouping
// glyphs that share a baseline.
type NativeSource struct {
	file   *os.File
	reader *pdf.Reader
	path   string

	// RowTolerance is the largest baseline difference, in points, of
	// glyphs placed on the same line.
	RowTolerance float64
}

func NewNativeSource(path string) (src *NativeSource, err error) {
	defer func() {
		if r := recover(); r != nil {
			src, err = nil, fmt.Errorf("%w: %s: %v", ErrDocumentUnreadable, path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDocumentUnreadable, path, err)
	}
	return &NativeSource{file: f, reader: reader, path: path, RowTolerance: 2.0}, nil
}

func (s *NativeSource) PageCount() int {
	return s.reader.NumPage()
}

func (s *NativeSource) Page(index int) (page layout.Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			page, err = layout.Page{}, fmt.Errorf("%w: %s page %d: %v", ErrPageUnreadable, s.path, index+1, r)
		}
	}()

	p := s.reader.Page(index + 1)
	if p.V.IsNull() {
		return layout.Page{}, fmt.Errorf("%w: %s page %d: missing page object", ErrPageUnreadable, s.path, index+1)
	}

	width, height := mediaBox(p.V)
	page = layout.Page{Number: index + 1, Width: width, Height: height}
	for _, line := range glyphLines(p.Content().Text, height, s.RowTolerance) {
		page.Blocks = append(page.Blocks, layout.Block{
			Type:  layout.BlockText,
			BBox:  line.BBox,
			Lines: []layout.Line{line},
		})
	}
	return page, nil
}

func (s *NativeSource) Metadata() (meta map[string]string) {
	meta = make(map[string]string)
	defer func() {
		if recover() != nil {
			meta = map[string]string{}
		}
	}()

	info := s.reader.Trailer().Key("Info")
	for _, key := range []string{"Title", "Author", "Subject", "Keywords", "Creator", "Producer"} {
		if v := info.Key(key).Text(); v != "" {
			meta[strings.ToLower(key)] = v
		}
	}
	return meta
}

func (s *NativeSource) Close() error {
	return s.file.Close()
}

// mediaBox returns the page size, following the Parent chain for an
// inherited MediaBox.
func mediaBox(v pdf.Value) (float64, float64) {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Len() == 4 {
			w := box.Index(2).Float64() - box.Index(0).Float64()
			h := box.Index(3).Float64() - box.Index(1).Float64()
			if w > 0 && h > 0 {
				return w, h
			}
		}
		v = v.Key("Parent")
	}
	return defaultPageWidth, defaultPageHeight
}

type glyphRow struct {
	yMin, yMax float64
	glyphs     []pdf.Text
}

// glyphLines groups glyphs into rows by baseline, top row first, and
// joins each row into a line of same-font spans. Coordinates are flipped
// to a top-left origin.
func glyphLines(glyphs []pdf.Text, pageHeight, tolerance float64) []layout.Line {
	var rows []glyphRow
	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		found := false
		for i := range rows {
			if g.Y >= rows[i].yMin-tolerance && g.Y <= rows[i].yMax+tolerance {
				rows[i].glyphs = append(rows[i].glyphs, g)
				rows[i].yMin = min(rows[i].yMin, g.Y)
				rows[i].yMax = max(rows[i].yMax, g.Y)
				found = true
				break
			}
		}
		if !found {
			rows = append(rows, glyphRow{yMin: g.Y, yMax: g.Y, glyphs: []pdf.Text{g}})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].yMax > rows[j].yMax
	})

	lines := make([]layout.Line, 0, len(rows))
	for _, row := range rows {
		if line, ok := rowLine(row, pageHeight); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

func rowLine(row glyphRow, pageHeight float64) (layout.Line, bool) {
	glyphs := row.glyphs
	sort.SliceStable(glyphs, func(i, j int) bool {
		return glyphs[i].X < glyphs[j].X
	})

	size := 0.0
	for _, g := range glyphs {
		size = max(size, g.FontSize)
	}
	top := pageHeight - row.yMax - size*0.8

	var spans []layout.Span
	prevEnd := 0.0
	for i, g := range glyphs {
		text := g.S
		if i > 0 && g.X-prevEnd > g.FontSize*0.25 &&
			!strings.HasSuffix(spans[len(spans)-1].Text, " ") && !strings.HasPrefix(text, " ") {
			text = " " + text
		}
		prevEnd = g.X + g.W

		font := cleanFontName(g.Font)
		if k := len(spans) - 1; k >= 0 && spans[k].Font == font && spans[k].Size == g.FontSize {
			spans[k].Text += text
			spans[k].BBox.X1 = prevEnd
			continue
		}
		spans = append(spans, layout.Span{
			Text:  text,
			Font:  font,
			Size:  g.FontSize,
			Flags: fontFlags(font),
			BBox:  layout.BBox{X0: g.X, Y0: top, X1: prevEnd, Y1: top + size},
		})
	}

	if strings.TrimSpace(joinSpans(spans)) == "" {
		return layout.Line{}, false
	}
	bbox := layout.BBox{X0: glyphs[0].X, Y0: top, X1: prevEnd, Y1: top + size}
	return layout.Line{BBox: bbox, Spans: spans}, true
}

func joinSpans(spans []layout.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// cleanFontName drops a subset tag such as "ABCDEF+" from a base font name
func cleanFontName(name string) string {
	if len(name) > 7 && name[6] == '+' {
		for _, c := range name[:6] {
			if c < 'A' || c > 'Z' {
				return name
			}
		}
		return name[7:]
	}
	return name
}

// fontFlags derives style bits from a base font name
func fontFlags(name string) uint32 {
	lower := strings.ToLower(name)
	var flags uint32
	if strings.Contains(lower, "bold") || strings.Contains(lower, "black") || strings.Contains(lower, "heavy") {
		flags |= layout.FlagBold
	}
	if strings.Contains(lower, "italic") || strings.Contains(lower, "oblique") {
		flags |= layout.FlagItalic
	}
	if strings.Contains(lower, "courier") || strings.Contains(lower, "mono") {
		flags |= layout.FlagMonospace
	}
	if strings.Contains(lower, "times") || (strings.Contains(lower, "serif") && !strings.Contains(lower, "sans")) {
		flags |= layout.FlagSerif
	}
	return flags
}
