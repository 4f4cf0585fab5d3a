package outline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ivlev/pdfoutline/internal/layout"
)

const (
	pageWidth  = 612.0
	pageHeight = 792.0
)

func mkLine(text string, size float64, font string, y0 float64) layout.Line {
	bbox := layout.BBox{X0: 72, Y0: y0, X1: 72 + float64(len(text))*size*0.5, Y1: y0 + size}
	return layout.Line{
		BBox:  bbox,
		Spans: []layout.Span{{Text: text, Font: font, Size: size, BBox: bbox}},
	}
}

func mkPage(num int, lines ...layout.Line) layout.Page {
	p := layout.Page{Number: num, Width: pageWidth, Height: pageHeight}
	for _, l := range lines {
		p.Blocks = append(p.Blocks, layout.Block{Type: layout.BlockText, BBox: l.BBox, Lines: []layout.Line{l}})
	}
	return p
}

// bodyLines lays out n lines of 11pt body text below prevBottom in
// paragraphs of three: a paragraph opens 8pt below the previous line, the
// other lines follow 5pt apart.
func bodyLines(n int, prevBottom float64) []layout.Line {
	lines := make([]layout.Line, 0, n)
	y := prevBottom
	for i := 0; i < n; i++ {
		gap := 5.0
		if i%3 == 0 {
			gap = 8.0
		}
		l := mkLine(fmt.Sprintf("body text sentence number %d continues here", i), 11, "Times-Roman", y+gap)
		lines = append(lines, l)
		y = l.BBox.Y1
	}
	return lines
}

func bottom(lines []layout.Line) float64 {
	return lines[len(lines)-1].BBox.Y1
}

// mapTagger tags whole words by lookup; unknown words are "X"
type mapTagger map[string]string

func (m mapTagger) Tag(text string) ([]string, error) {
	var tags []string
	for _, w := range strings.Fields(text) {
		tag, ok := m[strings.ToLower(w)]
		if !ok {
			tag = "X"
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

type failingTagger struct{}

func (failingTagger) Tag(string) ([]string, error) {
	return nil, errors.New("model not loaded")
}

func outlineTexts(r Result) []string {
	var texts []string
	for _, h := range r.Outline {
		texts = append(texts, h.Text)
	}
	return texts
}
