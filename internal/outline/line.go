package outline

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/ivlev/pdfoutline/internal/layout"
)

// Role is the coarse purpose of a line on its page
type Role string

const (
	RoleContent Role = "content"
	RoleHeader  Role = "potential_header"
	RoleFooter  Role = "potential_footer"
	RoleNoise   Role = "noise"
	RoleKeyword Role = "h1_keyword"
)

// LogicalLine is one line of text after fragment merging, with the features
// every later stage reads. Stages return modified copies and never share
// backing arrays with their input.
type LogicalLine struct {
	Text        string
	Page        int
	BBox        layout.BBox
	FontSize    float64
	FontName    string
	Script      string
	Bold        bool
	AllCaps     bool
	WordCount   int
	YPercent    float64
	SpaceBefore float64
	NounRatio   float64
	VerbRatio   float64
	Role        Role
}

// rawLine is a parser line reduced to the attributes merging needs.
// Style comes from the first span only.
type rawLine struct {
	text       string
	page       int
	pageHeight float64
	bbox       layout.BBox
	fontSize   float64
	fontName   string
	flags      uint32
}

// BuildLines turns parser pages into logical lines: it drops non-text blocks
// and blank lines, fuses continuation lines and computes layout features.
// Order follows the parser's emission order.
func BuildLines(pages []layout.Page, cfg Config) []LogicalLine {
	raw := collectRawLines(pages)
	merged := mergeRawLines(raw, cfg.MergeGapRatio)

	lines := make([]LogicalLine, 0, len(merged))
	for i, r := range merged {
		line := featurize(r, cfg.Scripts)
		if i > 0 && merged[i-1].page == r.page {
			line.SpaceBefore = r.bbox.Y0 - merged[i-1].bbox.Y1
		} else {
			line.SpaceBefore = cfg.PageStartSpacing
		}
		lines = append(lines, line)
	}
	return lines
}

func collectRawLines(pages []layout.Page) []rawLine {
	var raw []rawLine
	for i, page := range pages {
		num := page.Number
		if num <= 0 {
			num = i + 1
		}
		for _, block := range page.Blocks {
			if block.Type != layout.BlockText {
				continue
			}
			for _, line := range block.Lines {
				if len(line.Spans) == 0 {
					continue
				}
				var sb strings.Builder
				for _, span := range line.Spans {
					sb.WriteString(span.Text)
				}
				text := strings.TrimSpace(norm.NFKC.String(sb.String()))
				if text == "" {
					continue
				}
				first := line.Spans[0]
				raw = append(raw, rawLine{
					text:       text,
					page:       num,
					pageHeight: page.Height,
					bbox:       line.BBox,
					fontSize:   roundSize(first.Size),
					fontName:   first.Font,
					flags:      first.Flags,
				})
			}
		}
	}
	return raw
}

// mergeRawLines fuses a line into the one before it when both sit on the
// same page, share a font size and the vertical gap between them is below
// gapRatio times that size.
func mergeRawLines(lines []rawLine, gapRatio float64) []rawLine {
	if len(lines) == 0 {
		return nil
	}

	merged := make([]rawLine, 0, len(lines))
	buffer := lines[0]

	for _, curr := range lines[1:] {
		gap := math.Abs(curr.bbox.Y0 - buffer.bbox.Y1)
		if curr.page == buffer.page &&
			curr.fontSize == buffer.fontSize &&
			gap < buffer.fontSize*gapRatio {
			buffer.text += " " + curr.text
			buffer.bbox = buffer.bbox.Union(curr.bbox)
			continue
		}
		merged = append(merged, buffer)
		buffer = curr
	}

	return append(merged, buffer)
}

func featurize(r rawLine, scripts []Script) LogicalLine {
	script := DetectScript(r.text, scripts)

	var yPercent float64
	if r.pageHeight > 0 {
		yPercent = r.bbox.Y0 / r.pageHeight
	}

	return LogicalLine{
		Text:      r.text,
		Page:      r.page,
		BBox:      r.bbox,
		FontSize:  r.fontSize,
		FontName:  r.fontName,
		Script:    script,
		Bold:      isBold(r.fontName, r.flags),
		AllCaps:   script == ScriptLatin && utf8.RuneCountInString(r.text) > 2 && isUpper(r.text),
		WordCount: len(strings.Fields(r.text)),
		YPercent:  yPercent,
		Role:      RoleContent,
	}
}

func isBold(fontName string, flags uint32) bool {
	return strings.Contains(strings.ToLower(fontName), "bold") || flags&layout.FlagBold != 0
}

// isUpper reports whether s has at least one cased letter and no lower or
// title case letters.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}

func roundSize(size float64) float64 {
	return math.Round(size*100) / 100
}
