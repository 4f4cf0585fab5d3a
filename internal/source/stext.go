package source

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ivlev/pdfoutline/internal/layout"
)

// MuPDF renders structured text as absolutely positioned HTML:
//
//	<div id="page0" style="width:612.0pt;height:792.0pt">
//	<p style="top:72.0pt;left:72.0pt;line-height:12.0pt"><b><span style="font-family:Times,serif;font-size:12.0pt">Title</span></b></p>
//	<img style="top:100.0pt;left:72.0pt;width:200.0pt;height:80.0pt" src="...">
//
// Every <p> is one line. Font style lives in <b>, <i>, <tt> and <sup>
// wrappers around the <span> that carries family and size.

// parseStextHTML converts one rendered page into a layout page. Lines that
// share a parent element form one block.
func parseStextHTML(r io.Reader, number int) (layout.Page, error) {
	root, err := html.Parse(r)
	if err != nil {
		return layout.Page{}, err
	}

	page := layout.Page{Number: number}
	var (
		block  *layout.Block
		parent *html.Node
	)
	flush := func() {
		if block != nil {
			page.Blocks = append(page.Blocks, *block)
			block = nil
		}
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Div:
				if strings.HasPrefix(attr(n, "id"), "page") && page.Width == 0 {
					st := parseStyle(attr(n, "style"))
					page.Width, page.Height = st.pt("width"), st.pt("height")
				}
			case atom.P:
				line, ok := parseLine(n)
				if !ok {
					return
				}
				if block == nil || parent != n.Parent {
					flush()
					block = &layout.Block{Type: layout.BlockText, BBox: line.BBox}
					parent = n.Parent
				}
				block.BBox = block.BBox.Union(line.BBox)
				block.Lines = append(block.Lines, line)
				return
			case atom.Img:
				flush()
				st := parseStyle(attr(n, "style"))
				x, y := st.pt("left"), st.pt("top")
				page.Blocks = append(page.Blocks, layout.Block{
					Type: layout.BlockImage,
					BBox: layout.BBox{X0: x, Y0: y, X1: x + st.pt("width"), Y1: y + st.pt("height")},
				})
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	flush()

	return page, nil
}

type spanStyle struct {
	font  string
	size  float64
	flags uint32
}

func parseLine(p *html.Node) (layout.Line, bool) {
	st := parseStyle(attr(p, "style"))
	top, left, height := st.pt("top"), st.pt("left"), st.pt("line-height")

	var spans []layout.Span
	var collect func(n *html.Node, s spanStyle)
	collect = func(n *html.Node, s spanStyle) {
		switch n.Type {
		case html.TextNode:
			if n.Data == "" {
				return
			}
			if k := len(spans) - 1; k >= 0 && spans[k].Font == s.font && spans[k].Size == s.size && spans[k].Flags == s.flags {
				spans[k].Text += n.Data
				return
			}
			spans = append(spans, layout.Span{Text: n.Data, Font: s.font, Size: s.size, Flags: s.flags})
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.B:
				s.flags |= layout.FlagBold
			case atom.I:
				s.flags |= layout.FlagItalic
			case atom.Tt:
				s.flags |= layout.FlagMonospace
			case atom.Sup:
				s.flags |= layout.FlagSuperscript
			case atom.Span:
				css := parseStyle(attr(n, "style"))
				if family := css["font-family"]; family != "" {
					name, serif := splitFamily(family)
					s.font = name
					if serif {
						s.flags |= layout.FlagSerif
					}
				}
				if size := css.pt("font-size"); size > 0 {
					s.size = size
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c, s)
		}
	}
	collect(p, spanStyle{size: height})

	if len(spans) == 0 {
		return layout.Line{}, false
	}

	width := 0.0
	for _, s := range spans {
		width += float64(utf8.RuneCountInString(s.Text)) * s.Size * 0.5
	}
	bbox := layout.BBox{X0: left, Y0: top, X1: left + width, Y1: top + height}
	for i := range spans {
		spans[i].BBox = bbox
	}
	return layout.Line{BBox: bbox, Spans: spans}, true
}

// splitFamily turns "Times,serif" into the font name and whether the
// generic family is serif.
func splitFamily(family string) (string, bool) {
	parts := strings.Split(family, ",")
	name := strings.Trim(strings.TrimSpace(parts[0]), `"'`)
	serif := false
	for _, p := range parts[1:] {
		if strings.TrimSpace(p) == "serif" {
			serif = true
		}
	}
	return name, serif
}

type cssStyle map[string]string

func parseStyle(s string) cssStyle {
	css := make(cssStyle)
	for _, decl := range strings.Split(s, ";") {
		key, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		css[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return css
}

// pt reads a length in points; missing or malformed values are 0
func (c cssStyle) pt(key string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(c[key], "pt"), 64)
	if err != nil {
		return 0
	}
	return v
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
