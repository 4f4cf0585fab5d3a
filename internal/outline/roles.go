package outline

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// TagRoles classifies lines by position, repetition and keyword.
//
// Lines in the header band become potential headers, lines in the footer
// band potential footers. A header/footer text seen on more than one page
// is noise everywhere it occurs. Finally, any short line starting with a
// top-level keyword is tagged h1_keyword, unless it is noise: a running
// head such as "Introduction to Finance" must stay out of the outline.
func TagRoles(lines []LogicalLine, cfg Config) []LogicalLine {
	out := make([]LogicalLine, len(lines))
	copy(out, lines)

	edgePages := make(map[string]map[int]bool)
	for i := range out {
		switch {
		case out[i].YPercent < cfg.HeaderBand:
			out[i].Role = RoleHeader
		case out[i].YPercent > cfg.FooterBand:
			out[i].Role = RoleFooter
		default:
			continue
		}
		pages := edgePages[out[i].Text]
		if pages == nil {
			pages = make(map[int]bool)
			edgePages[out[i].Text] = pages
		}
		pages[out[i].Page] = true
	}

	for i := range out {
		if out[i].Role != RoleHeader && out[i].Role != RoleFooter {
			continue
		}
		if len(edgePages[out[i].Text]) > 1 {
			out[i].Role = RoleNoise
		}
	}

	km := newKeywordMatcher(cfg.Keywords)
	for i := range out {
		if out[i].Role == RoleNoise {
			continue
		}
		if out[i].WordCount < cfg.KeywordMaxWords && km.match(out[i].Text) {
			out[i].Role = RoleKeyword
		}
	}
	return out
}

// keywordMatcher tests whether text, case folded, starts with a keyword.
// It holds a Caser and must not be shared between goroutines.
type keywordMatcher struct {
	lower    cases.Caser
	keywords []string
}

func newKeywordMatcher(keywords []string) *keywordMatcher {
	km := &keywordMatcher{lower: cases.Lower(language.Und)}
	for _, k := range keywords {
		if k = km.fold(k); k != "" {
			km.keywords = append(km.keywords, k)
		}
	}
	return km
}

func (km *keywordMatcher) fold(s string) string {
	return km.lower.String(norm.NFKC.String(strings.TrimSpace(s)))
}

func (km *keywordMatcher) match(text string) bool {
	folded := km.fold(text)
	for _, k := range km.keywords {
		if strings.HasPrefix(folded, k) {
			return true
		}
	}
	return false
}
