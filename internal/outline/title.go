package outline

import "regexp"

// sectionNumberPattern matches dotted section numbers: "1. ", "2.3 ",
// "3.1.4. ". A bare leading number such as a year does not match.
var sectionNumberPattern = regexp.MustCompile(`^\s*(\d+\.)+(\d+)?(\s|$)`)

// ResolveTitle picks the highest scoring heading in the top band of page 1
// and removes it from the outline. Headings with a dotted section number
// are sections and never become the title. The first heading wins a tie. Without a candidate the
// title is empty and headings are returned unchanged.
func ResolveTitle(headings []Heading, band float64) (string, []Heading) {
	best := -1
	for i, h := range headings {
		if h.Page != 1 || h.YPercent >= band {
			continue
		}
		if sectionNumberPattern.MatchString(h.Text) {
			continue
		}
		if best < 0 || h.Score > headings[best].Score {
			best = i
		}
	}
	if best < 0 {
		return "", headings
	}

	rest := make([]Heading, 0, len(headings)-1)
	rest = append(rest, headings[:best]...)
	rest = append(rest, headings[best+1:]...)
	return headings[best].Text, rest
}
