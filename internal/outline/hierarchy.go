package outline

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ivlev/pdfoutline/internal/layout"
)

// Level is a heading level, H1 being the top
type Level int

const (
	LevelUnknown Level = iota
	H1
	H2
	H3
)

// String returns "H1", "H2" or "H3"
func (l Level) String() string {
	switch l {
	case H1, H2, H3:
		return fmt.Sprintf("H%d", int(l))
	default:
		return "unknown"
	}
}

func (l Level) MarshalText() ([]byte, error) {
	if l < H1 || l > H3 {
		return nil, fmt.Errorf("invalid heading level %d", int(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	switch strings.ToUpper(string(b)) {
	case "H1":
		*l = H1
	case "H2":
		*l = H2
	case "H3":
		*l = H3
	default:
		return fmt.Errorf("invalid heading level %q", string(b))
	}
	return nil
}

// Heading is one outline entry. Position and score travel with it so that
// ordering and title selection never have to look the line up again.
type Heading struct {
	Text     string      `json:"text" yaml:"text"`
	Page     int         `json:"page" yaml:"page"`
	Level    Level       `json:"level" yaml:"level"`
	BBox     layout.BBox `json:"-" yaml:"-"`
	YPercent float64     `json:"-" yaml:"-"`
	Score    float64     `json:"-" yaml:"-"`
	Keyword  bool        `json:"-" yaml:"-"`
}

// Candidate is a line that received a positive heading score
type Candidate struct {
	Line  LogicalLine
	Score float64
}

// ScoreLines scores every line that is not a keyword heading and keeps the
// ones with a positive score.
func ScoreLines(lines []LogicalLine, stats Statistics, cfg Config) []Candidate {
	var scored []Candidate
	for _, l := range lines {
		if l.Role == RoleKeyword {
			continue
		}
		if s := Score(l, stats, cfg); s > 0 {
			scored = append(scored, Candidate{Line: l, Score: s})
		}
	}
	return scored
}

// Threshold is mean + sigma*std over the scores (population std)
func Threshold(scored []Candidate, sigma float64) float64 {
	scores := make([]float64, len(scored))
	for i, c := range scored {
		scores[i] = c.Score
	}
	mean, std := meanStd(scores)
	return mean + sigma*std
}

// SelectCandidates keeps the candidates scoring strictly above the dynamic
// threshold. With a single scored line the threshold equals its score, so
// nothing is selected.
func SelectCandidates(scored []Candidate, sigma float64) []Candidate {
	if len(scored) == 0 {
		return nil
	}
	threshold := Threshold(scored, sigma)

	var selected []Candidate
	for _, c := range scored {
		if c.Score > threshold {
			selected = append(selected, c)
		}
	}
	return selected
}

type styleKey struct {
	size float64
	bold bool
}

var numberingPattern = regexp.MustCompile(`^\s*(\d+(\.\d+)*)`)

// NumberingDepth returns the number of dots in a leading decimal outline
// numeral ("2" -> 0, "2.3.1" -> 2) and false if text has none.
func NumberingDepth(text string) (int, bool) {
	m := numberingPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return strings.Count(m[1], "."), true
}

// ResolveLevels assigns levels by visual prominence, then lets explicit
// numbering up to depth 2 override the style-based level.
func ResolveLevels(candidates []Candidate) []Heading {
	if len(candidates) == 0 {
		return nil
	}

	seen := make(map[styleKey]bool)
	var keys []styleKey
	for _, c := range candidates {
		k := styleKey{size: c.Line.FontSize, bold: c.Line.Bold}
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].size != keys[j].size {
			return keys[i].size > keys[j].size
		}
		return keys[i].bold && !keys[j].bold
	})

	levels := make(map[styleKey]Level, len(keys))
	for i, k := range keys {
		levels[k] = Level(min(i+1, int(H3)))
	}

	headings := make([]Heading, 0, len(candidates))
	for _, c := range candidates {
		level := levels[styleKey{size: c.Line.FontSize, bold: c.Line.Bold}]
		if depth, ok := NumberingDepth(c.Line.Text); ok && depth < 3 {
			level = Level(depth + 1)
		}
		headings = append(headings, newHeading(c.Line, level, c.Score))
	}
	return headings
}

// KeywordHeadings returns every h1_keyword line as an H1 heading
func KeywordHeadings(lines []LogicalLine) []Heading {
	var headings []Heading
	for _, l := range lines {
		if l.Role == RoleKeyword {
			h := newHeading(l, H1, 0)
			h.Keyword = true
			headings = append(headings, h)
		}
	}
	return headings
}

// SortHeadings orders headings by page, then by vertical position
func SortHeadings(headings []Heading) {
	sort.SliceStable(headings, func(i, j int) bool {
		if headings[i].Page != headings[j].Page {
			return headings[i].Page < headings[j].Page
		}
		return headings[i].BBox.Y0 < headings[j].BBox.Y0
	})
}

func newHeading(l LogicalLine, level Level, score float64) Heading {
	return Heading{
		Text:     l.Text,
		Page:     l.Page,
		Level:    level,
		BBox:     l.BBox,
		YPercent: l.YPercent,
		Score:    score,
	}
}
