package outline

import (
	"math"
	"regexp"
	"strings"
)

// Leading enumerators: "1", "1.2", "12.3.4", "A.", "IV."
var enumeratorPattern = regexp.MustCompile(`^\s*(\d{1,2}(\.\d{1,2})*|[A-Z]\.|[IVXLCDM]+\.)`)

// Score rates how much a line looks like a heading. It returns 0 for lines
// that can never be headings: noise, footers, empty or overlong lines and
// run-in labels ending with a colon.
func Score(line LogicalLine, stats Statistics, cfg Config) float64 {
	if line.Role == RoleNoise || line.Role == RoleFooter {
		return 0
	}
	if line.WordCount <= 0 || line.WordCount >= cfg.MaxWords {
		return 0
	}
	if strings.HasSuffix(line.Text, ":") || strings.HasSuffix(line.Text, "：") {
		return 0
	}

	w := cfg.Weights

	zSize := (line.FontSize - stats.MeanSize) / stats.StdDevSize
	spaceRatio := 1.0
	if stats.MeanSpace > 0 {
		spaceRatio = line.SpaceBefore / stats.MeanSpace
	}
	score := math.Max(0, zSize)*w.Size + math.Max(0, spaceRatio-1)*w.Space

	if line.Bold {
		score += w.Bold
	}
	if line.AllCaps {
		score += w.AllCaps
	}
	if line.NounRatio > cfg.MinNounRatio && line.VerbRatio < cfg.MaxVerbRatio {
		score += w.NounPhrase
	}
	if line.Script == ScriptCJK && strings.Contains(line.Text, "【") {
		score += w.CJKBracket
	}
	if enumeratorPattern.MatchString(line.Text) {
		score += w.Enumerator
	}
	return score
}
