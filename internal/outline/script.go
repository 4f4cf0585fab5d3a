package outline

// Script names referenced by the engine itself
const (
	ScriptLatin = "Latin"
	ScriptCJK   = "CJK"
	ScriptOther = "Other"
)

// Range is an inclusive code point interval
type Range struct {
	Lo rune `yaml:"lo"`
	Hi rune `yaml:"hi"`
}

// Script maps a script name to the code point ranges that vote for it
type Script struct {
	Name   string  `yaml:"name"`
	Ranges []Range `yaml:"ranges"`
}

func (s Script) contains(r rune) bool {
	for _, rg := range s.Ranges {
		if r >= rg.Lo && r <= rg.Hi {
			return true
		}
	}
	return false
}

// DefaultScripts returns the built-in script table. Order matters: a code
// point votes for the first script whose ranges contain it.
func DefaultScripts() []Script {
	return []Script{
		{Name: ScriptLatin, Ranges: []Range{{0x0020, 0x024F}}},
		{Name: "Cyrillic", Ranges: []Range{{0x0400, 0x052F}}},
		{Name: "Arabic", Ranges: []Range{{0x0600, 0x06FF}}},
		{Name: "Hebrew", Ranges: []Range{{0x0590, 0x05FF}}},
		{Name: "Devanagari", Ranges: []Range{{0x0900, 0x097F}}},
		{Name: "Bengali", Ranges: []Range{{0x0980, 0x09FF}}},
		{Name: "Gurmukhi", Ranges: []Range{{0x0A00, 0x0A7F}}},
		{Name: "Gujarati", Ranges: []Range{{0x0A80, 0x0AFF}}},
		{Name: "Oriya", Ranges: []Range{{0x0B00, 0x0B7F}}},
		{Name: "Tamil", Ranges: []Range{{0x0B80, 0x0BFF}}},
		{Name: "Telugu", Ranges: []Range{{0x0C00, 0x0C7F}}},
		{Name: "Kannada", Ranges: []Range{{0x0C80, 0x0CFF}}},
		{Name: "Malayalam", Ranges: []Range{{0x0D00, 0x0D7F}}},
		{Name: "Sinhala", Ranges: []Range{{0x0D80, 0x0DFF}}},
		{Name: "Thai", Ranges: []Range{{0x0E00, 0x0E7F}}},
		{Name: "Lao", Ranges: []Range{{0x0E80, 0x0EFF}}},
		{Name: "Tibetan", Ranges: []Range{{0x0F00, 0x0FFF}}},
		{Name: "Myanmar", Ranges: []Range{{0x1000, 0x109F}}},
		{Name: "Georgian", Ranges: []Range{{0x10A0, 0x10FF}}},
		{Name: "Hangul", Ranges: []Range{{0xAC00, 0xD7AF}}},
		{Name: "Greek", Ranges: []Range{{0x0370, 0x03FF}}},
		{Name: "Armenian", Ranges: []Range{{0x0530, 0x058F}}},
		{Name: ScriptCJK, Ranges: []Range{{0x4E00, 0x9FFF}, {0x3400, 0x4DBF}, {0x3040, 0x30FF}}},
	}
}

// DetectScript returns the script with the most code point hits in text.
// Ties go to the script that was hit first. Text with no hits is "Other".
func DetectScript(text string, scripts []Script) string {
	counts := make(map[string]int)
	var order []string

	for _, r := range text {
		for _, s := range scripts {
			if s.contains(r) {
				if counts[s.Name] == 0 {
					order = append(order, s.Name)
				}
				counts[s.Name]++
				break
			}
		}
	}

	best := ScriptOther
	bestCount := 0
	for _, name := range order {
		if counts[name] > bestCount {
			best = name
			bestCount = counts[name]
		}
	}
	return best
}
