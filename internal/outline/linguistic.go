package outline

// Universal part-of-speech tags the annotator counts
const (
	TagNoun = "NOUN"
	TagVerb = "VERB"
)

// Tagger assigns one universal part-of-speech tag per token of text
type Tagger interface {
	Tag(text string) ([]string, error)
}

// Annotate fills NounRatio and VerbRatio for every line. A nil tagger, a
// tagger error or an empty token stream leaves both ratios at zero.
func Annotate(lines []LogicalLine, tagger Tagger) []LogicalLine {
	out := make([]LogicalLine, len(lines))
	copy(out, lines)
	if tagger == nil {
		return out
	}

	for i := range out {
		out[i].NounRatio, out[i].VerbRatio = posRatios(tagger, out[i].Text)
	}
	return out
}

func posRatios(tagger Tagger, text string) (noun, verb float64) {
	tags, err := tagger.Tag(text)
	if err != nil || len(tags) == 0 {
		return 0, 0
	}

	var nouns, verbs int
	for _, tag := range tags {
		switch tag {
		case TagNoun:
			nouns++
		case TagVerb:
			verbs++
		}
	}
	total := float64(len(tags))
	return float64(nouns) / total, float64(verbs) / total
}
