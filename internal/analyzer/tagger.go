// Package analyzer provides the part-of-speech taggers that feed the
// noun-phrase feature of heading detection.
package analyzer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jdkato/prose/v2"

	"github.com/ivlev/pdfoutline/internal/outline"
)

// Universal tags besides outline.TagNoun and outline.TagVerb
const (
	TagPropNoun = "PROPN"
	TagAux      = "AUX"
	TagAdj      = "ADJ"
	TagAdv      = "ADV"
	TagAdp      = "ADP"
	TagDet      = "DET"
	TagPron     = "PRON"
	TagNum      = "NUM"
	TagConj     = "CCONJ"
	TagPart     = "PART"
	TagPunct    = "PUNCT"
	TagOther    = "X"
)

// pennToUniversal maps Penn Treebank tags to universal tags. Proper nouns
// stay PROPN and do not count as nouns.
var pennToUniversal = map[string]string{
	"NN": outline.TagNoun, "NNS": outline.TagNoun,
	"NNP": TagPropNoun, "NNPS": TagPropNoun,
	"VB": outline.TagVerb, "VBD": outline.TagVerb, "VBG": outline.TagVerb,
	"VBN": outline.TagVerb, "VBP": outline.TagVerb, "VBZ": outline.TagVerb,
	"MD": TagAux,
	"JJ": TagAdj, "JJR": TagAdj, "JJS": TagAdj,
	"RB": TagAdv, "RBR": TagAdv, "RBS": TagAdv, "WRB": TagAdv,
	"IN": TagAdp,
	"DT": TagDet, "PDT": TagDet, "WDT": TagDet,
	"PRP": TagPron, "PRP$": TagPron, "WP": TagPron, "WP$": TagPron, "EX": TagPron,
	"CD": TagNum,
	"CC": TagConj,
	"RP": TagPart, "TO": TagPart, "POS": TagPart,
	".": TagPunct, ",": TagPunct, ":": TagPunct, "(": TagPunct, ")": TagPunct,
	"``": TagPunct, "''": TagPunct, "#": TagPunct, "$": TagPunct,
	"-LRB-": TagPunct, "-RRB-": TagPunct,
}

// Universal returns the universal tag of a Penn Treebank tag
func Universal(penn string) string {
	if tag, ok := pennToUniversal[penn]; ok {
		return tag
	}
	return TagOther
}

// ProseTagger tags English text with the prose averaged perceptron model.
// The model is loaded on first use and shared by all calls; tagging only
// reads it, so a ProseTagger is safe for concurrent use.
type ProseTagger struct {
	once  sync.Once
	model *prose.Model
	err   error
}

// NewProseTagger creates a tagger with lazy model loading
func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

func (t *ProseTagger) load() {
	doc, err := prose.NewDocument("",
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		t.err = fmt.Errorf("load prose model: %w", err)
		return
	}
	t.model = doc.Model
}

// Tag returns one universal tag per token of text
func (t *ProseTagger) Tag(text string) ([]string, error) {
	t.once.Do(t.load)
	if t.err != nil {
		return nil, t.err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.UsingModel(t.model),
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("tag %q: %w", text, err)
	}

	tokens := doc.Tokens()
	tags := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tags = append(tags, Universal(tok.Tag))
	}
	return tags, nil
}

// NopTagger returns no tags, which leaves noun and verb ratios at zero
type NopTagger struct{}

func (NopTagger) Tag(string) ([]string, error) {
	return nil, nil
}
