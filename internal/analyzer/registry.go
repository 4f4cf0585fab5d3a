package analyzer

import (
	"errors"
	"fmt"

	"github.com/ivlev/pdfoutline/internal/outline"
)

// ErrUnknownTagger is returned for an unsupported tagger variant
var ErrUnknownTagger = errors.New("unknown tagger variant")

// NewTagger creates a part-of-speech tagger based on the specified variant.
// "none" disables linguistic annotation.
func NewTagger(variant string) (outline.Tagger, error) {
	switch variant {
	case "prose", "":
		return NewProseTagger(), nil
	case "none":
		return NopTagger{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTagger, variant)
	}
}
