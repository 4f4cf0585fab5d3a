package outline

// Weights are the additive terms of the heading score
type Weights struct {
	Size       float64 `yaml:"size"`  // per standard deviation of font size above the mean
	Space      float64 `yaml:"space"` // per unit of spacing ratio above 1
	Bold       float64 `yaml:"bold"`
	AllCaps    float64 `yaml:"all_caps"`
	NounPhrase float64 `yaml:"noun_phrase"`
	CJKBracket float64 `yaml:"cjk_bracket"`
	Enumerator float64 `yaml:"enumerator"`
}

// Config holds every tunable of the heading engine. The zero value is not
// useful, start from DefaultConfig.
type Config struct {
	// HeaderBand and FooterBand are y_percent limits of the running
	// header/footer zones.
	HeaderBand float64 `yaml:"header_band"`
	FooterBand float64 `yaml:"footer_band"`

	// TitleBand is the upper share of page 1 searched for the title.
	TitleBand float64 `yaml:"title_band"`

	// Keywords open a top-level section when a short line starts with one.
	Keywords        []string `yaml:"keywords"`
	KeywordMaxWords int      `yaml:"keyword_max_words"`

	// MaxWords bounds the word count of a scoreable line (exclusive).
	MaxWords int `yaml:"max_words"`

	// MergeGapRatio is the largest vertical gap, as a share of the font
	// size, across which two lines of the same size are fused.
	MergeGapRatio float64 `yaml:"merge_gap_ratio"`

	// PageStartSpacing is the space_before assigned to the first line of a page.
	PageStartSpacing float64 `yaml:"page_start_spacing"`

	// ThresholdSigma is how many standard deviations above the mean score a
	// line must reach to become a heading candidate.
	ThresholdSigma float64 `yaml:"threshold_sigma"`

	// A line reads as a noun phrase above MinNounRatio nouns and below
	// MaxVerbRatio verbs.
	MinNounRatio float64 `yaml:"min_noun_ratio"`
	MaxVerbRatio float64 `yaml:"max_verb_ratio"`

	Weights Weights `yaml:"weights"`

	// Scripts is the ordered Unicode block table used for script detection.
	Scripts []Script `yaml:"scripts"`
}

// DefaultConfig returns the stock engine configuration
func DefaultConfig() Config {
	return Config{
		HeaderBand:       0.10,
		FooterBand:       0.90,
		TitleBand:        0.40,
		Keywords:         []string{"chapter", "introduction", "conclusion", "references", "appendix"},
		KeywordMaxWords:  5,
		MaxWords:         35,
		MergeGapRatio:    0.4,
		PageStartSpacing: 20.0,
		ThresholdSigma:   1.75,
		MinNounRatio:     0.4,
		MaxVerbRatio:     0.1,
		Weights: Weights{
			Size:       3.0,
			Space:      1.5,
			Bold:       2.0,
			AllCaps:    1.5,
			NounPhrase: 2.0,
			CJKBracket: 5.0,
			Enumerator: 4.5,
		},
		Scripts: DefaultScripts(),
	}
}
