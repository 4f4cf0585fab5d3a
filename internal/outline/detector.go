// Package outline detects a document title and an H1-H3 heading outline
// from positioned text.
//
// Detection is a strict sequence of batch passes over one document:
//
//	BuildLines -> Annotate -> ComputeStatistics -> TagRoles
//	-> ScoreLines -> SelectCandidates -> ResolveLevels -> ResolveTitle
//
// Each pass takes the previous pass's output and returns new values. A
// Detector holds no per-document state, so one Detector may serve several
// goroutines as long as its Tagger is safe for concurrent use.
package outline

import "github.com/ivlev/pdfoutline/internal/layout"

// Result is the detected structure of one document
type Result struct {
	Title   string    `json:"title" yaml:"title"`
	Outline []Heading `json:"outline" yaml:"outline"`
}

// Analysis exposes the intermediate products of a detection run
type Analysis struct {
	Lines      []LogicalLine
	Stats      Statistics
	Scored     []Candidate
	Threshold  float64
	Candidates []Candidate
	Result     Result
}

// Detector runs the heading pipeline with a fixed configuration
type Detector struct {
	cfg    Config
	tagger Tagger
}

// NewDetector creates a detector. tagger may be nil, in which case every
// line has zero noun and verb ratios.
func NewDetector(cfg Config, tagger Tagger) *Detector {
	return &Detector{cfg: cfg, tagger: tagger}
}

// Config returns the configuration the detector runs with
func (d *Detector) Config() Config {
	return d.cfg
}

// Detect returns the title and outline of the given pages. Empty input
// yields an empty title and an empty, non-nil outline.
func (d *Detector) Detect(pages []layout.Page) Result {
	return d.Analyze(pages).Result
}

// Analyze runs the full pipeline and keeps every intermediate result
func (d *Detector) Analyze(pages []layout.Page) Analysis {
	lines := BuildLines(pages, d.cfg)
	lines = Annotate(lines, d.tagger)
	stats := ComputeStatistics(lines, d.cfg.PageStartSpacing)
	lines = TagRoles(lines, d.cfg)

	a := Analysis{Lines: lines, Stats: stats}
	a.Scored = ScoreLines(lines, stats, d.cfg)
	if len(a.Scored) > 0 {
		a.Threshold = Threshold(a.Scored, d.cfg.ThresholdSigma)
	}
	a.Candidates = SelectCandidates(a.Scored, d.cfg.ThresholdSigma)

	headings := append(KeywordHeadings(lines), ResolveLevels(a.Candidates)...)
	SortHeadings(headings)

	title, rest := ResolveTitle(headings, d.cfg.TitleBand)
	if rest == nil {
		rest = []Heading{}
	}
	a.Result = Result{Title: title, Outline: rest}
	return a
}
