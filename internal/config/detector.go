package config

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/pdfoutline/internal/outline"
)

// LoadDetectorConfig reads a YAML file and overlays it onto the default
// detector configuration. Keys left out keep their defaults; lists given in
// the file replace the default list. Unknown keys are rejected.
func LoadDetectorConfig(path string) (outline.Config, error) {
	cfg := outline.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read detector config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	if err := ValidateDetector(cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ValidateDetector rejects configurations the engine cannot run with
func ValidateDetector(cfg outline.Config) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
	}

	switch {
	case cfg.HeaderBand <= 0 || cfg.HeaderBand >= 1:
		return invalid("header_band must be in (0, 1), got %v", cfg.HeaderBand)
	case cfg.FooterBand <= 0 || cfg.FooterBand >= 1:
		return invalid("footer_band must be in (0, 1), got %v", cfg.FooterBand)
	case cfg.HeaderBand >= cfg.FooterBand:
		return invalid("header_band %v must be above footer_band %v", cfg.HeaderBand, cfg.FooterBand)
	case cfg.TitleBand <= 0 || cfg.TitleBand > 1:
		return invalid("title_band must be in (0, 1], got %v", cfg.TitleBand)
	case cfg.MergeGapRatio <= 0:
		return invalid("merge_gap_ratio must be positive, got %v", cfg.MergeGapRatio)
	case cfg.PageStartSpacing <= 0:
		return invalid("page_start_spacing must be positive, got %v", cfg.PageStartSpacing)
	case cfg.ThresholdSigma < 0:
		return invalid("threshold_sigma must not be negative, got %v", cfg.ThresholdSigma)
	case cfg.KeywordMaxWords < 1 || cfg.MaxWords < 1:
		return invalid("word limits must be positive")
	case len(cfg.Scripts) == 0:
		return invalid("script table is empty")
	}

	for _, s := range cfg.Scripts {
		if s.Name == "" {
			return invalid("script without a name")
		}
		if len(s.Ranges) == 0 {
			return invalid("script %s has no ranges", s.Name)
		}
		for _, r := range s.Ranges {
			if r.Lo > r.Hi {
				return invalid("script %s: range %#x-%#x is reversed", s.Name, r.Lo, r.Hi)
			}
		}
	}
	return nil
}

// Fingerprint identifies everything that shapes an outline: the detector
// configuration, the tagger and the parser backend. Two runs with the same
// fingerprint produce the same outline for the same document. Empty tagger
// and backend names stand for their defaults.
func Fingerprint(cfg outline.Config, tagger, backend string) string {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		// outline.Config has only plain fields
		panic(err)
	}
	if tagger == "" {
		tagger = "prose"
	}
	if backend == "" {
		backend = "fitz"
	}
	h := sha256.New()
	h.Write(data)
	fmt.Fprintf(h, "\ntagger=%s\nbackend=%s\n", tagger, backend)
	return hex.EncodeToString(h.Sum(nil))
}

// WriteDetectorConfig writes cfg as YAML, in the format LoadDetectorConfig reads
func WriteDetectorConfig(w io.Writer, cfg outline.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
