// Package writer serializes detected outlines to JSON, YAML and XLSX
package writer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/pdfoutline/internal/outline"
)

// ErrUnknownFormat is returned for an output format other than json or yaml
var ErrUnknownFormat = errors.New("unknown output format")

// Envelope is the document written for every processed PDF
type Envelope struct {
	Title       string            `json:"title" yaml:"title"`
	Outline     []outline.Heading `json:"outline" yaml:"outline"`
	ProcessedAt string            `json:"processed_at,omitempty" yaml:"processed_at,omitempty"`
}

// NewEnvelope wraps a result. A zero stamp leaves processed_at out.
func NewEnvelope(r outline.Result, stamp time.Time) Envelope {
	env := Envelope{Title: r.Title, Outline: r.Outline}
	if env.Outline == nil {
		env.Outline = []outline.Heading{}
	}
	if !stamp.IsZero() {
		env.ProcessedAt = stamp.UTC().Format(time.RFC3339)
	}
	return env
}

// Result drops the envelope fields that are not part of the outline
func (e Envelope) Result() outline.Result {
	return outline.Result{Title: e.Title, Outline: e.Outline}
}

// Encode writes env to w in the given format. JSON is indented and keeps
// non-ASCII text as is.
func Encode(w io.Writer, format string, env Envelope) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(env)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(env); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// WriteOutline writes env to path. The file is written to a temporary name
// first and renamed into place.
func WriteOutline(path, format string, env Envelope) error {
	var buf bytes.Buffer
	if err := Encode(&buf, format, env); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// ReadOutline reads an outline file; the format follows the extension
func ReadOutline(path string) (Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Envelope{}, err
	}

	var env Envelope
	switch FormatOf(path) {
	case "json":
		err = json.Unmarshal(data, &env)
	case "yaml":
		err = yaml.Unmarshal(data, &env)
	default:
		return Envelope{}, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(path))
	}
	if err != nil {
		return Envelope{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return env, nil
}

// FormatOf maps a file extension to an output format name
func FormatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}
