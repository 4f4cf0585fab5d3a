package writer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestName is the file in the output directory that records which
// detector fingerprint produced each output
const ManifestName = ".pdfoutline.yaml"

// Manifest maps an output file name to the fingerprint it was written with
type Manifest map[string]string

// ReadManifest loads the manifest of outDir. A missing manifest is empty.
func ReadManifest(outDir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(outDir, ManifestName))
	if errors.Is(err, fs.ErrNotExist) {
		return Manifest{}, nil
	}
	if err != nil {
		return Manifest{}, err
	}

	m := Manifest{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse %s: %w", ManifestName, err)
	}
	if m == nil {
		m = Manifest{}
	}
	return m, nil
}

// WriteManifest saves m into outDir, replacing the previous manifest
func WriteManifest(outDir string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	path := filepath.Join(outDir, ManifestName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Matches reports whether outputPath was written with fingerprint
func (m Manifest) Matches(outputPath, fingerprint string) bool {
	fp, ok := m[filepath.Base(outputPath)]
	return ok && fp == fingerprint
}

// Record notes that outputPath was written with fingerprint
func (m Manifest) Record(outputPath, fingerprint string) {
	m[filepath.Base(outputPath)] = fingerprint
}
