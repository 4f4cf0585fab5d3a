package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig marks a configuration that cannot be run
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	InputPath    string
	Recursive    bool
	OutputDir    string
	Format       string
	Workers      int
	Backend      string
	Tagger       string
	DetectorPath string
	CachePath    string
	Workbook     string
	Force        bool
	Stamp        bool
	ShowStats    bool
	BuildVersion string
}

// DocumentJob is one document of a batch and where its outline goes
type DocumentJob struct {
	Index      int
	InputPath  string
	OutputPath string
}

// Validate checks the run options that cannot be defaulted
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("%w: input path is empty", ErrInvalidConfig)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output directory is empty", ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	switch c.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("%w: unsupported format %q", ErrInvalidConfig, c.Format)
	}
	return nil
}
