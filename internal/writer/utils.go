package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// OutputPath returns <outDir>/<stem>.<format> for an input document
func OutputPath(outDir, inputPath, format string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, stem+"."+format)
}

// GenerateWorkbookPath creates a timestamped workbook filename in outDir
func GenerateWorkbookPath(outDir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(outDir, fmt.Sprintf("outline_%s.xlsx", timestamp))
}

// IsUpToDate reports whether output exists and is newer than input
func IsUpToDate(inputPath, outputPath string) bool {
	out, err := os.Stat(outputPath)
	if err != nil {
		return false
	}
	in, err := os.Stat(inputPath)
	if err != nil {
		return false
	}
	return !out.ModTime().Before(in.ModTime())
}
