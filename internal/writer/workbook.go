package writer

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ivlev/pdfoutline/internal/outline"
)

const (
	summarySheet = "Summary"
	outlineSheet = "Outline"
)

// Document status values in the summary sheet
const (
	StatusProcessed = "processed"
	StatusCached    = "cached"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// WorkbookRow is one document of a batch. MetaTitle is the title stored in
// the PDF info dictionary, if any.
type WorkbookRow struct {
	Path      string
	MetaTitle string
	Pages     int
	Status    string
	Error     string
	Seconds   float64
	Result    outline.Result
}

// WriteWorkbook saves a batch summary: one row per document on the first
// sheet and every heading on the second.
func WriteWorkbook(path string, rows []WorkbookRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(outlineSheet); err != nil {
		return err
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	summary := [][]any{{"Document", "Pages", "Status", "Title", "Headings", "Seconds", "Error", "PDF Title"}}
	headings := [][]any{{"Document", "Page", "Level", "Text"}}
	for _, r := range rows {
		doc := filepath.Base(r.Path)
		summary = append(summary, []any{doc, r.Pages, r.Status, r.Result.Title, len(r.Result.Outline), r.Seconds, r.Error, r.MetaTitle})
		for _, h := range r.Result.Outline {
			headings = append(headings, []any{doc, h.Page, h.Level.String(), h.Text})
		}
	}

	for sheet, table := range map[string][][]any{summarySheet: summary, outlineSheet: headings} {
		for i, row := range table {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
			}
		}
		if err := f.SetRowStyle(sheet, 1, 1, header); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 40); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "D", "D", 50); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "H", "H", 50); err != nil {
		return err
	}
	if err := f.SetColWidth(outlineSheet, "D", "D", 80); err != nil {
		return err
	}

	return f.SaveAs(path)
}
