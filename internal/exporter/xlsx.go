package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"dispocli/pkg/contracts/domain"
)

// ExcelWriter exports ordered reports as XLSX workbooks, one sheet per
// board, preserving the full bucket outline including empty buckets.
type ExcelWriter struct {
	reportsDir string
}

// NewExcelWriter creates an XLSX writer rooted at the reports directory.
func NewExcelWriter(reportsDir string) *ExcelWriter {
	return &ExcelWriter{reportsDir: reportsDir}
}

// WriteReport writes the workbook and returns the file path.
func (w *ExcelWriter) WriteReport(report domain.OrderedReport) (string, error) {
	if err := os.MkdirAll(w.reportsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, section := range report.Sections {
		sheet := section.Source.DisplayName()
		if i == 0 {
			// Rename the default sheet instead of leaving it empty.
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return "", fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return "", fmt.Errorf("failed to create sheet: %w", err)
			}
		}

		row := 1
		setRow := func(values ...interface{}) error {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return err
			}
			row++
			return nil
		}

		if err := setRow(fmt.Sprintf("Disposal report %s", report.Date.Format("2006-01-02"))); err != nil {
			return "", err
		}
		for _, group := range section.Buckets {
			row++ // blank spacer line before each bucket
			if err := setRow(group.Bucket.DisplayName()); err != nil {
				return "", err
			}
			if len(group.Entries) == 0 {
				if err := setRow("none"); err != nil {
					return "", err
				}
				continue
			}
			if err := setRow("security_id", "security_name", "period"); err != nil {
				return "", err
			}
			for _, entry := range group.Entries {
				if err := setRow(entry.SecurityID, entry.SecurityName, entry.RawRange); err != nil {
					return "", err
				}
			}
		}
	}

	path := filepath.Join(w.reportsDir, fmt.Sprintf("disposal_%s.xlsx", report.Date.Format("2006-01-02")))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Info("XLSX report written", slog.String("path", path))
	return path, nil
}
