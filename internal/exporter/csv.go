package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dispocli/pkg/contracts/domain"
)

// CSVWriter exports ordered reports as CSV files for archival. Files are
// written with a UTF-8 BOM so the security names open correctly in Excel.
type CSVWriter struct {
	reportsDir string
}

// NewCSVWriter creates a CSV writer rooted at the reports directory.
func NewCSVWriter(reportsDir string) *CSVWriter {
	return &CSVWriter{reportsDir: reportsDir}
}

var csvHeaders = []string{"source", "bucket", "security_id", "security_name", "period"}

// Headers returns the CSV column headers.
func Headers() []string {
	return csvHeaders
}

// Rows flattens an ordered report into CSV rows, one per classified
// record, in report order.
func Rows(report domain.OrderedReport) [][]string {
	var rows [][]string
	for _, section := range report.Sections {
		for _, group := range section.Buckets {
			for _, entry := range group.Entries {
				rows = append(rows, []string{
					string(section.Source),
					string(group.Bucket),
					entry.SecurityID,
					entry.SecurityName,
					entry.RawRange,
				})
			}
		}
	}
	return rows
}

// WriteReport writes one row per classified record and returns the file
// path. Empty buckets contribute no rows; the full outline lives in the
// rendered message and the XLSX export.
func (w *CSVWriter) WriteReport(report domain.OrderedReport) (string, error) {
	if err := os.MkdirAll(w.reportsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	path := filepath.Join(w.reportsDir, fmt.Sprintf("disposal_%s.csv", report.Date.Format("2006-01-02")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// UTF-8 BOM helps Excel recognize the encoding.
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return "", fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(csvHeaders); err != nil {
		return "", fmt.Errorf("failed to write headers: %w", err)
	}
	for _, row := range Rows(report) {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	slog.Info("CSV report written", slog.String("path", path))
	return path, nil
}
