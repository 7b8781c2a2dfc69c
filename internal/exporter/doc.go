// Package exporter writes finished disposal reports to disk for archival:
// flat CSV rows (one per classified record, UTF-8 BOM for Excel) and an
// XLSX workbook with one sheet per board preserving the bucket outline.
package exporter
