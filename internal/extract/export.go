package extract

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/goccy/go-yaml"
)

// ExportXLSX renders the run results as an XLSX workbook: a Summary
// sheet with the run metadata and per-category totals, then one sheet
// per category listing its items in order.
func ExportXLSX(results *Results, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	f := excelize.NewFile()
	const summary = "Summary"
	if err := f.SetSheetName(f.GetSheetName(0), summary); err != nil {
		return nil, err
	}

	write := func(sheet string, col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	write(summary, 1, 1, "Timestamp")
	write(summary, 2, 1, results.Metadata.Timestamp)
	write(summary, 1, 2, "Model")
	write(summary, 2, 2, results.Metadata.ModelUsed)
	write(summary, 1, 3, "Documents")
	write(summary, 2, 3, results.Metadata.TotalDocuments)

	write(summary, 1, 5, "Category")
	write(summary, 2, 5, "Items")
	row := 6
	for _, category := range results.Categories {
		write(summary, 1, row, category)
		write(summary, 2, row, len(results.Items[category]))
		row++
	}
	_ = f.SetColWidth(summary, "A", "A", 24)
	_ = f.SetColWidth(summary, "B", "B", 40)

	for _, category := range results.Categories {
		sheet := sheetName(category)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		write(sheet, 1, 1, "#")
		write(sheet, 2, 1, "Value")
		for i, item := range results.Items[category] {
			write(sheet, 1, i+2, i+1)
			write(sheet, 2, i+2, cellText(item))
		}
		_ = f.SetColWidth(sheet, "A", "A", 6)
		_ = f.SetColWidth(sheet, "B", "B", 80)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	logger.Info("extract.xlsx.ok",
		"categories", len(results.Categories),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// WriteXLSX writes the workbook next to path, creating the parent
// directory if needed.
func WriteXLSX(results *Results, path string, logger *slog.Logger) error {
	out, err := ExportXLSX(results, logger)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	return os.WriteFile(path, out, 0o644)
}

// sheetName keeps category names inside excelize's 31-char sheet limit.
func sheetName(category string) string {
	const max = 31
	if len(category) <= max {
		return category
	}
	return category[:max]
}

// cellText flattens a parsed item into one readable cell. Scalars pass
// through; structured values render as inline YAML.
func cellText(item any) string {
	switch v := item.(type) {
	case string:
		return v
	case map[string]any, []any:
		out, err := yaml.MarshalWithOptions(v, yaml.Flow(true))
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return strings.TrimSpace(string(out))
	default:
		return fmt.Sprintf("%v", v)
	}
}
