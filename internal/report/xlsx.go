package report

import (
	"fmt"
	"io"

	"github.com/JonMunkholm/attendance/internal/attendance"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Attendance"

// WriteXLSX writes the report as a single-sheet workbook with the same
// columns as the TSV output.
func WriteXLSX(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	header := make([]any, len(attendance.OutputHeader))
	for i, h := range attendance.OutputHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: header: %w", err)
	}

	for i, res := range r.Results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
		row := []any{res.FullName, res.TotalSeconds, string(res.Status)}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(xlsxSheet, "A", "A", 32); err != nil {
		return fmt.Errorf("xlsx: column width: %w", err)
	}
	if err := f.SetColWidth(xlsxSheet, "B", "C", 20); err != nil {
		return fmt.Errorf("xlsx: column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}
