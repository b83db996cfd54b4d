// Package export writes a plan or its timeline to xlsx, png and pdf.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/harrisonrobin/takt/pkg/model"
)

// SheetName is the worksheet written by WriteSpreadsheet.
const SheetName = "Tasks"

// Default output filenames.
const (
	SpreadsheetFilename = "gantt-takt-tasks.xlsx"
	ImageFilename       = "gantt-chart.png"
	PDFFilename         = "gantt-chart.pdf"
)

// WriteSpreadsheet writes tasks as a single "Tasks" worksheet with one header
// row of field names and one row per task.
func WriteSpreadsheet(w io.Writer, tasks []model.Task) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(model.Columns))
	for i, c := range model.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, t := range tasks {
		values := t.Values()
		row := make([]any, len(values))
		for j, v := range values {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
