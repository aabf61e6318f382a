package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"bikeshare/internal/aggregate"
	"bikeshare/internal/charts"
)

const summarySheet = "Summary"

// Workbook builds a workbook with a summary sheet followed by one sheet per
// derived table. The caller must Close it.
func Workbook(t aggregate.Tables, dash charts.Dashboard) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSummary(f, dash); err != nil {
		f.Close()
		return nil, err
	}

	for _, name := range TableNames {
		df, err := Frame(t, name)
		if err != nil {
			f.Close()
			return nil, err
		}
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("new sheet %s: %w", name, err)
		}

		header := make([]any, 0, df.Ncol())
		for _, col := range df.Names() {
			header = append(header, col)
		}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			f.Close()
			return nil, err
		}
		for rowIdx := 0; rowIdx < df.Nrow(); rowIdx++ {
			for colIdx, col := range df.Names() {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
				if err := f.SetCellValue(name, cell, df.Col(col).Val(rowIdx)); err != nil {
					f.Close()
					return nil, err
				}
			}
		}
	}
	return f, nil
}

func writeSummary(f *excelize.File, dash charts.Dashboard) error {
	rows := [][]any{
		{"Start date", dash.Range.Start.String()},
		{"End date", dash.Range.End.String()},
	}
	for _, m := range dash.Metrics {
		rows = append(rows, []any{m.Label, m.Value})
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(summarySheet, "A", "A", 20)
}

// WriteWorkbook streams the workbook to w.
func WriteWorkbook(w io.Writer, t aggregate.Tables, dash charts.Dashboard) error {
	f, err := Workbook(t, dash)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// SaveWorkbook writes the workbook to path.
func SaveWorkbook(path string, t aggregate.Tables, dash charts.Dashboard) error {
	f, err := Workbook(t, dash)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}
