package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Simplici0/farmyield/pkg/farm"
)

// SheetName is the worksheet WriteXLSX fills.
const SheetName = "Report"

func xlsxHeader(dims []farm.Dimension) []any {
	title := cases.Title(language.English)
	header := []any{"Plant", "Crops"}
	for _, d := range dims {
		header = append(header, title.String(string(d)))
	}
	return append(header, "Yield", "Costs", "Revenue", "Profit")
}

// WriteXLSX renders r as a single-sheet spreadsheet.
func WriteXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	dims := farm.Dimensions()
	if err := setRow(f, 1, xlsxHeader(dims)); err != nil {
		return err
	}

	for i, row := range r.Rows {
		values := []any{row.Plant, row.NumCrops}
		for _, d := range dims {
			values = append(values, string(row.Level(d)))
		}
		values = append(values, row.Yield)
		if row.Priced {
			values = append(values, row.Costs, row.Revenue, row.Profit)
		}
		if err := setRow(f, i+2, values); err != nil {
			return err
		}
	}

	totals := append([]any{"TOTAL", nil}, make([]any, len(dims))...)
	totals = append(totals, r.Totals.Yield, r.Totals.Costs, r.Totals.Revenue, r.Totals.Profit)
	if err := setRow(f, len(r.Rows)+2, totals); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
