package export

import (
	"fmt"

	"github.com/piwi3910/wallcalc/internal/engine"
	"github.com/piwi3910/wallcalc/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the cut list workbook.
const (
	SummarySheet = "Summary"
	CutListSheet = "Cut List"
)

// ExportCutListXLSX writes a workbook with an order summary sheet and a
// per-strip cut list sheet.
func ExportCutListXLSX(path string, ctx engine.PreviewContext) error {
	if err := checkPlan(ctx); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	rows := [][2]string{{"Preview", ctx.ID}, {"Title", ctx.Title()}}
	rows = append(rows, Summary(ctx)...)
	for i, row := range rows {
		if err := setRow(f, SummarySheet, i+1, row[0], row[1]); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 22); err != nil {
		return fmt.Errorf("format summary sheet: %w", err)
	}
	if err := f.SetColWidth(SummarySheet, "B", "B", 48); err != nil {
		return fmt.Errorf("format summary sheet: %w", err)
	}

	if _, err := f.NewSheet(CutListSheet); err != nil {
		return fmt.Errorf("create cut list sheet: %w", err)
	}
	if err := setRow(f, CutListSheet, 1, "#", "SKU", "Cut Length (in)", "Cut Length", "Width (in)", "Pattern Drop (in)"); err != nil {
		return err
	}
	for i, r := range CutList(ctx) {
		drop := 0.0
		if r.DropOffset != 0 {
			drop = -r.DropOffset
		}
		if err := setRow(f, CutListSheet, i+2,
			r.Label, r.SKU, r.CutLength, model.FormatInches(r.CutLength), r.Width, drop); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write cut list: %w", err)
	}
	return nil
}

// setRow writes values left to right starting at column A.
func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell reference: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
