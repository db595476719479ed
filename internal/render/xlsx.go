package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/CNAB240-return-reader/internal/cnab"
)

// numFmtTwoDecimals is the built-in "0.00" number format.
const numFmtTwoDecimals = 2

// columnWidths are the widths of CUSTOMER, INVOICE, PAID_AMOUNT and STATUS.
var columnWidths = []float64{42, 27, 14, 12}

// XLSXRenderer writes a single-sheet workbook.
type XLSXRenderer struct {
	sheetName string
}

// Extension implements Renderer.
func (r *XLSXRenderer) Extension() string {
	return ".xlsx"
}

// Render implements Renderer.
//
// Amounts become numeric cells. The float conversion happens here and only
// here; the records themselves stay exact.
func (r *XLSXRenderer) Render(w io.Writer, records cnab.Records) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := r.sheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	// Header row, bold.
	for i, title := range Header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	// Data rows.
	for i, record := range records {
		row := i + 2
		values := []interface{}{
			record.CustomerName,
			record.InvoiceID,
			record.PaidAmount.InexactFloat64(),
			string(record.Status),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	if len(records) > 0 {
		amount, err := f.NewStyle(&excelize.Style{NumFmt: numFmtTwoDecimals})
		if err != nil {
			return fmt.Errorf("failed to create amount style: %w", err)
		}
		last := fmt.Sprintf("C%d", len(records)+1)
		if err := f.SetCellStyle(sheet, "C2", last, amount); err != nil {
			return fmt.Errorf("failed to style amounts: %w", err)
		}
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
