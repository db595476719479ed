// =============================================================================
// CNAB240 Return Reader - Rendered Output Readers
// =============================================================================
//
// Readers for the files produced by the renderers. They map each row back to
// a settlement record so a rendered file can be checked against the return
// file it came from (see the "verify" command).
//
// Only files written by this application are expected: the header row must
// match Header exactly.
//
// =============================================================================

package render

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/CNAB240-return-reader/internal/cnab"
)

// ErrUnexpectedHeader is returned when a file does not start with Header.
var ErrUnexpectedHeader = errors.New("unexpected header row")

// =============================================================================
// FILE DISPATCH
// =============================================================================

// ReadFile reads a rendered file, choosing the reader from its extension.
func ReadFile(path string, opts Options) (cnab.Records, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(file, opts)
	}
	return ReadCSV(file, opts)
}

// =============================================================================
// CSV
// =============================================================================

// ReadCSV reads delimited text written by CSVRenderer with the same options.
func ReadCSV(r io.Reader, opts Options) (cnab.Records, error) {
	opts = opts.withDefaults()

	cs, err := opts.charset()
	if err != nil {
		return nil, err
	}
	if cs != nil {
		r = transform.NewReader(r, cs.NewDecoder())
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.FieldsPerRecord = len(Header)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return recordsFromRows(rows, opts.DecimalSeparator)
}

// =============================================================================
// XLSX
// =============================================================================

// ReadXLSX reads a workbook written by XLSXRenderer. The sheet named in opts
// is used when present, the first sheet otherwise.
func ReadXLSX(r io.Reader, opts Options) (cnab.Records, error) {
	opts = opts.withDefaults()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.SheetName
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	// Raw values: amounts come back as plain numbers, not "0.00"-formatted text.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return recordsFromRows(rows, ".")
}

// =============================================================================
// ROW MAPPING
// =============================================================================

// recordsFromRows checks the header row and maps every other row.
func recordsFromRows(rows [][]string, decimalSeparator string) (cnab.Records, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrUnexpectedHeader)
	}
	if !isHeader(rows[0]) {
		return nil, fmt.Errorf("%w: %q", ErrUnexpectedHeader, rows[0])
	}

	records := make(cnab.Records, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		record, err := recordFromRow(row, decimalSeparator)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// recordFromRow maps one CUSTOMER/INVOICE/PAID_AMOUNT/STATUS row.
func recordFromRow(row []string, decimalSeparator string) (cnab.SettlementRecord, error) {
	// Helper function to safely get a cell value; trailing empty cells may
	// be missing from spreadsheet rows.
	getCell := func(index int) string {
		if index < len(row) {
			return row[index]
		}
		return ""
	}

	amountText := getCell(2)
	if decimalSeparator != "." {
		amountText = strings.Replace(amountText, decimalSeparator, ".", 1)
	}
	amount, err := decimal.NewFromString(amountText)
	if err != nil {
		return cnab.SettlementRecord{}, fmt.Errorf("invalid amount %q: %w", getCell(2), err)
	}

	status, ok := cnab.ParseStatus(getCell(3))
	if !ok {
		return cnab.SettlementRecord{}, fmt.Errorf("invalid status %q", getCell(3))
	}

	return cnab.SettlementRecord{
		CustomerName: getCell(0),
		InvoiceID:    getCell(1),
		PaidAmount:   amount.Round(2),
		Status:       status,
	}, nil
}

// isHeader reports whether row is the Header row.
func isHeader(row []string) bool {
	if len(row) < len(Header) {
		return false
	}
	for i, title := range Header {
		if strings.TrimSpace(row[i]) != title {
			return false
		}
	}
	return true
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
