// =============================================================================
// CNAB240 Return Reader - Renderers
// =============================================================================
//
// This package turns parsed settlement records into the files back-office
// staff open in their spreadsheet tool, and reads those files back.
//
// OUTPUT LAYOUT (both formats):
//
//   | CUSTOMER  | INVOICE | PAID_AMOUNT | STATUS   |
//   |-----------|---------|-------------|----------|
//   | ACME CORP | INV001  | 150,00      | PAID     |
//   | ACME CORP | INV002  | 0,00        | NOT PAID |
//
//   CSV:  semicolon separated, comma as decimal separator.
//   XLSX: one sheet, amounts as numeric cells formatted "0.00".
//
// =============================================================================

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/ginjaninja78/CNAB240-return-reader/internal/cnab"
)

// Header is the first row of every rendered file.
var Header = []string{"CUSTOMER", "INVOICE", "PAID_AMOUNT", "STATUS"}

// Output formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// =============================================================================
// RENDERER
// =============================================================================

// Renderer writes a record collection in one output format.
type Renderer interface {
	// Render writes every record, in order, after the header row.
	Render(w io.Writer, records cnab.Records) error

	// Extension is the file extension of the format, with the dot.
	Extension() string
}

// Options configures the renderers and readers.
type Options struct {
	// Delimiter separates CSV fields.
	// Default: ';'
	Delimiter rune

	// DecimalSeparator replaces "." in CSV amounts.
	// Default: ","
	DecimalSeparator string

	// Encoding is the CSV text encoding: "UTF-8" or a single-byte charset
	// name understood by cnab.LookupCharset.
	// Default: "UTF-8"
	Encoding string

	// SheetName names the XLSX sheet.
	// Default: "Caixa Return"
	SheetName string
}

// DefaultOptions returns the options matching the reference output.
func DefaultOptions() Options {
	return Options{
		Delimiter:        ';',
		DecimalSeparator: ",",
		Encoding:         "UTF-8",
		SheetName:        "Caixa Return",
	}
}

// withDefaults fills unset fields from DefaultOptions.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Delimiter == 0 {
		o.Delimiter = def.Delimiter
	}
	if o.DecimalSeparator == "" {
		o.DecimalSeparator = def.DecimalSeparator
	}
	if o.Encoding == "" {
		o.Encoding = def.Encoding
	}
	if o.SheetName == "" {
		o.SheetName = def.SheetName
	}
	return o
}

// charset returns the CSV charset, or nil for UTF-8.
func (o Options) charset() (*charmap.Charmap, error) {
	if cnab.IsUTF8(o.Encoding) {
		return nil, nil
	}
	return cnab.LookupCharset(o.Encoding)
}

// New returns the renderer for format ("csv" or "xlsx", case-insensitive).
func New(format string, opts Options) (Renderer, error) {
	opts = opts.withDefaults()

	switch strings.ToLower(format) {
	case FormatCSV:
		cs, err := opts.charset()
		if err != nil {
			return nil, err
		}
		return &CSVRenderer{
			delimiter:        opts.Delimiter,
			decimalSeparator: opts.DecimalSeparator,
			charset:          cs,
		}, nil

	case FormatXLSX:
		return &XLSXRenderer{sheetName: opts.SheetName}, nil

	default:
		return nil, fmt.Errorf("unsupported output format: %q", format)
	}
}

// FormatAmount renders an amount with two decimals and the given separator.
func FormatAmount(amount decimal.Decimal, separator string) string {
	return strings.Replace(amount.StringFixed(2), ".", separator, 1)
}
