package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/CNAB240-return-reader/internal/cnab"
)

// CSVRenderer writes delimited text.
type CSVRenderer struct {
	delimiter        rune
	decimalSeparator string

	// charset is nil for UTF-8 output.
	charset *charmap.Charmap
}

// Extension implements Renderer.
func (r *CSVRenderer) Extension() string {
	return ".csv"
}

// Render implements Renderer. Rows end with CRLF, which is what spreadsheet
// tools on the accounting desks expect.
func (r *CSVRenderer) Render(w io.Writer, records cnab.Records) error {
	out := w
	var encoder *transform.Writer
	if r.charset != nil {
		// Runes the charset cannot hold become the charset's replacement byte
		// instead of failing the whole file.
		encoder = transform.NewWriter(w, encoding.ReplaceUnsupported(r.charset.NewEncoder()))
		out = encoder
	}

	writer := csv.NewWriter(out)
	writer.Comma = r.delimiter
	writer.UseCRLF = true

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, record := range records {
		row := []string{
			record.CustomerName,
			record.InvoiceID,
			FormatAmount(record.PaidAmount, r.decimalSeparator),
			string(record.Status),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	if encoder != nil {
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to encode CSV: %w", err)
		}
	}

	return nil
}
