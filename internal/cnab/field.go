// =============================================================================
// CNAB240 Return Reader - Fixed-Width Layout
// =============================================================================
//
// This file holds the CAIXA (SIGCB) column layout for the return file and the
// extractor every other part of the parser builds on.
//
// COLUMN LAYOUT (1-based, inclusive):
//
//   | Segment    | Field                         | Columns  |
//   |------------|-------------------------------|----------|
//   | any detail | Record type marker            | 8        |
//   | any detail | Segment marker                | 14       |
//   | T          | Your number (invoice id)      | 106-130  |
//   | T          | Payer name (customer)         | 149-188  |
//   | U          | Return movement code          | 16-17    |
//   | U          | Paid amount (cents, digits)   | 78-92    |
//
// Positions are byte positions of the raw line. The file is written in a
// single-byte encoding, so a byte and a character are the same thing until
// the text fields are decoded.
//
// =============================================================================

package cnab

// =============================================================================
// LAYOUT
// =============================================================================

// LineLength is the length of every structurally relevant line.
const LineLength = 240

// Column is a 1-based inclusive column range.
type Column struct {
	Start int
	End   int
}

// CAIXA SIGCB return layout.
var (
	RecordTypeColumn   = Column{Start: 8, End: 8}
	SegmentColumn      = Column{Start: 14, End: 14}
	InvoiceIDColumn    = Column{Start: 106, End: 130}
	CustomerNameColumn = Column{Start: 149, End: 188}
	MovementCodeColumn = Column{Start: 16, End: 17}
	PaidAmountColumn   = Column{Start: 78, End: 92}
)

// detailRecordType is the record type marker of a detail line.
const detailRecordType = '3'

// =============================================================================
// EXTRACTOR
// =============================================================================

// Extract returns the columns start..end (1-based, inclusive) of line.
//
// Slicing is tolerant: when end runs past the line the available prefix is
// returned, and a start past the end yields "". Nothing is trimmed; numeric
// fields must reach the caller exactly as written.
func Extract(line string, start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > len(line) {
		end = len(line)
	}
	if start > end {
		return ""
	}
	return line[start-1 : end]
}

// Get extracts the column range c from line.
func (c Column) Get(line string) string {
	return Extract(line, c.Start, c.End)
}
