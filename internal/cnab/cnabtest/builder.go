// Package cnabtest builds CAIXA CNAB240 return lines for tests.
//
// Column positions are written out literally here instead of reusing the
// cnab layout variables, so tests check the layout rather than echo it.
package cnabtest

import (
	"fmt"
	"strings"
)

// Line returns a blank 240-column line with the given record type (column 8)
// and segment marker (column 14).
func Line(recordType, segment byte) []byte {
	line := []byte(strings.Repeat(" ", 240))
	line[7] = recordType
	line[13] = segment
	return line
}

// Put writes value into columns start..end (1-based, inclusive), truncating
// whatever does not fit.
func Put(line []byte, start, end int, value string) {
	copy(line[start-1:end], value)
}

// SegmentT returns a detail Segment T line. invoice and customer are raw
// (undecoded) bytes, left-aligned and space-padded.
func SegmentT(invoice, customer string) string {
	line := Line('3', 'T')
	Put(line, 106, 130, invoice)
	Put(line, 149, 188, customer)
	return string(line)
}

// SegmentU returns a detail Segment U line with the amount written as
// zero-padded cents.
func SegmentU(movementCode string, cents int64) string {
	return SegmentURaw(movementCode, fmt.Sprintf("%015d", cents))
}

// SegmentURaw returns a detail Segment U line with columns 78-92 set to
// rawAmount verbatim.
func SegmentURaw(movementCode, rawAmount string) string {
	line := Line('3', 'U')
	Put(line, 16, 17, movementCode)
	Put(line, 78, 92, rawAmount)
	return string(line)
}

// FileHeader returns a file header record (record type 0).
func FileHeader() string {
	line := Line('0', ' ')
	Put(line, 1, 3, "104")
	Put(line, 103, 132, "CAIXA ECONOMICA FEDERAL")
	return string(line)
}

// BatchTrailer returns a batch trailer record (record type 5).
func BatchTrailer() string {
	return string(Line('5', ' '))
}

// Segment returns a detail line of any other segment (P, Q, Y, ...).
func Segment(segment byte) string {
	return string(Line('3', segment))
}

// File joins lines with CRLF endings, as banks ship them.
func File(lines ...string) string {
	return strings.Join(lines, "\r\n") + "\r\n"
}
