package cnab

// Segment identifies the sub-record variant carried by a detail line.
type Segment byte

// Segments the reader cares about. Every other segment (P, Q, Y, ...) is
// filtered out by Classify.
const (
	SegmentT Segment = 'T'
	SegmentU Segment = 'U'
)

// String returns the segment marker as written in the file.
func (s Segment) String() string {
	return string(rune(s))
}

// Classify reports which segment a raw line carries.
//
// The second return value is false for every line the parser must skip:
// lines shorter than LineLength, lines whose record type is not a detail
// record, and detail lines of any segment other than T or U. Skipping is
// silent by policy; headers, trailers and unrelated segments are expected.
func Classify(line string) (Segment, bool) {
	if len(line) < LineLength {
		return 0, false
	}

	if line[RecordTypeColumn.Start-1] != detailRecordType {
		return 0, false
	}

	switch seg := Segment(line[SegmentColumn.Start-1]); seg {
	case SegmentT, SegmentU:
		return seg, true
	default:
		return 0, false
	}
}
