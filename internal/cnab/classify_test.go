package cnab_test

import (
	"strings"
	"testing"

	"github.com/ginjaninja78/CNAB240-return-reader/internal/cnab"
	"github.com/ginjaninja78/CNAB240-return-reader/internal/cnab/cnabtest"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   cnab.Segment
		wantOK bool
	}{
		{name: "segment T", line: cnabtest.SegmentT("INV001", "ACME CORP"), want: cnab.SegmentT, wantOK: true},
		{name: "segment U", line: cnabtest.SegmentU("06", 15000), want: cnab.SegmentU, wantOK: true},
		{name: "longer than 240", line: cnabtest.SegmentT("INV001", "ACME CORP") + "   ", want: cnab.SegmentT, wantOK: true},
		{name: "short T line", line: cnabtest.SegmentT("INV001", "ACME CORP")[:239]},
		{name: "empty line", line: ""},
		{name: "file header", line: cnabtest.FileHeader()},
		{name: "batch trailer", line: cnabtest.BatchTrailer()},
		{name: "segment P", line: cnabtest.Segment('P')},
		{name: "segment Y", line: cnabtest.Segment('Y')},
		{name: "lowercase t", line: cnabtest.Segment('t')},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cnab.Classify(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("Classify ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Classify = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassify_ShortLinesNeverRecords(t *testing.T) {
	full := cnabtest.SegmentU("06", 100)
	for n := 0; n < cnab.LineLength; n++ {
		if _, ok := cnab.Classify(full[:n]); ok {
			t.Fatalf("Classify accepted a %d-column line", n)
		}
	}
	if _, ok := cnab.Classify(strings.Repeat("3", 20)); ok {
		t.Fatal("Classify accepted a 20-column line")
	}
}
