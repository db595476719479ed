// =============================================================================
// CNAB240 Return Reader - Record Types
// =============================================================================
//
// Types produced by the pairing state machine. A SettlementRecord is the
// closed form of one Segment T / Segment U pair; Records is the ordered
// collection the parser hands to the renderers.
//
// =============================================================================

package cnab

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// STATUS
// =============================================================================

// Status is the settlement outcome of a title.
type Status string

const (
	// StatusPaid marks a title settled with a positive amount.
	StatusPaid Status = "PAID"

	// StatusNotPaid marks every other outcome (rejection, write-off, zero
	// amount, ...).
	StatusNotPaid Status = "NOT PAID"
)

// ParseStatus maps the rendered status text back to a Status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPaid:
		return StatusPaid, true
	case StatusNotPaid:
		return StatusNotPaid, true
	}
	return "", false
}

// =============================================================================
// RECORDS
// =============================================================================

// PendingHeader is the Segment T projection held until its Segment U arrives.
type PendingHeader struct {
	// CustomerName is the payer name (columns 149-188), trimmed.
	CustomerName string

	// InvoiceID is the "your number" title identifier (columns 106-130), trimmed.
	InvoiceID string
}

// SettlementRecord is a completed T/U pairing.
type SettlementRecord struct {
	CustomerName string
	InvoiceID    string

	// PaidAmount is exact, with two fractional digits.
	PaidAmount decimal.Decimal

	Status Status
}

// Records is the parser's output, in the order the pairs were closed.
type Records []SettlementRecord

// Count returns how many records carry the given status.
func (rs Records) Count(status Status) int {
	n := 0
	for _, r := range rs {
		if r.Status == status {
			n++
		}
	}
	return n
}

// PaidTotal sums the amount of every PAID record.
func (rs Records) PaidTotal() decimal.Decimal {
	total := decimal.Zero
	for _, r := range rs {
		if r.Status == StatusPaid {
			total = total.Add(r.PaidAmount)
		}
	}
	return total
}
