package cnab

import (
	"errors"
	"fmt"
)

// ErrMalformedAmount is matched (errors.Is) by every MalformedAmountError.
var ErrMalformedAmount = errors.New("malformed amount")

// MalformedAmountError reports a Segment U whose amount window is not a
// plain run of digits. It is fatal for the whole file.
type MalformedAmountError struct {
	// LineNumber is the 1-based line of the offending Segment U.
	LineNumber int

	// Raw is the untouched text of columns 78-92.
	Raw string
}

// Error implements the error interface.
func (e *MalformedAmountError) Error() string {
	return fmt.Sprintf("line %d: %s: %q (columns %d-%d)",
		e.LineNumber, ErrMalformedAmount, e.Raw, PaidAmountColumn.Start, PaidAmountColumn.End)
}

// Unwrap lets errors.Is match ErrMalformedAmount.
func (e *MalformedAmountError) Unwrap() error {
	return ErrMalformedAmount
}
