// =============================================================================
// CNAB240 Return Reader - Pairing Parser
// =============================================================================
//
// This module turns the lines of a CAIXA CNAB240 return file into settlement
// records. Every title in the file is described by a Segment T (who owes and
// which title) followed by a Segment U (what happened and how much was paid).
//
// STATE MACHINE:
//
//   Idle --T--> AwaitingSettlement(header)
//   AwaitingSettlement --T--> AwaitingSettlement(new header)   previous header dropped
//   AwaitingSettlement --U--> Idle                             record emitted
//   Idle --U--> Idle                                           ignored
//
//   A header still pending when the input ends is dropped.
//
// SETTLEMENT POLICY:
//   PAID when the movement code is a settlement code (06 settlement,
//   46 online settlement by default) and the paid amount is positive.
//   Everything else is NOT PAID.
//
// =============================================================================

package cnab

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
)

// =============================================================================
// STATE
// =============================================================================

// State is the pairing state carried from one line to the next. The zero
// value is Idle.
type State struct {
	awaiting bool
	header   PendingHeader
}

// Idle returns the initial state: no pending header.
func Idle() State {
	return State{}
}

// AwaitingSettlement is the state holding h until a Segment U closes it.
func AwaitingSettlement(h PendingHeader) State {
	return State{awaiting: true, header: h}
}

// Pending returns the held header, if any.
func (s State) Pending() (PendingHeader, bool) {
	return s.header, s.awaiting
}

// =============================================================================
// PARSER
// =============================================================================

// DefaultSettledCodes are the movement codes that count as a settlement:
// 06 (liquidação) and 46 (liquidação on-line).
var DefaultSettledCodes = []string{"06", "46"}

// Options configures a Parser.
type Options struct {
	// Charset decodes the text fields of the file.
	// Default: ISO-8859-1
	Charset *charmap.Charmap

	// SettledCodes are the movement codes that may yield PAID.
	// Default: DefaultSettledCodes
	SettledCodes []string
}

// Parser decodes CAIXA CNAB240 return files. It holds no per-file state, so
// one Parser can be reused across files.
type Parser struct {
	charset *charmap.Charmap
	settled map[string]bool
}

// NewParser creates a Parser, filling unset options with their defaults.
func NewParser(opts Options) *Parser {
	if opts.Charset == nil {
		opts.Charset = charmap.ISO8859_1
	}
	if len(opts.SettledCodes) == 0 {
		opts.SettledCodes = DefaultSettledCodes
	}

	settled := make(map[string]bool, len(opts.SettledCodes))
	for _, code := range opts.SettledCodes {
		settled[code] = true
	}

	return &Parser{
		charset: opts.Charset,
		settled: settled,
	}
}

// Step feeds one raw line to the state machine.
//
// PARAMETERS:
//   - state: The state left by the previous line (Idle for the first one).
//   - line: The raw, undecoded line without its line ending.
//   - lineNumber: The 1-based line number, used in errors only.
//
// RETURNS:
//   - The next state.
//   - The record closed by this line, or nil.
//   - A *MalformedAmountError when a closing Segment U has a bad amount.
func (p *Parser) Step(state State, line string, lineNumber int) (State, *SettlementRecord, error) {
	segment, ok := Classify(line)
	if !ok {
		return state, nil, nil
	}

	switch segment {
	case SegmentT:
		header, err := p.header(line)
		if err != nil {
			return state, nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		return AwaitingSettlement(header), nil, nil

	case SegmentU:
		header, awaiting := state.Pending()
		if !awaiting {
			return state, nil, nil
		}

		amount, err := parseAmount(PaidAmountColumn.Get(line))
		if err != nil {
			return state, nil, &MalformedAmountError{
				LineNumber: lineNumber,
				Raw:        PaidAmountColumn.Get(line),
			}
		}

		record := &SettlementRecord{
			CustomerName: header.CustomerName,
			InvoiceID:    header.InvoiceID,
			PaidAmount:   amount,
			Status:       p.status(MovementCodeColumn.Get(line), amount),
		}
		return Idle(), record, nil
	}

	return state, nil, nil
}

// header builds the pending header of a Segment T line.
func (p *Parser) header(line string) (PendingHeader, error) {
	name, err := p.text(CustomerNameColumn.Get(line))
	if err != nil {
		return PendingHeader{}, fmt.Errorf("failed to decode customer name: %w", err)
	}
	invoice, err := p.text(InvoiceIDColumn.Get(line))
	if err != nil {
		return PendingHeader{}, fmt.Errorf("failed to decode invoice id: %w", err)
	}
	return PendingHeader{CustomerName: name, InvoiceID: invoice}, nil
}

// text decodes a raw text field to UTF-8 and trims it.
func (p *Parser) text(raw string) (string, error) {
	decoded, err := p.charset.NewDecoder().String(raw)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(decoded), nil
}

// status applies the settlement policy.
func (p *Parser) status(movementCode string, amount decimal.Decimal) Status {
	if p.settled[movementCode] && amount.IsPositive() {
		return StatusPaid
	}
	return StatusNotPaid
}

// parseAmount reads an amount written as integer cents.
func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, ErrMalformedAmount
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return decimal.Zero, ErrMalformedAmount
		}
	}

	cents, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	return cents.Shift(-2), nil
}

// =============================================================================
// WHOLE-FILE PARSING
// =============================================================================

// Stats describes what the parser saw besides the records it produced.
// None of these counters are errors.
type Stats struct {
	// LinesRead is the number of lines in the input.
	LinesRead int

	// DetailLines is the number of Segment T and Segment U lines.
	DetailLines int

	// SkippedLines counts short lines, non-detail lines and other segments.
	SkippedLines int

	// OrphanSettlements counts Segment U lines with no pending header.
	OrphanSettlements int

	// DroppedHeaders counts Segment T headers that never got a Segment U:
	// overwritten by a later T, or still pending at the end of the input.
	DroppedHeaders int
}

// Result is the outcome of parsing one return file.
type Result struct {
	Records Records
	Stats   Stats
}

// Parse reads every line of r through the state machine. Lines may be of
// any length; those that are not T or U details are skipped.
//
// A malformed amount aborts the whole input: no partial result is returned.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	reader := bufio.NewReader(r)

	result := &Result{Records: Records{}}
	state := Idle()
	lineNumber := 0

	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("failed to read input: %w", readErr)
		}
		if raw == "" && readErr == io.EOF {
			break
		}

		lineNumber++
		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")

		next, err := p.feed(result, state, line, lineNumber)
		if err != nil {
			return nil, err
		}
		state = next

		if readErr == io.EOF {
			break
		}
	}

	if _, awaiting := state.Pending(); awaiting {
		result.Stats.DroppedHeaders++
	}
	result.Stats.LinesRead = lineNumber

	return result, nil
}

// feed runs one line through Step, updating result's records and counters.
func (p *Parser) feed(result *Result, state State, line string, lineNumber int) (State, error) {
	segment, ok := Classify(line)
	if !ok {
		result.Stats.SkippedLines++
		return state, nil
	}
	result.Stats.DetailLines++

	_, awaiting := state.Pending()
	switch {
	case segment == SegmentT && awaiting:
		result.Stats.DroppedHeaders++
	case segment == SegmentU && !awaiting:
		result.Stats.OrphanSettlements++
	}

	next, record, err := p.Step(state, line, lineNumber)
	if err != nil {
		return state, err
	}
	if record != nil {
		result.Records = append(result.Records, *record)
	}
	return next, nil
}

// ParseFile opens path and parses it.
func (p *Parser) ParseFile(path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}
