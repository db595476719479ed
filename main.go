// =============================================================================
// CNAB240 Return Reader - Main Entry Point
// =============================================================================
//
// This is the main entry point for the CNAB240 Return Reader CLI application.
// It delegates command execution to the cmd package.
//
// USAGE:
//   cnabret run <input-file> [csv|xlsx]  - Convert a CAIXA return file
//   cnabret verify <rendered-file>       - Re-read a generated report
//   cnabret version                      - Display the application version
//
// ARCHITECTURE:
//   - cmd/             : CLI command definitions (Cobra)
//   - internal/cnab    : Fixed-width layout and Segment T/U pairing
//   - internal/render  : CSV and XLSX writers and readers
//   - internal/converter : Single-file conversion pipeline
//   - internal/config  : YAML configuration
//   - internal/logging : Logger construction
//   - pkg/utils        : Input checks, output naming, summary logs
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/CNAB240-return-reader/cmd"
)

func main() {
	cmd.Execute()
}
