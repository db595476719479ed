// =============================================================================
// CNAB240 Return Reader - Run Command
// =============================================================================
//
// This file defines the 'run' command, which converts one return file.
//
// COMMAND USAGE:
//   cnabret run <input-file> [csv|xlsx] [flags]
//
// FLAGS:
//   --output-dir : Write the output here instead of next to the input file
//
// The format argument is case-insensitive. Without it the configured
// output_format is used (csv unless configured otherwise).
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/CNAB240-return-reader/internal/config"
	"github.com/ginjaninja78/CNAB240-return-reader/internal/converter"
	"github.com/ginjaninja78/CNAB240-return-reader/pkg/utils"
)

// errMissingInput is returned when no input file is given.
var errMissingInput = errors.New("missing input file\nusage: cnabret run <input-file> [csv|xlsx]")

// outputDir overrides the configured output directory.
var outputDir string

// runCmd represents the 'run' command.
var runCmd = &cobra.Command{
	Use:   "run <input-file> [csv|xlsx]",
	Short: "Convert a CNAB240 return file to CSV or XLSX",
	Long: `The run command reads a CAIXA CNAB240 return file, pairs every Segment T
with the Segment U that follows it, and writes one row per title.

Output columns: CUSTOMER, INVOICE, PAID_AMOUNT, STATUS

If any paid amount in the file is malformed, nothing is written.`,

	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errMissingInput
		}
		return cobra.MaximumNArgs(2)(cmd, args)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		format := ""
		if len(args) > 1 {
			format = args[1]
		}
		return runConvert(cmd, args[0], format)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(
		&outputDir,
		"output-dir",
		"",
		"Directory for the output file (default: next to the input file)",
	)
}

// runConvert converts inputPath and prints the report to the command output.
func runConvert(cmd *cobra.Command, inputPath, format string) error {
	if err := utils.CheckInputFile(inputPath); err != nil {
		return err
	}
	if format != "" {
		if err := config.ValidateFormat(format); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	logger, runID := newLogger(cfg)

	result := converter.New(inputPath, format, runID, cfg, logger).Run()
	if !result.Success {
		logger.Error("conversion failed", "input", inputPath, "err", result.Error)
		return result.Error
	}

	printReport(cmd.OutOrStdout(), result)
	return nil
}

// printReport writes the completion report for a successful run.
func printReport(w io.Writer, result converter.Result) {
	fmt.Fprintln(w, "Processing completed!")
	fmt.Fprintf(w, "Generated file: %s\n", result.OutputFile)
	fmt.Fprintf(w, "Records: %d | PAID: %d | NOT PAID: %d\n",
		len(result.Records), result.Stats.Paid, result.Stats.NotPaid)
	if result.SummaryFile != "" {
		fmt.Fprintf(w, "Summary: %s\n", result.SummaryFile)
	}
}
