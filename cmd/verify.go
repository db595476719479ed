// =============================================================================
// CNAB240 Return Reader - Verify Command
// =============================================================================
//
// This file defines the 'verify' command, which re-reads a generated report
// and prints its totals. The file must use the delimiter, decimal separator
// and encoding of the current configuration.
//
// COMMAND USAGE:
//   cnabret verify <rendered-file>
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/CNAB240-return-reader/internal/cnab"
	"github.com/ginjaninja78/CNAB240-return-reader/internal/converter"
	"github.com/ginjaninja78/CNAB240-return-reader/internal/render"
	"github.com/ginjaninja78/CNAB240-return-reader/pkg/utils"
)

// verifyCmd represents the 'verify' command.
var verifyCmd = &cobra.Command{
	Use:   "verify <rendered-file>",
	Short: "Re-read a generated CSV or XLSX report and print its totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if err := utils.CheckInputFile(path); err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, _ := newLogger(cfg)

		records, err := render.ReadFile(path, converter.RenderOptions(cfg))
		if err != nil {
			logger.Error("verification failed", "file", path, "err", err)
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		logger.Debug("read report", "file", path, "records", len(records))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "File: %s\n", path)
		fmt.Fprintf(out, "Records: %d | PAID: %d | NOT PAID: %d\n",
			len(records), records.Count(cnab.StatusPaid), records.Count(cnab.StatusNotPaid))
		fmt.Fprintf(out, "Paid total: %s\n", records.PaidTotal().StringFixed(2))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
