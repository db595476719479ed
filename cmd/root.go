// =============================================================================
// CNAB240 Return Reader - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (cnabret)
//   ├── runCmd (cnabret run)
//   ├── verifyCmd (cnabret verify)
//   └── versionCmd (cnabret version)
//
// The root command owns the global flags (--config, --verbose) and the
// helpers every subcommand uses to load the configuration and the logger.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/CNAB240-return-reader/internal/config"
	"github.com/ginjaninja78/CNAB240-return-reader/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cnabret",
	Short: "CNAB240 Return Reader - Turn CAIXA return files into CSV or XLSX reports",
	Long: `CNAB240 Return Reader reads a CAIXA CNAB240 return file (the fixed-width
file the bank sends back after processing bank slips) and writes one row per
title with the customer, the invoice, the paid amount and its status.

A title is PAID when the bank reports a settlement (movement code 06 or 46)
with a positive amount. Every other title is NOT PAID.

Example Usage:
  cnabret run RET_0001.ret              # Write RET_0001.csv next to the input
  cnabret run RET_0001.ret xlsx         # Write RET_0001.xlsx
  cnabret verify RET_0001.csv           # Re-read a generated report
  cnabret run RET_0001.ret --config ./caixa.yaml`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// --config flag: A missing default file means built-in defaults; a
	// missing file named explicitly is an error.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	// --verbose flag: Forces debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfig loads the configuration named by --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	required := cmd.Flags().Changed("config")
	cfg, err := config.Load(cfgFile, required)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newLogger builds the run logger. Every line carries the run id.
func newLogger(cfg *config.Config) (*log.Logger, string) {
	runID := uuid.New().String()
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat).With("run", runID)
	return logger, runID
}
