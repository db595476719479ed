// =============================================================================
// CNAB240 Return Reader - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration. All
// settings are optional: a missing default config file means "use defaults".
//
// CONFIGURATION FILE (config.yaml):
//   input_encoding:         ISO-8859-1
//   output_format:          csv
//   output_dir:             ""            # empty = next to the input file
//   output_name_format:     "{original}"
//   csv_delimiter:          ";"
//   decimal_separator:      ","
//   csv_encoding:           UTF-8
//   sheet_name:             Caixa Return
//   settled_movement_codes: ["06", "46"]
//   log_level:              info
//   log_format:             text
//   write_summary:          false
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/CNAB240-return-reader/internal/cnab"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// InputEncoding is the single-byte encoding of the return file.
	// Valid values: "ISO-8859-1", "ISO-8859-15", "Windows-1252" (and aliases)
	// Default: "ISO-8859-1"
	InputEncoding string `yaml:"input_encoding"`

	// SettledMovementCodes are the Segment U movement codes that count as a
	// settlement. A record is PAID only with one of these codes and a
	// positive amount.
	// Default: ["06", "46"]
	SettledMovementCodes []string `yaml:"settled_movement_codes"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputFormat is the default output format when none is given on the
	// command line.
	// Valid values: "csv", "xlsx"
	// Default: "csv"
	OutputFormat string `yaml:"output_format"`

	// OutputDir is where output files are written.
	// Default: "" (the directory of the input file)
	OutputDir string `yaml:"output_dir"`

	// OutputNameFormat defines the output file name, without extension.
	// Placeholders:
	//   {original}  - Input file name without extension
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	// Default: "{original}"
	OutputNameFormat string `yaml:"output_name_format"`

	// CSVDelimiter separates fields in CSV output. Must be one character.
	// Default: ";"
	CSVDelimiter string `yaml:"csv_delimiter"`

	// DecimalSeparator replaces the "." of amounts in CSV output.
	// Default: ","
	DecimalSeparator string `yaml:"decimal_separator"`

	// CSVEncoding is the encoding of CSV output.
	// Valid values: "UTF-8" or any InputEncoding value
	// Default: "UTF-8"
	CSVEncoding string `yaml:"csv_encoding"`

	// SheetName is the name of the only sheet in XLSX output.
	// Default: "Caixa Return"
	SheetName string `yaml:"sheet_name"`

	// WriteSummary writes a processing summary text file next to the output.
	// Default: false
	WriteSummary bool `yaml:"write_summary"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the log formatter.
	// Valid values: "text", "json", "logfmt"
	// Default: "text"
	LogFormat string `yaml:"log_format"`
}

// Output formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//   - required: When false, a missing file yields Default() instead of an error.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read or parsed, or fails validation.
func Load(configPath string, required bool) (*Config, error) {
	// Read the configuration file.
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse the YAML.
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply default values.
	applyDefaults(&config)

	// Validate the configuration.
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.InputEncoding == "" {
		config.InputEncoding = "ISO-8859-1"
	}
	if len(config.SettledMovementCodes) == 0 {
		config.SettledMovementCodes = append([]string(nil), cnab.DefaultSettledCodes...)
	}
	if config.OutputFormat == "" {
		config.OutputFormat = FormatCSV
	}
	config.OutputFormat = strings.ToLower(config.OutputFormat)
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{original}"
	}
	if config.CSVDelimiter == "" {
		config.CSVDelimiter = ";"
	}
	if config.DecimalSeparator == "" {
		config.DecimalSeparator = ","
	}
	if config.CSVEncoding == "" {
		config.CSVEncoding = "UTF-8"
	}
	if config.SheetName == "" {
		config.SheetName = "Caixa Return"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
}

// Validate checks the configuration for values the reader cannot honour.
func (c *Config) Validate() error {
	if _, err := cnab.LookupCharset(c.InputEncoding); err != nil {
		return fmt.Errorf("input_encoding: %w", err)
	}

	for _, code := range c.SettledMovementCodes {
		if len(code) != 2 {
			return fmt.Errorf("settled_movement_codes: %q is not a 2-character code", code)
		}
	}

	if err := ValidateFormat(c.OutputFormat); err != nil {
		return fmt.Errorf("output_format: %w", err)
	}

	if utf8.RuneCountInString(c.CSVDelimiter) != 1 {
		return fmt.Errorf("csv_delimiter: %q must be a single character", c.CSVDelimiter)
	}
	switch c.CSVDelimiter {
	case "\"", "\r", "\n", c.DecimalSeparator:
		return fmt.Errorf("csv_delimiter: %q cannot be used as a delimiter", c.CSVDelimiter)
	}

	if !cnab.IsUTF8(c.CSVEncoding) {
		if _, err := cnab.LookupCharset(c.CSVEncoding); err != nil {
			return fmt.Errorf("csv_encoding: %w", err)
		}
	}

	if len(c.SheetName) > 31 || strings.ContainsAny(c.SheetName, `:\/?*[]`) {
		return fmt.Errorf("sheet_name: %q is not a valid sheet name", c.SheetName)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log_format: unknown format %q", c.LogFormat)
	}

	return nil
}

// ValidateFormat checks an output format name (case-insensitive).
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatCSV, FormatXLSX:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (want %s or %s)", format, FormatCSV, FormatXLSX)
}
