// =============================================================================
// CNAB240 Return Reader - Converter Module
// =============================================================================
//
// This module contains the conversion pipeline for a single return file, from
// fixed-width parsing to the rendered output file.
//
// CONVERSION PIPELINE:
//   1. Parse the return file into settlement records
//   2. Select the renderer for the requested format
//   3. Render into the output file
//   4. Write the processing summary (optional)
//
// A malformed amount aborts the run before anything is written: the output
// file either holds every record or does not exist.
//
// =============================================================================

package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ginjaninja78/CNAB240-return-reader/internal/cnab"
	"github.com/ginjaninja78/CNAB240-return-reader/internal/config"
	"github.com/ginjaninja78/CNAB240-return-reader/internal/render"
	"github.com/ginjaninja78/CNAB240-return-reader/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the generated file.
	// This is empty if processing failed.
	OutputFile string

	// SummaryFile is the path to the summary log, when one was written.
	SummaryFile string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Records is the parsed record collection.
	Records cnab.Records

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Parse holds the parser's line counters.
	Parse cnab.Stats

	// Paid and NotPaid count records per status.
	Paid    int
	NotPaid int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Logger is the logging interface the converter writes to.
// *log.Logger from github.com/charmbracelet/log satisfies it.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// Converter handles the conversion of a single return file.
type Converter struct {
	// inputPath is the path to the return file.
	inputPath string

	// format is the output format ("csv" or "xlsx").
	format string

	// runID identifies the run in the summary log.
	runID string

	config *config.Config
	logger Logger
}

// New creates a new Converter instance.
//
// PARAMETERS:
//   - inputPath: The path to the return file.
//   - format: The output format; empty means the configured default.
//   - runID: An identifier for this run, recorded in the summary log.
//   - cfg: The application configuration.
//   - logger: Where progress is logged.
func New(inputPath, format, runID string, cfg *config.Config, logger Logger) *Converter {
	if format == "" {
		format = cfg.OutputFormat
	}
	return &Converter{
		inputPath: inputPath,
		format:    format,
		runID:     runID,
		config:    cfg,
		logger:    logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		FilePath: c.inputPath,
		Success:  false,
	}

	// =========================================================================
	// STEP 1: PARSE RETURN FILE
	// =========================================================================

	c.logger.Info("processing file", "input", c.inputPath, "format", c.format)

	parser, err := c.newParser()
	if err != nil {
		result.Error = err
		return result
	}

	parsed, err := parser.ParseFile(c.inputPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to parse return file: %w", err)
		return result
	}

	result.Records = parsed.Records
	result.Stats.Parse = parsed.Stats
	result.Stats.Paid = parsed.Records.Count(cnab.StatusPaid)
	result.Stats.NotPaid = parsed.Records.Count(cnab.StatusNotPaid)

	c.logger.Debug("parsed return file",
		"lines", parsed.Stats.LinesRead,
		"detail_lines", parsed.Stats.DetailLines,
		"skipped", parsed.Stats.SkippedLines,
		"records", len(parsed.Records))

	if parsed.Stats.DroppedHeaders > 0 {
		c.logger.Warn("segment T headers without a matching segment U were dropped",
			"count", parsed.Stats.DroppedHeaders)
	}
	if parsed.Stats.OrphanSettlements > 0 {
		c.logger.Warn("segment U lines without a pending segment T were ignored",
			"count", parsed.Stats.OrphanSettlements)
	}

	// =========================================================================
	// STEP 2: SELECT RENDERER
	// =========================================================================

	renderer, err := render.New(c.format, RenderOptions(c.config))
	if err != nil {
		result.Error = fmt.Errorf("failed to select renderer: %w", err)
		return result
	}

	// =========================================================================
	// STEP 3: WRITE OUTPUT FILE
	// =========================================================================

	outputPath := utils.OutputPath(c.inputPath, c.config.OutputDir, c.config.OutputNameFormat, renderer.Extension())
	if err := writeOutput(outputPath, renderer, parsed.Records); err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}

	result.OutputFile = outputPath
	c.logger.Info("wrote output", "output", outputPath, "records", len(parsed.Records))

	// =========================================================================
	// STEP 4: SUMMARY LOG
	// =========================================================================

	result.Stats.ProcessingTime = time.Since(startTime)

	if c.config.WriteSummary {
		summaryPath, err := utils.WriteSummaryLog(c.summary(result, startTime), filepath.Dir(outputPath))
		if err != nil {
			// The output is complete; a missing summary does not fail the run.
			c.logger.Warn("failed to write summary log", "err", err)
		} else {
			result.SummaryFile = summaryPath
			c.logger.Debug("wrote summary log", "path", summaryPath)
		}
	}

	result.Success = true
	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// newParser builds the parser from the configuration.
func (c *Converter) newParser() (*cnab.Parser, error) {
	charset, err := cnab.LookupCharset(c.config.InputEncoding)
	if err != nil {
		return nil, fmt.Errorf("invalid input encoding: %w", err)
	}
	return cnab.NewParser(cnab.Options{
		Charset:      charset,
		SettledCodes: c.config.SettledMovementCodes,
	}), nil
}

// RenderOptions maps the configuration to renderer options.
func RenderOptions(cfg *config.Config) render.Options {
	var delimiter rune
	for _, r := range cfg.CSVDelimiter {
		delimiter = r
		break
	}
	return render.Options{
		Delimiter:        delimiter,
		DecimalSeparator: cfg.DecimalSeparator,
		Encoding:         cfg.CSVEncoding,
		SheetName:        cfg.SheetName,
	}
}

// writeOutput renders records into path. A failed render leaves no file.
func writeOutput(path string, renderer render.Renderer, records cnab.Records) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := renderer.Render(file, records); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}

	if err := file.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close file: %w", err)
	}

	return nil
}

// summary builds the summary log content for a finished run.
func (c *Converter) summary(result Result, startTime time.Time) utils.ProcessingSummary {
	return utils.ProcessingSummary{
		RunID:             c.runID,
		StartTime:         startTime,
		EndTime:           startTime.Add(result.Stats.ProcessingTime),
		InputFile:         result.FilePath,
		OutputFile:        result.OutputFile,
		LinesRead:         result.Stats.Parse.LinesRead,
		SkippedLines:      result.Stats.Parse.SkippedLines,
		Records:           len(result.Records),
		Paid:              result.Stats.Paid,
		NotPaid:           result.Stats.NotPaid,
		PaidTotal:         result.Records.PaidTotal().StringFixed(2),
		DroppedHeaders:    result.Stats.Parse.DroppedHeaders,
		OrphanSettlements: result.Stats.Parse.OrphanSettlements,
	}
}
