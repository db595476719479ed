// =============================================================================
// CNAB240 Return Reader - File Manager Utility
// =============================================================================
//
// This module provides the file handling around a conversion run:
//   - Input file checks
//   - Output file naming and placement
//   - Processing summary log generation
//
// OUTPUT PLACEMENT:
//   - Output files go next to the input file unless an output directory is set
//   - The default name is the input name with the format's extension
//     (retorno.ret -> retorno.csv)
//
// =============================================================================

package utils

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInputNotFound is returned when the input file does not exist.
var ErrInputNotFound = errors.New("file not found")

// =============================================================================
// INPUT FILES
// =============================================================================

// CheckInputFile verifies that path names an existing regular file.
//
// RETURNS:
//   - An error wrapping ErrInputNotFound if nothing exists at path.
//   - An error if path is a directory or cannot be inspected.
func CheckInputFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("failed to inspect input file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input is a directory: %s", path)
	}
	return nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {original}  - Original file name (without extension)
//   - params: Extra placeholder values, keyed without braces.
//   - extension: The extension to ensure, with the dot (".csv").
//
// EXAMPLE:
//   format: "{original}_{date}"
//   params: {"original": "retorno"}
//   output: "retorno_20240115.csv"
func GenerateOutputFileName(format string, params map[string]string, extension string) string {
	now := time.Now()

	replacements := map[string]string{
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
	}
	if strings.Contains(format, "{uuid}") {
		replacements["{uuid}"] = uuid.New().String()
	}

	// Add custom params.
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	// Apply replacements.
	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Ensure the extension.
	if !strings.HasSuffix(strings.ToLower(result), strings.ToLower(extension)) {
		result += extension
	}

	return result
}

// OutputPath builds the output path for inputPath.
//
// PARAMETERS:
//   - inputPath: The return file being converted.
//   - outputDir: Where to write; empty means the input file's directory.
//   - nameFormat: See GenerateOutputFileName.
//   - extension: The renderer's extension.
func OutputPath(inputPath, outputDir, nameFormat, extension string) string {
	base := filepath.Base(inputPath)
	original := strings.TrimSuffix(base, filepath.Ext(base))

	if outputDir == "" {
		outputDir = filepath.Dir(inputPath)
	}

	name := GenerateOutputFileName(nameFormat, map[string]string{"original": original}, extension)
	return filepath.Join(outputDir, name)
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a processing run.
type ProcessingSummary struct {
	RunID      string
	StartTime  time.Time
	EndTime    time.Time
	InputFile  string
	OutputFile string

	LinesRead         int
	SkippedLines      int
	Records           int
	Paid              int
	NotPaid           int
	PaidTotal         string
	DroppedHeaders    int
	OrphanSettlements int
}

// WriteSummaryLog writes a processing summary to a text file in outputDir.
// The file name carries the end time and, when set, the run id, so runs
// finishing within the same second keep separate summaries.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	timestamp := summary.EndTime.Format("20060102_150405")
	name := "processing_summary_" + timestamp
	if summary.RunID != "" {
		name += "_" + summary.RunID
	}
	summaryPath := filepath.Join(outputDir, name+".txt")

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	duration := summary.EndTime.Sub(summary.StartTime)
	fmt.Fprintf(writer, "CNAB240 Return Reader - Processing Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Run ID:         %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n"+
		"  Input:          %s\n"+
		"  Output:         %s\n\n"+
		"Statistics:\n"+
		"  Lines Read:         %d\n"+
		"  Skipped Lines:      %d\n"+
		"  Records:            %d\n"+
		"  PAID:               %d\n"+
		"  NOT PAID:           %d\n"+
		"  Paid Total:         %s\n"+
		"  Dropped Headers:    %d\n"+
		"  Orphan Settlements: %d\n\n",
		summary.RunID,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		duration.String(),
		summary.InputFile,
		summary.OutputFile,
		summary.LinesRead,
		summary.SkippedLines,
		summary.Records,
		summary.Paid,
		summary.NotPaid,
		summary.PaidTotal,
		summary.DroppedHeaders,
		summary.OrphanSettlements)

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}
