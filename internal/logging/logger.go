// Package logging builds the application logger.
//
// Logs go to stderr so that stdout carries only the processing report.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json", "logfmt" (default: "text")
func New(w io.Writer, level, format string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "cnabret",
		Formatter:       parseFormatter(format),
	})
	return logger
}

// ParseLevel converts a config log level to a log.Level.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func parseFormatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
