package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"InputEncoding", cfg.InputEncoding, "ISO-8859-1"},
		{"OutputFormat", cfg.OutputFormat, "csv"},
		{"OutputDir", cfg.OutputDir, ""},
		{"OutputNameFormat", cfg.OutputNameFormat, "{original}"},
		{"CSVDelimiter", cfg.CSVDelimiter, ";"},
		{"DecimalSeparator", cfg.DecimalSeparator, ","},
		{"CSVEncoding", cfg.CSVEncoding, "UTF-8"},
		{"SheetName", cfg.SheetName, "Caixa Return"},
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogFormat", cfg.LogFormat, "text"},
		{"SettledMovementCodes", strings.Join(cfg.SettledMovementCodes, ","), "06,46"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := Load(missing, false)
	if err != nil {
		t.Fatalf("Load(optional) = %v", err)
	}
	if cfg.OutputFormat != "csv" {
		t.Errorf("OutputFormat = %q, want csv", cfg.OutputFormat)
	}

	if _, err := Load(missing, true); err == nil {
		t.Error("Load(required) on a missing file returned no error")
	}
}

func TestLoad_OverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
output_format: XLSX
output_dir: /tmp/out
csv_delimiter: "|"
settled_movement_codes: ["06"]
write_summary: true
`)

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load = %v", err)
	}
	if cfg.OutputFormat != "xlsx" {
		t.Errorf("OutputFormat = %q, want xlsx", cfg.OutputFormat)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q, want /tmp/out", cfg.OutputDir)
	}
	if cfg.CSVDelimiter != "|" {
		t.Errorf("CSVDelimiter = %q, want |", cfg.CSVDelimiter)
	}
	if len(cfg.SettledMovementCodes) != 1 || cfg.SettledMovementCodes[0] != "06" {
		t.Errorf("SettledMovementCodes = %v, want [06]", cfg.SettledMovementCodes)
	}
	if !cfg.WriteSummary {
		t.Error("WriteSummary = false, want true")
	}
	// Untouched keys keep their defaults.
	if cfg.DecimalSeparator != "," || cfg.SheetName != "Caixa Return" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "output_format: [", "failed to parse"},
		{"unknown format", "output_format: pdf", "output_format"},
		{"utf-8 input", "input_encoding: UTF-8", "input_encoding"},
		{"unknown input encoding", "input_encoding: EBCDIC", "input_encoding"},
		{"long delimiter", `csv_delimiter: ";;"`, "csv_delimiter"},
		{"delimiter equals separator", `csv_delimiter: ","`, "csv_delimiter"},
		{"quote delimiter", `csv_delimiter: '"'`, "csv_delimiter"},
		{"bad movement code", `settled_movement_codes: ["6"]`, "settled_movement_codes"},
		{"bad csv encoding", "csv_encoding: UTF-16", "csv_encoding"},
		{"bad sheet name", "sheet_name: a/b", "sheet_name"},
		{"bad log level", "log_level: loud", "log_level"},
		{"bad log format", "log_format: yaml", "log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), true)
			if err == nil {
				t.Fatal("Load returned no error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"csv", "CSV", "xlsx", "Xlsx"} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	for _, f := range []string{"", "xls", "json"} {
		if err := ValidateFormat(f); err == nil {
			t.Errorf("ValidateFormat(%q) returned no error", f)
		}
	}
}
