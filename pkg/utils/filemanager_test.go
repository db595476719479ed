package utils

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestCheckInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "retorno.ret")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := CheckInputFile(path); err != nil {
		t.Errorf("CheckInputFile(existing) = %v", err)
	}

	err := CheckInputFile(filepath.Join(dir, "missing.ret"))
	if !errors.Is(err, ErrInputNotFound) {
		t.Errorf("CheckInputFile(missing) = %v, want ErrInputNotFound", err)
	}

	if err := CheckInputFile(dir); err == nil || errors.Is(err, ErrInputNotFound) {
		t.Errorf("CheckInputFile(dir) = %v, want a non-not-found error", err)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		outputDir  string
		nameFormat string
		ext        string
		want       string
	}{
		{"next to input", filepath.Join("data", "retorno.ret"), "", "{original}", ".csv", filepath.Join("data", "retorno.csv")},
		{"xlsx", filepath.Join("data", "retorno.RET"), "", "{original}", ".xlsx", filepath.Join("data", "retorno.xlsx")},
		{"no extension", "retorno", "", "{original}", ".csv", "retorno.csv"},
		{"output dir", filepath.Join("data", "retorno.ret"), "out", "{original}", ".csv", filepath.Join("out", "retorno.csv")},
		{"prefix", "retorno.ret", "", "caixa_{original}", ".csv", "caixa_retorno.csv"},
		{"extension already there", "retorno.ret", "", "{original}.csv", ".csv", "retorno.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutputPath(tt.input, tt.outputDir, tt.nameFormat, tt.ext)
			if got != tt.want {
				t.Errorf("OutputPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateOutputFileName_Placeholders(t *testing.T) {
	got := GenerateOutputFileName("{original}_{date}_{uuid}", map[string]string{"original": "retorno"}, ".csv")

	pattern := regexp.MustCompile(`^retorno_\d{8}_[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.csv$`)
	if !pattern.MatchString(got) {
		t.Errorf("GenerateOutputFileName = %q, does not match %s", got, pattern)
	}

	other := GenerateOutputFileName("{uuid}", nil, ".csv")
	if other == GenerateOutputFileName("{uuid}", nil, ".csv") {
		t.Error("two {uuid} names are identical")
	}
}

func TestWriteSummaryLog(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	path, err := WriteSummaryLog(ProcessingSummary{
		RunID:     "run-1",
		StartTime: start,
		EndTime:   start.Add(2 * time.Second),
		InputFile: "retorno.ret",
		Records:   3,
		Paid:      2,
		NotPaid:   1,
		PaidTotal: "300.00",
	}, dir)
	if err != nil {
		t.Fatalf("WriteSummaryLog = %v", err)
	}
	if filepath.Base(path) != "processing_summary_20240115_143002_run-1.txt" {
		t.Errorf("summary file = %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"run-1", "Records:            3", "PAID:               2", "NOT PAID:           1", "300.00"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestWriteSummaryLog_SameSecondRunsKeepSeparateFiles(t *testing.T) {
	dir := t.TempDir()
	end := time.Date(2024, 1, 15, 14, 30, 2, 0, time.UTC)

	var paths []string
	for _, runID := range []string{"run-a", "run-b"} {
		path, err := WriteSummaryLog(ProcessingSummary{RunID: runID, StartTime: end, EndTime: end}, dir)
		if err != nil {
			t.Fatalf("WriteSummaryLog(%s) = %v", runID, err)
		}
		paths = append(paths, path)
	}
	if paths[0] == paths[1] {
		t.Fatalf("both runs wrote %q", paths[0])
	}

	for i, runID := range []string{"run-a", "run-b"} {
		data, err := os.ReadFile(paths[i])
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), runID) {
			t.Errorf("%s does not hold the summary of %s", paths[i], runID)
		}
	}
}
