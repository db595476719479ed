package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/CNAB240-return-reader/internal/cnab/cnabtest"
	"github.com/ginjaninja78/CNAB240-return-reader/pkg/utils"
)

// execute runs the root command with args and returns what it printed.
// Every call passes --config explicitly so flag state from earlier calls
// does not leak in.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	outputDir = ""
	verbose = false

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("log_level: error\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", configPath))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeReturnFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "RET_0001.ret")
	content := cnabtest.File(
		cnabtest.FileHeader(),
		cnabtest.SegmentT("INV001", "ACME CORP"),
		cnabtest.SegmentU("06", 15000),
		cnabtest.SegmentT("INV002", "ACME CORP"),
		cnabtest.SegmentU("06", 0),
		cnabtest.BatchTrailer(),
	)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_MissingArgument(t *testing.T) {
	_, err := execute(t, "run")
	if !errors.Is(err, errMissingInput) {
		t.Errorf("err = %v, want errMissingInput", err)
	}
}

func TestRun_MissingFile(t *testing.T) {
	_, err := execute(t, "run", filepath.Join(t.TempDir(), "nope.ret"))
	if !errors.Is(err, utils.ErrInputNotFound) {
		t.Errorf("err = %v, want ErrInputNotFound", err)
	}
}

func TestRun_UnknownFormat(t *testing.T) {
	input := writeReturnFile(t)
	if _, err := execute(t, "run", input, "pdf"); err == nil {
		t.Error("run with format pdf returned no error")
	}
}

func TestRun_CSV(t *testing.T) {
	input := writeReturnFile(t)

	out, err := execute(t, "run", input)
	if err != nil {
		t.Fatalf("run = %v", err)
	}

	want := filepath.Join(filepath.Dir(input), "RET_0001.csv")
	for _, line := range []string{
		"Processing completed!",
		"Generated file: " + want,
		"Records: 2 | PAID: 1 | NOT PAID: 1",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("output missing %q:\n%s", line, out)
		}
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("output file: %v", err)
	}
}

func TestRunAndVerify_XLSX(t *testing.T) {
	input := writeReturnFile(t)
	dir := filepath.Join(t.TempDir(), "reports")

	if _, err := execute(t, "run", input, "XLSX", "--output-dir", dir); err != nil {
		t.Fatalf("run = %v", err)
	}

	out, err := execute(t, "verify", filepath.Join(dir, "RET_0001.xlsx"))
	if err != nil {
		t.Fatalf("verify = %v", err)
	}
	for _, line := range []string{"Records: 2 | PAID: 1 | NOT PAID: 1", "Paid total: 150.00"} {
		if !strings.Contains(out, line) {
			t.Errorf("output missing %q:\n%s", line, out)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "CNAB240 Return Reader\n") {
		t.Errorf("version output = %q", out)
	}
}
