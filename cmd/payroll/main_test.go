package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testdata = "../../internal/dataprocessing/testdata/"

const wantReport = "                  name              hours   rate   payout\n" +
	"Marketing\n" +
	"----------------  Alice Johnson      160     50     $8000  \n" +
	"----------------  Henry Martin       150     35     $5250  \n" +
	"                                     310            $13250 \n" +
	"Design\n" +
	"----------------  Bob Smith          150     40     $6000  \n" +
	"----------------  Carol Williams     170     60     $10200 \n" +
	"                                     320            $16200 \n" +
	"HR\n" +
	"----------------  Grace Lee          160     45     $7200  \n" +
	"----------------  Ivy Clark          158     38     $6004  \n" +
	"----------------  Liam Harris        155     42     $6510  \n" +
	"                                     473            $19714 \n" +
	"Sales\n" +
	"----------------  Karen White        165     50     $8250  \n" +
	"----------------  Mia Young          160     37     $5920  \n" +
	"                                     325            $14170 \n"

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_PrintsReport(t *testing.T) {
	code, stdout, stderr := runCLI(t,
		"--files", testdata+"data1.csv",
		"--files", testdata+"data2.csv",
		"--files", testdata+"data3.csv",
		"--report", "payout")

	assert.Equal(t, exitOK, code, stderr)
	assert.Equal(t, wantReport, stdout)
}

func TestRun_PositionalFiles(t *testing.T) {
	code, stdout, _ := runCLI(t,
		"--files", testdata+"data1.csv",
		"--report", "payout",
		testdata+"data2.csv", testdata+"data3.csv")

	assert.Equal(t, exitOK, code)
	assert.Equal(t, wantReport, stdout)
}

func TestRun_ExportSaved(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.csv")
	code, stdout, _ := runCLI(t,
		"--files", testdata+"data1.csv",
		"--report", "payout",
		"--output", out)

	require.Equal(t, exitOK, code)
	assert.True(t, strings.HasSuffix(stdout, "Report saved to "+out+"\n"))
	assert.FileExists(t, out)
}

func TestRun_UnsupportedExportStillSucceeds(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.txt")
	code, stdout, _ := runCLI(t,
		"--files", testdata+"data1.csv",
		"--files", testdata+"data2.csv",
		"--files", testdata+"data3.csv",
		"--report", "payout",
		"--output", out)

	assert.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(stdout, wantReport))
	assert.Contains(t, stdout, `unsupported format ".txt"`)
	assert.NotContains(t, stdout, "Report saved")
	assert.NoFileExists(t, out)
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{name: "no files", args: []string{"--report", "payout"}, wantCode: exitUsage, wantStderr: "at least one input file"},
		{name: "unknown flag", args: []string{"--verbose"}, wantCode: exitUsage, wantStderr: "flag provided but not defined"},
		{name: "missing file", args: []string{"--files", "test.csv"}, wantCode: exitError, wantStderr: "file test.csv not found"},
		{name: "not a csv", args: []string{"--files", "test.txt"}, wantCode: exitError, wantStderr: "expected a .csv file"},
		{name: "unknown report", args: []string{"--files", testdata + "data1.csv", "--report", "bonus"}, wantCode: exitError, wantStderr: `unknown report type "bonus"`},
		{name: "bad config file", args: []string{"--files", testdata + "data1.csv", "--config", "absent.yaml"}, wantCode: exitError, wantStderr: "failed to load config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			assert.Equal(t, tt.wantCode, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.wantStderr)
		})
	}
}

func TestRun_Help(t *testing.T) {
	code, _, stderr := runCLI(t, "-h")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "Usage: payroll")
	assert.Contains(t, stderr, ".json, .yaml, .yml, .csv, .xlsx")
}

func TestRun_MetricsFile(t *testing.T) {
	metrics := filepath.Join(t.TempDir(), "payroll.prom")
	code, _, _ := runCLI(t,
		"--files", testdata+"data1.csv",
		"--metrics-file", metrics)

	require.Equal(t, exitOK, code)
	content, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(content), "payroll_employees_parsed_total")
}

func TestRun_ConfigFileAndTraceFile(t *testing.T) {
	dir := t.TempDir()
	traces := filepath.Join(dir, "traces.json")
	cfgPath := filepath.Join(dir, "payroll.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"report:\n  output_dir: "+filepath.Join(dir, "out")+"\n"+
			"telemetry:\n  tracing: true\n  trace_file: "+traces+"\n"), 0644))

	code, stdout, stderr := runCLI(t,
		"--config", cfgPath,
		"--files", testdata+"data1.csv",
		"--output", "report.xlsx")

	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Report saved to "+filepath.Join(dir, "out", "report.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "out", "report.xlsx"))

	content, err := os.ReadFile(traces)
	require.NoError(t, err)
	assert.Contains(t, string(content), "payroll.run")
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "--version")
	assert.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(stdout, "payroll v"))
}

func TestFileList(t *testing.T) {
	var f fileList
	require.NoError(t, f.Set("a.csv"))
	require.NoError(t, f.Set("b.csv"))
	assert.Equal(t, "a.csv,b.csv", f.String())
}
