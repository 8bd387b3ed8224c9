package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"payrollcli/internal/config"
	"payrollcli/internal/exporter"
	"payrollcli/internal/infrastructure"
	"payrollcli/internal/report"
	"payrollcli/internal/services"
	"payrollcli/pkg/contracts"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// fileList collects repeated --files flags
type fileList []string

func (f *fileList) String() string {
	return strings.Join(*f, ",")
}

func (f *fileList) Set(value string) error {
	*f = append(*f, value)
	return nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var files fileList
	fs.Var(&files, "files", "input CSV file (repeatable, positional arguments are also read as files)")
	reportType := fs.String("report", "", fmt.Sprintf("report type: %s (defaults to report.default_type)", strings.Join(report.Kinds(), ", ")))
	output := fs.String("output", "", fmt.Sprintf("export destination, format chosen by suffix: %s", strings.Join(exporter.Supported(), ", ")))
	metricsFile := fs.String("metrics-file", "", "write Prometheus metrics to this file after the run")
	configFile := fs.String("config", "", "YAML config file (defaults to $PAYROLL_CONFIG, payroll.yaml or configs/payroll.yaml)")
	showVersion := fs.Bool("version", false, "print version information and exit")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s --files a.csv [--files b.csv ...] [more.csv ...] [--report payout] [--output report.json]\n\n", config.AppName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return exitOK
	}
	files = append(files, fs.Args()...)

	if len(files) == 0 {
		fmt.Fprintln(stderr, "error: at least one input file is required")
		fs.Usage()
		return exitUsage
	}

	var (
		cfg *config.Config
		err error
	)
	if *configFile != "" {
		cfg, err = config.LoadFile(*configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	if *metricsFile != "" {
		cfg.Telemetry.MetricsFile = *metricsFile
	}

	logger, closeLog, err := infrastructure.NewLogger(cfg.Logging, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	defer closeLog()

	traceOut, closeTrace, err := openTraceOutput(cfg.Telemetry, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	defer closeTrace()

	tel, err := infrastructure.InitializeTelemetry(cfg.Telemetry, traceOut, logger)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	svc := services.NewPayoutService(cfg.Report,
		services.WithTelemetry(tel),
		services.WithLogger(logger))

	result, err := svc.Run(ctx, services.Request{
		Files:      files,
		ReportType: *reportType,
		Output:     *output,
	})
	writeMetrics(tel, cfg.Telemetry.MetricsFile, logger)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}

	fmt.Fprintln(stdout, result.Text)
	switch {
	case result.ExportErr != nil:
		fmt.Fprintln(stdout, result.ExportErr.Error())
	case result.OutputPath != "":
		fmt.Fprintf(stdout, "Report saved to %s\n", result.OutputPath)
	}

	return exitOK
}

// openTraceOutput returns where finished spans are written
func openTraceOutput(cfg config.TelemetryConfig, stderr io.Writer) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	if !cfg.Tracing || cfg.TraceFile == "" {
		return stderr, noop, nil
	}

	f, err := os.OpenFile(cfg.TraceFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to open trace file %s: %w", cfg.TraceFile, err)
	}
	return f, f.Close, nil
}

func writeMetrics(tel *infrastructure.Telemetry, path string, logger *slog.Logger) {
	if path == "" {
		return
	}
	if err := tel.WriteMetrics(path); err != nil {
		logger.Warn("Failed to write metrics", slog.String("error", err.Error()))
	}
}
