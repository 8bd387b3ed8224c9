package services

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"payrollcli/internal/config"
	"payrollcli/internal/dataprocessing"
	apperrors "payrollcli/internal/errors"
	"payrollcli/internal/exporter"
	"payrollcli/internal/infrastructure"
	"payrollcli/internal/report"
	"payrollcli/internal/validation"
	"payrollcli/pkg/contracts/domain"
)

// Request describes one payroll run
type Request struct {
	Files      []string
	ReportType string
	// Output is the export destination; empty skips the export.
	Output string
}

// Result is the outcome of a run whose inputs parsed successfully
type Result struct {
	RunID      string
	ReportType string
	Report     report.Report
	Text       string
	Employees  int
	// OutputPath is the file written by the export, empty when nothing was written.
	OutputPath string
	// ExportErr holds the export failure, if any. The report is still valid.
	ExportErr error
}

// PayoutService turns timesheet files into a rendered and optionally exported report
type PayoutService struct {
	cfg       config.ReportConfig
	registry  *report.Registry
	exporter  *exporter.Exporter
	validator *validation.RecordValidator
	tracer    trace.Tracer
	metrics   *infrastructure.PipelineMetrics
	logger    *slog.Logger
}

// Option configures a PayoutService
type Option func(*PayoutService)

// WithRegistry replaces the default report registry
func WithRegistry(r *report.Registry) Option {
	return func(s *PayoutService) {
		s.registry = r
	}
}

// WithExporter replaces the default exporter
func WithExporter(e *exporter.Exporter) Option {
	return func(s *PayoutService) {
		s.exporter = e
	}
}

// WithTelemetry records spans and metrics through t
func WithTelemetry(t *infrastructure.Telemetry) Option {
	return func(s *PayoutService) {
		if t == nil {
			return
		}
		s.tracer = t.Tracer
		s.metrics = t.Metrics
	}
}

// WithLogger sets the service logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *PayoutService) {
		s.logger = logger
	}
}

// NewPayoutService creates a new payout service
func NewPayoutService(cfg config.ReportConfig, opts ...Option) *PayoutService {
	s := &PayoutService{
		cfg:      cfg,
		registry: report.DefaultRegistry(),
		tracer:   noop.NewTracerProvider().Tracer(infrastructure.InstrumentationName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = infrastructure.WithComponent(s.logger, "payout_service")
	if s.exporter == nil {
		s.exporter = exporter.New(s.logger)
	}
	if s.cfg.Strict {
		s.validator = validation.NewRecordValidator()
	}
	if s.cfg.DefaultType == "" {
		s.cfg.DefaultType = config.DefaultReportType
	}
	if s.cfg.ParseConcurrency < 1 {
		s.cfg.ParseConcurrency = 1
	}
	return s
}

// Run executes one request. The returned error is non-nil only when no report could be
// produced; export failures are reported through Result.ExportErr.
func (s *PayoutService) Run(ctx context.Context, req Request) (result *Result, err error) {
	ctx = infrastructure.EnsureRunID(ctx)
	start := time.Now()

	reportType := req.ReportType
	if reportType == "" {
		reportType = s.cfg.DefaultType
	}

	ctx, span := s.tracer.Start(ctx, "payroll.run", trace.WithAttributes(
		attribute.String("report.type", reportType),
		attribute.Int("files.count", len(req.Files)),
	))
	defer func() {
		if err != nil {
			infrastructure.RecordError(ctx, err)
		}
		s.metrics.RecordRun(ctx, time.Since(start), err)
		span.End()
	}()

	s.logger.InfoContext(ctx, "Starting payroll run",
		slog.String("report_type", reportType),
		slog.Any("files", req.Files))

	rep, err := s.registry.New(reportType)
	if err != nil {
		s.metrics.RecordFailure(ctx, "report", err)
		return nil, err
	}

	if len(req.Files) == 0 {
		err := apperrors.NewAppValidationError("no input files given", ErrNoInputFiles)
		s.metrics.RecordFailure(ctx, "parse", err)
		return nil, err
	}

	batches, err := s.parseAll(ctx, req.Files)
	if err != nil {
		s.metrics.RecordFailure(ctx, "parse", err)
		s.logger.ErrorContext(ctx, "Payroll run aborted",
			slog.String("error", err.Error()))
		return nil, err
	}

	result = &Result{
		RunID:      infrastructure.RunIDFromContext(ctx),
		ReportType: reportType,
		Report:     rep,
	}

	_, aggSpan := s.tracer.Start(ctx, "payroll.aggregate")
	for _, batch := range batches {
		for _, e := range batch {
			rep.AddEmployee(e)
			result.Employees++
		}
	}
	aggSpan.SetAttributes(attribute.Int("employees.count", result.Employees))
	aggSpan.End()

	_, renderSpan := s.tracer.Start(ctx, "payroll.render")
	result.Text = rep.Generate()
	renderSpan.End()
	s.metrics.RecordReport(ctx, reportType)

	if req.Output != "" {
		path := s.resolveOutput(req.Output)
		if exportErr := s.export(ctx, path, rep.Data()); exportErr != nil {
			result.ExportErr = exportErr
		} else {
			result.OutputPath = path
		}
	}

	s.logger.InfoContext(ctx, "Payroll run completed",
		slog.Int("employees", result.Employees),
		slog.String("output", result.OutputPath),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}

// parseAll validates every source name, then parses the files concurrently. Batches
// come back in file order. When several files fail, the error of the first failing
// file in request order is returned.
func (s *PayoutService) parseAll(ctx context.Context, files []string) ([][]domain.Employee, error) {
	parsers := make([]*dataprocessing.CSVParser, len(files))
	for i, file := range files {
		opts := []dataprocessing.ParserOption{dataprocessing.WithLogger(s.logger)}
		if s.validator != nil {
			opts = append(opts, dataprocessing.WithValidator(s.validator))
		}
		p, err := dataprocessing.NewCSVParser(file, opts...)
		if err != nil {
			return nil, err
		}
		parsers[i] = p
	}

	batches := make([][]domain.Employee, len(files))
	errs := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(s.cfg.ParseConcurrency)
	for i, p := range parsers {
		g.Go(func() error {
			ctx, span := s.tracer.Start(ctx, "payroll.parse",
				trace.WithAttributes(attribute.String("file", p.Filename())))
			defer span.End()

			employees, err := p.ParseEmployees(ctx)
			if err != nil {
				infrastructure.RecordError(ctx, err)
				errs[i] = err
				return err
			}
			span.SetAttributes(attribute.Int("employees.count", len(employees)))
			s.metrics.RecordParse(ctx, len(employees))
			batches[i] = employees
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, fileErr := range errs {
			if fileErr != nil {
				return nil, fileErr
			}
		}
		return nil, err
	}
	return batches, nil
}

func (s *PayoutService) export(ctx context.Context, path string, data *domain.ReportData) error {
	ctx, span := s.tracer.Start(ctx, "payroll.export",
		trace.WithAttributes(attribute.String("destination", path)))
	defer span.End()

	err := s.exporter.Save(ctx, path, data)
	s.metrics.RecordExport(ctx, strings.ToLower(filepath.Ext(path)), err)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.metrics.RecordFailure(ctx, "export", err)
		s.logger.WarnContext(ctx, "Export failed, report kept",
			slog.String("destination", path),
			slog.String("error", err.Error()))
	}
	return err
}

// resolveOutput places relative destinations under the configured output directory
func (s *PayoutService) resolveOutput(output string) string {
	if s.cfg.OutputDir == "" || filepath.IsAbs(output) {
		return output
	}
	return filepath.Join(s.cfg.OutputDir, output)
}
