package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"payrollcli/internal/config"
	apperrors "payrollcli/internal/errors"
	"payrollcli/pkg/contracts"
)

// InstrumentationName identifies spans and metrics produced by this module
const InstrumentationName = "payrollcli"

// Telemetry holds the tracing and metrics providers for one process
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Metrics        *PipelineMetrics
	Registry       *promclient.Registry
	Logger         *slog.Logger
}

// InitializeTelemetry sets up OpenTelemetry. Metrics are always collected into a private
// Prometheus registry; spans are exported as JSON to traceOut only when tracing is enabled.
func InitializeTelemetry(cfg config.TelemetryConfig, traceOut io.Writer, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(contracts.Version),
	)

	t := &Telemetry{Logger: logger}

	if cfg.Tracing && traceOut != nil {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(traceOut))
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		t.TracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		)
		t.Tracer = t.TracerProvider.Tracer(InstrumentationName, trace.WithInstrumentationVersion(contracts.Version))
	} else {
		t.Tracer = noop.NewTracerProvider().Tracer(InstrumentationName)
	}

	t.Registry = promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(t.Registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	t.MeterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	t.Meter = t.MeterProvider.Meter(InstrumentationName, metric.WithInstrumentationVersion(contracts.Version))

	t.Metrics, err = NewPipelineMetrics(t.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	logger.Debug("Telemetry initialized",
		slog.String("service", cfg.ServiceName),
		slog.Bool("tracing_enabled", t.TracerProvider != nil))

	return t, nil
}

// WriteMetrics dumps the collected metrics to path in the Prometheus text format
func (t *Telemetry) WriteMetrics(path string) error {
	if err := promclient.WriteToTextfile(path, t.Registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// Shutdown flushes pending spans and stops the providers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}

// PipelineMetrics holds the counters recorded by a payroll run
type PipelineMetrics struct {
	FilesParsed      metric.Int64Counter
	EmployeesParsed  metric.Int64Counter
	ReportsGenerated metric.Int64Counter
	Exports          metric.Int64Counter
	Failures         metric.Int64Counter
	RunDuration      metric.Float64Histogram
}

// NewPipelineMetrics creates the payroll counters on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	filesParsed, err := meter.Int64Counter(
		"payroll_files_parsed",
		metric.WithDescription("Total number of input files parsed"),
	)
	if err != nil {
		return nil, err
	}

	employeesParsed, err := meter.Int64Counter(
		"payroll_employees_parsed",
		metric.WithDescription("Total number of employee rows parsed"),
	)
	if err != nil {
		return nil, err
	}

	reportsGenerated, err := meter.Int64Counter(
		"payroll_reports_generated",
		metric.WithDescription("Total number of reports rendered"),
	)
	if err != nil {
		return nil, err
	}

	exports, err := meter.Int64Counter(
		"payroll_exports",
		metric.WithDescription("Total number of export attempts"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter(
		"payroll_failures",
		metric.WithDescription("Total number of failed pipeline stages"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"payroll_run_duration",
		metric.WithDescription("Duration of a payroll run in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		FilesParsed:      filesParsed,
		EmployeesParsed:  employeesParsed,
		ReportsGenerated: reportsGenerated,
		Exports:          exports,
		Failures:         failures,
		RunDuration:      runDuration,
	}, nil
}

// RecordParse records one parsed file
func (m *PipelineMetrics) RecordParse(ctx context.Context, employees int) {
	if m == nil {
		return
	}
	m.FilesParsed.Add(ctx, 1)
	m.EmployeesParsed.Add(ctx, int64(employees))
}

// RecordReport records one rendered report
func (m *PipelineMetrics) RecordReport(ctx context.Context, reportType string) {
	if m == nil {
		return
	}
	m.ReportsGenerated.Add(ctx, 1, metric.WithAttributes(attribute.String("report_type", reportType)))
}

// RecordExport records an export attempt and its outcome
func (m *PipelineMetrics) RecordExport(ctx context.Context, format string, err error) {
	if m == nil {
		return
	}
	m.Exports.Add(ctx, 1, metric.WithAttributes(
		attribute.String("format", format),
		statusAttr(err),
	))
}

// RecordFailure records a failed pipeline stage
func (m *PipelineMetrics) RecordFailure(ctx context.Context, stage string, err error) {
	if m == nil {
		return
	}
	m.Failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("error_type", errorType(err)),
	))
}

// RecordRun records the duration of a whole run
func (m *PipelineMetrics) RecordRun(ctx context.Context, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.RunDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(statusAttr(err)))
}

func statusAttr(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String("status", "failure")
	}
	return attribute.String("status", "success")
}

// errorType labels err by its AppError type when it has one
func errorType(err error) string {
	if t := apperrors.TypeOf(err); t != "" {
		return string(t)
	}
	return fmt.Sprintf("%T", err)
}

// TraceIDFromContext extracts trace ID from context for logging correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
