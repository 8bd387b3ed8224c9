package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payrollcli/internal/config"
	apperrors "payrollcli/internal/errors"
)

func TestInitializeTelemetry_TracingDisabled(t *testing.T) {
	tel, err := InitializeTelemetry(config.TelemetryConfig{ServiceName: "test"}, nil, nil)
	require.NoError(t, err)
	defer tel.Shutdown(context.Background())

	assert.Nil(t, tel.TracerProvider)
	require.NotNil(t, tel.Tracer)

	ctx, span := tel.Tracer.Start(context.Background(), "noop")
	span.End()
	assert.Empty(t, TraceIDFromContext(ctx))
}

func TestInitializeTelemetry_TracingToWriter(t *testing.T) {
	var traces bytes.Buffer
	tel, err := InitializeTelemetry(config.TelemetryConfig{ServiceName: "test", Tracing: true}, &traces, nil)
	require.NoError(t, err)
	require.NotNil(t, tel.TracerProvider)

	ctx, span := tel.Tracer.Start(context.Background(), "payroll.test")
	traceID := TraceIDFromContext(ctx)
	assert.Equal(t, span.SpanContext().TraceID().String(), traceID)

	RecordError(ctx, errors.New("boom"))
	span.End()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, tel.Shutdown(ctx))

	assert.Contains(t, traces.String(), "payroll.test")
	assert.Contains(t, traces.String(), traceID)
	assert.Contains(t, traces.String(), "boom")
}

func TestPipelineMetrics_WriteMetrics(t *testing.T) {
	tel, err := InitializeTelemetry(config.TelemetryConfig{ServiceName: "test"}, nil, nil)
	require.NoError(t, err)
	defer tel.Shutdown(context.Background())

	ctx := context.Background()
	tel.Metrics.RecordParse(ctx, 3)
	tel.Metrics.RecordParse(ctx, 2)
	tel.Metrics.RecordReport(ctx, "payout")
	tel.Metrics.RecordExport(ctx, ".json", nil)
	tel.Metrics.RecordFailure(ctx, "parse", apperrors.NewParsingError("bad", nil))
	tel.Metrics.RecordRun(ctx, 10*time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "payroll.prom")
	require.NoError(t, tel.WriteMetrics(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(content)
	assert.Contains(t, out, "payroll_files_parsed_total")
	assert.Contains(t, out, "payroll_employees_parsed_total")
	assert.Contains(t, out, `report_type="payout"`)
	assert.Contains(t, out, `error_type="PARSING"`)
	assert.NotContains(t, out, `"report.type"`)
	assert.NotContains(t, out, `"error.type"`)
	assert.Contains(t, out, "payroll_run_duration_seconds")
}

func TestPipelineMetrics_NilSafe(t *testing.T) {
	var m *PipelineMetrics
	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.RecordParse(ctx, 1)
		m.RecordReport(ctx, "payout")
		m.RecordExport(ctx, ".csv", errors.New("x"))
		m.RecordFailure(ctx, "export", nil)
		m.RecordRun(ctx, time.Second, nil)
	})
}

func TestErrorType(t *testing.T) {
	assert.Equal(t, "STORAGE", errorType(apperrors.NewStorageError("disk", nil)))
	assert.Equal(t, "*errors.errorString", errorType(errors.New("plain")))
}
