package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "payrollcli/internal/errors"
	"payrollcli/internal/validation"
	"payrollcli/pkg/contracts/domain"
)

// Exporter saves report data to files, choosing the format from the file suffix
type Exporter struct {
	formats   *FormatRegistry
	validator *validation.FileValidator
	logger    *slog.Logger
}

// New creates an exporter over the built-in formats
func New(logger *slog.Logger) *Exporter {
	return NewWithFormats(DefaultFormats(), logger)
}

// NewWithFormats creates an exporter over a custom format registry
func NewWithFormats(formats *FormatRegistry, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		formats:   formats,
		validator: validation.NewFileValidator(logger),
		logger:    logger,
	}
}

// Save writes data to path. The format is resolved before any filesystem access, so an
// unsupported suffix never creates or touches a file.
func (e *Exporter) Save(ctx context.Context, path string, data *domain.ReportData) error {
	format, err := e.formats.FromFilename(path)
	if err != nil {
		e.logger.WarnContext(ctx, "Unsupported export format",
			slog.String("destination", path),
			slog.String("error", err.Error()))
		return err
	}
	if data == nil {
		data = domain.NewReportData()
	}

	dir := filepath.Dir(path)
	if err := e.validator.ValidateOutputDirectory(dir); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".payroll-*"+filepath.Ext(path))
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to create temporary file in %s", dir), err).
			WithContext("destination", path)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if err := format.Encode(tmp, data); err != nil {
		tmp.Close()
		return apperrors.NewStorageError(fmt.Sprintf("failed to encode %s", path), err).
			WithContext("destination", path)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return apperrors.NewStorageError(fmt.Sprintf("failed to flush %s", path), err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to close %s", path), err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to set permissions on %s", path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write %s", path), err).
			WithContext("destination", path)
	}
	committed = true

	e.logger.InfoContext(ctx, "Report exported",
		slog.String("destination", path),
		slog.Int("departments", data.Len()))
	return nil
}
