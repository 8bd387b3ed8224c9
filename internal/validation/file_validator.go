package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "payrollcli/internal/errors"
)

// SourceSuffix is the literal, case-sensitive suffix every input source must carry.
const SourceSuffix = ".csv"

// FileValidator provides the file checks shared by the parser and the exporter
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateSourceName checks the source name only; it never touches the filesystem.
func (v *FileValidator) ValidateSourceName(path string) error {
	if !strings.HasSuffix(path, SourceSuffix) {
		v.logger.Error("Source is not a CSV file",
			slog.String("file", path),
			slog.String("extension", filepath.Ext(path)))
		return apperrors.NewInvalidFormatError(path, SourceSuffix)
	}
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if dir == "" {
		dir = "."
	}

	info, err := os.Stat(dir)
	if err == nil && !info.IsDir() {
		v.logger.Error("Output path is not a directory",
			slog.String("path", dir))
		return apperrors.NewStorageError(fmt.Sprintf("%s is not a directory", dir), nil)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}
