package exporter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	apperrors "payrollcli/internal/errors"
	"payrollcli/pkg/contracts/domain"
)

// Format serializes report data for one or more file suffixes.
type Format interface {
	// Extensions lists the lower-case suffixes, with leading dot, this format handles.
	Extensions() []string
	// Encode writes data to w.
	Encode(w io.Writer, data *domain.ReportData) error
}

// FormatRegistry maps file suffixes to formats
type FormatRegistry struct {
	mu      sync.RWMutex
	formats map[string]Format
	order   []string
}

// NewFormatRegistry creates an empty registry
func NewFormatRegistry() *FormatRegistry {
	return &FormatRegistry{formats: make(map[string]Format)}
}

// Register adds f under each of its extensions
func (r *FormatRegistry) Register(f Format) error {
	if f == nil {
		return fmt.Errorf("cannot register nil format")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range f.Extensions() {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
		if _, exists := r.formats[ext]; exists {
			return fmt.Errorf("format for %s already registered", ext)
		}
	}
	for _, ext := range f.Extensions() {
		ext = strings.ToLower(ext)
		r.formats[ext] = f
		r.order = append(r.order, ext)
	}
	return nil
}

// Supported returns the registered suffixes in registration order
func (r *FormatRegistry) Supported() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// FromFilename picks the format for the lower-cased suffix of filename.
func (r *FormatRegistry) FromFilename(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	r.mu.RLock()
	f, ok := r.formats[ext]
	r.mu.RUnlock()

	if !ok {
		return nil, apperrors.NewUnsupportedFormatError(ext, r.Supported()).
			WithContext("destination", filename)
	}
	return f, nil
}

var defaultFormats = newDefaultFormats()

func newDefaultFormats() *FormatRegistry {
	r := NewFormatRegistry()
	for _, f := range []Format{JSONFormat{}, YAMLFormat{}, CSVFormat{}, XLSXFormat{}} {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
	return r
}

// DefaultFormats returns the registry of built-in formats.
func DefaultFormats() *FormatRegistry {
	return defaultFormats
}

// FromFilename picks a built-in format for filename.
func FromFilename(filename string) (Format, error) {
	return defaultFormats.FromFilename(filename)
}

// Supported lists the suffixes of the built-in formats.
func Supported() []string {
	return defaultFormats.Supported()
}
