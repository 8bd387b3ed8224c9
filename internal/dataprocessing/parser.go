package dataprocessing

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"

	apperrors "payrollcli/internal/errors"
	"payrollcli/internal/validation"
	"payrollcli/pkg/contracts/domain"
)

const (
	fieldID          = "id"
	fieldEmail       = "email"
	fieldName        = "name"
	fieldDepartment  = "department"
	fieldHoursWorked = "hours_worked"
	fieldHourlyRate  = "hourly_rate"
)

const maxLineSize = 1 << 20

// headerAlias maps the header names accepted in an input file onto one employee field.
type headerAlias struct {
	field string
	names []string
}

// headerAliases is the normalization table applied to every header row. The order of
// the table decides which missing field is reported first. Within an entry the first
// matching column in header order wins, so a file carrying both "rate" and "salary"
// uses whichever column comes first.
var headerAliases = []headerAlias{
	{field: fieldID, names: []string{"id"}},
	{field: fieldHourlyRate, names: []string{"hourly_rate", "rate", "salary"}},
	{field: fieldEmail, names: []string{"email"}},
	{field: fieldName, names: []string{"name"}},
	{field: fieldDepartment, names: []string{"department"}},
	{field: fieldHoursWorked, names: []string{"hours_worked"}},
}

// Opener opens a named source for reading.
type Opener func(name string) (io.ReadCloser, error)

// ParserOption configures a CSVParser
type ParserOption func(*CSVParser)

// WithOpener replaces os.Open as the source reader.
func WithOpener(open Opener) ParserOption {
	return func(p *CSVParser) {
		p.open = open
	}
}

// WithValidator enables record validation of every parsed employee. Without it only
// the structure of each row is checked.
func WithValidator(v *validation.RecordValidator) ParserOption {
	return func(p *CSVParser) {
		p.validator = v
	}
}

// WithLogger sets the parser logger.
func WithLogger(logger *slog.Logger) ParserOption {
	return func(p *CSVParser) {
		p.logger = logger
	}
}

// CSVParser reads employee timesheet rows from one comma-separated file.
// Quoted fields are not supported: every comma separates two values.
type CSVParser struct {
	filename  string
	open      Opener
	validator *validation.RecordValidator
	logger    *slog.Logger
}

// NewCSVParser validates the file name and returns a parser for it. No I/O happens here.
func NewCSVParser(filename string, opts ...ParserOption) (*CSVParser, error) {
	p := &CSVParser{
		filename: filename,
		open: func(name string) (io.ReadCloser, error) {
			return os.Open(name)
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}

	if err := validation.NewFileValidator(p.logger).ValidateSourceName(filename); err != nil {
		return nil, err
	}
	return p, nil
}

// Filename returns the source this parser reads.
func (p *CSVParser) Filename() string {
	return p.filename
}

// ParseEmployees reads the whole file and returns one employee per non-blank data row,
// in file order. Any error aborts the parse and no employees are returned.
func (p *CSVParser) ParseEmployees(ctx context.Context) ([]domain.Employee, error) {
	rc, err := p.open(p.filename)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("file %s", p.filename), err).
				WithContext("source", p.filename)
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to open %s", p.filename), err).
			WithContext("source", p.filename)
	}
	defer rc.Close()

	employees, err := p.parse(ctx, rc)
	if err != nil {
		return nil, err
	}

	p.logger.DebugContext(ctx, "Parsed employees",
		slog.String("file", p.filename),
		slog.Int("employees", len(employees)))
	return employees, nil
}

func (p *CSVParser) parse(ctx context.Context, r io.Reader) ([]domain.Employee, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read %s", p.filename), err)
		}
		return []domain.Employee{}, nil
	}

	header := strings.Split(strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff")), ",")
	columns, headerErr := resolveHeader(header)

	employees := []domain.Employee{}
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if headerErr != nil {
			return nil, headerErr.WithContext("source", p.filename)
		}

		e, err := p.buildEmployee(columns, strings.Split(line, ","), lineNo)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read %s", p.filename), err)
	}

	return employees, nil
}

func (p *CSVParser) buildEmployee(columns map[string]int, values []string, lineNo int) (domain.Employee, error) {
	fields := make(map[string]string, len(columns))
	for _, alias := range headerAliases {
		idx := columns[alias.field]
		if idx >= len(values) {
			return domain.Employee{}, apperrors.NewMissingFieldError(alias.field,
				fmt.Sprintf("%s line %d: missing value for %s", p.filename, lineNo, alias.field)).
				WithContext("source", p.filename).
				WithContext("line", lineNo)
		}
		fields[alias.field] = values[idx]
	}

	e, err := domain.NewEmployee(
		fields[fieldID],
		fields[fieldEmail],
		fields[fieldName],
		fields[fieldDepartment],
		fields[fieldHoursWorked],
		fields[fieldHourlyRate],
	)
	if err != nil {
		return domain.Employee{}, annotate(err, p.filename, lineNo)
	}

	if p.validator != nil {
		if err := p.validator.ValidateEmployee(e); err != nil {
			return domain.Employee{}, annotate(err, p.filename, lineNo)
		}
	}
	return e, nil
}

// resolveHeader applies headerAliases to a header row and returns the column index of
// every employee field.
func resolveHeader(header []string) (map[string]int, *apperrors.AppError) {
	columns := make(map[string]int, len(headerAliases))
	for _, alias := range headerAliases {
		idx := findColumn(header, alias.names)
		if idx < 0 {
			return nil, missingColumnError(alias)
		}
		columns[alias.field] = idx
	}
	return columns, nil
}

// findColumn picks the name that appears first in the header and returns the
// index of its last occurrence, so a repeated column reads its rightmost value.
func findColumn(header []string, names []string) int {
	for i, col := range header {
		if slices.Contains(names, col) {
			return lastIndex(header, col, i)
		}
	}
	return -1
}

func lastIndex(header []string, name string, from int) int {
	last := from
	for i := from + 1; i < len(header); i++ {
		if header[i] == name {
			last = i
		}
	}
	return last
}

func missingColumnError(alias headerAlias) *apperrors.AppError {
	if len(alias.names) == 1 {
		return apperrors.NewMissingFieldError(alias.field,
			fmt.Sprintf("header has no %q column", alias.names[0]))
	}
	return apperrors.NewMissingFieldError(alias.field,
		fmt.Sprintf("header has no %s column, expected one of: %s",
			alias.field, strings.Join(alias.names, ", "))).
		WithContext("aliases", alias.names)
}

func annotate(err error, source string, lineNo int) error {
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		appErr.WithContext("source", source).WithContext("line", lineNo)
		appErr.Message = fmt.Sprintf("%s line %d: %s", source, lineNo, appErr.Message)
		return appErr
	}
	return fmt.Errorf("%s line %d: %w", source, lineNo, err)
}
