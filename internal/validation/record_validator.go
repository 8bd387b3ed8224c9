package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "payrollcli/internal/errors"
	"payrollcli/pkg/contracts/domain"
)

// RecordValidator checks parsed employees against the struct tags on domain.Employee.
type RecordValidator struct {
	validator *validator.Validate
}

// NewRecordValidator creates a validator that reports fields by their JSON names.
func NewRecordValidator() *RecordValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &RecordValidator{validator: v}
}

// ValidateEmployee returns a VALIDATION error describing every failed field.
func (rv *RecordValidator) ValidateEmployee(e domain.Employee) error {
	err := rv.validator.Struct(e)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewAppValidationError("employee validation failed", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
		msgs = append(msgs, describe(fe))
	}

	return apperrors.NewAppValidationError(
		fmt.Sprintf("employee %q: %s", e.ID, strings.Join(msgs, "; ")), nil).
		WithContext("fields", fields)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be >= %s, got %v", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
