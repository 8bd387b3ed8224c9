package domain

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "payrollcli/internal/errors"
)

// Employee is one parsed timesheet row. It is created once per data row and never
// mutated afterwards; the department it names decides which Department owns it.
//
// HoursWorked and HourlyRate are coerced to integers at construction so payout
// arithmetic stays exact.
type Employee struct {
	ID          string `json:"id" yaml:"id"`
	Email       string `json:"email" yaml:"email"`
	Name        string `json:"name" yaml:"name"`
	Department  string `json:"department" yaml:"department"`
	HoursWorked int    `json:"hours_worked" yaml:"hours_worked" validate:"gte=0"`
	HourlyRate  int    `json:"hourly_rate" yaml:"hourly_rate" validate:"gte=0"`
}

// NewEmployee builds an Employee from raw text fields, coercing hours and rate to integers.
func NewEmployee(id, email, name, department, hoursWorked, hourlyRate string) (Employee, error) {
	hours, err := parseIntField("hours_worked", hoursWorked)
	if err != nil {
		return Employee{}, err
	}
	rate, err := parseIntField("hourly_rate", hourlyRate)
	if err != nil {
		return Employee{}, err
	}

	return Employee{
		ID:          id,
		Email:       email,
		Name:        name,
		Department:  department,
		HoursWorked: hours,
		HourlyRate:  rate,
	}, nil
}

// Payout returns HourlyRate * HoursWorked.
func (e Employee) Payout() int {
	return e.HourlyRate * e.HoursWorked
}

// Record converts the employee into its export representation.
func (e Employee) Record() EmployeeRecord {
	return EmployeeRecord{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		HoursWorked: e.HoursWorked,
		HourlyRate:  e.HourlyRate,
		Payout:      e.Payout(),
	}
}

func parseIntField(field, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperrors.NewParsingError(
			fmt.Sprintf("field %s must be an integer, got %q", field, raw), err).
			WithContext("field", field).
			WithContext("value", raw)
	}
	return v, nil
}
