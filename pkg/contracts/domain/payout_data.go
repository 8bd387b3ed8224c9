package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EmployeeRecord is the per-employee entry of an exported report.
type EmployeeRecord struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Email       string `json:"email" yaml:"email"`
	HoursWorked int    `json:"hours_worked" yaml:"hours_worked"`
	HourlyRate  int    `json:"hourly_rate" yaml:"hourly_rate"`
	Payout      int    `json:"payout" yaml:"payout"`
}

// UnitData is the exported view of one department.
type UnitData struct {
	Employees   []EmployeeRecord `json:"employees" yaml:"employees"`
	TotalHours  int              `json:"total_hours" yaml:"total_hours"`
	TotalPayout int              `json:"total_payout" yaml:"total_payout"`
}

// ReportData maps department names to their exported data, keeping the order in
// which departments were first added. It serializes as a JSON object whose keys
// appear in that order.
type ReportData struct {
	order []string
	units map[string]UnitData
}

// NewReportData returns an empty ReportData.
func NewReportData() *ReportData {
	return &ReportData{units: make(map[string]UnitData)}
}

// Set stores data for name. Re-setting an existing name keeps its position.
func (r *ReportData) Set(name string, data UnitData) {
	if r.units == nil {
		r.units = make(map[string]UnitData)
	}
	if _, ok := r.units[name]; !ok {
		r.order = append(r.order, name)
	}
	r.units[name] = data
}

// Get returns the data stored for name.
func (r *ReportData) Get(name string) (UnitData, bool) {
	u, ok := r.units[name]
	return u, ok
}

// Names returns department names in insertion order.
func (r *ReportData) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of departments.
func (r *ReportData) Len() int {
	return len(r.order)
}

// MarshalJSON writes departments as an object in insertion order.
func (r *ReportData) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalUnescaped(name)
		if err != nil {
			return nil, err
		}
		val, err := marshalUnescaped(r.units[name])
		if err != nil {
			return nil, fmt.Errorf("marshal department %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of departments, keeping key order.
func (r *ReportData) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("report data: expected object, got %v", tok)
	}

	r.order = nil
	r.units = make(map[string]UnitData)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("report data: expected department name, got %v", tok)
		}
		var unit UnitData
		if err := dec.Decode(&unit); err != nil {
			return fmt.Errorf("decode department %q: %w", name, err)
		}
		r.Set(name, unit)
	}

	_, err = dec.Token()
	return err
}

func marshalUnescaped(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
