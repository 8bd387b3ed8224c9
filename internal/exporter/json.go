package exporter

import (
	"encoding/json"
	"io"

	"payrollcli/pkg/contracts/domain"
)

// JSONFormat writes the report as indented JSON without escaping HTML or non-ASCII text.
type JSONFormat struct{}

// Extensions implements Format
func (JSONFormat) Extensions() []string { return []string{".json"} }

// Encode implements Format
func (JSONFormat) Encode(w io.Writer, data *domain.ReportData) error {
	if data == nil {
		data = domain.NewReportData()
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(data)
}
