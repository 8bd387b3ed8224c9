package exporter

import (
	"io"

	"gopkg.in/yaml.v2"

	"payrollcli/pkg/contracts/domain"
)

// YAMLFormat writes the report as a YAML mapping keyed by department.
type YAMLFormat struct{}

// Extensions implements Format
func (YAMLFormat) Extensions() []string { return []string{".yaml", ".yml"} }

// Encode implements Format
func (YAMLFormat) Encode(w io.Writer, data *domain.ReportData) error {
	if data == nil {
		data = domain.NewReportData()
	}
	doc := make(yaml.MapSlice, 0, data.Len())
	for _, name := range data.Names() {
		unit, _ := data.Get(name)
		doc = append(doc, yaml.MapItem{Key: name, Value: unit})
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
