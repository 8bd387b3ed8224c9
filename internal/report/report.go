// Package report aggregates parsed employees into report kinds and renders them.
//
// Each report kind implements Report and is selected by name through a Registry:
//
//	r, err := report.New("payout")
//	for _, e := range employees {
//	    r.AddEmployee(e)
//	}
//	fmt.Println(r.Generate())
//
// Reports are not safe for concurrent use; one goroutine feeds and renders a report.
package report

import "payrollcli/pkg/contracts/domain"

// Report is one kind of aggregated employee report.
type Report interface {
	// AddEmployee ingests one employee.
	AddEmployee(e domain.Employee)
	// Generate renders the report as text.
	Generate() string
	// Data returns the structured form used for export.
	Data() *domain.ReportData
}

// Factory creates an empty report.
type Factory func() Report
