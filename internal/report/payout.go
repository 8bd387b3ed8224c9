package report

import "payrollcli/pkg/contracts/domain"

// PayoutReport groups employees by department and totals their hours and payouts.
// Departments are kept in the order they were first seen and are never reordered.
type PayoutReport struct {
	departments []*domain.Department
	index       map[string]*domain.Department
}

// NewPayoutReport creates an empty payout report.
func NewPayoutReport() *PayoutReport {
	return &PayoutReport{index: make(map[string]*domain.Department)}
}

// AddEmployee appends e to its department, creating the department on first reference.
func (r *PayoutReport) AddEmployee(e domain.Employee) {
	dept, ok := r.index[e.Department]
	if !ok {
		dept = domain.NewDepartment(e.Department)
		r.index[e.Department] = dept
		r.departments = append(r.departments, dept)
	}
	dept.AddEmployee(e)
}

// Generate renders the fixed-width payout table.
func (r *PayoutReport) Generate() string {
	return renderPayout(r.departments)
}

// Data returns departments with their employee records and totals.
func (r *PayoutReport) Data() *domain.ReportData {
	data := domain.NewReportData()
	for _, dept := range r.departments {
		data.Set(dept.Name, dept.UnitData())
	}
	return data
}
