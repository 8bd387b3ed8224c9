package domain

// Department groups employees that share an organizational-unit name.
// Employees keep their insertion order.
type Department struct {
	Name      string
	Employees []Employee
}

// NewDepartment creates an empty department.
func NewDepartment(name string) *Department {
	return &Department{Name: name}
}

// AddEmployee appends e to the department.
func (d *Department) AddEmployee(e Employee) {
	d.Employees = append(d.Employees, e)
}

// TotalHours sums HoursWorked over all members.
func (d *Department) TotalHours() int {
	total := 0
	for _, e := range d.Employees {
		total += e.HoursWorked
	}
	return total
}

// TotalPayout sums Payout over all members.
func (d *Department) TotalPayout() int {
	total := 0
	for _, e := range d.Employees {
		total += e.Payout()
	}
	return total
}

// UnitData returns the export view of the department.
func (d *Department) UnitData() UnitData {
	records := make([]EmployeeRecord, 0, len(d.Employees))
	for _, e := range d.Employees {
		records = append(records, e.Record())
	}
	return UnitData{
		Employees:   records,
		TotalHours:  d.TotalHours(),
		TotalPayout: d.TotalPayout(),
	}
}
