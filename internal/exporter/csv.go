package exporter

import (
	"io"

	"github.com/gocarina/gocsv"

	"payrollcli/pkg/contracts/domain"
)

// utf8BOM helps Excel recognize UTF-8
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvRow is one employee flattened with its department.
type csvRow struct {
	Department  string `csv:"department"`
	ID          string `csv:"id"`
	Name        string `csv:"name"`
	Email       string `csv:"email"`
	HoursWorked int    `csv:"hours_worked"`
	HourlyRate  int    `csv:"hourly_rate"`
	Payout      int    `csv:"payout"`
}

// CSVFormat writes one row per employee. Department totals are not repeated in the
// file; they are the column sums per department.
type CSVFormat struct{}

// Extensions implements Format
func (CSVFormat) Extensions() []string { return []string{".csv"} }

// Encode implements Format
func (CSVFormat) Encode(w io.Writer, data *domain.ReportData) error {
	if data == nil {
		data = domain.NewReportData()
	}
	rows := flattenRows(data)

	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	return gocsv.Marshal(&rows, w)
}

func flattenRows(data *domain.ReportData) []*csvRow {
	rows := make([]*csvRow, 0)
	for _, name := range data.Names() {
		unit, _ := data.Get(name)
		for _, e := range unit.Employees {
			rows = append(rows, &csvRow{
				Department:  name,
				ID:          e.ID,
				Name:        e.Name,
				Email:       e.Email,
				HoursWorked: e.HoursWorked,
				HourlyRate:  e.HourlyRate,
				Payout:      e.Payout,
			})
		}
	}
	return rows
}
