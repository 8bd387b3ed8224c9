package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"payrollcli/pkg/contracts/domain"
)

const xlsxSheet = "Payout"

var xlsxHeader = []interface{}{"department", "id", "name", "email", "hours_worked", "hourly_rate", "payout"}

// XLSXFormat writes a single-sheet workbook: a header row, one row per employee and a
// bold totals row after each department.
type XLSXFormat struct{}

// Extensions implements Format
func (XLSXFormat) Extensions() []string { return []string{".xlsx"} }

// Encode implements Format
func (XLSXFormat) Encode(w io.Writer, data *domain.ReportData) error {
	if data == nil {
		data = domain.NewReportData()
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	row := 1
	if err := writeXLSXRow(f, row, xlsxHeader, bold); err != nil {
		return err
	}

	for _, name := range data.Names() {
		unit, _ := data.Get(name)
		for _, e := range unit.Employees {
			row++
			values := []interface{}{name, e.ID, e.Name, e.Email, e.HoursWorked, e.HourlyRate, e.Payout}
			if err := writeXLSXRow(f, row, values, 0); err != nil {
				return err
			}
		}
		row++
		totals := []interface{}{name, "", "total", "", unit.TotalHours, "", unit.TotalPayout}
		if err := writeXLSXRow(f, row, totals, bold); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeXLSXRow(f *excelize.File, row int, values []interface{}, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(xlsxSheet, first, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	if style == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(xlsxSheet, first, last, style)
}
