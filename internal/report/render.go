package report

import (
	"strconv"
	"strings"

	"payrollcli/pkg/contracts/domain"
)

const (
	payoutHeader = "                  name              hours   rate   payout"
	rowPrefix    = "----------------  "

	nameWidth   = 18
	hoursWidth  = 6
	rateWidth   = 5
	payoutWidth = 6
)

// totalsIndent puts the total hours under the hours column.
var totalsIndent = strings.Repeat(" ", len(rowPrefix)+nameWidth+1)

// totalsGap spans the rate column so the total payout lines up under the payouts.
var totalsGap = strings.Repeat(" ", 2+rateWidth+2)

func renderPayout(departments []*domain.Department) string {
	lines := []string{payoutHeader}
	for _, dept := range departments {
		lines = append(lines, dept.Name)
		for _, e := range dept.Employees {
			lines = append(lines, employeeLine(e))
		}
		lines = append(lines, totalsLine(dept.TotalHours(), dept.TotalPayout()))
	}
	return strings.Join(lines, "\n")
}

func employeeLine(e domain.Employee) string {
	var b strings.Builder
	b.WriteString(rowPrefix)
	b.WriteString(ljust(e.Name, nameWidth))
	b.WriteString(" ")
	b.WriteString(ljust(strconv.Itoa(e.HoursWorked), hoursWidth))
	b.WriteString("  ")
	b.WriteString(ljust(strconv.Itoa(e.HourlyRate), rateWidth))
	b.WriteString("  $")
	b.WriteString(ljust(strconv.Itoa(e.Payout()), payoutWidth))
	return b.String()
}

func totalsLine(hours, payout int) string {
	return totalsIndent +
		ljust(strconv.Itoa(hours), hoursWidth) +
		totalsGap + "$" +
		ljust(strconv.Itoa(payout), payoutWidth)
}

// ljust pads s with trailing spaces up to width runes. Longer values are kept whole.
func ljust(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
