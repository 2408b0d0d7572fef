package payroll

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/poncheo/poncheo-backend-go/internal/domain/payroll"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ExportCSV implements payroll.Service.
func (s *PayrollServiceImpl) ExportCSV(ctx context.Context, filter payroll.Filter) ([]byte, error) {
	summaries, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}
	return MarshalCSV(summaries)
}

// MarshalCSV renders summaries in the export column order with money fixed to two decimals.
func MarshalCSV(summaries []payroll.Summary) ([]byte, error) {
	rows := make([]payroll.ExportRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, toExportRow(s))
	}

	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payroll csv: %w", err)
	}
	return out, nil
}

func toExportRow(s payroll.Summary) payroll.ExportRow {
	row := payroll.ExportRow{
		PeriodStart:           s.PeriodStart.Format("2006-01-02"),
		PeriodEnd:             s.PeriodEnd.Format("2006-01-02"),
		Status:                string(s.Status),
		TotalWorkedMinutes:    s.TotalWorkedMinutes,
		RegularMinutes:        s.RegularMinutes,
		OvertimeMinutes:       s.OvertimeMinutes,
		NightMinutes:          s.NightMinutes,
		HolidayMinutes:        s.HolidayMinutes,
		TotalTardinessMinutes: s.TotalTardinessMinutes,
		RegularPay:            s.RegularPay.StringFixed(2),
		OvertimePay:           s.OvertimePay.StringFixed(2),
		NightPremiumPay:       s.NightPremiumPay.StringFixed(2),
		HolidayPay:            s.HolidayPay.StringFixed(2),
		GrossPay:              s.GrossPay.StringFixed(2),
	}
	if e := s.Employee; e != nil {
		row.EmployeeCode = e.EmployeeCode
		row.EmployeeName = strings.TrimSpace(e.FirstName + " " + e.LastName)
		if e.DepartmentName != nil {
			row.Department = *e.DepartmentName
		}
	}
	return row
}

// sortByEmployeeName orders by last name then first name under Spanish collation.
func sortByEmployeeName(summaries []payroll.Summary) {
	c := collate.New(language.Spanish)
	key := func(s payroll.Summary) (string, string) {
		if s.Employee == nil {
			return "", ""
		}
		return s.Employee.LastName, s.Employee.FirstName
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		li, fi := key(summaries[i])
		lj, fj := key(summaries[j])
		if cmp := c.CompareString(li, lj); cmp != 0 {
			return cmp < 0
		}
		return c.CompareString(fi, fj) < 0
	})
}
