package payroll

import (
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/pkg/validator"
)

type GenerateRequest struct {
	PeriodStart string   `json:"period_start"` // YYYY-MM-DD
	PeriodEnd   string   `json:"period_end"`   // YYYY-MM-DD, inclusive
	PeriodType  string   `json:"period_type"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
	GeneratedBy string   `json:"-"`

	// Parsed by Validate
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.PeriodStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "period_start must be YYYY-MM-DD"})
	}
	end, okEnd := validator.IsValidDate(r.PeriodEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "period_end must be YYYY-MM-DD"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "period_end must not be before period_start"})
	}

	if r.PeriodType == "" {
		r.PeriodType = string(PeriodTypeWeekly)
	}
	if !validator.IsInSlice(r.PeriodType, PeriodTypeValues) {
		errs = append(errs, validator.ValidationError{Field: "period_type", Message: "period_type must be one of: WEEKLY, BIWEEKLY"})
	}

	if validator.IsEmpty(r.GeneratedBy) {
		errs = append(errs, validator.ValidationError{Field: "generated_by", Message: "generated_by is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	r.Start, r.End = start, end
	return nil
}

type Filter struct {
	PeriodStart *string `json:"period_start,omitempty"`
	PeriodEnd   *string `json:"period_end,omitempty"`
	Status      *string `json:"status,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`

	Start *time.Time `json:"-"`
	End   *time.Time `json:"-"`
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.PeriodStart != nil {
		if d, ok := validator.IsValidDate(*f.PeriodStart); ok {
			f.Start = &d
		} else {
			errs = append(errs, validator.ValidationError{Field: "period_start", Message: "period_start must be YYYY-MM-DD"})
		}
	}
	if f.PeriodEnd != nil {
		if d, ok := validator.IsValidDate(*f.PeriodEnd); ok {
			f.End = &d
		} else {
			errs = append(errs, validator.ValidationError{Field: "period_end", Message: "period_end must be YYYY-MM-DD"})
		}
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: DRAFT, FINALIZED"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID                    string     `json:"id"`
	EmployeeID            string     `json:"employee_id"`
	EmployeeCode          string     `json:"employee_code,omitempty"`
	EmployeeName          string     `json:"employee_name,omitempty"`
	Department            *string    `json:"department,omitempty"`
	PeriodStart           string     `json:"period_start"`
	PeriodEnd             string     `json:"period_end"`
	PeriodType            PeriodType `json:"period_type"`
	TotalWorkedMinutes    int        `json:"total_worked_minutes"`
	RegularMinutes        int        `json:"regular_minutes"`
	OvertimeMinutes       int        `json:"overtime_minutes"`
	NightMinutes          int        `json:"night_minutes"`
	HolidayMinutes        int        `json:"holiday_minutes"`
	TotalTardinessMinutes int        `json:"total_tardiness_minutes"`
	RegularPay            string     `json:"regular_pay"`
	OvertimePay           string     `json:"overtime_pay"`
	NightPremiumPay       string     `json:"night_premium_pay"`
	HolidayPay            string     `json:"holiday_pay"`
	GrossPay              string     `json:"gross_pay"`
	GeneratedBy           string     `json:"generated_by"`
	Status                Status     `json:"status"`
}

func ToResponse(s Summary) Response {
	resp := Response{
		ID:                    s.ID,
		EmployeeID:            s.EmployeeID,
		PeriodStart:           s.PeriodStart.Format("2006-01-02"),
		PeriodEnd:             s.PeriodEnd.Format("2006-01-02"),
		PeriodType:            s.PeriodType,
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
		GeneratedBy:           s.GeneratedBy,
		Status:                s.Status,
	}
	if s.Employee != nil {
		resp.EmployeeCode = s.Employee.EmployeeCode
		resp.EmployeeName = s.Employee.FirstName + " " + s.Employee.LastName
		resp.Department = s.Employee.DepartmentName
	}
	return resp
}

// ExportRow is one CSV line of the payroll export. Column order follows field order.
type ExportRow struct {
	EmployeeCode          string `csv:"employeeCode"`
	EmployeeName          string `csv:"employeeName"`
	Department            string `csv:"department"`
	PeriodStart           string `csv:"periodStart"`
	PeriodEnd             string `csv:"periodEnd"`
	Status                string `csv:"status"`
	TotalWorkedMinutes    int    `csv:"totalWorkedMinutes"`
	RegularMinutes        int    `csv:"regularMinutes"`
	OvertimeMinutes       int    `csv:"overtimeMinutes"`
	NightMinutes          int    `csv:"nightMinutes"`
	HolidayMinutes        int    `csv:"holidayMinutes"`
	TotalTardinessMinutes int    `csv:"totalTardinessMinutes"`
	RegularPay            string `csv:"regularPay"`
	OvertimePay           string `csv:"overtimePay"`
	NightPremiumPay       string `csv:"nightPremiumPay"`
	HolidayPay            string `csv:"holidayPay"`
	GrossPay              string `csv:"grossPay"`
}
