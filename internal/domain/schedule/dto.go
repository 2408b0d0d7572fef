package schedule

import (
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/pkg/validator"
)

type AssignRequest struct {
	EmployeeID      string `json:"employee_id"`
	Date            string `json:"date"` // YYYY-MM-DD
	ShiftTemplateID string `json:"shift_template_id"`

	// Parsed by Validate
	ParsedDate time.Time `json:"-"`
}

func (r *AssignRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.ShiftTemplateID) {
		errs = append(errs, validator.ValidationError{Field: "shift_template_id", Message: "shift_template_id is required"})
	}
	if d, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	} else {
		r.ParsedDate = d
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListAssignmentsRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`

	From time.Time `json:"-"`
	To   time.Time `json:"-"`
}

func (r *ListAssignmentsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	from, okFrom := validator.IsValidDate(r.StartDate)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
	}
	to, okTo := validator.IsValidDate(r.EndDate)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	r.From, r.To = from, to
	return nil
}

type TemplateResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	StartTime          string    `json:"start_time"`
	EndTime            string    `json:"end_time"`
	BreakMinutes       int       `json:"break_minutes"`
	GracePeriodMinutes int       `json:"grace_period_minutes"`
	ShiftType          ShiftType `json:"shift_type"`
	CrossesMidnight    bool      `json:"crosses_midnight"`
}

type AssignmentResponse struct {
	ID         string           `json:"id"`
	EmployeeID string           `json:"employee_id"`
	Date       string           `json:"date"`
	Template   TemplateResponse `json:"template"`
}

func ToTemplateResponse(t ShiftTemplate) TemplateResponse {
	resp := TemplateResponse{
		ID:                 t.ID,
		Name:               t.Name,
		StartTime:          t.StartTime,
		EndTime:            t.EndTime,
		BreakMinutes:       t.BreakMinutes,
		GracePeriodMinutes: t.GracePeriodMinutes,
		ShiftType:          t.ShiftType,
	}
	if start, end, err := t.Bounds(); err == nil {
		resp.CrossesMidnight = end.Before(start)
	}
	return resp
}

func ToAssignmentResponse(a AssignmentWithTemplate) AssignmentResponse {
	return AssignmentResponse{
		ID:         a.Assignment.ID,
		EmployeeID: a.Assignment.EmployeeID,
		Date:       a.Assignment.Date.Format("2006-01-02"),
		Template:   ToTemplateResponse(a.Template),
	}
}
