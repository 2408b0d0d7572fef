package punch

import (
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/pkg/validator"
)

type Filter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD, by clock-in date
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD, inclusive

	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Parsed by Validate
	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validator.Pagination(&f.Page, &f.Limit)...)

	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: OPEN, CLOSED, AUTO_CLOSED, CORRECTED",
		})
	}

	if f.StartDate != nil {
		d, ok := validator.IsValidDate(*f.StartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
		} else {
			f.From = &d
		}
	}
	if f.EndDate != nil {
		d, ok := validator.IsValidDate(*f.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
		} else {
			next := d.AddDate(0, 0, 1)
			f.To = &next
		}
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	ShiftAssignmentID *string `json:"shift_assignment_id,omitempty"`
	ShiftDate         *string `json:"shift_date,omitempty"`
	ClockIn           string  `json:"clock_in"`
	ClockOut          *string `json:"clock_out,omitempty"`
	Status            Status  `json:"status"`
	WorkedMinutes     *int    `json:"worked_minutes,omitempty"`
	TardinessMinutes  int     `json:"tardiness_minutes"`
	IsAutoCompleted   bool    `json:"is_auto_completed"`
	Notes             *string `json:"notes,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type ListResponse struct {
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
	Punches    []Response `json:"punches"`
}

func ToResponse(p Punch) Response {
	resp := Response{
		ID:                p.ID,
		EmployeeID:        p.EmployeeID,
		ShiftAssignmentID: p.ShiftAssignmentID,
		ClockIn:           p.ClockIn.UTC().Format(time.RFC3339),
		Status:            p.Status,
		WorkedMinutes:     p.WorkedMinutes,
		TardinessMinutes:  p.TardinessMinutes,
		IsAutoCompleted:   p.IsAutoCompleted,
		Notes:             p.Notes,
		CreatedAt:         p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         p.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if p.ShiftDate != nil {
		d := p.ShiftDate.Format("2006-01-02")
		resp.ShiftDate = &d
	}
	if p.ClockOut != nil {
		out := p.ClockOut.UTC().Format(time.RFC3339)
		resp.ClockOut = &out
	}
	return resp
}
