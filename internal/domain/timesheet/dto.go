package timesheet

import (
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/pkg/validator"
)

type Filter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`

	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		if d, ok := validator.IsValidDate(*f.StartDate); ok {
			f.From = &d
		} else {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
		}
	}
	if f.EndDate != nil {
		if d, ok := validator.IsValidDate(*f.EndDate); ok {
			f.To = &d
		} else {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecomputeRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`

	ParsedDate time.Time `json:"-"`
}

func (r *RecomputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if d, ok := validator.IsValidDate(r.Date); ok {
		r.ParsedDate = d
	} else {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID                 string `json:"id"`
	EmployeeID         string `json:"employee_id"`
	Date               string `json:"date"`
	TotalWorkedMinutes int    `json:"total_worked_minutes"`
	RegularMinutes     int    `json:"regular_minutes"`
	NightMinutes       int    `json:"night_minutes"`
	TardinessMinutes   int    `json:"tardiness_minutes"`
	IsHoliday          bool   `json:"is_holiday"`
	IsRestDay          bool   `json:"is_rest_day"`
	Status             Status `json:"status"`
}

func ToResponse(d DailyTimesheet) Response {
	return Response{
		ID:                 d.ID,
		EmployeeID:         d.EmployeeID,
		Date:               d.Date.Format("2006-01-02"),
		TotalWorkedMinutes: d.TotalWorkedMinutes,
		RegularMinutes:     d.RegularMinutes,
		NightMinutes:       d.NightMinutes,
		TardinessMinutes:   d.TardinessMinutes,
		IsHoliday:          d.IsHoliday,
		IsRestDay:          d.IsRestDay,
		Status:             d.Status,
	}
}
