package holiday

import (
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/pkg/validator"
)

type SeedResult struct {
	Created int `json:"created"`
	Total   int `json:"total"`
}

type CreateRequest struct {
	Date        string `json:"date"`
	Name        string `json:"name"`
	IsRecurring bool   `json:"is_recurring"`
	Year        *int   `json:"year,omitempty"`

	ParsedDate time.Time `json:"-"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if d, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	} else {
		r.ParsedDate = d
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Name        string `json:"name"`
	IsRecurring bool   `json:"is_recurring"`
	Year        *int   `json:"year,omitempty"`
}

func ToResponse(h Holiday) Response {
	return Response{
		ID:          h.ID,
		Date:        h.Date.Format("2006-01-02"),
		Name:        h.Name,
		IsRecurring: h.IsRecurring,
		Year:        h.Year,
	}
}
