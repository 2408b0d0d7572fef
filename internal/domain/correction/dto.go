package correction

import (
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	PunchID           string  `json:"punch_id"`
	CorrectedClockIn  string  `json:"corrected_clock_in"`            // RFC3339
	CorrectedClockOut *string `json:"corrected_clock_out,omitempty"` // RFC3339
	Reason            string  `json:"reason"`

	// Parsed by Validate
	ClockIn  time.Time  `json:"-"`
	ClockOut *time.Time `json:"-"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PunchID) {
		errs = append(errs, validator.ValidationError{Field: "punch_id", Message: "punch_id is required"})
	}

	in, ok := validator.IsValidDateTime(r.CorrectedClockIn)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "corrected_clock_in", Message: "corrected_clock_in must be an ISO8601 timestamp"})
	} else {
		r.ClockIn = in
	}

	if r.CorrectedClockOut != nil {
		out, ok := validator.IsValidDateTime(*r.CorrectedClockOut)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "corrected_clock_out", Message: "corrected_clock_out must be an ISO8601 timestamp"})
		} else {
			r.ClockOut = &out
		}
	}

	if r.ClockOut != nil && !r.ClockIn.IsZero() && !r.ClockOut.After(r.ClockIn) {
		errs = append(errs, validator.ValidationError{Field: "corrected_clock_out", Message: "corrected_clock_out must be after corrected_clock_in"})
	}

	if len([]rune(r.Reason)) < 5 {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason must be at least 5 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewRequest struct {
	CorrectionID string  `json:"-"`
	SupervisorID string  `json:"-"`
	Comments     *string `json:"comments,omitempty"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CorrectionID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "correction id is required"})
	}
	if validator.IsEmpty(r.SupervisorID) {
		errs = append(errs, validator.ValidationError{Field: "supervisor_id", Message: "supervisor is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	Status      *string `json:"status,omitempty"`
	RequestedBy *string `json:"employee_id,omitempty"`
}

func (f *Filter) Validate() error {
	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		return validator.ValidationErrors{{
			Field:   "status",
			Message: "status must be one of: PENDING, APPROVED, REJECTED",
		}}
	}
	return nil
}

type ApprovalResponse struct {
	SupervisorID string  `json:"supervisor_id"`
	Decision     Status  `json:"decision"`
	Comments     *string `json:"comments,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type Response struct {
	ID                string            `json:"id"`
	PunchID           string            `json:"punch_id"`
	RequestedBy       string            `json:"requested_by"`
	Reason            string            `json:"reason"`
	OriginalClockIn   string            `json:"original_clock_in"`
	OriginalClockOut  *string           `json:"original_clock_out,omitempty"`
	CorrectedClockIn  string            `json:"corrected_clock_in"`
	CorrectedClockOut *string           `json:"corrected_clock_out,omitempty"`
	Status            Status            `json:"status"`
	Approval          *ApprovalResponse `json:"approval,omitempty"`
	CreatedAt         string            `json:"created_at"`
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func ToResponse(c Correction) Response {
	resp := Response{
		ID:                c.ID,
		PunchID:           c.PunchID,
		RequestedBy:       c.RequestedBy,
		Reason:            c.Reason,
		OriginalClockIn:   c.OriginalClockIn.UTC().Format(time.RFC3339),
		OriginalClockOut:  formatOptional(c.OriginalClockOut),
		CorrectedClockIn:  c.CorrectedClockIn.UTC().Format(time.RFC3339),
		CorrectedClockOut: formatOptional(c.CorrectedClockOut),
		Status:            c.Status,
		CreatedAt:         c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if c.Approval != nil {
		resp.Approval = &ApprovalResponse{
			SupervisorID: c.Approval.SupervisorID,
			Decision:     c.Approval.Decision,
			Comments:     c.Approval.Comments,
			CreatedAt:    c.Approval.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return resp
}
