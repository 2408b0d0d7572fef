package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/poncheo/poncheo-backend-go/internal/domain/auth"
	"github.com/poncheo/poncheo-backend-go/internal/domain/correction"
	"github.com/poncheo/poncheo-backend-go/internal/domain/employee"
	"github.com/poncheo/poncheo-backend-go/internal/domain/holiday"
	"github.com/poncheo/poncheo-backend-go/internal/domain/payroll"
	"github.com/poncheo/poncheo-backend-go/internal/domain/punch"
	"github.com/poncheo/poncheo-backend-go/internal/domain/schedule"
	"github.com/poncheo/poncheo-backend-go/internal/domain/txn"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrInvalidCronSecret):
		Unauthorized(w, "Invalid cron secret")
	case errors.Is(err, auth.ErrSupervisorRequired):
		Forbidden(w, "Supervisor access required")

	// Punch domain errors
	case errors.Is(err, punch.ErrPunchAlreadyOpen):
		CodedError(w, http.StatusConflict, "PUNCH_ALREADY_OPEN", "You already have an open punch")
	case errors.Is(err, punch.ErrNoShiftAssigned):
		CodedError(w, http.StatusBadRequest, "NO_SHIFT_ASSIGNED", "No shift assigned for today")
	case errors.Is(err, punch.ErrPunchNotFound):
		CodedError(w, http.StatusNotFound, "PUNCH_NOT_FOUND", "Punch not found")
	case errors.Is(err, punch.ErrPunchNotOpen):
		CodedError(w, http.StatusConflict, "PUNCH_NOT_OPEN", "Punch is no longer open")
	case errors.Is(err, punch.ErrPunchNotCorrectable):
		CodedError(w, http.StatusConflict, "PUNCH_NOT_CORRECTABLE", "Punch cannot be corrected in its current status")
	case errors.Is(err, punch.ErrUnauthorized):
		Forbidden(w, "You can only access your own punches")

	// Correction domain errors
	case errors.Is(err, correction.ErrCorrectionExists):
		CodedError(w, http.StatusConflict, "CORRECTION_EXISTS", "A correction already exists for this punch")
	case errors.Is(err, correction.ErrCorrectionAlreadyReviewed):
		CodedError(w, http.StatusConflict, "CORRECTION_ALREADY_REVIEWED", "This correction has already been reviewed")
	case errors.Is(err, correction.ErrCorrectionNotFound):
		CodedError(w, http.StatusNotFound, "CORRECTION_NOT_FOUND", "Correction not found")
	case errors.Is(err, correction.ErrNotPunchOwner):
		Forbidden(w, "You can only request corrections for your own punches")
	case errors.Is(err, correction.ErrUnauthorized):
		Forbidden(w, "You can only access your own correction requests")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrOvertimeRuleMissing):
		slog.Error("Payroll configuration error", "error", err)
		CodedError(w, http.StatusInternalServerError, "OVERTIME_RULE_MISSING", err.Error())
	case errors.Is(err, payroll.ErrSummaryNotFound):
		NotFound(w, "Payroll summary not found")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Employee, schedule and holiday errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is inactive", nil)
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, schedule.ErrShiftTemplateNotFound):
		NotFound(w, "Shift template not found")
	case errors.Is(err, schedule.ErrAssignmentNotFound):
		NotFound(w, "Shift assignment not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "A holiday already exists on this date")
	case errors.Is(err, holiday.ErrInvalidYear):
		BadRequest(w, err.Error(), nil)

	// Store errors
	case errors.Is(err, txn.ErrStoreUnavailable):
		slog.Warn("Store unavailable", "error", err)
		ServiceUnavailable(w, "Service temporarily unavailable, please retry")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
