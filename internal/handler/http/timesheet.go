package http

import (
	"encoding/json"
	"net/http"

	"github.com/poncheo/poncheo-backend-go/internal/domain/timesheet"
	"github.com/poncheo/poncheo-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Recompute(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.Service
}

func NewTimesheetHandler(timesheetService timesheet.Service) TimesheetHandler {
	return &timesheetHandlerImpl{timesheetService: timesheetService}
}

// List handles GET /daily-timesheets. Employees only see their own days.
func (h *timesheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterOrFail(w, r)
	if !ok {
		return
	}

	filter := timesheet.Filter{
		EmployeeID: queryString(r, "employee_id"),
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
	}
	if !requester.Role.CanReview() {
		filter.EmployeeID = &requester.EmployeeID
	}

	result, err := h.timesheetService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Recompute handles POST /daily-timesheets/recompute
func (h *timesheetHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	var req timesheet.RecomputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.Recompute(r.Context(), req.EmployeeID, req.ParsedDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet recomputed", timesheet.ToResponse(result))
}
