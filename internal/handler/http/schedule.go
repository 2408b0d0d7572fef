package http

import (
	"encoding/json"
	"net/http"

	"github.com/poncheo/poncheo-backend-go/internal/domain/schedule"
	"github.com/poncheo/poncheo-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	Assign(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
	ListTemplates(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.Service
}

func NewScheduleHandler(scheduleService schedule.Service) ScheduleHandler {
	return &scheduleHandlerImpl{scheduleService: scheduleService}
}

// Assign handles POST /schedules/assignments
func (h *scheduleHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req schedule.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.scheduleService.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift assigned", result)
}

// ListAssignments handles GET /schedules/assignments. Employees only see their own.
func (h *scheduleHandlerImpl) ListAssignments(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterOrFail(w, r)
	if !ok {
		return
	}

	req := schedule.ListAssignmentsRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}
	if !requester.Role.CanReview() || req.EmployeeID == "" {
		req.EmployeeID = requester.EmployeeID
	}

	result, err := h.scheduleService.ListAssignments(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListTemplates handles GET /schedules/templates
func (h *scheduleHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.ListTemplates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
