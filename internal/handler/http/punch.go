package http

import (
	"net/http"

	"github.com/poncheo/poncheo-backend-go/internal/domain/punch"
	"github.com/poncheo/poncheo-backend-go/internal/handler/http/response"
)

type PunchHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListOpen(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.Service
}

func NewPunchHandler(punchService punch.Service) PunchHandler {
	return &punchHandlerImpl{punchService: punchService}
}

// ClockIn handles POST /punches/clock-in
func (h *punchHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterOrFail(w, r)
	if !ok {
		return
	}

	p, err := h.punchService.ClockIn(r.Context(), requester.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in", punch.ToResponse(p))
}

// ClockOut handles POST /punches/clock-out
func (h *punchHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterOrFail(w, r)
	if !ok {
		return
	}

	p, err := h.punchService.ClockOut(r.Context(), requester.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", punch.ToResponse(p))
}

// List handles GET /punches. Employees only see their own punches.
func (h *punchHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterOrFail(w, r)
	if !ok {
		return
	}

	filter := punch.Filter{
		EmployeeID: queryString(r, "employee_id"),
		Status:     queryString(r, "status"),
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}
	if !requester.Role.CanReview() {
		filter.EmployeeID = &requester.EmployeeID
	}

	result, err := h.punchService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Punches, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// ListOpen handles GET /punches/open
func (h *punchHandlerImpl) ListOpen(w http.ResponseWriter, r *http.Request) {
	punches, err := h.punchService.ListOpen(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]punch.Response, 0, len(punches))
	for _, p := range punches {
		result = append(result, punch.ToResponse(p))
	}
	response.Success(w, result)
}

// GetByID handles GET /punches/{id}
func (h *punchHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterOrFail(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, "punch")
	if !ok {
		return
	}

	p, err := h.punchService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !requester.Role.CanReview() && p.EmployeeID != requester.EmployeeID {
		response.HandleError(w, punch.ErrUnauthorized)
		return
	}

	response.Success(w, punch.ToResponse(p))
}
