package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/poncheo/poncheo-backend-go/internal/domain/correction"
	"github.com/poncheo/poncheo-backend-go/internal/handler/http/response"
)

type CorrectionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type correctionHandlerImpl struct {
	correctionService correction.Service
}

func NewCorrectionHandler(correctionService correction.Service) CorrectionHandler {
	return &correctionHandlerImpl{correctionService: correctionService}
}

// Create handles POST /corrections
func (h *correctionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterOrFail(w, r)
	if !ok {
		return
	}

	var req correction.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.correctionService.Create(r.Context(), requester, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Correction requested", result)
}

// List handles GET /corrections
func (h *correctionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterOrFail(w, r)
	if !ok {
		return
	}

	filter := correction.Filter{
		Status:      queryString(r, "status"),
		RequestedBy: queryString(r, "employee_id"),
	}

	result, err := h.correctionService.List(r.Context(), requester, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetByID handles GET /corrections/{id}
func (h *correctionHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterOrFail(w, r)
	if !ok {
		return
	}

	id, ok := pathID(w, r, "correction")
	if !ok {
		return
	}

	result, err := h.correctionService.GetByID(r.Context(), requester, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve handles POST /corrections/{id}/approve
func (h *correctionHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req, ok := h.reviewRequest(w, r)
	if !ok {
		return
	}

	result, err := h.correctionService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction approved", result)
}

// Reject handles POST /corrections/{id}/reject
func (h *correctionHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, ok := h.reviewRequest(w, r)
	if !ok {
		return
	}

	result, err := h.correctionService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction rejected", result)
}

func (h *correctionHandlerImpl) reviewRequest(w http.ResponseWriter, r *http.Request) (correction.ReviewRequest, bool) {
	requester, ok := requesterOrFail(w, r)
	if !ok {
		return correction.ReviewRequest{}, false
	}

	id, ok := pathID(w, r, "correction")
	if !ok {
		return correction.ReviewRequest{}, false
	}

	var req correction.ReviewRequest
	// The body is optional.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body", nil)
		return correction.ReviewRequest{}, false
	}
	req.CorrectionID = id
	req.SupervisorID = requester.EmployeeID
	return req, true
}
