package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/poncheo/poncheo-backend-go/internal/domain/payroll"
	"github.com/poncheo/poncheo-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	Revert(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// Generate handles POST /payroll/generate. Answers 207 when some employees failed.
func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	requester, ok := requesterOrFail(w, r)
	if !ok {
		return
	}

	var req payroll.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.GeneratedBy = requester.EmployeeID

	result, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		details := employeeFailures(err)
		if len(details) == 0 {
			response.HandleError(w, err)
			return
		}
		response.PartialSuccess(w, fmt.Sprintf("Generated %d summaries, %d failed", len(result), len(details)), result, details)
		return
	}

	response.Created(w, "Payroll generated", result)
}

// employeeFailures flattens joined per-employee errors into employee_id -> message.
func employeeFailures(err error) map[string]string {
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}

	details := make(map[string]string)
	for _, e := range errs {
		var empErr *payroll.EmployeeError
		if errors.As(e, &empErr) {
			details[empErr.EmployeeID] = empErr.Err.Error()
		}
	}
	return details
}

// List handles GET /payroll
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.List(r.Context(), payrollFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export handles GET /payroll/export/csv
func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter := payrollFilter(r)

	data, err := h.payrollService.ExportCSV(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := "payroll.csv"
	if filter.PeriodStart != nil && filter.PeriodEnd != nil {
		filename = fmt.Sprintf("payroll_%s_%s.csv", *filter.PeriodStart, *filter.PeriodEnd)
	}
	response.CSV(w, filename, data)
}

// GetByID handles GET /payroll/{id}
func (h *payrollHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "payroll summary")
	if !ok {
		return
	}

	result, err := h.payrollService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Finalize handles PUT /payroll/{id}/finalize
func (h *payrollHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "payroll summary")
	if !ok {
		return
	}

	result, err := h.payrollService.Finalize(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll summary finalized", result)
}

// Revert handles PUT /payroll/{id}/revert
func (h *payrollHandlerImpl) Revert(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "payroll summary")
	if !ok {
		return
	}

	result, err := h.payrollService.Revert(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll summary reverted to draft", result)
}

func payrollFilter(r *http.Request) payroll.Filter {
	return payroll.Filter{
		PeriodStart: queryString(r, "period_start"),
		PeriodEnd:   queryString(r, "period_end"),
		Status:      queryString(r, "status"),
		EmployeeID:  queryString(r, "employee_id"),
	}
}
