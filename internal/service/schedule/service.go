package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/poncheo/poncheo-backend-go/internal/domain/employee"
	"github.com/poncheo/poncheo-backend-go/internal/domain/schedule"
)

type ScheduleServiceImpl struct {
	schedule.Repository
	employees employee.Repository
}

func NewScheduleService(repo schedule.Repository, employees employee.Repository) schedule.Service {
	return &ScheduleServiceImpl{
		Repository: repo,
		employees:  employees,
	}
}

// Assign implements schedule.Service.
func (s *ScheduleServiceImpl) Assign(ctx context.Context, req schedule.AssignRequest) (schedule.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.AssignmentResponse{}, err
	}

	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return schedule.AssignmentResponse{}, err
		}
		return schedule.AssignmentResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive {
		return schedule.AssignmentResponse{}, employee.ErrEmployeeInactive
	}

	tmpl, err := s.Repository.GetTemplate(ctx, req.ShiftTemplateID)
	if err != nil {
		if errors.Is(err, schedule.ErrShiftTemplateNotFound) {
			return schedule.AssignmentResponse{}, err
		}
		return schedule.AssignmentResponse{}, fmt.Errorf("failed to get shift template: %w", err)
	}

	a, err := s.Repository.Assign(ctx, schedule.ShiftAssignment{
		EmployeeID:      emp.ID,
		Date:            req.ParsedDate,
		ShiftTemplateID: tmpl.ID,
	})
	if err != nil {
		return schedule.AssignmentResponse{}, fmt.Errorf("failed to assign shift: %w", err)
	}
	return schedule.ToAssignmentResponse(schedule.AssignmentWithTemplate{Assignment: a, Template: tmpl}), nil
}

// ListAssignments implements schedule.Service.
func (s *ScheduleServiceImpl) ListAssignments(ctx context.Context, req schedule.ListAssignmentsRequest) ([]schedule.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	items, err := s.Repository.ListAssignments(ctx, req.EmployeeID, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	resp := make([]schedule.AssignmentResponse, 0, len(items))
	for _, a := range items {
		resp = append(resp, schedule.ToAssignmentResponse(a))
	}
	return resp, nil
}

// ListTemplates implements schedule.Service.
func (s *ScheduleServiceImpl) ListTemplates(ctx context.Context) ([]schedule.TemplateResponse, error) {
	templates, err := s.Repository.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift templates: %w", err)
	}

	resp := make([]schedule.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		resp = append(resp, schedule.ToTemplateResponse(t))
	}
	return resp, nil
}
