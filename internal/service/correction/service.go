package correction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poncheo/poncheo-backend-go/internal/domain/correction"
	"github.com/poncheo/poncheo-backend-go/internal/domain/employee"
	"github.com/poncheo/poncheo-backend-go/internal/domain/punch"
	"github.com/poncheo/poncheo-backend-go/internal/domain/schedule"
	"github.com/poncheo/poncheo-backend-go/internal/domain/timesheet"
	"github.com/poncheo/poncheo-backend-go/internal/domain/txn"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/timecalc"
)

type CorrectionServiceImpl struct {
	correction.Repository
	punches    punch.Repository
	schedules  schedule.Repository
	timesheets timesheet.Service
	tx         txn.Manager
}

func NewCorrectionService(
	repo correction.Repository,
	punches punch.Repository,
	schedules schedule.Repository,
	timesheets timesheet.Service,
	tx txn.Manager,
) correction.Service {
	return &CorrectionServiceImpl{
		Repository: repo,
		punches:    punches,
		schedules:  schedules,
		timesheets: timesheets,
		tx:         tx,
	}
}

// Create implements correction.Service.
func (s *CorrectionServiceImpl) Create(ctx context.Context, requester employee.Requester, req correction.CreateRequest) (correction.Response, error) {
	if err := req.Validate(); err != nil {
		return correction.Response{}, err
	}

	p, err := s.punches.GetByID(ctx, req.PunchID)
	if err != nil {
		if errors.Is(err, punch.ErrPunchNotFound) {
			return correction.Response{}, err
		}
		return correction.Response{}, fmt.Errorf("failed to get punch: %w", err)
	}

	if p.EmployeeID != requester.EmployeeID {
		return correction.Response{}, correction.ErrNotPunchOwner
	}
	if !p.Status.CanTransitionTo(punch.StatusCorrected) {
		return correction.Response{}, punch.ErrPunchNotCorrectable
	}

	existing, err := s.Repository.GetByPunchID(ctx, p.ID)
	if err != nil {
		return correction.Response{}, fmt.Errorf("failed to check existing correction: %w", err)
	}
	if existing != nil {
		return correction.Response{}, correction.ErrCorrectionExists
	}

	created, err := s.Repository.Create(ctx, correction.Correction{
		PunchID:           p.ID,
		RequestedBy:       requester.EmployeeID,
		Reason:            req.Reason,
		OriginalClockIn:   p.ClockIn,
		OriginalClockOut:  p.ClockOut,
		CorrectedClockIn:  req.ClockIn,
		CorrectedClockOut: req.ClockOut,
	})
	if err != nil {
		if errors.Is(err, correction.ErrCorrectionExists) {
			return correction.Response{}, err
		}
		return correction.Response{}, fmt.Errorf("failed to create correction: %w", err)
	}
	return correction.ToResponse(created), nil
}

// Approve implements correction.Service.
func (s *CorrectionServiceImpl) Approve(ctx context.Context, req correction.ReviewRequest) (correction.Response, error) {
	if err := req.Validate(); err != nil {
		return correction.Response{}, err
	}

	var (
		approved   correction.Correction
		amended    punch.Punch
		assignment *schedule.AssignmentWithTemplate
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.Repository.Review(ctx, req.CorrectionID, correction.StatusApproved)
		if err != nil {
			return err
		}

		p, err := s.punches.GetByID(ctx, c.PunchID)
		if err != nil {
			return err
		}

		breakMinutes := schedule.DefaultBreakMinutes
		if p.ShiftAssignmentID != nil {
			a, err := s.schedules.GetAssignmentByID(ctx, *p.ShiftAssignmentID)
			if err != nil && !errors.Is(err, schedule.ErrAssignmentNotFound) {
				return fmt.Errorf("failed to get shift assignment: %w", err)
			}
			if err == nil {
				breakMinutes = a.Template.BreakMinutes
				assignment = &a
			}
		}

		var worked *int
		if c.CorrectedClockOut != nil {
			w := timecalc.WorkedMinutes(c.CorrectedClockIn, *c.CorrectedClockOut, breakMinutes)
			worked = &w
		}

		amended, err = s.punches.Amend(ctx, punch.Amendment{
			PunchID:       p.ID,
			ClockIn:       c.CorrectedClockIn,
			ClockOut:      c.CorrectedClockOut,
			WorkedMinutes: worked,
		})
		if err != nil {
			return err
		}

		approval, err := s.Repository.CreateApproval(ctx, correction.Approval{
			CorrectionID: c.ID,
			SupervisorID: req.SupervisorID,
			Decision:     correction.StatusApproved,
			Comments:     req.Comments,
		})
		if err != nil {
			return err
		}

		c.Approval = &approval
		approved = c
		return nil
	})
	if err != nil {
		return correction.Response{}, reviewError(err)
	}

	if assignment != nil {
		if _, err := s.timesheets.Recompute(ctx, amended.EmployeeID, assignment.Assignment.Date); err != nil {
			slog.Error("Failed to recompute daily timesheet after correction",
				"correction_id", approved.ID,
				"employee_id", amended.EmployeeID,
				"error", err,
			)
		}
	}
	return correction.ToResponse(approved), nil
}

// Reject implements correction.Service.
func (s *CorrectionServiceImpl) Reject(ctx context.Context, req correction.ReviewRequest) (correction.Response, error) {
	if err := req.Validate(); err != nil {
		return correction.Response{}, err
	}

	var rejected correction.Correction
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.Repository.Review(ctx, req.CorrectionID, correction.StatusRejected)
		if err != nil {
			return err
		}

		approval, err := s.Repository.CreateApproval(ctx, correction.Approval{
			CorrectionID: c.ID,
			SupervisorID: req.SupervisorID,
			Decision:     correction.StatusRejected,
			Comments:     req.Comments,
		})
		if err != nil {
			return err
		}

		c.Approval = &approval
		rejected = c
		return nil
	})
	if err != nil {
		return correction.Response{}, reviewError(err)
	}
	return correction.ToResponse(rejected), nil
}

// GetByID implements correction.Service.
func (s *CorrectionServiceImpl) GetByID(ctx context.Context, requester employee.Requester, id string) (correction.Response, error) {
	c, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, correction.ErrCorrectionNotFound) {
			return correction.Response{}, err
		}
		return correction.Response{}, fmt.Errorf("failed to get correction: %w", err)
	}

	if !requester.Role.CanReview() && c.RequestedBy != requester.EmployeeID {
		return correction.Response{}, correction.ErrUnauthorized
	}
	return correction.ToResponse(c), nil
}

// List implements correction.Service.
func (s *CorrectionServiceImpl) List(ctx context.Context, requester employee.Requester, filter correction.Filter) ([]correction.Response, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if !requester.Role.CanReview() {
		own := requester.EmployeeID
		filter.RequestedBy = &own
	}

	items, err := s.Repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list corrections: %w", err)
	}

	resp := make([]correction.Response, 0, len(items))
	for _, c := range items {
		resp = append(resp, correction.ToResponse(c))
	}
	return resp, nil
}

// reviewError keeps domain sentinels visible to the caller and wraps everything else.
func reviewError(err error) error {
	switch {
	case errors.Is(err, correction.ErrCorrectionNotFound),
		errors.Is(err, correction.ErrCorrectionAlreadyReviewed),
		errors.Is(err, punch.ErrPunchNotFound),
		errors.Is(err, punch.ErrPunchNotCorrectable):
		return err
	default:
		return fmt.Errorf("failed to review correction: %w", err)
	}
}
