package punch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/domain/punch"
	"github.com/poncheo/poncheo-backend-go/internal/domain/schedule"
	"github.com/poncheo/poncheo-backend-go/internal/domain/timesheet"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/clock"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/keylock"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/timecalc"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/validator"
)

// fallbackShiftLength is the assumed shift length when an unclosed punch has no assignment.
const fallbackShiftLength = 8 * time.Hour

type PunchServiceImpl struct {
	punch.Repository
	schedules  schedule.Repository
	timesheets timesheet.Service
	clock      clock.Clock
	locks      *keylock.Map
}

func NewPunchService(repo punch.Repository, schedules schedule.Repository, timesheets timesheet.Service, clk clock.Clock) punch.Service {
	return &PunchServiceImpl{
		Repository: repo,
		schedules:  schedules,
		timesheets: timesheets,
		clock:      clk,
		locks:      keylock.New(),
	}
}

// ClockIn implements punch.Service.
func (s *PunchServiceImpl) ClockIn(ctx context.Context, employeeID string) (punch.Punch, error) {
	unlock := s.locks.Lock(employeeID)
	defer unlock()

	open, err := s.Repository.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		return punch.Punch{}, fmt.Errorf("failed to check open punch: %w", err)
	}
	if open != nil {
		return punch.Punch{}, punch.ErrPunchAlreadyOpen
	}

	now := s.clock.Now()
	assignment, err := s.schedules.GetAssignment(ctx, employeeID, timecalc.DateOf(now))
	if err != nil {
		return punch.Punch{}, fmt.Errorf("failed to get shift assignment: %w", err)
	}
	if assignment == nil {
		return punch.Punch{}, punch.ErrNoShiftAssigned
	}

	start, err := assignment.Template.ScheduledStart(assignment.Assignment.Date)
	if err != nil {
		return punch.Punch{}, fmt.Errorf("invalid shift template %s: %w", assignment.Template.ID, err)
	}

	assignmentID := assignment.Assignment.ID
	created, err := s.Repository.Create(ctx, punch.Punch{
		EmployeeID:        employeeID,
		ShiftAssignmentID: &assignmentID,
		ClockIn:           now,
		TardinessMinutes:  timecalc.Tardiness(now, start, assignment.Template.GracePeriodMinutes),
	})
	if err != nil {
		if errors.Is(err, punch.ErrPunchAlreadyOpen) {
			return punch.Punch{}, err
		}
		return punch.Punch{}, fmt.Errorf("failed to create punch: %w", err)
	}
	return created, nil
}

// ClockOut implements punch.Service.
func (s *PunchServiceImpl) ClockOut(ctx context.Context, employeeID string) (punch.Punch, error) {
	unlock := s.locks.Lock(employeeID)
	defer unlock()

	open, err := s.Repository.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		return punch.Punch{}, fmt.Errorf("failed to get open punch: %w", err)
	}
	if open == nil {
		return punch.Punch{}, punch.ErrPunchNotFound
	}

	assignment, err := s.assignmentOf(ctx, *open)
	if err != nil {
		return punch.Punch{}, err
	}

	breakMinutes := schedule.DefaultBreakMinutes
	if assignment != nil {
		breakMinutes = assignment.Template.BreakMinutes
	}

	now := s.clock.Now()
	closed, err := s.Repository.Close(ctx, punch.Closure{
		PunchID:       open.ID,
		ClockOut:      now,
		WorkedMinutes: timecalc.WorkedMinutes(open.ClockIn, now, breakMinutes),
		Status:        punch.StatusClosed,
	})
	if err != nil {
		// Auto-close got there first.
		if errors.Is(err, punch.ErrPunchNotOpen) {
			return punch.Punch{}, punch.ErrPunchNotFound
		}
		return punch.Punch{}, fmt.Errorf("failed to close punch: %w", err)
	}

	if assignment != nil {
		s.recompute(ctx, closed.EmployeeID, assignment.Assignment.Date)
	}
	return closed, nil
}

// AutoClose implements punch.Service.
func (s *PunchServiceImpl) AutoClose(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	assignment, err := s.assignmentOf(ctx, p)
	if err != nil {
		return punch.Punch{}, err
	}

	clockOut := p.ClockIn.Add(fallbackShiftLength)
	breakMinutes := schedule.DefaultBreakMinutes
	if assignment != nil {
		end, err := assignment.Template.ScheduledEnd(assignment.Assignment.Date)
		if err != nil {
			return punch.Punch{}, fmt.Errorf("invalid shift template %s: %w", assignment.Template.ID, err)
		}
		clockOut = end
		breakMinutes = assignment.Template.BreakMinutes
	}

	note := punch.AutoCloseNote
	closed, err := s.Repository.Close(ctx, punch.Closure{
		PunchID:         p.ID,
		ClockOut:        clockOut,
		WorkedMinutes:   timecalc.WorkedMinutes(p.ClockIn, clockOut, breakMinutes),
		Status:          punch.StatusAutoClosed,
		IsAutoCompleted: true,
		Notes:           &note,
	})
	if err != nil {
		if errors.Is(err, punch.ErrPunchNotOpen) {
			return punch.Punch{}, err
		}
		return punch.Punch{}, fmt.Errorf("failed to auto-close punch: %w", err)
	}

	if assignment != nil {
		s.recompute(ctx, closed.EmployeeID, assignment.Assignment.Date)
	}
	return closed, nil
}

// ListStale implements punch.Service.
func (s *PunchServiceImpl) ListStale(ctx context.Context, threshold time.Duration) ([]punch.Punch, error) {
	punches, err := s.Repository.ListOpen(ctx, s.clock.Now().Add(-threshold))
	if err != nil {
		return nil, fmt.Errorf("failed to list stale punches: %w", err)
	}
	return punches, nil
}

// ListOpen implements punch.Service.
func (s *PunchServiceImpl) ListOpen(ctx context.Context) ([]punch.Punch, error) {
	punches, err := s.Repository.ListOpen(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to list open punches: %w", err)
	}
	return punches, nil
}

// List implements punch.Service.
func (s *PunchServiceImpl) List(ctx context.Context, filter punch.Filter) (punch.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return punch.ListResponse{}, err
	}

	punches, total, err := s.Repository.List(ctx, filter)
	if err != nil {
		return punch.ListResponse{}, fmt.Errorf("failed to list punches: %w", err)
	}

	resp := punch.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: validator.TotalPages(total, filter.Limit),
		Punches:    make([]punch.Response, 0, len(punches)),
	}
	for _, p := range punches {
		resp.Punches = append(resp.Punches, punch.ToResponse(p))
	}
	return resp, nil
}

// GetByID implements punch.Service.
func (s *PunchServiceImpl) GetByID(ctx context.Context, id string) (punch.Punch, error) {
	return s.Repository.GetByID(ctx, id)
}

func (s *PunchServiceImpl) assignmentOf(ctx context.Context, p punch.Punch) (*schedule.AssignmentWithTemplate, error) {
	if p.ShiftAssignmentID == nil {
		return nil, nil
	}
	a, err := s.schedules.GetAssignmentByID(ctx, *p.ShiftAssignmentID)
	if err != nil {
		if errors.Is(err, schedule.ErrAssignmentNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shift assignment: %w", err)
	}
	return &a, nil
}

// recompute refreshes the shift day's timesheet. The punch write already committed, so a
// failure here is logged and left for the next recompute of the same day.
func (s *PunchServiceImpl) recompute(ctx context.Context, employeeID string, date time.Time) {
	if _, err := s.timesheets.Recompute(ctx, employeeID, date); err != nil {
		slog.Error("Failed to recompute daily timesheet",
			"employee_id", employeeID,
			"date", date.Format("2006-01-02"),
			"error", err,
		)
	}
}
