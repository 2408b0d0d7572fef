package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/domain/holiday"
	"github.com/poncheo/poncheo-backend-go/internal/domain/punch"
	"github.com/poncheo/poncheo-backend-go/internal/domain/timesheet"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/keylock"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/timecalc"
)

type TimesheetServiceImpl struct {
	timesheet.Repository
	punches  punch.Repository
	holidays holiday.Repository
	restDay  time.Weekday
	locks    *keylock.Map
}

func NewTimesheetService(repo timesheet.Repository, punches punch.Repository, holidays holiday.Repository, restDay time.Weekday) timesheet.Service {
	return &TimesheetServiceImpl{
		Repository: repo,
		punches:    punches,
		holidays:   holidays,
		restDay:    restDay,
		locks:      keylock.New(),
	}
}

// Recompute implements timesheet.Service.
func (s *TimesheetServiceImpl) Recompute(ctx context.Context, employeeID string, date time.Time) (timesheet.DailyTimesheet, error) {
	day := timecalc.DateOf(date)

	unlock := s.locks.Lock(employeeID + "|" + day.Format("2006-01-02"))
	defer unlock()

	punches, err := s.punches.ListTerminalByShiftDate(ctx, employeeID, day)
	if err != nil {
		return timesheet.DailyTimesheet{}, fmt.Errorf("failed to list punches for timesheet: %w", err)
	}

	row := timesheet.DailyTimesheet{
		EmployeeID: employeeID,
		Date:       day,
		IsRestDay:  day.Weekday() == s.restDay,
	}
	for _, p := range punches {
		if p.WorkedMinutes != nil {
			row.TotalWorkedMinutes += *p.WorkedMinutes
		}
		row.TardinessMinutes += p.TardinessMinutes
		if p.ClockOut != nil {
			row.NightMinutes += timecalc.NightMinutes(p.ClockIn, *p.ClockOut)
		}
	}
	row.RegularMinutes = row.TotalWorkedMinutes

	row.IsHoliday, err = s.holidays.IsHoliday(ctx, day)
	if err != nil {
		return timesheet.DailyTimesheet{}, fmt.Errorf("failed to look up holiday: %w", err)
	}

	saved, err := s.Repository.Upsert(ctx, row)
	if err != nil {
		return timesheet.DailyTimesheet{}, fmt.Errorf("failed to upsert daily timesheet: %w", err)
	}
	return saved, nil
}

// List implements timesheet.Service.
func (s *TimesheetServiceImpl) List(ctx context.Context, filter timesheet.Filter) ([]timesheet.Response, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.Repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily timesheets: %w", err)
	}

	resp := make([]timesheet.Response, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, timesheet.ToResponse(row))
	}
	return resp, nil
}
