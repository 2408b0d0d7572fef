package memory

import (
	"context"
	"sort"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/domain/timesheet"
)

type timesheetRepository struct {
	s *Store
}

func (r *timesheetRepository) Upsert(ctx context.Context, ts timesheet.DailyTimesheet) (timesheet.DailyTimesheet, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return timesheet.DailyTimesheet{}, err
	}
	defer unlock()

	key := dayKey{employeeID: ts.EmployeeID, date: dateKey(ts.Date)}
	if existing, ok := r.s.st.timesheets[key]; ok {
		ts.ID = existing.ID
		ts.Status = existing.Status
	} else {
		ts.ID = newID()
		ts.Status = timesheet.StatusDraft
	}
	r.s.st.timesheets[key] = ts
	return ts, nil
}

func (r *timesheetRepository) Get(ctx context.Context, employeeID string, date time.Time) (*timesheet.DailyTimesheet, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	ts, ok := r.s.st.timesheets[dayKey{employeeID: employeeID, date: dateKey(date)}]
	if !ok {
		return nil, nil
	}
	return &ts, nil
}

func (r *timesheetRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.DailyTimesheet, error) {
	emp := employeeID
	return r.List(ctx, timesheet.Filter{EmployeeID: &emp, From: &from, To: &to})
}

func (r *timesheetRepository) List(ctx context.Context, filter timesheet.Filter) ([]timesheet.DailyTimesheet, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var result []timesheet.DailyTimesheet
	for _, ts := range r.s.st.timesheets {
		if filter.EmployeeID != nil && ts.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.From != nil && ts.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && ts.Date.After(*filter.To) {
			continue
		}
		result = append(result, ts)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].EmployeeID < result[j].EmployeeID
	})
	return result, nil
}
