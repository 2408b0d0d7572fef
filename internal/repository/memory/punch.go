package memory

import (
	"context"
	"sort"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/domain/punch"
)

type punchRepository struct {
	s *Store
}

// withShiftDate fills the joined shift date. Caller holds the store lock.
func (r *punchRepository) withShiftDate(p punch.Punch) punch.Punch {
	p.ShiftDate = nil
	if p.ShiftAssignmentID != nil {
		if a, ok := r.s.st.assignments[*p.ShiftAssignmentID]; ok {
			d := a.Date
			p.ShiftDate = &d
		}
	}
	return p
}

func (r *punchRepository) Create(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return punch.Punch{}, err
	}
	defer unlock()

	for _, existing := range r.s.st.punches {
		if existing.EmployeeID == p.EmployeeID && existing.Status == punch.StatusOpen {
			return punch.Punch{}, punch.ErrPunchAlreadyOpen
		}
	}

	p.ID = newID()
	p.Status = punch.StatusOpen
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	r.s.st.punches[p.ID] = p
	return r.withShiftDate(p), nil
}

func (r *punchRepository) GetByID(ctx context.Context, id string) (punch.Punch, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return punch.Punch{}, err
	}
	defer unlock()

	p, ok := r.s.st.punches[id]
	if !ok {
		return punch.Punch{}, punch.ErrPunchNotFound
	}
	return r.withShiftDate(p), nil
}

func (r *punchRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (*punch.Punch, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	for _, p := range r.s.st.punches {
		if p.EmployeeID == employeeID && p.Status == punch.StatusOpen {
			p = r.withShiftDate(p)
			return &p, nil
		}
	}
	return nil, nil
}

func (r *punchRepository) Close(ctx context.Context, c punch.Closure) (punch.Punch, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return punch.Punch{}, err
	}
	defer unlock()

	p, ok := r.s.st.punches[c.PunchID]
	if !ok {
		return punch.Punch{}, punch.ErrPunchNotFound
	}
	if !p.Status.CanTransitionTo(c.Status) || p.Status != punch.StatusOpen {
		return punch.Punch{}, punch.ErrPunchNotOpen
	}

	out := c.ClockOut
	worked := c.WorkedMinutes
	p.ClockOut = &out
	p.WorkedMinutes = &worked
	p.Status = c.Status
	p.IsAutoCompleted = c.IsAutoCompleted
	if c.Notes != nil {
		p.Notes = c.Notes
	}
	p.UpdatedAt = now()
	r.s.st.punches[p.ID] = p
	return r.withShiftDate(p), nil
}

func (r *punchRepository) Amend(ctx context.Context, a punch.Amendment) (punch.Punch, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return punch.Punch{}, err
	}
	defer unlock()

	p, ok := r.s.st.punches[a.PunchID]
	if !ok {
		return punch.Punch{}, punch.ErrPunchNotFound
	}
	if !p.Status.CanTransitionTo(punch.StatusCorrected) {
		return punch.Punch{}, punch.ErrPunchNotCorrectable
	}

	p.ClockIn = a.ClockIn
	p.ClockOut = a.ClockOut
	p.WorkedMinutes = a.WorkedMinutes
	p.Status = punch.StatusCorrected
	p.UpdatedAt = now()
	r.s.st.punches[p.ID] = p
	return r.withShiftDate(p), nil
}

func (r *punchRepository) ListOpen(ctx context.Context, cutoff time.Time) ([]punch.Punch, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var result []punch.Punch
	for _, p := range r.s.st.punches {
		if p.Status != punch.StatusOpen {
			continue
		}
		if !cutoff.IsZero() && !p.ClockIn.Before(cutoff) {
			continue
		}
		result = append(result, r.withShiftDate(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ClockIn.Before(result[j].ClockIn) })
	return result, nil
}

func (r *punchRepository) ListTerminalByShiftDate(ctx context.Context, employeeID string, date time.Time) ([]punch.Punch, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	want := dateKey(date)
	var result []punch.Punch
	for _, p := range r.s.st.punches {
		if p.EmployeeID != employeeID || !p.Status.IsTerminal() {
			continue
		}
		p = r.withShiftDate(p)
		if p.ShiftDate == nil || dateKey(*p.ShiftDate) != want {
			continue
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ClockIn.Before(result[j].ClockIn) })
	return result, nil
}

func (r *punchRepository) List(ctx context.Context, filter punch.Filter) ([]punch.Punch, int64, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer unlock()

	var matched []punch.Punch
	for _, p := range r.s.st.punches {
		if filter.EmployeeID != nil && p.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(p.Status) != *filter.Status {
			continue
		}
		if filter.From != nil && p.ClockIn.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !p.ClockIn.Before(*filter.To) {
			continue
		}
		matched = append(matched, r.withShiftDate(p))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ClockIn.After(matched[j].ClockIn) })

	total := int64(len(matched))
	return paginate(matched, filter.Page, filter.Limit), total, nil
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := min(start+limit, len(items))
	return items[start:end]
}
