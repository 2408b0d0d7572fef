package memory

import (
	"context"
	"sort"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/domain/schedule"
)

type scheduleRepository struct {
	s *Store
}

func (r *scheduleRepository) join(a schedule.ShiftAssignment) (schedule.AssignmentWithTemplate, error) {
	t, ok := r.s.st.templates[a.ShiftTemplateID]
	if !ok {
		return schedule.AssignmentWithTemplate{}, schedule.ErrShiftTemplateNotFound
	}
	return schedule.AssignmentWithTemplate{Assignment: a, Template: t}, nil
}

func (r *scheduleRepository) GetAssignment(ctx context.Context, employeeID string, date time.Time) (*schedule.AssignmentWithTemplate, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	key := dateKey(date)
	for _, a := range r.s.st.assignments {
		if a.EmployeeID == employeeID && dateKey(a.Date) == key {
			awt, err := r.join(a)
			if err != nil {
				return nil, err
			}
			return &awt, nil
		}
	}
	return nil, nil
}

func (r *scheduleRepository) GetAssignmentByID(ctx context.Context, id string) (schedule.AssignmentWithTemplate, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return schedule.AssignmentWithTemplate{}, err
	}
	defer unlock()

	a, ok := r.s.st.assignments[id]
	if !ok {
		return schedule.AssignmentWithTemplate{}, schedule.ErrAssignmentNotFound
	}
	return r.join(a)
}

func (r *scheduleRepository) Assign(ctx context.Context, a schedule.ShiftAssignment) (schedule.ShiftAssignment, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return schedule.ShiftAssignment{}, err
	}
	defer unlock()

	if _, ok := r.s.st.templates[a.ShiftTemplateID]; !ok {
		return schedule.ShiftAssignment{}, schedule.ErrShiftTemplateNotFound
	}

	key := dateKey(a.Date)
	for id, existing := range r.s.st.assignments {
		if existing.EmployeeID == a.EmployeeID && dateKey(existing.Date) == key {
			existing.ShiftTemplateID = a.ShiftTemplateID
			r.s.st.assignments[id] = existing
			return existing, nil
		}
	}

	a.ID = newID()
	a.CreatedAt = now()
	r.s.st.assignments[a.ID] = a
	return a, nil
}

func (r *scheduleRepository) ListAssignments(ctx context.Context, employeeID string, from, to time.Time) ([]schedule.AssignmentWithTemplate, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var result []schedule.AssignmentWithTemplate
	for _, a := range r.s.st.assignments {
		if a.EmployeeID != employeeID || a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		awt, err := r.join(a)
		if err != nil {
			return nil, err
		}
		result = append(result, awt)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Assignment.Date.Before(result[j].Assignment.Date) })
	return result, nil
}

func (r *scheduleRepository) UpsertTemplate(ctx context.Context, t schedule.ShiftTemplate) (schedule.ShiftTemplate, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return schedule.ShiftTemplate{}, err
	}
	defer unlock()

	for id, existing := range r.s.st.templates {
		if existing.Name == t.Name {
			t.ID = id
			t.CreatedAt = existing.CreatedAt
			t.UpdatedAt = now()
			r.s.st.templates[id] = t
			return t, nil
		}
	}

	t.ID = newID()
	t.CreatedAt = now()
	t.UpdatedAt = t.CreatedAt
	r.s.st.templates[t.ID] = t
	return t, nil
}

func (r *scheduleRepository) GetTemplate(ctx context.Context, id string) (schedule.ShiftTemplate, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return schedule.ShiftTemplate{}, err
	}
	defer unlock()

	t, ok := r.s.st.templates[id]
	if !ok {
		return schedule.ShiftTemplate{}, schedule.ErrShiftTemplateNotFound
	}
	return t, nil
}

func (r *scheduleRepository) ListTemplates(ctx context.Context) ([]schedule.ShiftTemplate, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	result := make([]schedule.ShiftTemplate, 0, len(r.s.st.templates))
	for _, t := range r.s.st.templates {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
