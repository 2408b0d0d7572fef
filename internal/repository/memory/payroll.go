package memory

import (
	"context"
	"sort"

	"github.com/poncheo/poncheo-backend-go/internal/domain/payroll"
)

type payrollRepository struct {
	s *Store
}

func (r *payrollRepository) withEmployee(sum payroll.Summary) payroll.Summary {
	sum.Employee = nil
	if e, ok := r.s.st.employees[sum.EmployeeID]; ok {
		sum.Employee = &payroll.EmployeeInfo{
			EmployeeCode:   e.EmployeeCode,
			FirstName:      e.FirstName,
			LastName:       e.LastName,
			DepartmentName: e.DepartmentName,
		}
	}
	return sum
}

func (r *payrollRepository) Upsert(ctx context.Context, sum payroll.Summary) (payroll.Summary, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return payroll.Summary{}, err
	}
	defer unlock()

	key := periodKey{employeeID: sum.EmployeeID, start: dateKey(sum.PeriodStart), end: dateKey(sum.PeriodEnd)}
	sum.ID = ""
	for id, existing := range r.s.st.summaries {
		if (periodKey{employeeID: existing.EmployeeID, start: dateKey(existing.PeriodStart), end: dateKey(existing.PeriodEnd)}) == key {
			sum.ID = id
			sum.CreatedAt = existing.CreatedAt
			break
		}
	}
	if sum.ID == "" {
		sum.ID = newID()
		sum.CreatedAt = now()
	}
	sum.UpdatedAt = now()
	sum.Employee = nil
	r.s.st.summaries[sum.ID] = sum
	return r.withEmployee(sum), nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Summary, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return payroll.Summary{}, err
	}
	defer unlock()

	sum, ok := r.s.st.summaries[id]
	if !ok {
		return payroll.Summary{}, payroll.ErrSummaryNotFound
	}
	return r.withEmployee(sum), nil
}

func (r *payrollRepository) SetStatus(ctx context.Context, id string, status payroll.Status) (payroll.Summary, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return payroll.Summary{}, err
	}
	defer unlock()

	sum, ok := r.s.st.summaries[id]
	if !ok {
		return payroll.Summary{}, payroll.ErrSummaryNotFound
	}
	sum.Status = status
	sum.UpdatedAt = now()
	r.s.st.summaries[id] = sum
	return r.withEmployee(sum), nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.Filter) ([]payroll.Summary, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var result []payroll.Summary
	for _, sum := range r.s.st.summaries {
		if filter.Start != nil && !sum.PeriodStart.Equal(*filter.Start) {
			continue
		}
		if filter.End != nil && !sum.PeriodEnd.Equal(*filter.End) {
			continue
		}
		if filter.Status != nil && string(sum.Status) != *filter.Status {
			continue
		}
		if filter.EmployeeID != nil && sum.EmployeeID != *filter.EmployeeID {
			continue
		}
		result = append(result, r.withEmployee(sum))
	}
	sort.Slice(result, func(i, j int) bool {
		return lastName(result[i]) < lastName(result[j])
	})
	return result, nil
}

func lastName(s payroll.Summary) string {
	if s.Employee == nil {
		return ""
	}
	return s.Employee.LastName
}
