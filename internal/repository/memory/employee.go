package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/poncheo/poncheo-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	s *Store
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	defer unlock()

	e, ok := r.s.st.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) ListActive(ctx context.Context, ids []string) ([]employee.Employee, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var result []employee.Employee
	for _, e := range r.s.st.employees {
		if !e.IsActive {
			continue
		}
		if len(ids) > 0 && !slices.Contains(ids, e.ID) {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeCode < result[j].EmployeeCode })
	return result, nil
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	defer unlock()

	for _, existing := range r.s.st.employees {
		if existing.EmployeeCode == e.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}

	if e.ID == "" {
		e.ID = newID()
	}
	e.CreatedAt = now()
	e.UpdatedAt = e.CreatedAt
	r.s.st.employees[e.ID] = e
	return e, nil
}
