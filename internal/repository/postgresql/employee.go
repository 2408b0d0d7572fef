package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/poncheo/poncheo-backend-go/internal/domain/employee"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/database"
)

const employeeColumns = `id, employee_code, first_name, last_name, department_name, hourly_rate,
	role, is_active, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.EmployeeCode, &e.FirstName, &e.LastName, &e.DepartmentName, &e.HourlyRate,
		&e.Role, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// GetByID implements employee.Repository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		return employee.Employee{}, mapError(err, employee.ErrEmployeeNotFound)
	}
	return e, nil
}

// ListActive implements employee.Repository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context, ids []string) ([]employee.Employee, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE is_active = TRUE`
	var args []interface{}
	if len(ids) > 0 {
		query += ` AND id = ANY($1::uuid[])`
		args = append(args, ids)
	}
	query += ` ORDER BY employee_code ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", mapError(err, nil))
	}
	defer rows.Close()

	var result []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", mapError(err, nil))
	}
	return result, nil
}

// Create implements employee.Repository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	if e.ID == "" {
		e.ID = newID()
	}

	query := `
		INSERT INTO employees (id, employee_code, first_name, last_name, department_name, hourly_rate, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		e.ID, e.EmployeeCode, e.FirstName, e.LastName, e.DepartmentName, e.HourlyRate, e.Role, e.IsActive,
	))
	if err != nil {
		if isUniqueViolation(err, "employees_employee_code_key") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", mapError(err, nil))
	}
	return created, nil
}
