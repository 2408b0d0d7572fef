package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/poncheo/poncheo-backend-go/internal/domain/schedule"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/database"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/timecalc"
)

const templateColumns = `id, name, start_time, end_time, break_minutes, grace_period_minutes,
	shift_type, is_active, created_at, updated_at`

const assignmentSelect = `
	SELECT a.id, a.employee_id, a.date, a.shift_template_id, a.created_at,
		   t.id, t.name, t.start_time, t.end_time, t.break_minutes, t.grace_period_minutes,
		   t.shift_type, t.is_active, t.created_at, t.updated_at
	FROM shift_assignments a
	JOIN shift_templates t ON t.id = a.shift_template_id
`

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

func scanTemplate(row pgx.Row) (schedule.ShiftTemplate, error) {
	var t schedule.ShiftTemplate
	err := row.Scan(
		&t.ID, &t.Name, &t.StartTime, &t.EndTime, &t.BreakMinutes, &t.GracePeriodMinutes,
		&t.ShiftType, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func scanAssignment(row pgx.Row) (schedule.AssignmentWithTemplate, error) {
	var a schedule.AssignmentWithTemplate
	err := row.Scan(
		&a.Assignment.ID, &a.Assignment.EmployeeID, &a.Assignment.Date, &a.Assignment.ShiftTemplateID, &a.Assignment.CreatedAt,
		&a.Template.ID, &a.Template.Name, &a.Template.StartTime, &a.Template.EndTime, &a.Template.BreakMinutes,
		&a.Template.GracePeriodMinutes, &a.Template.ShiftType, &a.Template.IsActive, &a.Template.CreatedAt, &a.Template.UpdatedAt,
	)
	return a, err
}

// GetAssignment implements schedule.Repository.
func (r *scheduleRepository) GetAssignment(ctx context.Context, employeeID string, date time.Time) (*schedule.AssignmentWithTemplate, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := assignmentSelect + ` WHERE a.employee_id = $1 AND a.date = $2`

	a, err := scanAssignment(q.QueryRow(ctx, query, employeeID, timecalc.DateOf(date)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shift assignment: %w", mapError(err, nil))
	}
	return &a, nil
}

// GetAssignmentByID implements schedule.Repository.
func (r *scheduleRepository) GetAssignmentByID(ctx context.Context, id string) (schedule.AssignmentWithTemplate, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	a, err := scanAssignment(q.QueryRow(ctx, assignmentSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return schedule.AssignmentWithTemplate{}, mapError(err, schedule.ErrAssignmentNotFound)
	}
	return a, nil
}

// Assign implements schedule.Repository.
func (r *scheduleRepository) Assign(ctx context.Context, a schedule.ShiftAssignment) (schedule.ShiftAssignment, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `
		INSERT INTO shift_assignments (id, employee_id, date, shift_template_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, date) DO UPDATE SET shift_template_id = EXCLUDED.shift_template_id
		RETURNING id, employee_id, date, shift_template_id, created_at
	`

	var saved schedule.ShiftAssignment
	err := q.QueryRow(ctx, query, newID(), a.EmployeeID, timecalc.DateOf(a.Date), a.ShiftTemplateID).Scan(
		&saved.ID, &saved.EmployeeID, &saved.Date, &saved.ShiftTemplateID, &saved.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return schedule.ShiftAssignment{}, schedule.ErrShiftTemplateNotFound
		}
		return schedule.ShiftAssignment{}, fmt.Errorf("failed to assign shift: %w", mapError(err, nil))
	}
	return saved, nil
}

// ListAssignments implements schedule.Repository. from and to are inclusive.
func (r *scheduleRepository) ListAssignments(ctx context.Context, employeeID string, from, to time.Time) ([]schedule.AssignmentWithTemplate, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := assignmentSelect + ` WHERE a.employee_id = $1 AND a.date >= $2 AND a.date <= $3 ORDER BY a.date ASC`

	rows, err := q.Query(ctx, query, employeeID, timecalc.DateOf(from), timecalc.DateOf(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", mapError(err, nil))
	}
	defer rows.Close()

	var result []schedule.AssignmentWithTemplate
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift assignments: %w", mapError(err, nil))
	}
	return result, nil
}

// UpsertTemplate implements schedule.Repository.
func (r *scheduleRepository) UpsertTemplate(ctx context.Context, t schedule.ShiftTemplate) (schedule.ShiftTemplate, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `
		INSERT INTO shift_templates (id, name, start_time, end_time, break_minutes, grace_period_minutes, shift_type, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			break_minutes = EXCLUDED.break_minutes,
			grace_period_minutes = EXCLUDED.grace_period_minutes,
			shift_type = EXCLUDED.shift_type,
			is_active = EXCLUDED.is_active,
			updated_at = now()
		RETURNING ` + templateColumns

	saved, err := scanTemplate(q.QueryRow(ctx, query,
		newID(), t.Name, t.StartTime, t.EndTime, t.BreakMinutes, t.GracePeriodMinutes, t.ShiftType, t.IsActive,
	))
	if err != nil {
		return schedule.ShiftTemplate{}, fmt.Errorf("failed to upsert shift template: %w", mapError(err, nil))
	}
	return saved, nil
}

// GetTemplate implements schedule.Repository.
func (r *scheduleRepository) GetTemplate(ctx context.Context, id string) (schedule.ShiftTemplate, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	t, err := scanTemplate(q.QueryRow(ctx, `SELECT `+templateColumns+` FROM shift_templates WHERE id = $1`, id))
	if err != nil {
		return schedule.ShiftTemplate{}, mapError(err, schedule.ErrShiftTemplateNotFound)
	}
	return t, nil
}

// ListTemplates implements schedule.Repository.
func (r *scheduleRepository) ListTemplates(ctx context.Context) ([]schedule.ShiftTemplate, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	rows, err := q.Query(ctx, `SELECT `+templateColumns+` FROM shift_templates ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift templates: %w", mapError(err, nil))
	}
	defer rows.Close()

	var result []schedule.ShiftTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift templates: %w", mapError(err, nil))
	}
	return result, nil
}
