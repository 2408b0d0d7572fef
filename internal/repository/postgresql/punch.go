package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/poncheo/poncheo-backend-go/internal/domain/punch"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/database"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/timecalc"
)

const punchSelect = `
	SELECT p.id, p.employee_id, p.shift_assignment_id, p.clock_in, p.clock_out, p.status,
		   p.worked_minutes, p.tardiness_minutes, p.is_auto_completed, p.notes,
		   p.created_at, p.updated_at, sa.date
	FROM p
	LEFT JOIN shift_assignments sa ON sa.id = p.shift_assignment_id
`

type punchRepository struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.Repository {
	return &punchRepository{db: db}
}

func scanPunch(row pgx.Row) (punch.Punch, error) {
	var p punch.Punch
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.ShiftAssignmentID, &p.ClockIn, &p.ClockOut, &p.Status,
		&p.WorkedMinutes, &p.TardinessMinutes, &p.IsAutoCompleted, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt, &p.ShiftDate,
	)
	return p, err
}

func collectPunches(rows pgx.Rows) ([]punch.Punch, error) {
	defer rows.Close()

	var result []punch.Punch
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// Create implements punch.Repository.
func (r *punchRepository) Create(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `
		WITH p AS (
			INSERT INTO punches (id, employee_id, shift_assignment_id, clock_in, status, tardiness_minutes, notes)
			VALUES ($1, $2, $3, $4, 'OPEN', $5, $6)
			RETURNING *
		)` + punchSelect

	created, err := scanPunch(q.QueryRow(ctx, query,
		newID(), p.EmployeeID, p.ShiftAssignmentID, p.ClockIn.UTC(), p.TardinessMinutes, p.Notes,
	))
	if err != nil {
		if isUniqueViolation(err, "punches_one_open_per_employee") {
			return punch.Punch{}, punch.ErrPunchAlreadyOpen
		}
		return punch.Punch{}, fmt.Errorf("failed to create punch: %w", mapError(err, nil))
	}
	return created, nil
}

// GetByID implements punch.Repository.
func (r *punchRepository) GetByID(ctx context.Context, id string) (punch.Punch, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `WITH p AS (SELECT * FROM punches WHERE id = $1)` + punchSelect

	p, err := scanPunch(q.QueryRow(ctx, query, id))
	if err != nil {
		return punch.Punch{}, mapError(err, punch.ErrPunchNotFound)
	}
	return p, nil
}

// GetOpenByEmployee implements punch.Repository.
func (r *punchRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (*punch.Punch, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `WITH p AS (SELECT * FROM punches WHERE employee_id = $1 AND status = 'OPEN')` + punchSelect

	p, err := scanPunch(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open punch: %w", mapError(err, nil))
	}
	return &p, nil
}

// Close implements punch.Repository. The status guard in the WHERE clause makes the
// first of two concurrent closes win.
func (r *punchRepository) Close(ctx context.Context, c punch.Closure) (punch.Punch, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `
		WITH p AS (
			UPDATE punches
			SET clock_out = $2, worked_minutes = $3, status = $4, is_auto_completed = $5,
				notes = COALESCE($6, notes), updated_at = now()
			WHERE id = $1 AND status = 'OPEN'
			RETURNING *
		)` + punchSelect

	closed, err := scanPunch(q.QueryRow(ctx, query,
		c.PunchID, c.ClockOut.UTC(), c.WorkedMinutes, c.Status, c.IsAutoCompleted, c.Notes,
	))
	if err == nil {
		return closed, nil
	}
	if err != pgx.ErrNoRows {
		return punch.Punch{}, fmt.Errorf("failed to close punch: %w", mapError(err, nil))
	}

	exists, err := r.exists(ctx, q, c.PunchID)
	if err != nil {
		return punch.Punch{}, err
	}
	if !exists {
		return punch.Punch{}, punch.ErrPunchNotFound
	}
	return punch.Punch{}, punch.ErrPunchNotOpen
}

// Amend implements punch.Repository.
func (r *punchRepository) Amend(ctx context.Context, a punch.Amendment) (punch.Punch, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `
		WITH p AS (
			UPDATE punches
			SET clock_in = $2, clock_out = $3, worked_minutes = $4, status = 'CORRECTED', updated_at = now()
			WHERE id = $1 AND status IN ('CLOSED', 'AUTO_CLOSED')
			RETURNING *
		)` + punchSelect

	amended, err := scanPunch(q.QueryRow(ctx, query, a.PunchID, a.ClockIn.UTC(), utcPtr(a.ClockOut), a.WorkedMinutes))
	if err == nil {
		return amended, nil
	}
	if err != pgx.ErrNoRows {
		return punch.Punch{}, fmt.Errorf("failed to amend punch: %w", mapError(err, nil))
	}

	exists, err := r.exists(ctx, q, a.PunchID)
	if err != nil {
		return punch.Punch{}, err
	}
	if !exists {
		return punch.Punch{}, punch.ErrPunchNotFound
	}
	return punch.Punch{}, punch.ErrPunchNotCorrectable
}

// ListOpen implements punch.Repository.
func (r *punchRepository) ListOpen(ctx context.Context, cutoff time.Time) ([]punch.Punch, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `WITH p AS (SELECT * FROM punches WHERE status = 'OPEN' AND ($1::timestamptz IS NULL OR clock_in < $1))` +
		punchSelect + ` ORDER BY p.clock_in ASC`

	var arg *time.Time
	if !cutoff.IsZero() {
		c := cutoff.UTC()
		arg = &c
	}

	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list open punches: %w", mapError(err, nil))
	}
	punches, err := collectPunches(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan open punches: %w", mapError(err, nil))
	}
	return punches, nil
}

// ListTerminalByShiftDate implements punch.Repository.
func (r *punchRepository) ListTerminalByShiftDate(ctx context.Context, employeeID string, date time.Time) ([]punch.Punch, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `
		WITH p AS (
			SELECT pu.* FROM punches pu
			JOIN shift_assignments s ON s.id = pu.shift_assignment_id
			WHERE pu.employee_id = $1
			  AND s.date = $2
			  AND pu.status IN ('CLOSED', 'AUTO_CLOSED', 'CORRECTED')
		)` + punchSelect + ` ORDER BY p.clock_in ASC`

	rows, err := q.Query(ctx, query, employeeID, timecalc.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("failed to list punches by shift date: %w", mapError(err, nil))
	}
	punches, err := collectPunches(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan punches: %w", mapError(err, nil))
	}
	return punches, nil
}

// List implements punch.Repository.
func (r *punchRepository) List(ctx context.Context, filter punch.Filter) ([]punch.Punch, int64, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("clock_in >= $%d", argIdx))
		args = append(args, filter.From.UTC())
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("clock_in < $%d", argIdx))
		args = append(args, filter.To.UTC())
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM punches "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count punches: %w", mapError(err, nil))
	}

	query := fmt.Sprintf(`WITH p AS (SELECT * FROM punches %s ORDER BY clock_in DESC LIMIT $%d OFFSET $%d)`,
		whereClause, argIdx, argIdx+1) + punchSelect + ` ORDER BY p.clock_in DESC`
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list punches: %w", mapError(err, nil))
	}
	punches, err := collectPunches(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan punches: %w", mapError(err, nil))
	}
	return punches, total, nil
}

func (r *punchRepository) exists(ctx context.Context, q database.Querier, id string) (bool, error) {
	var exists bool
	if err := q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM punches WHERE id = $1)", id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check punch: %w", mapError(err, nil))
	}
	return exists, nil
}
