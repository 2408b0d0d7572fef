package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/poncheo/poncheo-backend-go/internal/domain/timesheet"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/database"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/timecalc"
)

const timesheetColumns = `id, employee_id, date, total_worked_minutes, regular_minutes, night_minutes,
	tardiness_minutes, is_holiday, is_rest_day, status`

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.Repository {
	return &timesheetRepository{db: db}
}

func scanTimesheet(row pgx.Row) (timesheet.DailyTimesheet, error) {
	var ts timesheet.DailyTimesheet
	err := row.Scan(
		&ts.ID, &ts.EmployeeID, &ts.Date, &ts.TotalWorkedMinutes, &ts.RegularMinutes, &ts.NightMinutes,
		&ts.TardinessMinutes, &ts.IsHoliday, &ts.IsRestDay, &ts.Status,
	)
	return ts, err
}

// Upsert implements timesheet.Repository. The status of an existing row is left untouched.
func (r *timesheetRepository) Upsert(ctx context.Context, ts timesheet.DailyTimesheet) (timesheet.DailyTimesheet, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `
		INSERT INTO daily_timesheets (
			id, employee_id, date, total_worked_minutes, regular_minutes, night_minutes,
			tardiness_minutes, is_holiday, is_rest_day, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'DRAFT')
		ON CONFLICT (employee_id, date) DO UPDATE SET
			total_worked_minutes = EXCLUDED.total_worked_minutes,
			regular_minutes = EXCLUDED.regular_minutes,
			night_minutes = EXCLUDED.night_minutes,
			tardiness_minutes = EXCLUDED.tardiness_minutes,
			is_holiday = EXCLUDED.is_holiday,
			is_rest_day = EXCLUDED.is_rest_day
		RETURNING ` + timesheetColumns

	saved, err := scanTimesheet(q.QueryRow(ctx, query,
		newID(), ts.EmployeeID, timecalc.DateOf(ts.Date), ts.TotalWorkedMinutes, ts.RegularMinutes, ts.NightMinutes,
		ts.TardinessMinutes, ts.IsHoliday, ts.IsRestDay,
	))
	if err != nil {
		return timesheet.DailyTimesheet{}, fmt.Errorf("failed to upsert daily timesheet: %w", mapError(err, nil))
	}
	return saved, nil
}

// Get implements timesheet.Repository.
func (r *timesheetRepository) Get(ctx context.Context, employeeID string, date time.Time) (*timesheet.DailyTimesheet, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `SELECT ` + timesheetColumns + ` FROM daily_timesheets WHERE employee_id = $1 AND date = $2`

	ts, err := scanTimesheet(q.QueryRow(ctx, query, employeeID, timecalc.DateOf(date)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get daily timesheet: %w", mapError(err, nil))
	}
	return &ts, nil
}

// ListByEmployee implements timesheet.Repository.
func (r *timesheetRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.DailyTimesheet, error) {
	f, t := timecalc.DateOf(from), timecalc.DateOf(to)
	return r.List(ctx, timesheet.Filter{EmployeeID: &employeeID, From: &f, To: &t})
}

// List implements timesheet.Repository. From and To are inclusive dates.
func (r *timesheetRepository) List(ctx context.Context, filter timesheet.Filter) ([]timesheet.DailyTimesheet, error) {
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
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, timecalc.DateOf(*filter.From))
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argIdx))
		args = append(args, timecalc.DateOf(*filter.To))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := `SELECT ` + timesheetColumns + ` FROM daily_timesheets ` + whereClause + ` ORDER BY date ASC, employee_id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily timesheets: %w", mapError(err, nil))
	}
	defer rows.Close()

	var result []timesheet.DailyTimesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily timesheet: %w", err)
		}
		result = append(result, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily timesheets: %w", mapError(err, nil))
	}
	return result, nil
}
