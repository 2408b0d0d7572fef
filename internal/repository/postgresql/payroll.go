package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/poncheo/poncheo-backend-go/internal/domain/payroll"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/database"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/timecalc"
)

const summarySelect = `
	SELECT s.id, s.employee_id, s.period_start, s.period_end, s.period_type,
		   s.total_worked_minutes, s.regular_minutes, s.overtime_minutes, s.night_minutes,
		   s.holiday_minutes, s.total_tardiness_minutes,
		   s.regular_pay, s.overtime_pay, s.night_premium_pay, s.holiday_pay, s.gross_pay,
		   s.generated_by, s.status, s.created_at, s.updated_at,
		   e.employee_code, e.first_name, e.last_name, e.department_name
	FROM s
	JOIN employees e ON e.id = s.employee_id
`

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

func scanSummary(row pgx.Row) (payroll.Summary, error) {
	var s payroll.Summary
	var info payroll.EmployeeInfo
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.PeriodStart, &s.PeriodEnd, &s.PeriodType,
		&s.TotalWorkedMinutes, &s.RegularMinutes, &s.OvertimeMinutes, &s.NightMinutes,
		&s.HolidayMinutes, &s.TotalTardinessMinutes,
		&s.RegularPay, &s.OvertimePay, &s.NightPremiumPay, &s.HolidayPay, &s.GrossPay,
		&s.GeneratedBy, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		&info.EmployeeCode, &info.FirstName, &info.LastName, &info.DepartmentName,
	)
	if err != nil {
		return payroll.Summary{}, err
	}
	s.Employee = &info
	return s, nil
}

// Upsert implements payroll.Repository.
func (r *payrollRepository) Upsert(ctx context.Context, sum payroll.Summary) (payroll.Summary, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `
		WITH s AS (
			INSERT INTO payroll_summaries (
				id, employee_id, period_start, period_end, period_type,
				total_worked_minutes, regular_minutes, overtime_minutes, night_minutes,
				holiday_minutes, total_tardiness_minutes,
				regular_pay, overtime_pay, night_premium_pay, holiday_pay, gross_pay,
				generated_by, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			ON CONFLICT (employee_id, period_start, period_end) DO UPDATE SET
				period_type = EXCLUDED.period_type,
				total_worked_minutes = EXCLUDED.total_worked_minutes,
				regular_minutes = EXCLUDED.regular_minutes,
				overtime_minutes = EXCLUDED.overtime_minutes,
				night_minutes = EXCLUDED.night_minutes,
				holiday_minutes = EXCLUDED.holiday_minutes,
				total_tardiness_minutes = EXCLUDED.total_tardiness_minutes,
				regular_pay = EXCLUDED.regular_pay,
				overtime_pay = EXCLUDED.overtime_pay,
				night_premium_pay = EXCLUDED.night_premium_pay,
				holiday_pay = EXCLUDED.holiday_pay,
				gross_pay = EXCLUDED.gross_pay,
				generated_by = EXCLUDED.generated_by,
				status = EXCLUDED.status,
				updated_at = now()
			RETURNING *
		)` + summarySelect

	saved, err := scanSummary(q.QueryRow(ctx, query,
		newID(), sum.EmployeeID, timecalc.DateOf(sum.PeriodStart), timecalc.DateOf(sum.PeriodEnd), sum.PeriodType,
		sum.TotalWorkedMinutes, sum.RegularMinutes, sum.OvertimeMinutes, sum.NightMinutes,
		sum.HolidayMinutes, sum.TotalTardinessMinutes,
		sum.RegularPay, sum.OvertimePay, sum.NightPremiumPay, sum.HolidayPay, sum.GrossPay,
		sum.GeneratedBy, sum.Status,
	))
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("failed to upsert payroll summary: %w", mapError(err, nil))
	}
	return saved, nil
}

// GetByID implements payroll.Repository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Summary, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `WITH s AS (SELECT * FROM payroll_summaries WHERE id = $1)` + summarySelect

	sum, err := scanSummary(q.QueryRow(ctx, query, id))
	if err != nil {
		return payroll.Summary{}, mapError(err, payroll.ErrSummaryNotFound)
	}
	return sum, nil
}

// SetStatus implements payroll.Repository.
func (r *payrollRepository) SetStatus(ctx context.Context, id string, status payroll.Status) (payroll.Summary, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `
		WITH s AS (
			UPDATE payroll_summaries SET status = $2, updated_at = now()
			WHERE id = $1
			RETURNING *
		)` + summarySelect

	sum, err := scanSummary(q.QueryRow(ctx, query, id, status))
	if err != nil {
		return payroll.Summary{}, mapError(err, payroll.ErrSummaryNotFound)
	}
	return sum, nil
}

// List implements payroll.Repository.
func (r *payrollRepository) List(ctx context.Context, filter payroll.Filter) ([]payroll.Summary, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Start != nil {
		conditions = append(conditions, fmt.Sprintf("period_start = $%d", argIdx))
		args = append(args, timecalc.DateOf(*filter.Start))
		argIdx++
	}
	if filter.End != nil {
		conditions = append(conditions, fmt.Sprintf("period_end = $%d", argIdx))
		args = append(args, timecalc.DateOf(*filter.End))
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := `WITH s AS (SELECT * FROM payroll_summaries ` + whereClause + `)` +
		summarySelect + ` ORDER BY e.last_name ASC, e.first_name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll summaries: %w", mapError(err, nil))
	}
	defer rows.Close()

	var result []payroll.Summary
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll summary: %w", err)
		}
		result = append(result, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll summaries: %w", mapError(err, nil))
	}
	return result, nil
}
