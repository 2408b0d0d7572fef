package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/domain/holiday"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/database"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/timecalc"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepository{db: db}
}

// IsHoliday implements holiday.Repository.
func (r *holidayRepository) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	var exists bool
	err := q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM holidays WHERE date = $1)", timecalc.DateOf(date)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", mapError(err, nil))
	}
	return exists, nil
}

// Create implements holiday.Repository.
func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `
		INSERT INTO holidays (id, date, name, is_recurring, year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	h.Date = timecalc.DateOf(h.Date)
	err := q.QueryRow(ctx, query, newID(), h.Date, h.Name, h.IsRecurring, h.Year).Scan(&h.ID, &h.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "holidays_date_key") {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", mapError(err, nil))
	}
	return h, nil
}

// List implements holiday.Repository.
func (r *holidayRepository) List(ctx context.Context, year *int) ([]holiday.Holiday, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `
		SELECT id, date, name, is_recurring, year, created_at
		FROM holidays
		WHERE $1::int IS NULL OR EXTRACT(YEAR FROM date) = $1
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", mapError(err, nil))
	}
	defer rows.Close()

	var result []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.IsRecurring, &h.Year, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", mapError(err, nil))
	}
	return result, nil
}
