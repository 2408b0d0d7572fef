package holiday

import (
	"context"
	"time"
)

type Repository interface {
	IsHoliday(ctx context.Context, date time.Time) (bool, error)

	// Create returns ErrHolidayExists when a holiday already occupies h.Date.
	Create(ctx context.Context, h Holiday) (Holiday, error)

	// List returns holidays ordered by date, restricted to year when non-nil.
	List(ctx context.Context, year *int) ([]Holiday, error)
}
