package holiday

import "time"

// Holiday is one dated national holiday. Lookups match the exact date; recurring
// holidays are seeded per year rather than projected.
type Holiday struct {
	ID          string
	Date        time.Time
	Name        string
	IsRecurring bool
	Year        *int
	CreatedAt   time.Time
}
