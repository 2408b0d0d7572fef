package timesheet

import (
	"context"
	"time"
)

type Repository interface {
	// Upsert writes the row keyed by (EmployeeID, Date). An existing row keeps its Status.
	Upsert(ctx context.Context, ts DailyTimesheet) (DailyTimesheet, error)

	// Get returns nil when no row exists.
	Get(ctx context.Context, employeeID string, date time.Time) (*DailyTimesheet, error)

	// ListByEmployee returns rows with from <= Date <= to, ordered by date.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]DailyTimesheet, error)

	List(ctx context.Context, filter Filter) ([]DailyTimesheet, error)
}
