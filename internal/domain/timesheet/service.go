package timesheet

import (
	"context"
	"time"
)

type Service interface {
	// Recompute rebuilds the (employeeID, date) row from its terminal punches.
	Recompute(ctx context.Context, employeeID string, date time.Time) (DailyTimesheet, error)
	List(ctx context.Context, filter Filter) ([]Response, error)
}
