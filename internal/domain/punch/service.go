package punch

import (
	"context"
	"time"
)

// Service drives the punch lifecycle.
type Service interface {
	// ClockIn opens a punch for the employee against today's shift assignment.
	ClockIn(ctx context.Context, employeeID string) (Punch, error)

	// ClockOut closes the employee's OPEN punch and recomputes the shift day's timesheet.
	ClockOut(ctx context.Context, employeeID string) (Punch, error)

	// AutoClose closes a stale OPEN punch at its scheduled end and marks it AUTO_CLOSED.
	AutoClose(ctx context.Context, p Punch) (Punch, error)

	// ListStale returns OPEN punches whose clock-in is older than threshold.
	ListStale(ctx context.Context, threshold time.Duration) ([]Punch, error)

	ListOpen(ctx context.Context) ([]Punch, error)
	List(ctx context.Context, filter Filter) (ListResponse, error)
	GetByID(ctx context.Context, id string) (Punch, error)
}
