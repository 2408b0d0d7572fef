package punch

import (
	"context"
	"time"
)

// Repository persists punches. Implementations must guarantee at most one OPEN punch per employee.
type Repository interface {
	// Create inserts an OPEN punch. Returns ErrPunchAlreadyOpen when the employee already has one.
	Create(ctx context.Context, p Punch) (Punch, error)

	// GetByID returns ErrPunchNotFound when missing.
	GetByID(ctx context.Context, id string) (Punch, error)

	// GetOpenByEmployee returns nil when the employee has no OPEN punch.
	GetOpenByEmployee(ctx context.Context, employeeID string) (*Punch, error)

	// Close applies c only while the punch is still OPEN, otherwise returns ErrPunchNotOpen.
	Close(ctx context.Context, c Closure) (Punch, error)

	// Amend rewrites times of a CLOSED or AUTO_CLOSED punch and marks it CORRECTED.
	// Returns ErrPunchNotCorrectable when the punch is in any other status.
	Amend(ctx context.Context, a Amendment) (Punch, error)

	// ListOpen returns OPEN punches whose clock-in is before cutoff, oldest first.
	// A zero cutoff returns every OPEN punch.
	ListOpen(ctx context.Context, cutoff time.Time) ([]Punch, error)

	// ListTerminalByShiftDate returns CLOSED, AUTO_CLOSED and CORRECTED punches whose shift assignment falls on date.
	ListTerminalByShiftDate(ctx context.Context, employeeID string, date time.Time) ([]Punch, error)

	List(ctx context.Context, filter Filter) ([]Punch, int64, error)
}
