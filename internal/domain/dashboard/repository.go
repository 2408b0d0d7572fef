package dashboard

import (
	"context"
	"time"
)

// Repository answers the counters shown on the supervisor dashboard.
type Repository interface {
	CountOpenPunches(ctx context.Context) (int64, error)
	CountPendingCorrections(ctx context.Context) (int64, error)

	// CountAutoClosedSince counts AUTO_CLOSED punches whose clock-out is at or after since.
	CountAutoClosedSince(ctx context.Context, since time.Time) (int64, error)
	CountActiveEmployees(ctx context.Context) (int64, error)
}
