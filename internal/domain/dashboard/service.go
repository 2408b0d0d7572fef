package dashboard

import "context"

type Service interface {
	// GetStats runs the counters in parallel.
	GetStats(ctx context.Context) (StatsResponse, error)
}
