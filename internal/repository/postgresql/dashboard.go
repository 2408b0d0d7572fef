package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/domain/dashboard"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.Repository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) count(ctx context.Context, what, query string, args ...interface{}) (int64, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	var n int64
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", what, mapError(err, nil))
	}
	return n, nil
}

// CountOpenPunches implements dashboard.Repository.
func (r *dashboardRepositoryImpl) CountOpenPunches(ctx context.Context) (int64, error) {
	return r.count(ctx, "open punches", `SELECT COUNT(*) FROM punches WHERE status = 'OPEN'`)
}

// CountPendingCorrections implements dashboard.Repository.
func (r *dashboardRepositoryImpl) CountPendingCorrections(ctx context.Context) (int64, error) {
	return r.count(ctx, "pending corrections", `SELECT COUNT(*) FROM punch_corrections WHERE status = 'PENDING'`)
}

// CountAutoClosedSince implements dashboard.Repository.
func (r *dashboardRepositoryImpl) CountAutoClosedSince(ctx context.Context, since time.Time) (int64, error) {
	return r.count(ctx, "auto-closed punches",
		`SELECT COUNT(*) FROM punches WHERE status = 'AUTO_CLOSED' AND clock_out >= $1`, since.UTC())
}

// CountActiveEmployees implements dashboard.Repository.
func (r *dashboardRepositoryImpl) CountActiveEmployees(ctx context.Context) (int64, error) {
	return r.count(ctx, "active employees", `SELECT COUNT(*) FROM employees WHERE is_active = TRUE`)
}
