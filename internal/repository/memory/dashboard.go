package memory

import (
	"context"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/domain/correction"
	"github.com/poncheo/poncheo-backend-go/internal/domain/punch"
)

type dashboardRepository struct {
	s *Store
}

func (r *dashboardRepository) CountOpenPunches(ctx context.Context) (int64, error) {
	return r.countPunches(ctx, func(p punch.Punch) bool { return p.Status == punch.StatusOpen })
}

func (r *dashboardRepository) CountAutoClosedSince(ctx context.Context, since time.Time) (int64, error) {
	return r.countPunches(ctx, func(p punch.Punch) bool {
		return p.Status == punch.StatusAutoClosed && p.ClockOut != nil && !p.ClockOut.Before(since)
	})
}

func (r *dashboardRepository) countPunches(ctx context.Context, match func(punch.Punch) bool) (int64, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return 0, err
	}
	defer unlock()

	var n int64
	for _, p := range r.s.st.punches {
		if match(p) {
			n++
		}
	}
	return n, nil
}

func (r *dashboardRepository) CountPendingCorrections(ctx context.Context) (int64, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return 0, err
	}
	defer unlock()

	var n int64
	for _, c := range r.s.st.corrections {
		if c.Status == correction.StatusPending {
			n++
		}
	}
	return n, nil
}

func (r *dashboardRepository) CountActiveEmployees(ctx context.Context) (int64, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return 0, err
	}
	defer unlock()

	var n int64
	for _, e := range r.s.st.employees {
		if e.IsActive {
			n++
		}
	}
	return n, nil
}
