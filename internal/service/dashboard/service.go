package dashboard

import (
	"context"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/domain/dashboard"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/clock"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/timecalc"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.Repository
	clock clock.Clock
}

func NewDashboardService(repo dashboard.Repository, clk clock.Clock) dashboard.Service {
	return &DashboardServiceImpl{
		Repository: repo,
		clock:      clk,
	}
}

// GetStats returns the supervisor counters, one query per goroutine.
func (s *DashboardServiceImpl) GetStats(ctx context.Context) (dashboard.StatsResponse, error) {
	now := s.clock.Now()
	startOfDay := timecalc.DateOf(now)

	var resp dashboard.StatsResponse
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.CountOpenPunches(gCtx)
		resp.OpenPunches = n
		return err
	})

	g.Go(func() error {
		n, err := s.CountPendingCorrections(gCtx)
		resp.PendingCorrections = n
		return err
	})

	g.Go(func() error {
		n, err := s.CountAutoClosedSince(gCtx, startOfDay)
		resp.AutoClosedToday = n
		return err
	})

	g.Go(func() error {
		n, err := s.CountActiveEmployees(gCtx)
		resp.ActiveEmployees = n
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.StatsResponse{}, err
	}

	resp.UpdatedAt = now.Format(time.RFC3339)
	return resp, nil
}
