package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/domain/punch"
)

const (
	AutoCloseJobName = "auto_close_stale_punches"

	// DefaultStaleThreshold is how long a punch may stay OPEN before auto-close picks it up.
	DefaultStaleThreshold = 14 * time.Hour
)

// AutoCloseFailure is one punch the job could not close.
type AutoCloseFailure struct {
	PunchID    string `json:"punch_id"`
	EmployeeID string `json:"employee_id"`
	Error      string `json:"error"`
}

// AutoCloseReport summarizes one auto-close run. Skipped counts punches closed by someone else mid-run.
type AutoCloseReport struct {
	Closed   int                `json:"closed"`
	Skipped  int                `json:"skipped"`
	Failures []AutoCloseFailure `json:"failures"`
}

type PunchJobs struct {
	punchService punch.Service
	threshold    time.Duration
}

func NewPunchJobs(punchService punch.Service, threshold time.Duration) *PunchJobs {
	if threshold <= 0 {
		threshold = DefaultStaleThreshold
	}
	return &PunchJobs{
		punchService: punchService,
		threshold:    threshold,
	}
}

func (j *PunchJobs) RegisterJobs(scheduler *Scheduler, schedule Schedule) {
	scheduler.AddJob(AutoCloseJobName, schedule, j.AutoCloseStalePunches)
}

// AutoCloseStalePunches is the scheduled entry point.
func (j *PunchJobs) AutoCloseStalePunches(ctx context.Context) error {
	_, err := j.RunAutoCloseOnce(ctx)
	return err
}

// RunAutoCloseOnce closes every punch OPEN for longer than the threshold. A failing punch
// is logged and reported without stopping the rest of the batch.
func (j *PunchJobs) RunAutoCloseOnce(ctx context.Context) (AutoCloseReport, error) {
	slog.Info("Cron: Starting auto-close stale punches job", "threshold", j.threshold.String())

	stale, err := j.punchService.ListStale(ctx, j.threshold)
	if err != nil {
		return AutoCloseReport{}, fmt.Errorf("failed to get stale punches: %w", err)
	}

	report := AutoCloseReport{Failures: []AutoCloseFailure{}}
	if len(stale) == 0 {
		slog.Info("Cron: No stale punches found")
		return report, nil
	}

	for _, p := range stale {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if _, err := j.punchService.AutoClose(ctx, p); err != nil {
			if errors.Is(err, punch.ErrPunchNotOpen) {
				report.Skipped++
				continue
			}
			slog.Error("Cron: Failed to auto-close punch",
				"punch_id", p.ID,
				"employee_id", p.EmployeeID,
				"error", err)
			report.Failures = append(report.Failures, AutoCloseFailure{
				PunchID:    p.ID,
				EmployeeID: p.EmployeeID,
				Error:      err.Error(),
			})
			continue
		}
		report.Closed++
	}

	slog.Info("Cron: Auto-closed stale punches",
		"closed", report.Closed,
		"skipped", report.Skipped,
		"failed", len(report.Failures))
	return report, nil
}
