package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/pkg/clock"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/timecalc"
)

var ErrJobNotFound = errors.New("cron job not found")

// Schedule yields the next run strictly after a given instant.
type Schedule interface {
	Next(after time.Time) time.Time
}

// Every runs a job at a fixed interval.
type Every time.Duration

func (e Every) Next(after time.Time) time.Time {
	return after.Add(time.Duration(e))
}

func (e Every) String() string {
	return time.Duration(e).String()
}

// Daily runs a job once a day at a UTC wall-clock time.
type Daily struct {
	At timecalc.TimeOfDay
}

func (d Daily) Next(after time.Time) time.Time {
	next := d.At.On(timecalc.DateOf(after))
	if !next.After(after) {
		next = d.At.On(timecalc.DateOf(after).AddDate(0, 0, 1))
	}
	return next
}

func (d Daily) String() string {
	return "daily at " + d.At.String()
}

// ParseSchedule accepts a Go duration ("15m") or a daily "HH:mm" time.
func ParseSchedule(s string) (Schedule, error) {
	if d, err := time.ParseDuration(s); err == nil {
		if d <= 0 {
			return nil, fmt.Errorf("schedule interval must be positive: %q", s)
		}
		return Every(d), nil
	}
	if tod, err := timecalc.ParseTimeOfDay(s); err == nil {
		return Daily{At: tod}, nil
	}
	return nil, fmt.Errorf("invalid schedule %q: want a duration like 15m or a time like 02:00", s)
}

// Job represents a scheduled job
type Job struct {
	Name     string
	Schedule Schedule
	Fn       func(ctx context.Context) error

	running sync.Mutex
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	clock  clock.Clock
	jobs   map[string]*Job
	order  []string
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewScheduler creates a new cron scheduler
func NewScheduler(clk clock.Clock) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		clock:  clk,
		jobs:   make(map[string]*Job),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob adds a job to the scheduler. A job with the same name is replaced.
func (s *Scheduler) AddJob(name string, schedule Schedule, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; !ok {
		s.order = append(s.order, name)
	}
	s.jobs[name] = &Job{Name: name, Schedule: schedule, Fn: fn}
	slog.Info("Cron job registered", "name", name, "schedule", fmt.Sprint(schedule))
}

// Start begins running all scheduled jobs. Jobs first run at their next scheduled time.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range s.order {
		s.wg.Add(1)
		go s.runJob(s.jobs[name])
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop gracefully stops all scheduled jobs
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

// runJob runs a single job on its schedule
func (s *Scheduler) runJob(job *Job) {
	defer s.wg.Done()

	for {
		now := s.clock.Now()
		wait := job.Schedule.Next(now).Sub(now)

		select {
		case <-s.ctx.Done():
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-s.clock.After(wait):
			if !job.running.TryLock() {
				slog.Warn("Cron job still running, skipping tick", "name", job.Name)
				continue
			}
			s.executeJob(s.ctx, job)
			job.running.Unlock()
		}
	}
}

// executeJob executes a job and logs results
func (s *Scheduler) executeJob(ctx context.Context, job *Job) error {
	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	err := job.Fn(ctx)
	if err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
	} else {
		slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}
	return err
}

// RunNow runs the named job synchronously, waiting for any scheduled run of it to finish first.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	job, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}

	job.running.Lock()
	defer job.running.Unlock()
	return s.executeJob(ctx, job)
}

// RunOnce runs all jobs once in registration order.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	names := append([]string(nil), s.order...)
	s.mu.Unlock()

	for _, name := range names {
		_ = s.RunNow(ctx, name)
	}
}
