package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/pkg/clock"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/timecalc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchedule(t *testing.T) {
	s, err := ParseSchedule("15m")
	require.NoError(t, err)
	assert.Equal(t, Every(15*time.Minute), s)

	s, err = ParseSchedule("02:30")
	require.NoError(t, err)
	assert.Equal(t, Daily{At: timecalc.TimeOfDay{Hour: 2, Minute: 30}}, s)

	for _, bad := range []string{"", "-5m", "0s", "25:00", "soon"} {
		_, err := ParseSchedule(bad)
		assert.Error(t, err, bad)
	}
}

func TestDaily_Next(t *testing.T) {
	d := Daily{At: timecalc.TimeOfDay{Hour: 2}}

	before := time.Date(2026, 2, 16, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 2, 16, 2, 0, 0, 0, time.UTC), d.Next(before))

	exactly := time.Date(2026, 2, 16, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 2, 17, 2, 0, 0, 0, time.UTC), d.Next(exactly))
}

func TestScheduler_RunsOnEachTick(t *testing.T) {
	clk := clock.NewFake(time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC))
	s := NewScheduler(clk)

	var calls atomic.Int32
	s.AddJob("tick", Every(10*time.Minute), func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})
	s.Start()
	defer s.Stop()

	clk.BlockUntil(1)
	assert.Zero(t, calls.Load(), "job must not run before its first tick")

	for i := int32(1); i <= 3; i++ {
		clk.BlockUntil(1)
		clk.Advance(10 * time.Minute)
		require.Eventually(t, func() bool { return calls.Load() == i }, 2*time.Second, 5*time.Millisecond)
	}
}

func TestScheduler_RunNow(t *testing.T) {
	s := NewScheduler(clock.NewFake(time.Now()))

	var calls atomic.Int32
	boom := errors.New("boom")
	s.AddJob("ok", Every(time.Hour), func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})
	s.AddJob("fails", Every(time.Hour), func(ctx context.Context) error {
		return boom
	})

	require.NoError(t, s.RunNow(context.Background(), "ok"))
	assert.Equal(t, int32(1), calls.Load())

	assert.ErrorIs(t, s.RunNow(context.Background(), "fails"), boom)
	assert.ErrorIs(t, s.RunNow(context.Background(), "missing"), ErrJobNotFound)

	s.RunOnce(context.Background())
	assert.Equal(t, int32(2), calls.Load())
}

func TestScheduler_StopEndsLoops(t *testing.T) {
	clk := clock.NewFake(time.Now())
	s := NewScheduler(clk)
	s.AddJob("tick", Every(time.Minute), func(ctx context.Context) error { return nil })
	s.Start()

	clk.BlockUntil(1)

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
