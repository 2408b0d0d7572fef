package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFake_AdvanceFiresDueWaiters(t *testing.T) {
	start := time.Date(2026, 2, 16, 8, 0, 0, 0, time.UTC)
	f := NewFake(start)

	early := f.After(time.Minute)
	late := f.After(time.Hour)

	f.Advance(2 * time.Minute)

	select {
	case got := <-early:
		assert.Equal(t, start.Add(2*time.Minute), got)
	default:
		t.Fatal("expected the one-minute waiter to fire")
	}

	select {
	case <-late:
		t.Fatal("one-hour waiter fired early")
	default:
	}

	f.Advance(time.Hour)
	select {
	case <-late:
	default:
		t.Fatal("expected the one-hour waiter to fire")
	}
}

func TestFake_BlockUntil(t *testing.T) {
	f := NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	go func() { <-f.After(time.Second) }()
	f.BlockUntil(1)

	f.Advance(time.Second)
	require.Equal(t, time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC), f.Now())
}

func TestFake_NonPositiveDurationFiresImmediately(t *testing.T) {
	f := NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	select {
	case <-f.After(0):
	default:
		t.Fatal("zero duration should fire immediately")
	}
}
