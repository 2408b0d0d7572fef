// Package timecalc holds the interval arithmetic behind punches, timesheets and auto-close.
// Every function works on UTC wall-clock time; callers pass instants already in UTC.
package timecalc

import (
	"errors"
	"fmt"
	"time"
)

const (
	NightStartHour = 21
	NightEndHour   = 7
)

var ErrInvalidTimeOfDay = errors.New("time of day must be HH:mm")

// TimeOfDay is a shift boundary such as "08:00" or "22:30".
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:mm" (24h).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Before reports whether t is earlier in the day than u.
func (t TimeOfDay) Before(u TimeOfDay) bool {
	if t.Hour != u.Hour {
		return t.Hour < u.Hour
	}
	return t.Minute < u.Minute
}

// On returns the instant at t on the calendar date of d.
func (t TimeOfDay) On(d time.Time) time.Time {
	d = DateOf(d)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, time.UTC)
}

// DateOf truncates an instant to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FloorMinutes converts d to whole minutes rounding toward negative infinity.
func FloorMinutes(d time.Duration) int {
	m := d / time.Minute
	if d%time.Minute < 0 {
		m--
	}
	return int(m)
}

// WorkedMinutes is the elapsed whole minutes between clock-in and clock-out minus the break, never negative.
func WorkedMinutes(clockIn, clockOut time.Time, breakMinutes int) int {
	return max(FloorMinutes(clockOut.Sub(clockIn))-breakMinutes, 0)
}

// NightMinutes counts the minutes of [clockIn, clockOut) that fall between 21:00 and 07:00.
// Overlaps are accumulated as durations and floored once so the result is additive
// across adjacent minute-aligned intervals.
func NightMinutes(clockIn, clockOut time.Time) int {
	clockIn, clockOut = clockIn.UTC(), clockOut.UTC()
	if !clockIn.Before(clockOut) {
		return 0
	}

	var night time.Duration
	for day := DateOf(clockIn); day.Before(clockOut); day = day.AddDate(0, 0, 1) {
		morningEnd := day.Add(NightEndHour * time.Hour)
		eveningStart := day.Add(NightStartHour * time.Hour)
		nextDay := day.AddDate(0, 0, 1)

		night += overlap(clockIn, clockOut, day, morningEnd)
		night += overlap(clockIn, clockOut, eveningStart, nextDay)
	}
	return FloorMinutes(night)
}

func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !start.Before(end) {
		return 0
	}
	return end.Sub(start)
}

// Tardiness returns the minutes late beyond the grace period, or 0 when inside it.
func Tardiness(clockIn, scheduledStart time.Time, graceMinutes int) int {
	diff := FloorMinutes(clockIn.Sub(scheduledStart))
	if diff <= graceMinutes {
		return 0
	}
	return diff - graceMinutes
}

// ShiftEnd returns the instant a shift starting on date ends. Shifts whose end is
// earlier than their start cross midnight and end on the following day.
func ShiftEnd(date time.Time, start, end TimeOfDay) time.Time {
	ts := end.On(date)
	if end.Before(start) {
		ts = ts.AddDate(0, 0, 1)
	}
	return ts
}
