package timecalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func mustTOD(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func TestWorkedMinutes(t *testing.T) {
	tests := []struct {
		name     string
		in, out  string
		brk      int
		expected int
	}{
		{"eight hour shift with one hour break", "2026-02-16T08:00:00Z", "2026-02-16T16:00:00Z", 60, 420},
		{"no break", "2026-02-16T09:00:00Z", "2026-02-16T13:00:00Z", 0, 240},
		{"partial minute floors", "2026-02-16T08:00:00Z", "2026-02-16T08:10:59Z", 0, 10},
		{"break longer than shift clamps to zero", "2026-02-16T08:00:00Z", "2026-02-16T08:30:00Z", 60, 0},
		{"crosses midnight", "2026-02-16T22:00:00Z", "2026-02-17T06:00:00Z", 60, 420},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WorkedMinutes(utc(tt.in), utc(tt.out), tt.brk))
		})
	}
}

func TestNightMinutes(t *testing.T) {
	tests := []struct {
		name     string
		in, out  string
		expected int
	}{
		{"overnight shift", "2026-02-16T22:00:00Z", "2026-02-17T05:00:00Z", 420},
		{"day shift has none", "2026-02-16T08:00:00Z", "2026-02-16T16:00:00Z", 0},
		{"evening tail", "2026-02-16T14:00:00Z", "2026-02-16T22:00:00Z", 60},
		{"early morning head", "2026-02-16T05:30:00Z", "2026-02-16T09:00:00Z", 90},
		{"full night window", "2026-02-16T21:00:00Z", "2026-02-17T07:00:00Z", 600},
		{"spans two nights", "2026-02-16T20:00:00Z", "2026-02-18T08:00:00Z", 1200},
		{"empty interval", "2026-02-16T22:00:00Z", "2026-02-16T22:00:00Z", 0},
		{"reversed interval", "2026-02-17T05:00:00Z", "2026-02-16T22:00:00Z", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NightMinutes(utc(tt.in), utc(tt.out)))
		})
	}
}

func TestNightMinutes_Additive(t *testing.T) {
	a := utc("2026-02-16T19:00:00Z")
	b := utc("2026-02-17T01:17:00Z")
	c := utc("2026-02-17T09:00:00Z")

	assert.Equal(t, NightMinutes(a, c), NightMinutes(a, b)+NightMinutes(b, c))

	mid := utc("2026-02-17T00:00:00Z")
	assert.Equal(t, NightMinutes(a, c), NightMinutes(a, mid)+NightMinutes(mid, c))
}

func TestTardiness(t *testing.T) {
	start := utc("2026-02-16T08:00:00Z")

	assert.Equal(t, 0, Tardiness(utc("2026-02-16T07:50:00Z"), start, 10), "early is never tardy")
	assert.Equal(t, 0, Tardiness(utc("2026-02-16T08:05:00Z"), start, 10))
	assert.Equal(t, 0, Tardiness(utc("2026-02-16T08:10:00Z"), start, 10), "boundary is inside grace")
	assert.Equal(t, 1, Tardiness(utc("2026-02-16T08:11:00Z"), start, 10))
	assert.Equal(t, 20, Tardiness(utc("2026-02-16T08:30:45Z"), start, 10))
}

func TestShiftEnd(t *testing.T) {
	date := utc("2026-02-16T00:00:00Z")

	got := ShiftEnd(date, mustTOD(t, "22:00"), mustTOD(t, "06:00"))
	assert.Equal(t, utc("2026-02-17T06:00:00Z"), got)

	got = ShiftEnd(date, mustTOD(t, "08:00"), mustTOD(t, "16:00"))
	assert.Equal(t, utc("2026-02-16T16:00:00Z"), got)

	got = ShiftEnd(date, mustTOD(t, "14:30"), mustTOD(t, "14:00"))
	assert.Equal(t, utc("2026-02-17T14:00:00Z"), got, "minute comparison decides crossing")
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("07:05")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 7, Minute: 5}, tod)
	assert.Equal(t, "07:05", tod.String())

	for _, bad := range []string{"", "7", "24:00", "12:60", "ab:cd"} {
		_, err := ParseTimeOfDay(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay, bad)
	}
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("AST", -4*3600)
	local := time.Date(2026, 2, 16, 22, 0, 0, 0, loc)
	assert.Equal(t, utc("2026-02-17T00:00:00Z"), DateOf(local))
}

func TestFloorMinutes(t *testing.T) {
	assert.Equal(t, 1, FloorMinutes(90*time.Second))
	assert.Equal(t, -2, FloorMinutes(-90*time.Second))
	assert.Equal(t, 0, FloorMinutes(0))
}
