package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/domain/punch"
	"github.com/poncheo/poncheo-backend-go/internal/domain/schedule"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/clock"
	"github.com/poncheo/poncheo-backend-go/internal/repository/memory"
	punchsvc "github.com/poncheo/poncheo-backend-go/internal/service/punch"
	timesheetsvc "github.com/poncheo/poncheo-backend-go/internal/service/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// brokenAutoClose fails auto-close for one punch to check the batch keeps going.
type brokenAutoClose struct {
	punch.Service
	punchID string
}

func (b brokenAutoClose) AutoClose(ctx context.Context, p punch.Punch) (punch.Punch, error) {
	if p.ID == b.punchID {
		return punch.Punch{}, errors.New("timeout")
	}
	return b.Service.AutoClose(ctx, p)
}

func openPunch(t *testing.T, store *memory.Store, employeeID, clockIn string, withShift bool) punch.Punch {
	t.Helper()
	ctx := context.Background()
	in := utc(clockIn)

	p := punch.Punch{EmployeeID: employeeID, ClockIn: in}
	if withShift {
		tmpl, err := store.Schedules().UpsertTemplate(ctx, schedule.ShiftTemplate{
			Name: "Mañana", StartTime: "08:00", EndTime: "16:00", BreakMinutes: 60, GracePeriodMinutes: 10, IsActive: true,
		})
		require.NoError(t, err)
		a, err := store.Schedules().Assign(ctx, schedule.ShiftAssignment{EmployeeID: employeeID, Date: time.Date(in.Year(), in.Month(), in.Day(), 0, 0, 0, 0, time.UTC), ShiftTemplateID: tmpl.ID})
		require.NoError(t, err)
		p.ShiftAssignmentID = &a.ID
	}

	created, err := store.Punches().Create(ctx, p)
	require.NoError(t, err)
	return created
}

func newPunchService(store *memory.Store, clk clock.Clock) punch.Service {
	ts := timesheetsvc.NewTimesheetService(store.Timesheets(), store.Punches(), store.Holidays(), time.Sunday)
	return punchsvc.NewPunchService(store.Punches(), store.Schedules(), ts, clk)
}

func TestRunAutoCloseOnce(t *testing.T) {
	store := memory.NewStore()
	clk := clock.NewFake(utc("2026-02-17T00:00:00Z"))
	jobs := NewPunchJobs(newPunchService(store, clk), 14*time.Hour)
	ctx := context.Background()

	stale := openPunch(t, store, "emp-1", "2026-02-16T08:05:00Z", true)
	fresh := openPunch(t, store, "emp-2", "2026-02-16T20:00:00Z", false)

	report, err := jobs.RunAutoCloseOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Closed)
	assert.Empty(t, report.Failures)

	closed, err := store.Punches().GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, punch.StatusAutoClosed, closed.Status)
	assert.True(t, closed.IsAutoCompleted)
	assert.True(t, closed.ClockOut.Equal(utc("2026-02-16T16:00:00Z")))

	row, err := store.Timesheets().Get(ctx, "emp-1", utc("2026-02-16T00:00:00Z"))
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, 415, row.TotalWorkedMinutes)

	stillOpen, err := store.Punches().GetByID(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, punch.StatusOpen, stillOpen.Status)

	again, err := jobs.RunAutoCloseOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, again.Closed)
}

func TestRunAutoCloseOnce_IsolatesFailures(t *testing.T) {
	store := memory.NewStore()
	clk := clock.NewFake(utc("2026-02-18T00:00:00Z"))
	ctx := context.Background()

	bad := openPunch(t, store, "emp-1", "2026-02-16T08:00:00Z", false)
	openPunch(t, store, "emp-2", "2026-02-16T09:00:00Z", false)
	openPunch(t, store, "emp-3", "2026-02-16T10:00:00Z", false)

	jobs := NewPunchJobs(brokenAutoClose{Service: newPunchService(store, clk), punchID: bad.ID}, 0)

	report, err := jobs.RunAutoCloseOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Closed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, bad.ID, report.Failures[0].PunchID)

	left, err := store.Punches().GetByID(ctx, bad.ID)
	require.NoError(t, err)
	assert.Equal(t, punch.StatusOpen, left.Status)
}

func TestRegisterJobs_RunNow(t *testing.T) {
	store := memory.NewStore()
	clk := clock.NewFake(utc("2026-02-18T00:00:00Z"))
	jobs := NewPunchJobs(newPunchService(store, clk), 14*time.Hour)

	s := NewScheduler(clk)
	jobs.RegisterJobs(s, Every(15*time.Minute))

	p := openPunch(t, store, "emp-1", "2026-02-16T08:00:00Z", false)
	require.NoError(t, s.RunNow(context.Background(), AutoCloseJobName))

	got, err := store.Punches().GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, punch.StatusAutoClosed, got.Status)
}
