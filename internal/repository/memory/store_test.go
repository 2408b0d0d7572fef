package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/domain/correction"
	"github.com/poncheo/poncheo-backend-go/internal/domain/punch"
	"github.com/poncheo/poncheo-backend-go/internal/domain/timesheet"
	"github.com/poncheo/poncheo-backend-go/internal/domain/txn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPunchCreate_OneOpenPerEmployee(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Punches()

	first, err := repo.Create(ctx, punch.Punch{EmployeeID: "emp-1", ClockIn: time.Now().UTC()})
	require.NoError(t, err)
	assert.Equal(t, punch.StatusOpen, first.Status)

	_, err = repo.Create(ctx, punch.Punch{EmployeeID: "emp-1", ClockIn: time.Now().UTC()})
	assert.ErrorIs(t, err, punch.ErrPunchAlreadyOpen)

	_, err = repo.Create(ctx, punch.Punch{EmployeeID: "emp-2", ClockIn: time.Now().UTC()})
	assert.NoError(t, err)
}

func TestPunchClose_RequiresOpen(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Punches()

	in := time.Date(2026, 2, 16, 8, 0, 0, 0, time.UTC)
	p, err := repo.Create(ctx, punch.Punch{EmployeeID: "emp-1", ClockIn: in})
	require.NoError(t, err)

	closure := punch.Closure{PunchID: p.ID, ClockOut: in.Add(9 * time.Hour), WorkedMinutes: 480, Status: punch.StatusClosed}
	closed, err := repo.Close(ctx, closure)
	require.NoError(t, err)
	assert.Equal(t, punch.StatusClosed, closed.Status)
	require.NotNil(t, closed.WorkedMinutes)
	assert.Equal(t, 480, *closed.WorkedMinutes)

	closure.Status = punch.StatusAutoClosed
	_, err = repo.Close(ctx, closure)
	assert.ErrorIs(t, err, punch.ErrPunchNotOpen)
}

func TestPunchAmend_RejectsOpen(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Punches()

	p, err := repo.Create(ctx, punch.Punch{EmployeeID: "emp-1", ClockIn: time.Now().UTC()})
	require.NoError(t, err)

	_, err = repo.Amend(ctx, punch.Amendment{PunchID: p.ID, ClockIn: p.ClockIn})
	assert.ErrorIs(t, err, punch.ErrPunchNotCorrectable)
}

func TestPunchList_Paginates(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Date(2026, 2, 16, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		p, err := s.Punches().Create(ctx, punch.Punch{EmployeeID: "emp-1", ClockIn: base.Add(time.Duration(i) * 24 * time.Hour)})
		require.NoError(t, err)
		_, err = s.Punches().Close(ctx, punch.Closure{PunchID: p.ID, ClockOut: p.ClockIn.Add(time.Hour), Status: punch.StatusClosed})
		require.NoError(t, err)
	}

	page, total, err := s.Punches().List(ctx, punch.Filter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.True(t, page[0].ClockIn.Equal(base.Add(2*24*time.Hour)))
}

func TestCorrectionCreate_OnePerPunch(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Corrections()

	_, err := repo.Create(ctx, correction.Correction{PunchID: "p-1", RequestedBy: "emp-1", Reason: "forgot to punch"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, correction.Correction{PunchID: "p-1", RequestedBy: "emp-1", Reason: "second try"})
	assert.ErrorIs(t, err, correction.ErrCorrectionExists)
}

func TestCorrectionReview_OnlyOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Corrections()

	c, err := repo.Create(ctx, correction.Correction{PunchID: "p-1", RequestedBy: "emp-1", Reason: "forgot to punch"})
	require.NoError(t, err)

	reviewed, err := repo.Review(ctx, c.ID, correction.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, correction.StatusRejected, reviewed.Status)

	_, err = repo.Review(ctx, c.ID, correction.StatusApproved)
	assert.ErrorIs(t, err, correction.ErrCorrectionAlreadyReviewed)
}

func TestTimesheetUpsert_KeepsIDAndStatus(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	date := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)

	first, err := s.Timesheets().Upsert(ctx, timesheet.DailyTimesheet{EmployeeID: "emp-1", Date: date, TotalWorkedMinutes: 480})
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusDraft, first.Status)

	s.st.timesheets[dayKey{employeeID: "emp-1", date: "2026-02-16"}] = func() timesheet.DailyTimesheet {
		ts := first
		ts.Status = timesheet.StatusApproved
		return ts
	}()

	second, err := s.Timesheets().Upsert(ctx, timesheet.DailyTimesheet{EmployeeID: "emp-1", Date: date, TotalWorkedMinutes: 420})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, timesheet.StatusApproved, second.Status)
	assert.Equal(t, 420, second.TotalWorkedMinutes)
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.Corrections().Create(ctx, correction.Correction{PunchID: "p-1", RequestedBy: "emp-1", Reason: "forgot to punch"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Corrections().GetByPunchID(ctx, "p-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.Corrections().Create(ctx, correction.Correction{PunchID: "p-1", RequestedBy: "emp-1", Reason: "forgot to punch"})
		return err
	})
	require.NoError(t, err)

	got, err := s.Corrections().GetByPunchID(ctx, "p-1")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestCanceledContext_StoreUnavailable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore().Punches().GetOpenByEmployee(ctx, "emp-1")
	assert.ErrorIs(t, err, txn.ErrStoreUnavailable)
}
