package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/domain/correction"
	"github.com/poncheo/poncheo-backend-go/internal/domain/employee"
	"github.com/poncheo/poncheo-backend-go/internal/domain/payroll"
	"github.com/poncheo/poncheo-backend-go/internal/domain/punch"
	"github.com/poncheo/poncheo-backend-go/internal/domain/schedule"
	"github.com/poncheo/poncheo-backend-go/internal/domain/timesheet"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/database"
	"github.com/poncheo/poncheo-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
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

func createEmployee(t *testing.T, db *database.DB, code, first, last string) employee.Employee {
	t.Helper()
	e, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		EmployeeCode: code,
		FirstName:    first,
		LastName:     last,
		HourlyRate:   decimal.NewFromInt(200),
		Role:         employee.RoleEmployee,
		IsActive:     true,
	})
	require.NoError(t, err)
	return e
}

func assignShift(t *testing.T, db *database.DB, employeeID, date string) schedule.ShiftAssignment {
	t.Helper()
	ctx := context.Background()
	repo := postgresql.NewScheduleRepository(db)
	tmpl, err := repo.UpsertTemplate(ctx, schedule.ShiftTemplate{
		Name: "Mañana", StartTime: "08:00", EndTime: "16:00", BreakMinutes: 60, GracePeriodMinutes: 10,
		ShiftType: schedule.ShiftTypeDiurna, IsActive: true,
	})
	require.NoError(t, err)
	a, err := repo.Assign(ctx, schedule.ShiftAssignment{EmployeeID: employeeID, Date: utc(date + "T00:00:00Z"), ShiftTemplateID: tmpl.ID})
	require.NoError(t, err)
	return a
}

func TestPunchRepository_OneOpenPerEmployee(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	emp := createEmployee(t, db, "EMP-001", "María", "González")
	a := assignShift(t, db, emp.ID, "2026-02-16")
	repo := postgresql.NewPunchRepository(db)

	p, err := repo.Create(ctx, punch.Punch{EmployeeID: emp.ID, ShiftAssignmentID: &a.ID, ClockIn: utc("2026-02-16T08:05:00Z")})
	require.NoError(t, err)
	assert.Equal(t, punch.StatusOpen, p.Status)
	require.NotNil(t, p.ShiftDate)
	assert.True(t, p.ShiftDate.Equal(utc("2026-02-16T00:00:00Z")))

	_, err = repo.Create(ctx, punch.Punch{EmployeeID: emp.ID, ClockIn: utc("2026-02-16T09:00:00Z")})
	assert.ErrorIs(t, err, punch.ErrPunchAlreadyOpen)

	open, err := repo.GetOpenByEmployee(ctx, emp.ID)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, p.ID, open.ID)
}

func TestPunchRepository_CloseWinsOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	emp := createEmployee(t, db, "EMP-001", "María", "González")
	a := assignShift(t, db, emp.ID, "2026-02-16")
	repo := postgresql.NewPunchRepository(db)

	p, err := repo.Create(ctx, punch.Punch{EmployeeID: emp.ID, ShiftAssignmentID: &a.ID, ClockIn: utc("2026-02-16T08:00:00Z")})
	require.NoError(t, err)

	closed, err := repo.Close(ctx, punch.Closure{PunchID: p.ID, ClockOut: utc("2026-02-16T16:00:00Z"), WorkedMinutes: 420, Status: punch.StatusClosed})
	require.NoError(t, err)
	assert.Equal(t, punch.StatusClosed, closed.Status)
	require.NotNil(t, closed.WorkedMinutes)
	assert.Equal(t, 420, *closed.WorkedMinutes)

	_, err = repo.Close(ctx, punch.Closure{PunchID: p.ID, ClockOut: utc("2026-02-16T16:00:00Z"), WorkedMinutes: 420, Status: punch.StatusAutoClosed, IsAutoCompleted: true})
	assert.ErrorIs(t, err, punch.ErrPunchNotOpen)

	_, err = repo.Close(ctx, punch.Closure{PunchID: "0190f0a4-0000-7000-8000-000000000000", Status: punch.StatusClosed})
	assert.ErrorIs(t, err, punch.ErrPunchNotFound)

	terminal, err := repo.ListTerminalByShiftDate(ctx, emp.ID, utc("2026-02-16T00:00:00Z"))
	require.NoError(t, err)
	assert.Len(t, terminal, 1)
}

func TestCorrectionRepository_ApprovalRollsBackWithTx(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	emp := createEmployee(t, db, "EMP-001", "María", "González")
	sup := createEmployee(t, db, "SUP-001", "Carlos", "Rodríguez")
	punches := postgresql.NewPunchRepository(db)
	corrections := postgresql.NewCorrectionRepository(db)
	tx := postgresql.NewTxManager(db)

	p, err := punches.Create(ctx, punch.Punch{EmployeeID: emp.ID, ClockIn: utc("2026-02-16T08:00:00Z")})
	require.NoError(t, err)
	_, err = punches.Close(ctx, punch.Closure{PunchID: p.ID, ClockOut: utc("2026-02-16T15:00:00Z"), WorkedMinutes: 360, Status: punch.StatusClosed})
	require.NoError(t, err)

	out := utc("2026-02-16T16:30:00Z")
	c, err := corrections.Create(ctx, correction.Correction{
		PunchID: p.ID, RequestedBy: emp.ID, Reason: "Forgot to clock out",
		OriginalClockIn: p.ClockIn, CorrectedClockIn: p.ClockIn, CorrectedClockOut: &out,
	})
	require.NoError(t, err)
	assert.Equal(t, correction.StatusPending, c.Status)

	_, err = corrections.Create(ctx, correction.Correction{PunchID: p.ID, RequestedBy: emp.ID, Reason: "again", OriginalClockIn: p.ClockIn, CorrectedClockIn: p.ClockIn})
	assert.ErrorIs(t, err, correction.ErrCorrectionExists)

	boom := errors.New("boom")
	err = tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := corrections.Review(ctx, c.ID, correction.StatusApproved); err != nil {
			return err
		}
		if _, err := corrections.CreateApproval(ctx, correction.Approval{CorrectionID: c.ID, SupervisorID: sup.ID, Decision: correction.StatusApproved}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := corrections.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, correction.StatusPending, got.Status)
	assert.Nil(t, got.Approval)

	_, err = corrections.Review(ctx, c.ID, correction.StatusRejected)
	require.NoError(t, err)
	_, err = corrections.Review(ctx, c.ID, correction.StatusApproved)
	assert.ErrorIs(t, err, correction.ErrCorrectionAlreadyReviewed)
}

func TestTimesheetRepository_UpsertKeepsIDAndStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	emp := createEmployee(t, db, "EMP-001", "María", "González")
	repo := postgresql.NewTimesheetRepository(db)
	date := utc("2026-02-16T00:00:00Z")

	first, err := repo.Upsert(ctx, timesheet.DailyTimesheet{EmployeeID: emp.ID, Date: date, TotalWorkedMinutes: 420, RegularMinutes: 420})
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusDraft, first.Status)

	_, err = db.Exec(ctx, "UPDATE daily_timesheets SET status = 'APPROVED' WHERE id = $1", first.ID)
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, timesheet.DailyTimesheet{EmployeeID: emp.ID, Date: date, TotalWorkedMinutes: 450, RegularMinutes: 450})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, timesheet.StatusApproved, second.Status)
	assert.Equal(t, 450, second.TotalWorkedMinutes)

	rows, err := repo.ListByEmployee(ctx, emp.ID, date, date)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestPayrollRepository_UpsertAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ana := createEmployee(t, db, "EMP-002", "Ana", "Núñez")
	luis := createEmployee(t, db, "EMP-003", "Luis", "Báez")
	repo := postgresql.NewPayrollRepository(db)

	start, end := utc("2026-02-09T00:00:00Z"), utc("2026-02-15T00:00:00Z")
	for _, e := range []employee.Employee{ana, luis} {
		_, err := repo.Upsert(ctx, payroll.Summary{
			EmployeeID: e.ID, PeriodStart: start, PeriodEnd: end, PeriodType: payroll.PeriodTypeWeekly,
			TotalWorkedMinutes: 3000, RegularMinutes: 2640, OvertimeMinutes: 360,
			RegularPay: decimal.RequireFromString("8800.00"), OvertimePay: decimal.RequireFromString("1620.00"),
			GrossPay: decimal.RequireFromString("10420.00"), GeneratedBy: "test", Status: payroll.StatusDraft,
		})
		require.NoError(t, err)
	}

	list, err := repo.List(ctx, payroll.Filter{Start: &start, End: &end})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Báez", list[0].Employee.LastName)
	assert.True(t, list[0].GrossPay.Equal(decimal.RequireFromString("10420.00")))

	finalized, err := repo.SetStatus(ctx, list[0].ID, payroll.StatusFinalized)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusFinalized, finalized.Status)

	again, err := repo.Upsert(ctx, payroll.Summary{
		EmployeeID: luis.ID, PeriodStart: start, PeriodEnd: end, PeriodType: payroll.PeriodTypeWeekly,
		GeneratedBy: "test", Status: payroll.StatusDraft,
	})
	require.NoError(t, err)
	assert.Equal(t, list[0].ID, again.ID)
	assert.Equal(t, payroll.StatusDraft, again.Status)

	_, err = repo.GetByID(ctx, "0190f0a4-0000-7000-8000-000000000000")
	assert.ErrorIs(t, err, payroll.ErrSummaryNotFound)
}
