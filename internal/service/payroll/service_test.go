package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/domain/employee"
	"github.com/poncheo/poncheo-backend-go/internal/domain/payroll"
	"github.com/poncheo/poncheo-backend-go/internal/domain/timesheet"
	"github.com/poncheo/poncheo-backend-go/internal/repository/memory"
	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func newTestService(t *testing.T, store *memory.Store, withRules bool) payroll.Service {
	t.Helper()
	if withRules {
		for _, r := range standardRules() {
			_, err := store.OvertimeRules().Upsert(context.Background(), r)
			require.NoError(t, err)
		}
	}
	return NewPayrollService(store.Payroll(), store.Employees(), store.Timesheets(), store.OvertimeRules(), 2)
}

func createEmployee(t *testing.T, store *memory.Store, id, code, first, last, rate string, dept *string) {
	t.Helper()
	_, err := store.Employees().Create(context.Background(), employee.Employee{
		ID:             id,
		EmployeeCode:   code,
		FirstName:      first,
		LastName:       last,
		DepartmentName: dept,
		HourlyRate:     decimal.RequireFromString(rate),
		Role:           employee.RoleEmployee,
		IsActive:       true,
	})
	require.NoError(t, err)
}

func workDays(t *testing.T, store *memory.Store, employeeID string, start time.Time, days, minutes int) {
	t.Helper()
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		_, err := store.Timesheets().Upsert(context.Background(), timesheet.DailyTimesheet{
			EmployeeID:         employeeID,
			Date:               d,
			TotalWorkedMinutes: minutes,
			RegularMinutes:     minutes,
			IsRestDay:          d.Weekday() == time.Sunday,
		})
		require.NoError(t, err)
	}
}

func weekRequest(ids ...string) payroll.GenerateRequest {
	return payroll.GenerateRequest{
		PeriodStart: "2026-02-16",
		PeriodEnd:   "2026-02-22",
		EmployeeIDs: ids,
		GeneratedBy: "sup-1",
	}
}

func TestGenerate(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(t, store, true)
	ctx := context.Background()

	createEmployee(t, store, "emp-1", "EMP-001", "Ana", "Ávila", "200", nil)
	// Mon-Fri 10h, outside the period on the following Monday.
	workDays(t, store, "emp-1", date("2026-02-16"), 5, 600)
	workDays(t, store, "emp-1", date("2026-02-23"), 1, 600)

	got, err := svc.Generate(ctx, weekRequest())
	require.NoError(t, err)
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, 3000, s.TotalWorkedMinutes)
	assert.Equal(t, 2640, s.RegularMinutes)
	assert.Equal(t, 360, s.OvertimeMinutes)
	assert.Equal(t, "8800.00", s.RegularPay)
	assert.Equal(t, "1620.00", s.OvertimePay)
	assert.Equal(t, "10420.00", s.GrossPay)
	assert.Equal(t, payroll.StatusDraft, s.Status)
	assert.Equal(t, payroll.PeriodTypeWeekly, s.PeriodType)
	assert.Equal(t, "EMP-001", s.EmployeeCode)
}

func TestGenerate_RestDayPremium(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(t, store, true)

	createEmployee(t, store, "emp-1", "EMP-001", "Ana", "Ávila", "60", nil)
	// 2026-02-22 is a Sunday.
	workDays(t, store, "emp-1", date("2026-02-22"), 1, 480)

	got, err := svc.Generate(context.Background(), weekRequest())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 480, got[0].HolidayMinutes)
	assert.Equal(t, "480.00", got[0].HolidayPay)
	assert.Equal(t, "960.00", got[0].GrossPay)
}

func TestGenerate_MissingRuleAbortsBeforeWriting(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(t, store, false)
	ctx := context.Background()

	for _, r := range standardRules()[:5] {
		_, err := store.OvertimeRules().Upsert(ctx, r)
		require.NoError(t, err)
	}
	createEmployee(t, store, "emp-1", "EMP-001", "Ana", "Ávila", "200", nil)
	workDays(t, store, "emp-1", date("2026-02-16"), 5, 480)

	_, err := svc.Generate(ctx, weekRequest())
	require.ErrorIs(t, err, payroll.ErrOvertimeRuleMissing)

	all, err := svc.List(ctx, payroll.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGenerate_OnlySelectedActiveEmployees(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(t, store, true)
	ctx := context.Background()

	createEmployee(t, store, "emp-1", "EMP-001", "Ana", "Ávila", "200", nil)
	createEmployee(t, store, "emp-2", "EMP-002", "Luis", "Báez", "150", nil)
	_, err := store.Employees().Create(ctx, employee.Employee{ID: "emp-3", EmployeeCode: "EMP-003", FirstName: "Old", LastName: "Timer", HourlyRate: decimal.NewFromInt(100)})
	require.NoError(t, err)

	got, err := svc.Generate(ctx, weekRequest("emp-2", "emp-3"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "emp-2", got[0].EmployeeID)
	assert.Equal(t, "0.00", got[0].GrossPay)
}

func TestGenerate_RegenerateOverwrites(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(t, store, true)
	ctx := context.Background()

	createEmployee(t, store, "emp-1", "EMP-001", "Ana", "Ávila", "200", nil)
	workDays(t, store, "emp-1", date("2026-02-16"), 1, 480)

	first, err := svc.Generate(ctx, weekRequest())
	require.NoError(t, err)

	_, err = svc.Finalize(ctx, first[0].ID)
	require.NoError(t, err)

	workDays(t, store, "emp-1", date("2026-02-17"), 1, 480)
	second, err := svc.Generate(ctx, weekRequest())
	require.NoError(t, err)

	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, 960, second[0].TotalWorkedMinutes)
	assert.Equal(t, payroll.StatusDraft, second[0].Status)
}

func TestGenerate_InvalidPeriod(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(t, store, true)

	req := weekRequest()
	req.PeriodEnd = "2026-02-01"
	_, err := svc.Generate(context.Background(), req)
	assert.Error(t, err)
}

// failingTimesheets fails for one employee so the rest of the run can be checked.
type failingTimesheets struct {
	timesheet.Repository
	failFor string
}

func (f failingTimesheets) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.DailyTimesheet, error) {
	if employeeID == f.failFor {
		return nil, errors.New("connection reset")
	}
	return f.Repository.ListByEmployee(ctx, employeeID, from, to)
}

func TestGenerate_IsolatesEmployeeFailures(t *testing.T) {
	store := memory.NewStore()
	newTestService(t, store, true)
	svc := NewPayrollService(store.Payroll(), store.Employees(), failingTimesheets{store.Timesheets(), "emp-2"}, store.OvertimeRules(), 2)
	ctx := context.Background()

	createEmployee(t, store, "emp-1", "EMP-001", "Ana", "Ávila", "200", nil)
	createEmployee(t, store, "emp-2", "EMP-002", "Luis", "Báez", "150", nil)
	createEmployee(t, store, "emp-3", "EMP-003", "José", "Núñez", "100", nil)

	got, err := svc.Generate(ctx, weekRequest())
	require.Error(t, err)
	assert.Len(t, got, 2)

	var empErr *payroll.EmployeeError
	require.True(t, errors.As(err, &empErr))
	assert.Equal(t, "emp-2", empErr.EmployeeID)
}

func TestFinalizeAndRevert(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(t, store, true)
	ctx := context.Background()

	createEmployee(t, store, "emp-1", "EMP-001", "Ana", "Ávila", "200", nil)
	workDays(t, store, "emp-1", date("2026-02-16"), 1, 480)
	got, err := svc.Generate(ctx, weekRequest())
	require.NoError(t, err)

	finalized, err := svc.Finalize(ctx, got[0].ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusFinalized, finalized.Status)
	assert.Equal(t, got[0].GrossPay, finalized.GrossPay)

	reverted, err := svc.Revert(ctx, got[0].ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusDraft, reverted.Status)

	_, err = svc.Finalize(ctx, "missing")
	assert.ErrorIs(t, err, payroll.ErrSummaryNotFound)
}

func TestExportCSV(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(t, store, true)
	ctx := context.Background()

	createEmployee(t, store, "emp-1", "EMP-001", "José", "Núñez", "100", strPtr("Operaciones, Turno B"))
	createEmployee(t, store, "emp-2", "EMP-002", "Ana", "Ávila", "200", nil)
	createEmployee(t, store, "emp-3", "EMP-003", `Luis "Lucho"`, "Báez", "150", strPtr("Seguridad"))

	put := func(empID string, status payroll.Status, worked, regular, ot, night, holiday, tardiness int, pay ...string) {
		_, err := store.Payroll().Upsert(ctx, payroll.Summary{
			EmployeeID:            empID,
			PeriodStart:           date("2026-02-16"),
			PeriodEnd:             date("2026-02-22"),
			PeriodType:            payroll.PeriodTypeWeekly,
			TotalWorkedMinutes:    worked,
			RegularMinutes:        regular,
			OvertimeMinutes:       ot,
			NightMinutes:          night,
			HolidayMinutes:        holiday,
			TotalTardinessMinutes: tardiness,
			RegularPay:            decimal.RequireFromString(pay[0]),
			OvertimePay:           decimal.RequireFromString(pay[1]),
			NightPremiumPay:       decimal.RequireFromString(pay[2]),
			HolidayPay:            decimal.RequireFromString(pay[3]),
			GrossPay:              decimal.RequireFromString(pay[4]),
			GeneratedBy:           "sup-1",
			Status:                status,
		})
		require.NoError(t, err)
	}
	put("emp-1", payroll.StatusDraft, 4200, 2640, 1560, 0, 0, 0, "4400", "3640", "0", "0", "8040")
	put("emp-2", payroll.StatusDraft, 3000, 2640, 360, 0, 0, 0, "8800", "1620", "0", "0", "10420")
	put("emp-3", payroll.StatusFinalized, 2400, 2400, 0, 420, 480, 15, "6000", "0", "157.5", "1200", "7357.5")

	out, err := svc.ExportCSV(ctx, payroll.Filter{PeriodStart: strPtr("2026-02-16")})
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "payroll_export", out)
}

func TestExportCSV_HeaderOnlyWhenEmpty(t *testing.T) {
	store := memory.NewStore()
	svc := newTestService(t, store, true)

	out, err := svc.ExportCSV(context.Background(), payroll.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "employeeCode,employeeName,department,periodStart,periodEnd,status,totalWorkedMinutes,regularMinutes,overtimeMinutes,nightMinutes,holidayMinutes,totalTardinessMinutes,regularPay,overtimePay,nightPremiumPay,holidayPay,grossPay\n", string(out))
}
