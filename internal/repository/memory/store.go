// Package memory is an in-process implementation of every repository, used by tests and local runs.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/poncheo/poncheo-backend-go/internal/domain/correction"
	"github.com/poncheo/poncheo-backend-go/internal/domain/dashboard"
	"github.com/poncheo/poncheo-backend-go/internal/domain/employee"
	"github.com/poncheo/poncheo-backend-go/internal/domain/holiday"
	"github.com/poncheo/poncheo-backend-go/internal/domain/overtime"
	"github.com/poncheo/poncheo-backend-go/internal/domain/payroll"
	"github.com/poncheo/poncheo-backend-go/internal/domain/punch"
	"github.com/poncheo/poncheo-backend-go/internal/domain/schedule"
	"github.com/poncheo/poncheo-backend-go/internal/domain/timesheet"
	"github.com/poncheo/poncheo-backend-go/internal/domain/txn"
)

type dayKey struct {
	employeeID string
	date       string
}

type periodKey struct {
	employeeID string
	start      string
	end        string
}

type state struct {
	punches     map[string]punch.Punch
	corrections map[string]correction.Correction
	approvals   map[string]correction.Approval // by correction id
	timesheets  map[dayKey]timesheet.DailyTimesheet
	summaries   map[string]payroll.Summary
	employees   map[string]employee.Employee
	templates   map[string]schedule.ShiftTemplate
	assignments map[string]schedule.ShiftAssignment
	holidays    map[string]holiday.Holiday // by date
	rules       map[string]overtime.Rule   // by name
}

func newState() *state {
	return &state{
		punches:     make(map[string]punch.Punch),
		corrections: make(map[string]correction.Correction),
		approvals:   make(map[string]correction.Approval),
		timesheets:  make(map[dayKey]timesheet.DailyTimesheet),
		summaries:   make(map[string]payroll.Summary),
		employees:   make(map[string]employee.Employee),
		templates:   make(map[string]schedule.ShiftTemplate),
		assignments: make(map[string]schedule.ShiftAssignment),
		holidays:    make(map[string]holiday.Holiday),
		rules:       make(map[string]overtime.Rule),
	}
}

func (s *state) clone() *state {
	return &state{
		punches:     maps.Clone(s.punches),
		corrections: maps.Clone(s.corrections),
		approvals:   maps.Clone(s.approvals),
		timesheets:  maps.Clone(s.timesheets),
		summaries:   maps.Clone(s.summaries),
		employees:   maps.Clone(s.employees),
		templates:   maps.Clone(s.templates),
		assignments: maps.Clone(s.assignments),
		holidays:    maps.Clone(s.holidays),
		rules:       maps.Clone(s.rules),
	}
}

// Store holds all entities behind one mutex. WithinTx holds the mutex for the whole
// unit of work and restores a snapshot when fn fails.
type Store struct {
	mu sync.Mutex
	st *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

type txKey struct{}

// WithinTx implements txn.Manager.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// begin locks the store unless ctx already runs inside one of its transactions.
func (s *Store) begin(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", txn.ErrStoreUnavailable, err)
	}
	if s.inTx(ctx) {
		return func() {}, nil
	}
	s.mu.Lock()
	return s.mu.Unlock, nil
}

func (s *Store) Punches() punch.Repository           { return &punchRepository{s: s} }
func (s *Store) Corrections() correction.Repository { return &correctionRepository{s: s} }
func (s *Store) Timesheets() timesheet.Repository   { return &timesheetRepository{s: s} }
func (s *Store) Payroll() payroll.Repository        { return &payrollRepository{s: s} }
func (s *Store) Employees() employee.Repository     { return &employeeRepository{s: s} }
func (s *Store) Schedules() schedule.Repository     { return &scheduleRepository{s: s} }
func (s *Store) Holidays() holiday.Repository       { return &holidayRepository{s: s} }
func (s *Store) OvertimeRules() overtime.Repository { return &overtimeRepository{s: s} }
func (s *Store) Dashboard() dashboard.Repository     { return &dashboardRepository{s: s} }

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func now() time.Time {
	return time.Now().UTC()
}

func dateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Ping reports ctx errors only; the in-process store is always reachable.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
