// Package app builds the object graph shared by the API server and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/poncheo/poncheo-backend-go/internal/config"
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
	appHTTP "github.com/poncheo/poncheo-backend-go/internal/handler/http"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/clock"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/cron"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/database"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/jwt"
	"github.com/poncheo/poncheo-backend-go/internal/repository/memory"
	"github.com/poncheo/poncheo-backend-go/internal/repository/postgresql"
	correctionService "github.com/poncheo/poncheo-backend-go/internal/service/correction"
	dashboardService "github.com/poncheo/poncheo-backend-go/internal/service/dashboard"
	holidayService "github.com/poncheo/poncheo-backend-go/internal/service/holiday"
	payrollService "github.com/poncheo/poncheo-backend-go/internal/service/payroll"
	punchService "github.com/poncheo/poncheo-backend-go/internal/service/punch"
	scheduleService "github.com/poncheo/poncheo-backend-go/internal/service/schedule"
	timesheetService "github.com/poncheo/poncheo-backend-go/internal/service/timesheet"
)

type Repositories struct {
	Punches       punch.Repository
	Corrections   correction.Repository
	Timesheets    timesheet.Repository
	Payroll       payroll.Repository
	Employees     employee.Repository
	Schedules     schedule.Repository
	Holidays      holiday.Repository
	OvertimeRules overtime.Repository
	Dashboard     dashboard.Repository
	Tx            txn.Manager
}

type Services struct {
	Punch      punch.Service
	Correction correction.Service
	Timesheet  timesheet.Service
	Payroll    payroll.Service
	Dashboard  dashboard.Service
	Holiday    holiday.Service
	Schedule   schedule.Service
}

type App struct {
	Config    *config.Config
	Clock     clock.Clock
	Repos     Repositories
	Services  Services
	JWT       jwt.Service
	PunchJobs *cron.PunchJobs
	Scheduler *cron.Scheduler

	db     *database.DB
	pinger appHTTP.Pinger
}

// New connects to the configured store and wires every service.
func New(ctx context.Context, cfg *config.Config, clk clock.Clock) (*App, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		slog.Warn("Using in-memory store, data is lost on exit")
		return NewWithStore(cfg, clk, memory.NewStore()), nil

	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.Options{
			MaxConns:     cfg.Database.MaxConns,
			MinConns:     cfg.Database.MinConns,
			QueryTimeout: cfg.Database.QueryTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		a := build(cfg, clk, Repositories{
			Punches:       postgresql.NewPunchRepository(db),
			Corrections:   postgresql.NewCorrectionRepository(db),
			Timesheets:    postgresql.NewTimesheetRepository(db),
			Payroll:       postgresql.NewPayrollRepository(db),
			Employees:     postgresql.NewEmployeeRepository(db),
			Schedules:     postgresql.NewScheduleRepository(db),
			Holidays:      postgresql.NewHolidayRepository(db),
			OvertimeRules: postgresql.NewOvertimeRepository(db),
			Dashboard:     postgresql.NewDashboardRepository(db),
			Tx:            postgresql.NewTxManager(db),
		})
		a.db = db
		a.pinger = db
		return a, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// NewWithStore wires the app on an in-process store.
func NewWithStore(cfg *config.Config, clk clock.Clock, store *memory.Store) *App {
	a := build(cfg, clk, Repositories{
		Punches:       store.Punches(),
		Corrections:   store.Corrections(),
		Timesheets:    store.Timesheets(),
		Payroll:       store.Payroll(),
		Employees:     store.Employees(),
		Schedules:     store.Schedules(),
		Holidays:      store.Holidays(),
		OvertimeRules: store.OvertimeRules(),
		Dashboard:     store.Dashboard(),
		Tx:            store,
	})
	a.pinger = store
	return a
}

func build(cfg *config.Config, clk clock.Clock, repos Repositories) *App {
	timesheetSvc := timesheetService.NewTimesheetService(repos.Timesheets, repos.Punches, repos.Holidays, cfg.Calendar.RestDay)
	punchSvc := punchService.NewPunchService(repos.Punches, repos.Schedules, timesheetSvc, clk)

	return &App{
		Config: cfg,
		Clock:  clk,
		Repos:  repos,
		Services: Services{
			Punch:      punchSvc,
			Correction: correctionService.NewCorrectionService(repos.Corrections, repos.Punches, repos.Schedules, timesheetSvc, repos.Tx),
			Timesheet:  timesheetSvc,
			Payroll:    payrollService.NewPayrollService(repos.Payroll, repos.Employees, repos.Timesheets, repos.OvertimeRules, cfg.Payroll.Concurrency),
			Dashboard:  dashboardService.NewDashboardService(repos.Dashboard, clk),
			Holiday:    holidayService.NewHolidayService(repos.Holidays),
			Schedule:   scheduleService.NewScheduleService(repos.Schedules, repos.Employees),
		},
		JWT:       jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration),
		PunchJobs: cron.NewPunchJobs(punchSvc, cfg.AutoClose.Threshold),
		Scheduler: cron.NewScheduler(clk),
	}
}

// Router mounts every handler.
func (a *App) Router() http.Handler {
	return appHTTP.NewRouter(a.Config, a.JWT, appHTTP.Handlers{
		Health:     appHTTP.NewHealthHandler(a.pinger, a.Config.App.Version),
		Punch:      appHTTP.NewPunchHandler(a.Services.Punch),
		Correction: appHTTP.NewCorrectionHandler(a.Services.Correction),
		Timesheet:  appHTTP.NewTimesheetHandler(a.Services.Timesheet),
		Payroll:    appHTTP.NewPayrollHandler(a.Services.Payroll),
		Dashboard:  appHTTP.NewDashboardHandler(a.Services.Dashboard),
		Holiday:    appHTTP.NewHolidayHandler(a.Services.Holiday),
		Schedule:   appHTTP.NewScheduleHandler(a.Services.Schedule),
		Job:        appHTTP.NewJobHandler(a.PunchJobs),
	})
}

// DB returns the PostgreSQL pool, or nil on the in-memory store.
func (a *App) DB() *database.DB {
	return a.db
}

// StartJobs registers the auto-close job and starts the scheduler when enabled.
func (a *App) StartJobs() error {
	if !a.Config.AutoClose.Enabled {
		slog.Info("Auto-close job disabled")
		return nil
	}

	schedule, err := cron.ParseSchedule(a.Config.AutoClose.Schedule)
	if err != nil {
		return fmt.Errorf("failed to parse auto-close schedule: %w", err)
	}
	a.PunchJobs.RegisterJobs(a.Scheduler, schedule)
	a.Scheduler.Start()
	return nil
}

// Close stops background jobs and releases the database pool.
func (a *App) Close() {
	if a.Config.AutoClose.Enabled {
		a.Scheduler.Stop()
	}
	if a.db != nil {
		a.db.Close()
	}
}
