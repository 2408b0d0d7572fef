package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/poncheo/poncheo-backend-go/internal/config"
	"github.com/poncheo/poncheo-backend-go/internal/handler/http/middleware"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/jwt"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Health     HealthHandler
	Punch      PunchHandler
	Correction CorrectionHandler
	Timesheet  TimesheetHandler
	Payroll    PayrollHandler
	Dashboard  DashboardHandler
	Holiday    HolidayHandler
	Schedule   ScheduleHandler
	Job        JobHandler
}

func NewRouter(cfg *config.Config, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "poncheo"),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Cron-Secret"},
		ExposedHeaders:   []string{"Content-Disposition", "Retry-After"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", h.Health.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health.Health)

		// Shared secret for external schedulers
		r.With(middleware.CronSecret(cfg.AutoClose.CronSecretHash)).
			Post("/jobs/auto-close", h.Job.AutoClose)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/punches", func(r chi.Router) {
				r.Post("/clock-in", h.Punch.ClockIn)
				r.Post("/clock-out", h.Punch.ClockOut)
				r.Get("/", h.Punch.List)
				r.With(middleware.RequireSupervisor).Get("/open", h.Punch.ListOpen)
				r.Get("/{id}", h.Punch.GetByID)
			})

			r.Route("/corrections", func(r chi.Router) {
				r.Post("/", h.Correction.Create)
				r.Get("/", h.Correction.List)
				r.Get("/{id}", h.Correction.GetByID)

				// Supervisor only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSupervisor)
					r.Post("/{id}/approve", h.Correction.Approve)
					r.Post("/{id}/reject", h.Correction.Reject)
				})
			})

			r.Route("/daily-timesheets", func(r chi.Router) {
				r.Get("/", h.Timesheet.List)
				r.With(middleware.RequireSupervisor).Post("/recompute", h.Timesheet.Recompute)
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/templates", h.Schedule.ListTemplates)
				r.Get("/assignments", h.Schedule.ListAssignments)
				r.With(middleware.RequireSupervisor).Post("/assignments", h.Schedule.Assign)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)

				// Supervisor only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSupervisor)
					r.Post("/", h.Holiday.Create)
					r.Post("/seed/{year}", h.Holiday.Seed)
				})
			})

			// Supervisor only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSupervisor)

				r.Get("/dashboard", h.Dashboard.GetStats)

				r.Route("/payroll", func(r chi.Router) {
					r.Post("/generate", h.Payroll.Generate)
					r.Get("/", h.Payroll.List)
					r.Get("/export/csv", h.Payroll.Export)
					r.Get("/{id}", h.Payroll.GetByID)
					r.Put("/{id}/finalize", h.Payroll.Finalize)
					r.Put("/{id}/revert", h.Payroll.Revert)
				})
			})
		})
	})
	return r
}
