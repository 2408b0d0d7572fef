package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/domain/employee"
	"github.com/poncheo/poncheo-backend-go/internal/domain/holiday"
	"github.com/poncheo/poncheo-backend-go/internal/domain/schedule"
	"github.com/poncheo/poncheo-backend-go/internal/fixtures"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/timecalc"
)

type SeedReport struct {
	Templates   int                `json:"templates"`
	Rules       int                `json:"rules"`
	Employees   int                `json:"employees_created"`
	Assignments int                `json:"assignments"`
	Holidays    holiday.SeedResult `json:"holidays"`
}

// Seed loads shift templates, overtime rules, the year's national holidays and demo staff
// assigned Monday to Friday of the current week. Running it again changes nothing new.
func (a *App) Seed(ctx context.Context, year int) (SeedReport, error) {
	var report SeedReport

	templates, err := fixtures.GetDefaultShiftTemplates()
	if err != nil {
		return report, err
	}
	templateIDs := make(map[string]string, len(templates))
	for _, t := range templates {
		saved, err := a.Repos.Schedules.UpsertTemplate(ctx, t)
		if err != nil {
			return report, fmt.Errorf("failed to seed shift template %q: %w", t.Name, err)
		}
		templateIDs[saved.Name] = saved.ID
		report.Templates++
	}

	rules, err := fixtures.GetDefaultOvertimeRules()
	if err != nil {
		return report, err
	}
	for _, r := range rules {
		if _, err := a.Repos.OvertimeRules.Upsert(ctx, r); err != nil {
			return report, fmt.Errorf("failed to seed overtime rule %q: %w", r.Name, err)
		}
		report.Rules++
	}

	report.Holidays, err = a.Services.Holiday.SeedNational(ctx, year)
	if err != nil {
		return report, fmt.Errorf("failed to seed holidays: %w", err)
	}

	demo, err := fixtures.GetDemoEmployees()
	if err != nil {
		return report, err
	}
	existing, err := a.Repos.Employees.ListActive(ctx, nil)
	if err != nil {
		return report, fmt.Errorf("failed to list employees: %w", err)
	}
	byCode := make(map[string]employee.Employee, len(existing))
	for _, e := range existing {
		byCode[e.EmployeeCode] = e
	}

	monday := startOfWeek(a.Clock.Now())
	for _, d := range demo {
		emp, ok := byCode[d.Code]
		if !ok {
			e, err := d.ToEmployee()
			if err != nil {
				return report, err
			}
			emp, err = a.Repos.Employees.Create(ctx, e)
			if errors.Is(err, employee.ErrEmployeeCodeExists) {
				// Inactive employees are not listed but still own their code.
				continue
			}
			if err != nil {
				return report, fmt.Errorf("failed to seed employee %s: %w", d.Code, err)
			}
			report.Employees++
		}

		templateID, ok := templateIDs[d.Shift]
		if !ok {
			return report, fmt.Errorf("employee %s: unknown shift %q", d.Code, d.Shift)
		}
		for i := 0; i < 5; i++ {
			_, err := a.Repos.Schedules.Assign(ctx, schedule.ShiftAssignment{
				EmployeeID:      emp.ID,
				Date:            monday.AddDate(0, 0, i),
				ShiftTemplateID: templateID,
			})
			if err != nil {
				return report, fmt.Errorf("failed to assign %s: %w", d.Code, err)
			}
			report.Assignments++
		}
	}

	slog.Info("Seed completed",
		"templates", report.Templates,
		"rules", report.Rules,
		"holidays_created", report.Holidays.Created,
		"employees_created", report.Employees,
		"assignments", report.Assignments,
	)
	return report, nil
}

func startOfWeek(t time.Time) time.Time {
	date := timecalc.DateOf(t)
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}
