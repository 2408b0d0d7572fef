package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/poncheo/poncheo-backend-go/internal/domain/employee"
	"github.com/poncheo/poncheo-backend-go/internal/domain/overtime"
	"github.com/poncheo/poncheo-backend-go/internal/domain/payroll"
	"github.com/poncheo/poncheo-backend-go/internal/domain/timesheet"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the employees processed in parallel when no limit is configured.
const DefaultConcurrency = 4

type PayrollServiceImpl struct {
	payrollRepo   payroll.Repository
	employeeRepo  employee.Repository
	timesheetRepo timesheet.Repository
	ruleRepo      overtime.Repository
	concurrency   int
}

func NewPayrollService(
	payrollRepo payroll.Repository,
	employeeRepo employee.Repository,
	timesheetRepo timesheet.Repository,
	ruleRepo overtime.Repository,
	concurrency int,
) payroll.Service {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &PayrollServiceImpl{
		payrollRepo:   payrollRepo,
		employeeRepo:  employeeRepo,
		timesheetRepo: timesheetRepo,
		ruleRepo:      ruleRepo,
		concurrency:   concurrency,
	}
}

// Generate implements payroll.Service.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GenerateRequest) ([]payroll.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rules, err := s.ruleRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load overtime rules: %w", err)
	}
	rates, err := RatesFromRules(rules)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.ListActive(ctx, req.EmployeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	var (
		results = make([]*payroll.Summary, len(employees))
		mu      sync.Mutex
		errs    []error
		g       errgroup.Group
	)
	g.SetLimit(s.concurrency)

	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			summary, err := s.generateOne(ctx, req, rates, emp)
			if err != nil {
				slog.Error("Payroll: failed to generate summary", "employee_id", emp.ID, "error", err)
				mu.Lock()
				errs = append(errs, &payroll.EmployeeError{EmployeeID: emp.ID, Err: err})
				mu.Unlock()
				return nil
			}
			results[i] = &summary
			return nil
		})
	}
	_ = g.Wait()

	resp := make([]payroll.Response, 0, len(results))
	for _, summary := range results {
		if summary != nil {
			resp = append(resp, payroll.ToResponse(*summary))
		}
	}

	slog.Info("Payroll: generated summaries",
		"period_start", req.PeriodStart,
		"period_end", req.PeriodEnd,
		"generated", len(resp),
		"failed", len(errs),
	)
	return resp, errors.Join(errs...)
}

func (s *PayrollServiceImpl) generateOne(ctx context.Context, req payroll.GenerateRequest, rates Rates, emp employee.Employee) (payroll.Summary, error) {
	rows, err := s.timesheetRepo.ListByEmployee(ctx, emp.ID, req.Start, req.End)
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("failed to list timesheets: %w", err)
	}

	empID := emp.ID
	existing, err := s.payrollRepo.List(ctx, payroll.Filter{EmployeeID: &empID, Start: &req.Start, End: &req.End})
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("failed to check existing summary: %w", err)
	}
	for _, prev := range existing {
		if prev.Status == payroll.StatusFinalized {
			slog.Warn("Payroll: overwriting finalized summary",
				"summary_id", prev.ID,
				"employee_id", emp.ID,
			)
		}
	}

	totals := TotalsOf(rows)
	b := Compute(totals, emp.HourlyRate, rates)

	summary, err := s.payrollRepo.Upsert(ctx, payroll.Summary{
		EmployeeID:            emp.ID,
		PeriodStart:           req.Start,
		PeriodEnd:             req.End,
		PeriodType:            payroll.PeriodType(req.PeriodType),
		TotalWorkedMinutes:    totals.WorkedMinutes,
		RegularMinutes:        b.RegularMinutes,
		OvertimeMinutes:       b.OvertimeMinutes + b.ExcessiveMinutes,
		NightMinutes:          totals.NightMinutes,
		HolidayMinutes:        totals.HolidayMinutes + totals.RestDayMinutes,
		TotalTardinessMinutes: totals.TardinessMinutes,
		RegularPay:            b.RegularPay,
		OvertimePay:           b.OvertimePay,
		NightPremiumPay:       b.NightPremiumPay,
		HolidayPay:            b.HolidayPay,
		GrossPay:              b.GrossPay,
		GeneratedBy:           req.GeneratedBy,
		Status:                payroll.StatusDraft,
	})
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("failed to upsert summary: %w", err)
	}
	return summary, nil
}

// Finalize implements payroll.Service.
func (s *PayrollServiceImpl) Finalize(ctx context.Context, id string) (payroll.Response, error) {
	return s.setStatus(ctx, id, payroll.StatusFinalized)
}

// Revert implements payroll.Service.
func (s *PayrollServiceImpl) Revert(ctx context.Context, id string) (payroll.Response, error) {
	return s.setStatus(ctx, id, payroll.StatusDraft)
}

func (s *PayrollServiceImpl) setStatus(ctx context.Context, id string, status payroll.Status) (payroll.Response, error) {
	summary, err := s.payrollRepo.SetStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, payroll.ErrSummaryNotFound) {
			return payroll.Response{}, err
		}
		return payroll.Response{}, fmt.Errorf("failed to set payroll status: %w", err)
	}
	return payroll.ToResponse(summary), nil
}

// GetByID implements payroll.Service.
func (s *PayrollServiceImpl) GetByID(ctx context.Context, id string) (payroll.Response, error) {
	summary, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, payroll.ErrSummaryNotFound) {
			return payroll.Response{}, err
		}
		return payroll.Response{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}
	return payroll.ToResponse(summary), nil
}

// List implements payroll.Service.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.Filter) ([]payroll.Response, error) {
	summaries, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]payroll.Response, 0, len(summaries))
	for _, summary := range summaries {
		resp = append(resp, payroll.ToResponse(summary))
	}
	return resp, nil
}

func (s *PayrollServiceImpl) list(ctx context.Context, filter payroll.Filter) ([]payroll.Summary, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	summaries, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll summaries: %w", err)
	}
	sortByEmployeeName(summaries)
	return summaries, nil
}
