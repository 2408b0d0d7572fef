package payroll

import "context"

type Repository interface {
	// Upsert writes the summary keyed by (EmployeeID, PeriodStart, PeriodEnd), replacing
	// all figures and the status of an existing row.
	Upsert(ctx context.Context, s Summary) (Summary, error)

	// GetByID returns ErrSummaryNotFound when missing. Employee info is joined.
	GetByID(ctx context.Context, id string) (Summary, error)

	// SetStatus returns ErrSummaryNotFound when missing.
	SetStatus(ctx context.Context, id string, status Status) (Summary, error)

	// List returns summaries with employee info joined.
	List(ctx context.Context, filter Filter) ([]Summary, error)
}
