package payroll

import "context"

type Service interface {
	// Generate computes and stores DRAFT summaries for every selected active employee.
	// A missing overtime rule aborts the run before anything is written. Per-employee
	// failures are joined into the returned error while the other summaries are still returned.
	Generate(ctx context.Context, req GenerateRequest) ([]Response, error)

	Finalize(ctx context.Context, id string) (Response, error)
	Revert(ctx context.Context, id string) (Response, error)
	GetByID(ctx context.Context, id string) (Response, error)
	List(ctx context.Context, filter Filter) ([]Response, error)

	// ExportCSV renders the filtered summaries ordered by employee last name.
	ExportCSV(ctx context.Context, filter Filter) ([]byte, error)
}
