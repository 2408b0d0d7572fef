package correction

import (
	"context"

	"github.com/poncheo/poncheo-backend-go/internal/domain/employee"
)

type Service interface {
	// Create opens a PENDING correction for a closed punch owned by the requester.
	Create(ctx context.Context, requester employee.Requester, req CreateRequest) (Response, error)

	// Approve applies the corrected times to the punch as one unit of work, then recomputes its timesheet.
	Approve(ctx context.Context, req ReviewRequest) (Response, error)

	// Reject records the decision without touching the punch.
	Reject(ctx context.Context, req ReviewRequest) (Response, error)

	GetByID(ctx context.Context, requester employee.Requester, id string) (Response, error)
	List(ctx context.Context, requester employee.Requester, filter Filter) ([]Response, error)
}
