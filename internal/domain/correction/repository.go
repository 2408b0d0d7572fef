package correction

import "context"

type Repository interface {
	// Create returns ErrCorrectionExists when the punch already has a correction.
	Create(ctx context.Context, c Correction) (Correction, error)

	// GetByID returns ErrCorrectionNotFound when missing. The approval, if any, is joined.
	GetByID(ctx context.Context, id string) (Correction, error)

	// GetByPunchID returns nil when the punch has no correction.
	GetByPunchID(ctx context.Context, punchID string) (*Correction, error)

	// Review moves a PENDING correction to status. Returns ErrCorrectionAlreadyReviewed
	// when it is no longer PENDING.
	Review(ctx context.Context, id string, status Status) (Correction, error)

	CreateApproval(ctx context.Context, a Approval) (Approval, error)

	List(ctx context.Context, filter Filter) ([]Correction, error)
}
