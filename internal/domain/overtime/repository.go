package overtime

import "context"

type Repository interface {
	ListActive(ctx context.Context) ([]Rule, error)

	// Upsert inserts or updates a rule matched by name.
	Upsert(ctx context.Context, r Rule) (Rule, error)
}
