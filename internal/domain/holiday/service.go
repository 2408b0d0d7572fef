package holiday

import "context"

type Service interface {
	// SeedNational inserts the national holidays for year, skipping dates already present.
	SeedNational(ctx context.Context, year int) (SeedResult, error)
	Create(ctx context.Context, req CreateRequest) (Response, error)
	List(ctx context.Context, year *int) ([]Response, error)
}
