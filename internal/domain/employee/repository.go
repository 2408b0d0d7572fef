package employee

import "context"

type Repository interface {
	// GetByID returns ErrEmployeeNotFound when missing.
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListActive returns active employees, restricted to ids when ids is non-empty.
	ListActive(ctx context.Context, ids []string) ([]Employee, error)

	// Create returns ErrEmployeeCodeExists on a duplicate code.
	Create(ctx context.Context, e Employee) (Employee, error)
}
