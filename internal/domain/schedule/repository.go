package schedule

import (
	"context"
	"time"
)

type Repository interface {
	// GetAssignment returns the employee's assignment on date with its template, or nil when none exists.
	GetAssignment(ctx context.Context, employeeID string, date time.Time) (*AssignmentWithTemplate, error)

	// GetAssignmentByID returns ErrAssignmentNotFound when missing.
	GetAssignmentByID(ctx context.Context, id string) (AssignmentWithTemplate, error)

	// Assign creates or replaces the employee's assignment for a.Date.
	Assign(ctx context.Context, a ShiftAssignment) (ShiftAssignment, error)

	ListAssignments(ctx context.Context, employeeID string, from, to time.Time) ([]AssignmentWithTemplate, error)

	// UpsertTemplate inserts or updates a template matched by name.
	UpsertTemplate(ctx context.Context, t ShiftTemplate) (ShiftTemplate, error)
	GetTemplate(ctx context.Context, id string) (ShiftTemplate, error)
	ListTemplates(ctx context.Context) ([]ShiftTemplate, error)
}
