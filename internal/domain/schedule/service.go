package schedule

import "context"

type Service interface {
	// Assign puts an active employee on a template for one date, replacing any prior assignment that day.
	Assign(ctx context.Context, req AssignRequest) (AssignmentResponse, error)
	ListAssignments(ctx context.Context, req ListAssignmentsRequest) ([]AssignmentResponse, error)
	ListTemplates(ctx context.Context) ([]TemplateResponse, error)
}
