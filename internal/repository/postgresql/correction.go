package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/poncheo/poncheo-backend-go/internal/domain/correction"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/database"
)

const correctionSelect = `
	SELECT c.id, c.punch_id, c.requested_by, c.reason,
		   c.original_clock_in, c.original_clock_out, c.corrected_clock_in, c.corrected_clock_out,
		   c.status, c.created_at, c.updated_at,
		   a.id, a.supervisor_id, a.decision, a.comments, a.created_at
	FROM c
	LEFT JOIN correction_approvals a ON a.correction_id = c.id
`

type correctionRepository struct {
	db *database.DB
}

func NewCorrectionRepository(db *database.DB) correction.Repository {
	return &correctionRepository{db: db}
}

func scanCorrection(row pgx.Row) (correction.Correction, error) {
	var c correction.Correction
	var (
		approvalID   *string
		supervisorID *string
		decision     *correction.Status
		comments     *string
		approvedAt   *time.Time
	)
	err := row.Scan(
		&c.ID, &c.PunchID, &c.RequestedBy, &c.Reason,
		&c.OriginalClockIn, &c.OriginalClockOut, &c.CorrectedClockIn, &c.CorrectedClockOut,
		&c.Status, &c.CreatedAt, &c.UpdatedAt,
		&approvalID, &supervisorID, &decision, &comments, &approvedAt,
	)
	if err != nil {
		return correction.Correction{}, err
	}
	if approvalID != nil {
		c.Approval = &correction.Approval{
			ID:           *approvalID,
			CorrectionID: c.ID,
			SupervisorID: *supervisorID,
			Decision:     *decision,
			Comments:     comments,
			CreatedAt:    *approvedAt,
		}
	}
	return c, nil
}

// Create implements correction.Repository.
func (r *correctionRepository) Create(ctx context.Context, c correction.Correction) (correction.Correction, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `
		WITH c AS (
			INSERT INTO punch_corrections (
				id, punch_id, requested_by, reason,
				original_clock_in, original_clock_out, corrected_clock_in, corrected_clock_out, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'PENDING')
			RETURNING *
		)` + correctionSelect

	created, err := scanCorrection(q.QueryRow(ctx, query,
		newID(), c.PunchID, c.RequestedBy, c.Reason,
		c.OriginalClockIn.UTC(), utcPtr(c.OriginalClockOut), c.CorrectedClockIn.UTC(), utcPtr(c.CorrectedClockOut),
	))
	if err != nil {
		if isUniqueViolation(err, "punch_corrections_punch_id_key") {
			return correction.Correction{}, correction.ErrCorrectionExists
		}
		return correction.Correction{}, fmt.Errorf("failed to create correction: %w", mapError(err, nil))
	}
	return created, nil
}

// GetByID implements correction.Repository.
func (r *correctionRepository) GetByID(ctx context.Context, id string) (correction.Correction, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `WITH c AS (SELECT * FROM punch_corrections WHERE id = $1)` + correctionSelect

	c, err := scanCorrection(q.QueryRow(ctx, query, id))
	if err != nil {
		return correction.Correction{}, mapError(err, correction.ErrCorrectionNotFound)
	}
	return c, nil
}

// GetByPunchID implements correction.Repository.
func (r *correctionRepository) GetByPunchID(ctx context.Context, punchID string) (*correction.Correction, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `WITH c AS (SELECT * FROM punch_corrections WHERE punch_id = $1)` + correctionSelect

	c, err := scanCorrection(q.QueryRow(ctx, query, punchID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get correction by punch: %w", mapError(err, nil))
	}
	return &c, nil
}

// Review implements correction.Repository.
func (r *correctionRepository) Review(ctx context.Context, id string, status correction.Status) (correction.Correction, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `
		WITH c AS (
			UPDATE punch_corrections SET status = $2, updated_at = now()
			WHERE id = $1 AND status = 'PENDING'
			RETURNING *
		)` + correctionSelect

	reviewed, err := scanCorrection(q.QueryRow(ctx, query, id, status))
	if err == nil {
		return reviewed, nil
	}
	if err != pgx.ErrNoRows {
		return correction.Correction{}, fmt.Errorf("failed to review correction: %w", mapError(err, nil))
	}

	var exists bool
	if err := q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM punch_corrections WHERE id = $1)", id).Scan(&exists); err != nil {
		return correction.Correction{}, fmt.Errorf("failed to check correction: %w", mapError(err, nil))
	}
	if !exists {
		return correction.Correction{}, correction.ErrCorrectionNotFound
	}
	return correction.Correction{}, correction.ErrCorrectionAlreadyReviewed
}

// CreateApproval implements correction.Repository.
func (r *correctionRepository) CreateApproval(ctx context.Context, a correction.Approval) (correction.Approval, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `
		INSERT INTO correction_approvals (id, correction_id, supervisor_id, decision, comments)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, newID(), a.CorrectionID, a.SupervisorID, a.Decision, a.Comments).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "correction_approvals_correction_id_key") {
			return correction.Approval{}, correction.ErrCorrectionAlreadyReviewed
		}
		if isForeignKeyViolation(err) {
			return correction.Approval{}, correction.ErrCorrectionNotFound
		}
		return correction.Approval{}, fmt.Errorf("failed to create approval: %w", mapError(err, nil))
	}
	return a, nil
}

// List implements correction.Repository.
func (r *correctionRepository) List(ctx context.Context, filter correction.Filter) ([]correction.Correction, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.RequestedBy != nil {
		conditions = append(conditions, fmt.Sprintf("requested_by = $%d", argIdx))
		args = append(args, *filter.RequestedBy)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := `WITH c AS (SELECT * FROM punch_corrections ` + whereClause + `)` +
		correctionSelect + ` ORDER BY c.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list corrections: %w", mapError(err, nil))
	}
	defer rows.Close()

	var result []correction.Correction
	for rows.Next() {
		c, err := scanCorrection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate corrections: %w", mapError(err, nil))
	}
	return result, nil
}
