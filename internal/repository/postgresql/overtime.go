package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/poncheo/poncheo-backend-go/internal/domain/overtime"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/database"
)

const ruleColumns = `id, name, description, threshold_minutes, max_minutes, multiplier,
	priority, is_active, created_at, updated_at`

type overtimeRepository struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.Repository {
	return &overtimeRepository{db: db}
}

func scanRule(row pgx.Row) (overtime.Rule, error) {
	var rule overtime.Rule
	err := row.Scan(
		&rule.ID, &rule.Name, &rule.Description, &rule.ThresholdMinutes, &rule.MaxMinutes, &rule.Multiplier,
		&rule.Priority, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt,
	)
	return rule, err
}

// ListActive implements overtime.Repository.
func (r *overtimeRepository) ListActive(ctx context.Context) ([]overtime.Rule, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	rows, err := q.Query(ctx, `SELECT `+ruleColumns+` FROM overtime_rules WHERE is_active = TRUE ORDER BY priority ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime rules: %w", mapError(err, nil))
	}
	defer rows.Close()

	var result []overtime.Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime rule: %w", err)
		}
		result = append(result, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate overtime rules: %w", mapError(err, nil))
	}
	return result, nil
}

// Upsert implements overtime.Repository.
func (r *overtimeRepository) Upsert(ctx context.Context, rule overtime.Rule) (overtime.Rule, error) {
	ctx, q, cancel := begin(ctx, r.db)
	defer cancel()

	query := `
		INSERT INTO overtime_rules (id, name, description, threshold_minutes, max_minutes, multiplier, priority, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name) DO UPDATE SET
			description = EXCLUDED.description,
			threshold_minutes = EXCLUDED.threshold_minutes,
			max_minutes = EXCLUDED.max_minutes,
			multiplier = EXCLUDED.multiplier,
			priority = EXCLUDED.priority,
			is_active = EXCLUDED.is_active,
			updated_at = now()
		RETURNING ` + ruleColumns

	saved, err := scanRule(q.QueryRow(ctx, query,
		newID(), rule.Name, rule.Description, rule.ThresholdMinutes, rule.MaxMinutes, rule.Multiplier,
		rule.Priority, rule.IsActive,
	))
	if err != nil {
		return overtime.Rule{}, fmt.Errorf("failed to upsert overtime rule: %w", mapError(err, nil))
	}
	return saved, nil
}
