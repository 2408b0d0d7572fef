package memory

import (
	"context"
	"sort"

	"github.com/poncheo/poncheo-backend-go/internal/domain/overtime"
)

type overtimeRepository struct {
	s *Store
}

func (r *overtimeRepository) ListActive(ctx context.Context) ([]overtime.Rule, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var result []overtime.Rule
	for _, rule := range r.s.st.rules {
		if rule.IsActive {
			result = append(result, rule)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Priority < result[j].Priority })
	return result, nil
}

func (r *overtimeRepository) Upsert(ctx context.Context, rule overtime.Rule) (overtime.Rule, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return overtime.Rule{}, err
	}
	defer unlock()

	if existing, ok := r.s.st.rules[rule.Name]; ok {
		rule.ID = existing.ID
		rule.CreatedAt = existing.CreatedAt
	} else {
		rule.ID = newID()
		rule.CreatedAt = now()
	}
	rule.UpdatedAt = now()
	r.s.st.rules[rule.Name] = rule
	return rule, nil
}
