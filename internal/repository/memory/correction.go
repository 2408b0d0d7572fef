package memory

import (
	"context"
	"sort"

	"github.com/poncheo/poncheo-backend-go/internal/domain/correction"
)

type correctionRepository struct {
	s *Store
}

func (r *correctionRepository) withApproval(c correction.Correction) correction.Correction {
	c.Approval = nil
	if a, ok := r.s.st.approvals[c.ID]; ok {
		c.Approval = &a
	}
	return c
}

func (r *correctionRepository) Create(ctx context.Context, c correction.Correction) (correction.Correction, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return correction.Correction{}, err
	}
	defer unlock()

	for _, existing := range r.s.st.corrections {
		if existing.PunchID == c.PunchID {
			return correction.Correction{}, correction.ErrCorrectionExists
		}
	}

	c.ID = newID()
	c.Status = correction.StatusPending
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	c.Approval = nil
	r.s.st.corrections[c.ID] = c
	return c, nil
}

func (r *correctionRepository) GetByID(ctx context.Context, id string) (correction.Correction, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return correction.Correction{}, err
	}
	defer unlock()

	c, ok := r.s.st.corrections[id]
	if !ok {
		return correction.Correction{}, correction.ErrCorrectionNotFound
	}
	return r.withApproval(c), nil
}

func (r *correctionRepository) GetByPunchID(ctx context.Context, punchID string) (*correction.Correction, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	for _, c := range r.s.st.corrections {
		if c.PunchID == punchID {
			c = r.withApproval(c)
			return &c, nil
		}
	}
	return nil, nil
}

func (r *correctionRepository) Review(ctx context.Context, id string, status correction.Status) (correction.Correction, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return correction.Correction{}, err
	}
	defer unlock()

	c, ok := r.s.st.corrections[id]
	if !ok {
		return correction.Correction{}, correction.ErrCorrectionNotFound
	}
	if c.Status != correction.StatusPending {
		return correction.Correction{}, correction.ErrCorrectionAlreadyReviewed
	}

	c.Status = status
	c.UpdatedAt = now()
	r.s.st.corrections[id] = c
	return r.withApproval(c), nil
}

func (r *correctionRepository) CreateApproval(ctx context.Context, a correction.Approval) (correction.Approval, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return correction.Approval{}, err
	}
	defer unlock()

	if _, ok := r.s.st.corrections[a.CorrectionID]; !ok {
		return correction.Approval{}, correction.ErrCorrectionNotFound
	}
	if _, ok := r.s.st.approvals[a.CorrectionID]; ok {
		return correction.Approval{}, correction.ErrCorrectionAlreadyReviewed
	}

	a.ID = newID()
	a.CreatedAt = now()
	r.s.st.approvals[a.CorrectionID] = a
	return a, nil
}

func (r *correctionRepository) List(ctx context.Context, filter correction.Filter) ([]correction.Correction, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var result []correction.Correction
	for _, c := range r.s.st.corrections {
		if filter.Status != nil && string(c.Status) != *filter.Status {
			continue
		}
		if filter.RequestedBy != nil && c.RequestedBy != *filter.RequestedBy {
			continue
		}
		result = append(result, r.withApproval(c))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}
