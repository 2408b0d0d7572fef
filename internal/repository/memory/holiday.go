package memory

import (
	"context"
	"sort"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/domain/holiday"
)

type holidayRepository struct {
	s *Store
}

func (r *holidayRepository) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return false, err
	}
	defer unlock()

	_, ok := r.s.st.holidays[dateKey(date)]
	return ok, nil
}

func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return holiday.Holiday{}, err
	}
	defer unlock()

	key := dateKey(h.Date)
	if _, ok := r.s.st.holidays[key]; ok {
		return holiday.Holiday{}, holiday.ErrHolidayExists
	}

	h.ID = newID()
	h.CreatedAt = now()
	r.s.st.holidays[key] = h
	return h, nil
}

func (r *holidayRepository) List(ctx context.Context, year *int) ([]holiday.Holiday, error) {
	unlock, err := r.s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	var result []holiday.Holiday
	for _, h := range r.s.st.holidays {
		if year != nil && h.Date.Year() != *year {
			continue
		}
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}
