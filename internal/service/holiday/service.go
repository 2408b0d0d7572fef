package holiday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poncheo/poncheo-backend-go/internal/domain/holiday"
	"github.com/poncheo/poncheo-backend-go/internal/fixtures"
)

const (
	minYear = 1900
	maxYear = 2200
)

type HolidayServiceImpl struct {
	holiday.Repository
}

func NewHolidayService(repo holiday.Repository) holiday.Service {
	return &HolidayServiceImpl{Repository: repo}
}

// SeedNational implements holiday.Service.
func (s *HolidayServiceImpl) SeedNational(ctx context.Context, year int) (holiday.SeedResult, error) {
	if year < minYear || year > maxYear {
		return holiday.SeedResult{}, holiday.ErrInvalidYear
	}

	holidays, err := fixtures.GetNationalHolidays(year)
	if err != nil {
		return holiday.SeedResult{}, err
	}

	result := holiday.SeedResult{Total: len(holidays)}
	for _, h := range holidays {
		if _, err := s.Repository.Create(ctx, h); err != nil {
			if errors.Is(err, holiday.ErrHolidayExists) {
				continue
			}
			return result, fmt.Errorf("failed to create holiday %s: %w", h.Date.Format("2006-01-02"), err)
		}
		result.Created++
	}

	slog.Info("Seeded national holidays", "year", year, "created", result.Created, "total", result.Total)
	return result, nil
}

// Create implements holiday.Service.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateRequest) (holiday.Response, error) {
	if err := req.Validate(); err != nil {
		return holiday.Response{}, err
	}

	created, err := s.Repository.Create(ctx, holiday.Holiday{
		Date:        req.ParsedDate,
		Name:        req.Name,
		IsRecurring: req.IsRecurring,
		Year:        req.Year,
	})
	if err != nil {
		if errors.Is(err, holiday.ErrHolidayExists) {
			return holiday.Response{}, err
		}
		return holiday.Response{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return holiday.ToResponse(created), nil
}

// List implements holiday.Service.
func (s *HolidayServiceImpl) List(ctx context.Context, year *int) ([]holiday.Response, error) {
	if year != nil && (*year < minYear || *year > maxYear) {
		return nil, holiday.ErrInvalidYear
	}

	holidays, err := s.Repository.List(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	resp := make([]holiday.Response, 0, len(holidays))
	for _, h := range holidays {
		resp = append(resp, holiday.ToResponse(h))
	}
	return resp, nil
}
