package readings

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/aliverse/internal/analysis"
	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/calendar"
	"github.com/ziadkadry99/aliverse/internal/garage"
)

// Service analyzes, stores and re-reads readings.
type Service struct {
	store    *Store
	analyzer *analysis.Analyzer
}

// NewService wires a store to an analyzer.
func NewService(store *Store, analyzer *analysis.Analyzer) *Service {
	return &Service{store: store, analyzer: analyzer}
}

// Store returns the underlying store.
func (s *Service) Store() *Store { return s.store }

// Create analyzes input, optionally divines the matrix, and saves the result.
func (s *Service) Create(ctx context.Context, in calendar.BirthInput, fuel *bazi.Element, divine bool) (*Detail, error) {
	res, err := s.analyzer.Analyze(ctx, in)
	if err != nil {
		return nil, err
	}
	if divine || fuel != nil {
		if _, err := res.Divine(fuel); err != nil {
			return nil, err
		}
	}

	r := FromResult(res)
	if err := s.store.Save(ctx, &r); err != nil {
		return nil, err
	}
	return &Detail{Reading: r, Result: res}, nil
}

// Get loads a reading and recomputes its full result with the thresholds
// it was saved under. The stored matrix is restored as recorded.
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	r, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	th := r.Thresholds
	if th == (bazi.Thresholds{}) {
		th = s.analyzer.Thresholds()
	}
	res, err := s.analyzer.AnalyzeBirthWith(ctx, r.Birth, th)
	if err != nil {
		return nil, fmt.Errorf("re-reading %s: %w", id, err)
	}
	if r.Fuel != nil {
		h := garage.Matrix(res.DayMaster, *r.Fuel)
		res.Matrix = &h
	}
	return &Detail{Reading: *r, Result: res}, nil
}

// Divine picks the car matrix for a stored reading and records it.
func (s *Service) Divine(ctx context.Context, id string, fuel *bazi.Element) (garage.Hexagram, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return garage.Hexagram{}, err
	}
	h, err := d.Result.Divine(fuel)
	if err != nil {
		return garage.Hexagram{}, err
	}
	if err := s.store.SetMatrix(ctx, id, h.Lower.Element, h.Number); err != nil {
		return garage.Hexagram{}, err
	}
	return h, nil
}
