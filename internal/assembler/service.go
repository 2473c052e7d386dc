package assembler

import (
	"context"
	"fmt"

	"CoinCast/internal/model"
	"CoinCast/internal/projection"
	"CoinCast/internal/store"
)

// Service runs the fetch → (project) → assemble pipeline for one request.
type Service struct {
	Store store.SeriesStore
}

// NewService creates a new Service.
func NewService(s store.SeriesStore) *Service {
	return &Service{Store: s}
}

// Tickers lists every ticker available in storage.
func (s *Service) Tickers(ctx context.Context) ([]string, error) {
	return s.Store.ListTickers(ctx)
}

// Historical assembles the plain history of metric for ticker.
func (s *Service) Historical(ctx context.Context, metric, ticker string) (*model.AssembledSeries, error) {
	kind, err := model.ParseMetric(metric)
	if err != nil {
		return nil, err
	}
	series, err := s.Store.FetchSeries(ctx, ticker, kind)
	if err != nil {
		return nil, fmt.Errorf("fetch %s/%s: %w", ticker, kind, err)
	}
	return Assemble(series, nil, kind, ticker, nil), nil
}

// Projection assembles the history plus a forecast running to targetDate.
func (s *Service) Projection(ctx context.Context, metric, ticker, targetDate string) (*model.AssembledSeries, error) {
	kind, err := model.ParseMetric(metric)
	if err != nil {
		return nil, err
	}
	target, err := projection.ParseTargetDate(targetDate)
	if err != nil {
		return nil, err
	}
	series, err := s.Store.FetchSeries(ctx, ticker, kind)
	if err != nil {
		return nil, fmt.Errorf("fetch %s/%s: %w", ticker, kind, err)
	}
	curve, err := projection.Project(series, target)
	if err != nil {
		return nil, fmt.Errorf("project %s/%s: %w", ticker, kind, err)
	}
	return Assemble(series, curve, kind, ticker, &target), nil
}
