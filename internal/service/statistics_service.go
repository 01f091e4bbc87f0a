package service

import (
	"context"
	"slices"
	"strings"

	"tradeboard/internal/index"
	"tradeboard/internal/model"

	"golang.org/x/sync/errgroup"
)

// GetCompanyStats counts distinct importer and exporter names. A company that
// both imports and exports is counted in both tallies.
func (s *analyticsService) GetCompanyStats(ctx context.Context) (model.CompanyStats, error) {
	idx, err := s.indexes.Get(ctx)
	if err != nil {
		return model.CompanyStats{}, err
	}
	return model.CompanyStats{
		TotalImporters: idx.DistinctImporters(),
		TotalExporters: idx.Exporters.Len(),
	}, nil
}

// GetTopCommodities ranks commodities by summed raw tonnes across the dataset
func (s *analyticsService) GetTopCommodities(ctx context.Context, limit int) ([]model.TopCommodity, error) {
	if limit <= 0 {
		limit = DefaultTopCommodities
	}

	idx, err := s.indexes.Get(ctx)
	if err != nil {
		return nil, err
	}

	groups := slices.Clone(idx.Commodities.Groups())
	slices.SortStableFunc(groups, func(a, b *index.Group[string]) int {
		return b.Tonnes.Cmp(a.Tonnes)
	})

	groups = groups[:min(limit, len(groups))]
	top := make([]model.TopCommodity, 0, len(groups))
	for _, g := range groups {
		top = append(top, model.TopCommodity{Commodity: g.Key, Kg: g.Tonnes.InexactFloat64()})
	}
	return top, nil
}

// GetMonthlyVolume returns the most recent months present in the dataset,
// oldest first
func (s *analyticsService) GetMonthlyVolume(ctx context.Context, months int) ([]model.MonthlyVolume, error) {
	if months <= 0 {
		months = DefaultMonths
	}

	idx, err := s.indexes.Get(ctx)
	if err != nil {
		return nil, err
	}

	groups := slices.Clone(idx.Months.Groups())
	// "2006-01" keys sort chronologically as strings
	slices.SortFunc(groups, func(a, b *index.Group[string]) int {
		return strings.Compare(b.Key, a.Key)
	})
	groups = groups[:min(months, len(groups))]
	slices.Reverse(groups)

	volumes := make([]model.MonthlyVolume, 0, len(groups))
	for _, g := range groups {
		volumes = append(volumes, model.MonthlyVolume{Month: idx.MonthLabel(g.Key), Kg: g.Kg()})
	}
	return volumes, nil
}

// GetStats computes the dashboard statistics concurrently
func (s *analyticsService) GetStats(ctx context.Context, topLimit, months int) (model.StatsResponse, error) {
	var response model.StatsResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.GetCompanyStats(gctx)
		response.CompanyStats = stats
		return err
	})
	g.Go(func() error {
		top, err := s.GetTopCommodities(gctx, topLimit)
		response.TopCommodities = top
		return err
	})
	g.Go(func() error {
		volumes, err := s.GetMonthlyVolume(gctx, months)
		response.MonthlyVolume = volumes
		return err
	})

	if err := g.Wait(); err != nil {
		return model.StatsResponse{}, err
	}
	return response, nil
}
