package service

import (
	"cmp"
	"context"
	"slices"

	"tradeboard/internal/index"
	"tradeboard/internal/model"

	"github.com/shopspring/decimal"
)

const (
	DefaultTopCommodities = 5
	DefaultMonths         = 6
	detailTopPartners     = 3
	detailTopCommodities  = 3
)

// IndexProvider returns the cached index for the loaded dataset
type IndexProvider interface {
	Get(ctx context.Context) (*index.Index, error)
}

type AnalyticsService interface {
	ListCompanies(ctx context.Context) ([]model.Company, error)
	GetCompanyDetail(ctx context.Context, name string) (model.Company, bool, error)
	GetCompanyStats(ctx context.Context) (model.CompanyStats, error)
	GetTopCommodities(ctx context.Context, limit int) ([]model.TopCommodity, error)
	GetMonthlyVolume(ctx context.Context, months int) ([]model.MonthlyVolume, error)
	GetStats(ctx context.Context, topLimit, months int) (model.StatsResponse, error)
}

type analyticsService struct {
	indexes IndexProvider
}

func NewAnalyticsService(indexes IndexProvider) AnalyticsService {
	return &analyticsService{indexes: indexes}
}

// ListCompanies returns one rollup per importer identity, heaviest first
func (s *analyticsService) ListCompanies(ctx context.Context) ([]model.Company, error) {
	idx, err := s.indexes.Get(ctx)
	if err != nil {
		return nil, err
	}

	groups := idx.Companies.Groups()
	companies := make([]model.Company, 0, len(groups))
	for _, g := range groups {
		companies = append(companies, toCompanyRollup(g))
	}

	slices.SortStableFunc(companies, func(a, b model.Company) int {
		return cmp.Compare(b.TotalWeight, a.TotalWeight)
	})
	return companies, nil
}

// GetCompanyDetail looks a company up by exact importer name. found is false
// when no importer carries that name; that is not an error.
func (s *analyticsService) GetCompanyDetail(ctx context.Context, name string) (model.Company, bool, error) {
	idx, err := s.indexes.Get(ctx)
	if err != nil {
		return model.Company{}, false, err
	}

	g, ok := idx.CompanyByName(name)
	if !ok {
		return model.Company{}, false, nil
	}

	company := toCompanyRollup(g)
	company.TopTradingPartners = topTradingPartners(idx.Records, g.Rows, detailTopPartners)
	company.TopCommodities = topCompanyCommodities(idx.Records, g.Rows, detailTopCommodities)
	return company, true, nil
}

func toCompanyRollup(g *index.Group[model.CompanyKey]) model.Company {
	return model.Company{
		Name:               g.Key.Name,
		Country:            g.Key.Country,
		Website:            g.Key.Website,
		Type:               model.CompanyTypeImporter,
		TotalShipments:     g.Count(),
		TotalWeight:        g.Kg(),
		TopTradingPartners: []model.TradingPartner{},
		TopCommodities:     []model.Commodity{},
	}
}

type partnerKey struct {
	name    string
	country string
}

func topTradingPartners(records []model.ShipmentRecord, rows []int, limit int) []model.TradingPartner {
	pos := make(map[partnerKey]int)
	partners := make([]model.TradingPartner, 0)
	for _, row := range rows {
		rec := records[row]
		key := partnerKey{name: rec.ExporterName, country: rec.ExporterCountry}
		i, ok := pos[key]
		if !ok {
			i = len(partners)
			pos[key] = i
			partners = append(partners, model.TradingPartner{Name: key.name, Country: key.country})
		}
		partners[i].Shipments++
	}

	slices.SortStableFunc(partners, func(a, b model.TradingPartner) int {
		return cmp.Compare(b.Shipments, a.Shipments)
	})
	return partners[:min(limit, len(partners))]
}

func topCompanyCommodities(records []model.ShipmentRecord, rows []int, limit int) []model.Commodity {
	pos := make(map[string]int)
	names := make([]string, 0)
	tonnes := make([]decimal.Decimal, 0)
	for _, row := range rows {
		rec := records[row]
		i, ok := pos[rec.CommodityName]
		if !ok {
			i = len(names)
			pos[rec.CommodityName] = i
			names = append(names, rec.CommodityName)
			tonnes = append(tonnes, decimal.Zero)
		}
		tonnes[i] = tonnes[i].Add(decimal.NewFromFloat(rec.WeightMetricTonnes))
	}

	commodities := make([]model.Commodity, len(names))
	for i, name := range names {
		commodities[i] = model.Commodity{Name: name, Weight: index.TonnesToKg(tonnes[i])}
	}

	slices.SortStableFunc(commodities, func(a, b model.Commodity) int {
		return cmp.Compare(b.Weight, a.Weight)
	})
	return commodities[:min(limit, len(commodities))]
}
