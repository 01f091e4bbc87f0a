package service

import (
	"context"
	"fmt"
	"time"

	"tradeboard/internal/dataset"
	"tradeboard/internal/index"
	"tradeboard/internal/model"
	"tradeboard/internal/repository"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newIndexes(records []model.ShipmentRecord) *index.Builder {
	return index.NewBuilder(dataset.New(repository.StaticSource(records)))
}

type brokenSource struct{}

func (brokenSource) Load(context.Context) ([]model.ShipmentRecord, error) {
	return nil, fmt.Errorf("open data/shipments.json: no such file or directory")
}

func (brokenSource) Describe() string { return "broken" }

func acmeFixture() []model.ShipmentRecord {
	return []model.ShipmentRecord{
		{ID: "1", ImporterName: "Acme", ImporterCountry: "US", ImporterWebsite: "acme.com", ExporterName: "Steelco", ExporterCountry: "DE", CommodityName: "Steel", WeightMetricTonnes: 2.5, ShipmentDate: day(2024, 1, 5)},
		{ID: "2", ImporterName: "Acme", ImporterCountry: "US", ImporterWebsite: "acme.com", ExporterName: "Steelco", ExporterCountry: "DE", CommodityName: "Steel", WeightMetricTonnes: 1.0, ShipmentDate: day(2024, 2, 5)},
		{ID: "3", ImporterName: "Acme", ImporterCountry: "US", ImporterWebsite: "acme.com", ExporterName: "Woodly", ExporterCountry: "CA", CommodityName: "Wood", WeightMetricTonnes: 3.0, ShipmentDate: day(2024, 3, 5)},
	}
}

// tradeFixture has several importers, exporters, commodities and months
func tradeFixture() []model.ShipmentRecord {
	records := acmeFixture()
	more := []model.ShipmentRecord{
		{ImporterName: "Beta", ImporterCountry: "FR", ImporterWebsite: "beta.fr", ExporterName: "Acme", ExporterCountry: "US", CommodityName: "Grain", WeightMetricTonnes: 10, ShipmentDate: day(2023, 9, 1)},
		{ImporterName: "Beta", ImporterCountry: "FR", ImporterWebsite: "beta.fr", ExporterName: "Farmco", ExporterCountry: "UA", CommodityName: "Grain", WeightMetricTonnes: 0.4, ShipmentDate: day(2023, 10, 1)},
		{ImporterName: "Acme", ImporterCountry: "UK", ImporterWebsite: "acme.co.uk", ExporterName: "Steelco", ExporterCountry: "DE", CommodityName: "Steel", WeightMetricTonnes: 0.25, ShipmentDate: day(2023, 11, 1)},
		{ImporterName: "Gamma", ImporterCountry: "JP", ImporterWebsite: "gamma.jp", ExporterName: "Steelco", ExporterCountry: "DE", CommodityName: "Copper", WeightMetricTonnes: 6.5, ShipmentDate: day(2023, 12, 1)},
		{ImporterName: "O'Brien", ImporterCountry: "IE", ImporterWebsite: "obrien.ie", ExporterName: "Woodly", ExporterCountry: "CA", CommodityName: "Wood", WeightMetricTonnes: 1.5, ShipmentDate: day(2024, 3, 20)},
	}
	for i := range more {
		more[i].ID = fmt.Sprintf("%d", len(records)+i+1)
	}
	return append(records, more...)
}
