package service

import (
	"context"
	"testing"

	"tradeboard/internal/dataset"
	"tradeboard/internal/index"
	"tradeboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCompanyDetail_Acme(t *testing.T) {
	svc := NewAnalyticsService(newIndexes(acmeFixture()))

	got, found, err := svc.GetCompanyDetail(context.Background(), "Acme")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, "US", got.Country)
	assert.Equal(t, "acme.com", got.Website)
	assert.Equal(t, model.CompanyTypeImporter, got.Type)
	assert.Equal(t, 3, got.TotalShipments)
	assert.Equal(t, int64(6500), got.TotalWeight)
	assert.Equal(t, []model.Commodity{
		{Name: "Steel", Weight: 3500},
		{Name: "Wood", Weight: 3000},
	}, got.TopCommodities)
	assert.Equal(t, []model.TradingPartner{
		{Name: "Steelco", Country: "DE", Shipments: 2},
		{Name: "Woodly", Country: "CA", Shipments: 1},
	}, got.TopTradingPartners)
}

func TestGetCompanyDetail_NotFound(t *testing.T) {
	indexes := newIndexes(tradeFixture())
	svc := NewAnalyticsService(indexes)
	ctx := context.Background()

	names := []string{
		"'; DROP TABLE shipments; --",
		"Acme' OR '1'='1",
		"acme",
		"Acme\x00",
		`O\'Brien`,
		"",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			got, found, err := svc.GetCompanyDetail(ctx, name)
			require.NoError(t, err)
			assert.False(t, found)
			assert.Equal(t, model.Company{}, got)
		})
	}

	idx, err := indexes.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, idx.Records, len(tradeFixture()))
}

func TestGetCompanyDetail_QuoteInNameMatchesLiterally(t *testing.T) {
	svc := NewAnalyticsService(newIndexes(tradeFixture()))

	got, found, err := svc.GetCompanyDetail(context.Background(), "O'Brien")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, got.TotalShipments)
	assert.Equal(t, int64(1500), got.TotalWeight)
}

func TestGetCompanyDetail_SharedNamePicksFirstIdentity(t *testing.T) {
	svc := NewAnalyticsService(newIndexes(tradeFixture()))

	got, found, err := svc.GetCompanyDetail(context.Background(), "Acme")
	require.NoError(t, err)
	require.True(t, found)
	// the UK entity is a separate company and must not be merged in
	assert.Equal(t, "US", got.Country)
	assert.Equal(t, 3, got.TotalShipments)
}

func TestGetCompanyDetail_TopThreeWithStableTies(t *testing.T) {
	var records []model.ShipmentRecord
	add := func(exporter, commodity string, tonnes float64, n int) {
		for i := 0; i < n; i++ {
			records = append(records, model.ShipmentRecord{
				ImporterName: "Hub", ImporterCountry: "NL", ExporterName: exporter, ExporterCountry: "XX",
				CommodityName: commodity, WeightMetricTonnes: tonnes, ShipmentDate: day(2024, 1, 1),
			})
		}
	}
	add("E1", "C1", 1, 1)
	add("E2", "C2", 1, 2)
	add("E3", "C3", 2, 1)
	add("E4", "C4", 1, 2)
	add("E5", "C5", 0.5, 3)

	svc := NewAnalyticsService(newIndexes(records))
	got, found, err := svc.GetCompanyDetail(context.Background(), "Hub")
	require.NoError(t, err)
	require.True(t, found)

	require.Len(t, got.TopTradingPartners, 3)
	assert.Equal(t, "E5", got.TopTradingPartners[0].Name)
	assert.Equal(t, "E2", got.TopTradingPartners[1].Name)
	assert.Equal(t, "E4", got.TopTradingPartners[2].Name)
	for i := 1; i < len(got.TopTradingPartners); i++ {
		assert.GreaterOrEqual(t, got.TopTradingPartners[i-1].Shipments, got.TopTradingPartners[i].Shipments)
	}

	// C2, C3, C4 all weigh 2000 kg; C5 weighs 1500 kg
	assert.Equal(t, []model.Commodity{
		{Name: "C2", Weight: 2000},
		{Name: "C3", Weight: 2000},
		{Name: "C4", Weight: 2000},
	}, got.TopCommodities)
}

func TestListCompanies(t *testing.T) {
	svc := NewAnalyticsService(newIndexes(tradeFixture()))

	companies, err := svc.ListCompanies(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 5)

	for i := 1; i < len(companies); i++ {
		assert.GreaterOrEqual(t, companies[i-1].TotalWeight, companies[i].TotalWeight)
	}

	assert.Equal(t, "Beta", companies[0].Name)
	assert.Equal(t, int64(10400), companies[0].TotalWeight)
	assert.Equal(t, 2, companies[0].TotalShipments)

	for _, c := range companies {
		assert.Equal(t, model.CompanyTypeImporter, c.Type)
		assert.NotNil(t, c.TopTradingPartners)
		assert.Empty(t, c.TopTradingPartners)
		assert.Empty(t, c.TopCommodities)
	}

	var acmeUK model.Company
	for _, c := range companies {
		if c.Name == "Acme" && c.Country == "UK" {
			acmeUK = c
		}
	}
	assert.Equal(t, int64(250), acmeUK.TotalWeight)
}

func TestListCompanies_StableTies(t *testing.T) {
	records := []model.ShipmentRecord{
		{ImporterName: "First", CommodityName: "X", WeightMetricTonnes: 1, ShipmentDate: day(2024, 1, 1)},
		{ImporterName: "Second", CommodityName: "X", WeightMetricTonnes: 1, ShipmentDate: day(2024, 1, 1)},
		{ImporterName: "Third", CommodityName: "X", WeightMetricTonnes: 1, ShipmentDate: day(2024, 1, 1)},
	}
	svc := NewAnalyticsService(newIndexes(records))

	companies, err := svc.ListCompanies(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 3)
	assert.Equal(t, "First", companies[0].Name)
	assert.Equal(t, "Second", companies[1].Name)
	assert.Equal(t, "Third", companies[2].Name)
}

func TestListCompanies_Empty(t *testing.T) {
	svc := NewAnalyticsService(newIndexes(nil))

	companies, err := svc.ListCompanies(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, companies)
	assert.Empty(t, companies)
}

func TestAnalytics_DataUnavailable(t *testing.T) {
	svc := NewAnalyticsService(index.NewBuilder(dataset.New(brokenSource{})))
	ctx := context.Background()

	_, err := svc.ListCompanies(ctx)
	assert.ErrorIs(t, err, dataset.ErrDataUnavailable)

	_, found, err := svc.GetCompanyDetail(ctx, "Acme")
	assert.False(t, found)
	assert.ErrorIs(t, err, dataset.ErrDataUnavailable)

	_, err = svc.GetCompanyStats(ctx)
	assert.ErrorIs(t, err, dataset.ErrDataUnavailable)

	_, err = svc.GetTopCommodities(ctx, 5)
	assert.ErrorIs(t, err, dataset.ErrDataUnavailable)

	_, err = svc.GetMonthlyVolume(ctx, 6)
	assert.ErrorIs(t, err, dataset.ErrDataUnavailable)

	_, err = svc.GetStats(ctx, 5, 6)
	assert.ErrorIs(t, err, dataset.ErrDataUnavailable)
}
