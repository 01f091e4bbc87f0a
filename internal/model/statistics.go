package model

// CompanyStats counts distinct trading companies across the dataset
type CompanyStats struct {
	TotalImporters int `json:"totalImporters"`
	TotalExporters int `json:"totalExporters"`
}

// TopCommodity ranks a commodity across the whole dataset.
// Kg holds the raw summed weight_metric_tonnes value, unlike Commodity.Weight.
type TopCommodity struct {
	Commodity string  `json:"commodity"`
	Kg        float64 `json:"kg"`
}

// MonthlyVolume is the shipped weight for one calendar month
type MonthlyVolume struct {
	Month string `json:"month"` // e.g. "Jan 2024"
	Kg    int64  `json:"kg"`
}

// StatsResponse aggregates the dashboard statistics
type StatsResponse struct {
	CompanyStats   CompanyStats    `json:"companyStats"`
	TopCommodities []TopCommodity  `json:"topCommodities"`
	MonthlyVolume  []MonthlyVolume `json:"monthlyVolume"`
}
