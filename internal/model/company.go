package model

// CompanyType enum constants
const (
	CompanyTypeImporter = "importer"
	CompanyTypeExporter = "exporter"
)

// CompanyKey identifies a company. Two companies may share a name across countries.
type CompanyKey struct {
	Name    string
	Country string
	Website string
}

// Company is a per-company rollup. Detail lookups also fill the ranked lists.
type Company struct {
	Name               string           `json:"name"`
	Country            string           `json:"country"`
	Website            string           `json:"website"`
	Type               string           `json:"type"`
	TotalShipments     int              `json:"totalShipments"`
	TotalWeight        int64            `json:"totalWeight"` // kg
	TopTradingPartners []TradingPartner `json:"topTradingPartners"`
	TopCommodities     []Commodity      `json:"topCommodities"`
}

// TradingPartner is an exporter that shipped to a given importer
type TradingPartner struct {
	Name      string `json:"name"`
	Country   string `json:"country"`
	Shipments int    `json:"shipments"`
}

// Commodity is a commodity total for a single company, in kg
type Commodity struct {
	Name   string `json:"name"`
	Weight int64  `json:"weight"`
}
