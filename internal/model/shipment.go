package model

import (
	"time"
)

// ShipmentRecord is one trade event as delivered by the bulk loader
type ShipmentRecord struct {
	ID                 string    `gorm:"column:id;primaryKey" json:"id"`
	ImporterName       string    `gorm:"column:importer_name" json:"importer_name"`
	ImporterCountry    string    `gorm:"column:importer_country" json:"importer_country"`
	ImporterWebsite    string    `gorm:"column:importer_website" json:"importer_website"`
	ExporterName       string    `gorm:"column:exporter_name" json:"exporter_name"`
	ExporterCountry    string    `gorm:"column:exporter_country" json:"exporter_country"`
	CommodityName      string    `gorm:"column:commodity_name" json:"commodity_name"`
	WeightMetricTonnes float64   `gorm:"column:weight_metric_tonnes" json:"weight_metric_tonnes"`
	ShipmentDate       time.Time `gorm:"column:shipment_date" json:"shipment_date"`
}

// ImporterKey returns the company identity of the importing side
func (s ShipmentRecord) ImporterKey() CompanyKey {
	return CompanyKey{Name: s.ImporterName, Country: s.ImporterCountry, Website: s.ImporterWebsite}
}

// ShipmentPage is one slice of the date-ordered shipment listing
type ShipmentPage struct {
	Data   []ShipmentRecord `json:"data"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}
