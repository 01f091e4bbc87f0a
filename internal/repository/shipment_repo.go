package repository

import (
	"context"

	"tradeboard/internal/model"

	"github.com/rotisserie/eris"
	"gorm.io/gorm"
)

// ShipmentSource supplies the full shipment dataset in one bulk read.
type ShipmentSource interface {
	Load(ctx context.Context) ([]model.ShipmentRecord, error)
	Describe() string
}

type shipmentRepository struct {
	db    *gorm.DB
	table string
}

// NewShipmentRepository reads shipments from a PostgreSQL table. The table
// name comes from configuration, never from request input.
func NewShipmentRepository(db *gorm.DB, table string) ShipmentSource {
	return &shipmentRepository{db: db, table: table}
}

func (r *shipmentRepository) Load(ctx context.Context) ([]model.ShipmentRecord, error) {
	var shipments []model.ShipmentRecord
	if err := r.db.WithContext(ctx).Table(r.table).Order("id").Find(&shipments).Error; err != nil {
		return nil, eris.Wrapf(err, "failed to query shipments from table %s", r.table)
	}
	return shipments, nil
}

func (r *shipmentRepository) Describe() string {
	return "postgres:" + r.table
}

// StaticSource serves an in-memory record set, used for fixtures and tests
type StaticSource []model.ShipmentRecord

func (s StaticSource) Load(context.Context) ([]model.ShipmentRecord, error) {
	return s, nil
}

func (s StaticSource) Describe() string {
	return "static"
}
