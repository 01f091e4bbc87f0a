package service

import (
	"context"

	"tradeboard/internal/model"
	"tradeboard/pkg/pagination"
)

type ShipmentService interface {
	GetShipments(ctx context.Context, limit, offset int) (model.ShipmentPage, error)
}

type shipmentService struct {
	indexes IndexProvider
}

func NewShipmentService(indexes IndexProvider) ShipmentService {
	return &shipmentService{indexes: indexes}
}

// GetShipments returns records [offset, offset+limit) of the newest-first
// listing. Total is always the full dataset size. Clients must advance
// offset by len(Data), not by limit.
func (s *shipmentService) GetShipments(ctx context.Context, limit, offset int) (model.ShipmentPage, error) {
	params := pagination.Normalize(limit, offset)

	idx, err := s.indexes.Get(ctx)
	if err != nil {
		return model.ShipmentPage{}, err
	}

	total := len(idx.Listing)
	start := min(params.Offset, total)
	end := total
	if params.Limit < total-start {
		end = start + params.Limit
	}

	data := make([]model.ShipmentRecord, 0, end-start)
	for _, row := range idx.Listing[start:end] {
		data = append(data, idx.Records[row])
	}

	return model.ShipmentPage{
		Data:   data,
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	}, nil
}
