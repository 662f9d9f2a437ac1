package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// WarehouseRepository puerto de lectura de bodegas (DIP).
type WarehouseRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Create(ctx context.Context, warehouse *entity.Warehouse) error
}
