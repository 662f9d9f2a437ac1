package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// SupplierRepository puerto de lectura de proveedores (DIP).
type SupplierRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Create(ctx context.Context, supplier *entity.Supplier) error
}
