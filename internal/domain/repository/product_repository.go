package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// ProductRepository puerto de lectura del catálogo de productos (DIP).
// Create existe solo para siembra de datos; el CRUD del catálogo vive fuera de este servicio.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
}
