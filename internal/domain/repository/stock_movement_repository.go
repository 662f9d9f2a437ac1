package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// StockMovementRepository puerto de persistencia de movimientos: solo inserción y lectura.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	List(ctx context.Context, filter entity.MovementFilter) ([]*entity.StockMovement, error)
}
