package inventory

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

const (
	defaultMovementLimit = 50
	maxMovementLimit     = 500
)

// MovementQueryUseCase consultas de solo lectura sobre el historial de movimientos.
type MovementQueryUseCase struct {
	movements repository.StockMovementRepository
}

// NewMovementQueryUseCase construye el caso de uso de consulta.
func NewMovementQueryUseCase(movements repository.StockMovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movements: movements}
}

// List filtra por producto, tipo y rango de fechas (cualquier combinación), más recientes primero.
func (uc *MovementQueryUseCase) List(ctx context.Context, filter entity.MovementFilter) ([]*entity.StockMovement, error) {
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, domain.ErrInvalidInput
	}
	if filter.Offset < 0 {
		return nil, domain.ErrInvalidInput
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultMovementLimit
	}
	if filter.Limit > maxMovementLimit {
		filter.Limit = maxMovementLimit
	}
	return uc.movements.List(ctx, filter)
}

// Get devuelve un movimiento por ID.
func (uc *MovementQueryUseCase) Get(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NewNotFound("movimiento", id)
	}
	return m, nil
}
