package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// SalesOrderRepository puerto de persistencia del agregado SalesOrder (con sus ítems).
type SalesOrderRepository interface {
	// Create devuelve domain.ErrDuplicate si el número de pedido ya existe.
	Create(ctx context.Context, order *entity.SalesOrder) error
	GetByID(ctx context.Context, id string) (*entity.SalesOrder, error)
	// GetForUpdate carga el pedido con sus ítems y bloquea la cabecera.
	GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error)
	AddItem(ctx context.Context, item *entity.OrderItem) error
	UpdateStatus(ctx context.Context, order *entity.SalesOrder) error
	List(ctx context.Context, status *entity.OrderStatus, limit, offset int) ([]*entity.SalesOrder, error)
}
