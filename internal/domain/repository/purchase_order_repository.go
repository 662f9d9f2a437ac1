package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia del agregado PurchaseOrder (con sus ítems).
type PurchaseOrderRepository interface {
	// Create devuelve domain.ErrDuplicate si el número de orden ya existe.
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	AddItem(ctx context.Context, item *entity.PurchaseOrderItem) error
	UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error
	UpdateItemReceived(ctx context.Context, itemID string, receivedQuantity int) error
	List(ctx context.Context, status *entity.PurchaseOrderStatus, limit, offset int) ([]*entity.PurchaseOrder, error)
}
