package repository

import (
	"context"
	"time"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// StockReservationRepository puerto de reservas de stock por pedido.
type StockReservationRepository interface {
	Create(ctx context.Context, reservation *entity.StockReservation) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.StockReservation, error)
	// ListOpenByOrder devuelve las reservas con Released=false.
	ListOpenByOrder(ctx context.Context, orderID string) ([]*entity.StockReservation, error)
	MarkReleased(ctx context.Context, ids []string, at time.Time) error
}
