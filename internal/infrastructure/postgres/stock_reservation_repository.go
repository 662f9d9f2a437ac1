package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.StockReservationRepository = (*StockReservationRepo)(nil)

// StockReservationRepo reservas de stock sobre PostgreSQL.
type StockReservationRepo struct {
	q Querier
}

// NewStockReservationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockReservationRepository(q Querier) *StockReservationRepo {
	return &StockReservationRepo{q: q}
}

// Create persiste la reserva.
func (r *StockReservationRepo) Create(ctx context.Context, res *entity.StockReservation) error {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_reservations (id, order_id, inventory_id, quantity, released, reserved_at, released_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		res.ID, res.OrderID, res.InventoryID, res.Quantity, res.Released, res.ReservedAt, res.ReleasedAt,
	)
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// ListByOrder todas las reservas del pedido en orden de creación.
func (r *StockReservationRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.StockReservation, error) {
	return r.list(ctx, `WHERE order_id = $1`, orderID)
}

// ListOpenByOrder reservas no liberadas del pedido.
func (r *StockReservationRepo) ListOpenByOrder(ctx context.Context, orderID string) ([]*entity.StockReservation, error) {
	return r.list(ctx, `WHERE order_id = $1 AND NOT released`, orderID)
}

func (r *StockReservationRepo) list(ctx context.Context, where, orderID string) ([]*entity.StockReservation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, inventory_id, quantity, released, reserved_at, released_at
		FROM stock_reservations `+where+` ORDER BY seq`, orderID)
	if err != nil {
		if isInvalidUUID(err) {
			return []*entity.StockReservation{}, nil
		}
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()
	list := []*entity.StockReservation{}
	for rows.Next() {
		var res entity.StockReservation
		if err := rows.Scan(&res.ID, &res.OrderID, &res.InventoryID, &res.Quantity, &res.Released, &res.ReservedAt, &res.ReleasedAt); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, &res)
	}
	return list, rows.Err()
}

// MarkReleased marca como liberadas las reservas indicadas.
func (r *StockReservationRepo) MarkReleased(ctx context.Context, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx, `
		UPDATE stock_reservations SET released = TRUE, released_at = $2
		WHERE id = ANY($1) AND NOT released`, ids, at)
	if err != nil {
		return fmt.Errorf("release reservations: %w", err)
	}
	return nil
}
