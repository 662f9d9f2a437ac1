package entity

import "time"

// StockReservation retención de stock a favor de un pedido de venta.
// Al despachar se marca Released=true; nunca se elimina.
type StockReservation struct {
	ID          string
	OrderID     string
	InventoryID string // StockBalance.ID
	Quantity    int
	Released    bool
	ReservedAt  time.Time
	ReleasedAt  *time.Time
}
