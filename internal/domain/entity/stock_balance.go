package entity

import "time"

// StockBalance representa el stock de un producto en una ubicación (par único producto+ubicación).
// Quantity son las unidades físicas; ReservedQuantity lo comprometido con pedidos de venta.
// ID vacío indica un saldo aún no persistido (creado en memoria por GetOrCreateBalance).
type StockBalance struct {
	ID               string
	ProductID        string
	LocationID       string
	Quantity         int
	ReservedQuantity int
	Version          int // control optimista; se incrementa en cada escritura
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AvailableQuantity unidades que aún pueden prometerse a nuevos pedidos.
func (b *StockBalance) AvailableQuantity() int {
	return b.Quantity - b.ReservedQuantity
}

// IsNew indica si el saldo todavía no existe en persistencia.
func (b *StockBalance) IsNew() bool {
	return b.ID == ""
}

// BalanceView saldo enriquecido con datos de catálogo para consultas (solo lectura).
type BalanceView struct {
	StockBalance
	ProductSKU    string
	ProductName   string
	LocationCode  string
	WarehouseID   string
	WarehouseName string
}
