package dto

import (
	"time"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// TransferRequest body para POST /api/inventory/transfers.
type TransferRequest struct {
	ProductID       string `json:"product_id" validate:"required"`
	FromLocationID  string `json:"from_location_id" validate:"required"`
	ToLocationID    string `json:"to_location_id" validate:"required"`
	Quantity        int    `json:"quantity"`
	Reason          string `json:"reason,omitempty" validate:"max=500"`
	ReferenceNumber string `json:"reference_number,omitempty" validate:"max=64"`
}

// AdjustRequest body para POST /api/inventory/adjustments. new_quantity es la cantidad contada.
type AdjustRequest struct {
	ProductID       string `json:"product_id" validate:"required"`
	LocationID      string `json:"location_id" validate:"required"`
	NewQuantity     int    `json:"new_quantity"`
	Reason          string `json:"reason,omitempty" validate:"max=500"`
	ReferenceNumber string `json:"reference_number,omitempty" validate:"max=64"`
}

// BalanceQuery filtros de GET /api/inventory/balances; se usa exactamente uno.
type BalanceQuery struct {
	ProductID   string `query:"product_id"`
	LocationID  string `query:"location_id"`
	WarehouseID string `query:"warehouse_id"`
}

// MovementQuery filtros de GET /api/inventory/movements.
type MovementQuery struct {
	ProductID string `query:"product_id"`
	Type      string `query:"type" validate:"omitempty,oneof=IN OUT ADJUSTMENT TRANSFER"`
	From      string `query:"from" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	To        string `query:"to" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	PageRequest
}

// BalanceResponse saldo de un producto en una ubicación.
type BalanceResponse struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"product_id"`
	LocationID        string    `json:"location_id"`
	Quantity          int       `json:"quantity"`
	ReservedQuantity  int       `json:"reserved_quantity"`
	AvailableQuantity int       `json:"available_quantity"`
	Version           int       `json:"version"`
	UpdatedAt         time.Time `json:"updated_at"`
	ProductSKU        string    `json:"product_sku,omitempty"`
	ProductName       string    `json:"product_name,omitempty"`
	LocationCode      string    `json:"location_code,omitempty"`
	WarehouseID       string    `json:"warehouse_id,omitempty"`
	WarehouseName     string    `json:"warehouse_name,omitempty"`
}

// MovementResponse movimiento de stock.
type MovementResponse struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	ProductID       string    `json:"product_id"`
	FromLocationID  *string   `json:"from_location_id,omitempty"`
	ToLocationID    *string   `json:"to_location_id,omitempty"`
	Quantity        int       `json:"quantity"`
	Reason          string    `json:"reason,omitempty"`
	ReferenceNumber string    `json:"reference_number,omitempty"`
	TraceID         string    `json:"trace_id,omitempty"`
	MovementDate    time.Time `json:"movement_date"`
}

// TransferResponse saldos de origen y destino tras el traslado.
type TransferResponse struct {
	From     BalanceResponse  `json:"from"`
	To       BalanceResponse  `json:"to"`
	Movement MovementResponse `json:"movement"`
}

// AdjustResponse saldo ajustado y cantidad previa.
type AdjustResponse struct {
	Balance     BalanceResponse  `json:"balance"`
	OldQuantity int              `json:"old_quantity"`
	Movement    MovementResponse `json:"movement"`
}

// FromBalance convierte un saldo de dominio.
func FromBalance(b *entity.StockBalance) BalanceResponse {
	return BalanceResponse{
		ID:                b.ID,
		ProductID:         b.ProductID,
		LocationID:        b.LocationID,
		Quantity:          b.Quantity,
		ReservedQuantity:  b.ReservedQuantity,
		AvailableQuantity: b.AvailableQuantity(),
		Version:           b.Version,
		UpdatedAt:         b.UpdatedAt,
	}
}

// FromBalanceView convierte un saldo enriquecido con catálogo.
func FromBalanceView(v *entity.BalanceView) BalanceResponse {
	out := FromBalance(&v.StockBalance)
	out.ProductSKU = v.ProductSKU
	out.ProductName = v.ProductName
	out.LocationCode = v.LocationCode
	out.WarehouseID = v.WarehouseID
	out.WarehouseName = v.WarehouseName
	return out
}

// FromMovement convierte un movimiento de dominio.
func FromMovement(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:              m.ID,
		Type:            string(m.Type),
		ProductID:       m.ProductID,
		FromLocationID:  m.FromLocationID,
		ToLocationID:    m.ToLocationID,
		Quantity:        m.Quantity,
		Reason:          m.Reason,
		ReferenceNumber: m.ReferenceNumber,
		TraceID:         m.TraceID,
		MovementDate:    m.MovementDate,
	}
}
