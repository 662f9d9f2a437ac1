package dto

import (
	"time"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	CustomerName    string `json:"customer_name" validate:"max=200"`
	ShippingAddress string `json:"shipping_address" validate:"max=500"`
	WarehouseID     string `json:"warehouse_id" validate:"required"`
}

// AddOrderItemRequest body para POST /api/orders/:id/items.
type AddOrderItemRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	LocationID string `json:"location_id" validate:"required"`
	Quantity   int    `json:"quantity"`
}

// OrderListQuery filtros de GET /api/orders.
type OrderListQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=PENDING RESERVED SHIPPED"`
	PageRequest
}

// OrderItemResponse línea del pedido.
type OrderItemResponse struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Quantity   int    `json:"quantity"`
}

// OrderResponse pedido de venta con sus líneas.
type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"order_number"`
	CustomerName    string              `json:"customer_name"`
	ShippingAddress string              `json:"shipping_address"`
	WarehouseID     string              `json:"warehouse_id"`
	Status          string              `json:"status"`
	OrderDate       time.Time           `json:"order_date"`
	ShippedDate     *time.Time          `json:"shipped_date,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ReservationResponse reserva de stock del pedido.
type ReservationResponse struct {
	ID          string     `json:"id"`
	InventoryID string     `json:"inventory_id"`
	Quantity    int        `json:"quantity"`
	Released    bool       `json:"released"`
	ReservedAt  time.Time  `json:"reserved_at"`
	ReleasedAt  *time.Time `json:"released_at,omitempty"`
}

// FromOrder convierte un pedido de dominio.
func FromOrder(o *entity.SalesOrder) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID: it.ID, ProductID: it.ProductID, LocationID: it.LocationID, Quantity: it.Quantity,
		})
	}
	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		ShippingAddress: o.ShippingAddress,
		WarehouseID:     o.WarehouseID,
		Status:          string(o.Status),
		OrderDate:       o.OrderDate,
		ShippedDate:     o.ShippedDate,
		Items:           items,
		UpdatedAt:       o.UpdatedAt,
	}
}

// FromReservation convierte una reserva de dominio.
func FromReservation(r *entity.StockReservation) ReservationResponse {
	return ReservationResponse{
		ID:          r.ID,
		InventoryID: r.InventoryID,
		Quantity:    r.Quantity,
		Released:    r.Released,
		ReservedAt:  r.ReservedAt,
		ReleasedAt:  r.ReleasedAt,
	}
}
