package entity

import (
	"time"

	"github.com/jhoicas/wms-api/internal/domain"
)

// OrderStatus estado del pedido de venta. Solo avanza: PENDING → RESERVED → SHIPPED.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusReserved OrderStatus = "RESERVED"
	OrderStatusShipped  OrderStatus = "SHIPPED"
)

// SalesOrder agregado raíz del pedido de venta; es dueño de sus ítems.
type SalesOrder struct {
	ID              string
	OrderNumber     string
	CustomerName    string
	ShippingAddress string
	WarehouseID     string
	Status          OrderStatus
	OrderDate       time.Time
	ShippedDate     *time.Time
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem línea del pedido: producto a despachar desde una ubicación.
type OrderItem struct {
	ID         string
	OrderID    string
	ProductID  string
	LocationID string
	Quantity   int
}

// AddItem agrega una línea; solo permitido en PENDING.
func (o *SalesOrder) AddItem(item OrderItem) error {
	if o.Status != OrderStatusPending {
		return &domain.InvalidStateError{Entity: "pedido", Status: string(o.Status), Operation: "agregar ítems"}
	}
	if item.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	item.OrderID = o.ID
	o.Items = append(o.Items, item)
	return nil
}

// CanReserve valida la transición PENDING → RESERVED.
func (o *SalesOrder) CanReserve() error {
	if o.Status != OrderStatusPending {
		return &domain.InvalidStateError{Entity: "pedido", Status: string(o.Status), Operation: "reservar stock"}
	}
	if len(o.Items) == 0 {
		return &domain.BusinessRuleError{Rule: "no items"}
	}
	return nil
}

// MarkReserved aplica la transición a RESERVED.
func (o *SalesOrder) MarkReserved(now time.Time) {
	o.Status = OrderStatusReserved
	o.UpdatedAt = now
}

// CanShip valida la transición RESERVED → SHIPPED.
func (o *SalesOrder) CanShip() error {
	if o.Status != OrderStatusReserved {
		return &domain.InvalidStateError{Entity: "pedido", Status: string(o.Status), Operation: "despachar"}
	}
	return nil
}

// MarkShipped aplica la transición a SHIPPED y fija la fecha de despacho.
func (o *SalesOrder) MarkShipped(now time.Time) {
	o.Status = OrderStatusShipped
	o.ShippedDate = &now
	o.UpdatedAt = now
}
