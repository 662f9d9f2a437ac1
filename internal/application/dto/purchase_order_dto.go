package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID           string     `json:"supplier_id" validate:"required"`
	WarehouseID          string     `json:"warehouse_id" validate:"required"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date,omitempty"`
}

// AddPurchaseOrderItemRequest body para POST /api/purchase-orders/:id/items.
type AddPurchaseOrderItemRequest struct {
	ProductID       string          `json:"product_id" validate:"required"`
	LocationID      string          `json:"location_id" validate:"required"`
	OrderedQuantity int             `json:"ordered_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// PurchaseOrderListQuery filtros de GET /api/purchase-orders.
type PurchaseOrderListQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=DRAFT APPROVED RECEIVED"`
	PageRequest
}

// PurchaseOrderItemResponse línea de compra.
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	LocationID       string          `json:"location_id"`
	OrderedQuantity  int             `json:"ordered_quantity"`
	ReceivedQuantity int             `json:"received_quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse orden de compra con sus líneas y total.
type PurchaseOrderResponse struct {
	ID                   string                      `json:"id"`
	OrderNumber          string                      `json:"order_number"`
	SupplierID           string                      `json:"supplier_id"`
	WarehouseID          string                      `json:"warehouse_id"`
	Status               string                      `json:"status"`
	OrderDate            time.Time                   `json:"order_date"`
	ExpectedDeliveryDate *time.Time                  `json:"expected_delivery_date,omitempty"`
	ReceivedDate         *time.Time                  `json:"received_date,omitempty"`
	Items                []PurchaseOrderItemResponse `json:"items"`
	Total                decimal.Decimal             `json:"total"`
	UpdatedAt            time.Time                   `json:"updated_at"`
}

// FromPurchaseOrder convierte una orden de compra de dominio.
func FromPurchaseOrder(po *entity.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, PurchaseOrderItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			LocationID:       it.LocationID,
			OrderedQuantity:  it.OrderedQuantity,
			ReceivedQuantity: it.ReceivedQuantity,
			UnitPrice:        it.UnitPrice,
			Subtotal:         it.Subtotal(),
		})
	}
	return PurchaseOrderResponse{
		ID:                   po.ID,
		OrderNumber:          po.OrderNumber,
		SupplierID:           po.SupplierID,
		WarehouseID:          po.WarehouseID,
		Status:               string(po.Status),
		OrderDate:            po.OrderDate,
		ExpectedDeliveryDate: po.ExpectedDeliveryDate,
		ReceivedDate:         po.ReceivedDate,
		Items:                items,
		Total:                po.Total(),
		UpdatedAt:            po.UpdatedAt,
	}
}
