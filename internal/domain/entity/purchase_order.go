package entity

import (
	"time"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus estado de la orden de compra. Solo avanza: DRAFT → APPROVED → RECEIVED.
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft    PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusApproved PurchaseOrderStatus = "APPROVED"
	PurchaseOrderStatusReceived PurchaseOrderStatus = "RECEIVED"
)

// PurchaseOrder agregado raíz de la orden de compra a proveedor.
type PurchaseOrder struct {
	ID                   string
	OrderNumber          string
	SupplierID           string
	WarehouseID          string
	Status               PurchaseOrderStatus
	OrderDate            time.Time
	ExpectedDeliveryDate *time.Time
	ReceivedDate         *time.Time
	Items                []PurchaseOrderItem
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PurchaseOrderItem línea de compra; ReceivedQuantity inicia en 0.
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	ProductID        string
	LocationID       string
	OrderedQuantity  int
	ReceivedQuantity int
	UnitPrice        decimal.Decimal
}

// Outstanding unidades pendientes de recibir.
func (i PurchaseOrderItem) Outstanding() int {
	return i.OrderedQuantity - i.ReceivedQuantity
}

// Subtotal cantidad pedida por precio unitario.
func (i PurchaseOrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.OrderedQuantity)))
}

// Total suma de subtotales de las líneas.
func (po *PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range po.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// AddItem agrega una línea; solo permitido en DRAFT.
func (po *PurchaseOrder) AddItem(item PurchaseOrderItem) error {
	if po.Status != PurchaseOrderStatusDraft {
		return &domain.InvalidStateError{Entity: "orden de compra", Status: string(po.Status), Operation: "agregar ítems"}
	}
	if item.OrderedQuantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if !item.UnitPrice.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	item.PurchaseOrderID = po.ID
	item.ReceivedQuantity = 0
	po.Items = append(po.Items, item)
	return nil
}

// Approve aplica DRAFT → APPROVED; exige al menos un ítem.
func (po *PurchaseOrder) Approve(now time.Time) error {
	if po.Status != PurchaseOrderStatusDraft {
		return &domain.InvalidStateError{Entity: "orden de compra", Status: string(po.Status), Operation: "aprobar"}
	}
	if len(po.Items) == 0 {
		return &domain.BusinessRuleError{Rule: "no items"}
	}
	po.Status = PurchaseOrderStatusApproved
	po.UpdatedAt = now
	return nil
}

// CanReceive valida la transición APPROVED → RECEIVED.
func (po *PurchaseOrder) CanReceive() error {
	if po.Status != PurchaseOrderStatusApproved {
		return &domain.InvalidStateError{Entity: "orden de compra", Status: string(po.Status), Operation: "recibir"}
	}
	return nil
}

// MarkReceived aplica la transición a RECEIVED.
func (po *PurchaseOrder) MarkReceived(now time.Time) {
	po.Status = PurchaseOrderStatusReceived
	po.ReceivedDate = &now
	po.UpdatedAt = now
}
