package purchasing

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// DocumentLine línea de la orden con datos de producto resueltos.
type DocumentLine struct {
	Item        entity.PurchaseOrderItem
	ProductSKU  string
	ProductName string
	Unit        string
}

// PurchaseOrderDocument datos completos para imprimir una orden de compra.
type PurchaseOrderDocument struct {
	Order     *entity.PurchaseOrder
	Supplier  *entity.Supplier
	Warehouse *entity.Warehouse
	Lines     []DocumentLine
}

// DocumentGenerator genera el PDF de una orden de compra (implementado en infraestructura).
type DocumentGenerator interface {
	PurchaseOrderPDF(ctx context.Context, doc PurchaseOrderDocument) ([]byte, error)
}
