package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/application/purchasing"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/infrastructure/pdf"
)

func TestPurchaseOrderPDF_GeneraDocumento(t *testing.T) {
	eta := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	po := &entity.PurchaseOrder{
		ID:                   "po-1",
		OrderNumber:          "PO-ABCD1234",
		Status:               entity.PurchaseOrderStatusApproved,
		OrderDate:            time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
		ExpectedDeliveryDate: &eta,
		Items: []entity.PurchaseOrderItem{
			{ID: "i-1", ProductID: "p-1", LocationID: "l-1", OrderedQuantity: 1200, UnitPrice: decimal.RequireFromString("350")},
		},
	}
	doc := purchasing.PurchaseOrderDocument{
		Order:     po,
		Supplier:  &entity.Supplier{Name: "Distribuidora Andina S.A.S.", ContactName: "Laura"},
		Warehouse: &entity.Warehouse{Name: "Bodega Principal", Address: "Calle 10"},
		Lines: []purchasing.DocumentLine{
			{Item: po.Items[0], ProductSKU: "SKU-TORN-001", ProductName: "Tornillo hexagonal 1/4", Unit: "UND"},
		},
	}

	out, err := pdf.NewMarotoPDFGenerator().PurchaseOrderPDF(context.Background(), doc)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe producir un PDF")
}

func TestPurchaseOrderPDF_SinProveedorNiBodega(t *testing.T) {
	doc := purchasing.PurchaseOrderDocument{
		Order: &entity.PurchaseOrder{OrderNumber: "PO-ZZZZ0000", Status: entity.PurchaseOrderStatusDraft},
	}

	out, err := pdf.NewMarotoPDFGenerator().PurchaseOrderPDF(context.Background(), doc)

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestPurchaseOrderPDF_OrdenVacia(t *testing.T) {
	_, err := pdf.NewMarotoPDFGenerator().PurchaseOrderPDF(context.Background(), purchasing.PurchaseOrderDocument{})
	assert.Error(t, err)
}
