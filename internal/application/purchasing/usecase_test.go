package purchasing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/application/purchasing"
	"github.com/jhoicas/wms-api/internal/application/seed"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
	"github.com/jhoicas/wms-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeDocs struct {
	last purchasing.PurchaseOrderDocument
}

func (f *fakeDocs) PurchaseOrderPDF(_ context.Context, doc purchasing.PurchaseOrderDocument) ([]byte, error) {
	f.last = doc
	return []byte("%PDF-fake"), nil
}

type fixture struct {
	store *memory.Store
	demo  *seed.DemoCatalog
	docs  *fakeDocs
	stock *inventory.StockUseCase
	po    *purchasing.PurchaseOrderUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	demo, err := seed.Seed(context.Background(), seed.CatalogRepos{
		Products:   store.Products(),
		Locations:  store.Locations(),
		Warehouses: store.Warehouses(),
		Suppliers:  store.Suppliers(),
	})
	require.NoError(t, err)

	tx := memory.NewTxRunner(store)
	catalog := inventory.NewCatalog(store.Products(), store.Locations(), store.Warehouses(), store.Suppliers())
	docs := &fakeDocs{}
	return &fixture{
		store: store,
		demo:  demo,
		docs:  docs,
		stock: inventory.NewStockUseCase(tx, catalog, store.Repos().Balances, nil, logger.Nop()),
		po:    purchasing.NewPurchaseOrderUseCase(tx, catalog, store.Repos().PurchaseOrders, docs, nil, nil, logger.Nop()),
	}
}

func (f *fixture) draft(t *testing.T, items ...purchasing.AddItemInput) *entity.PurchaseOrder {
	t.Helper()
	ctx := context.Background()
	po, err := f.po.Create(ctx, purchasing.CreateInput{SupplierID: f.demo.Supplier.ID, WarehouseID: f.demo.Warehouse.ID})
	require.NoError(t, err)
	for _, it := range items {
		po, err = f.po.AddItem(ctx, po.ID, it)
		require.NoError(t, err)
	}
	return po
}

func (f *fixture) item(productIdx, locationIdx, qty int, price string) purchasing.AddItemInput {
	return purchasing.AddItemInput{
		ProductID:       f.demo.Products[productIdx].ID,
		LocationID:      f.demo.Locations[locationIdx].ID,
		OrderedQuantity: qty,
		UnitPrice:       decimal.RequireFromString(price),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / AddItem / Approve
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_BorradorConNumero(t *testing.T) {
	f := newFixture(t)
	eta := time.Now().Add(72 * time.Hour)

	po, err := f.po.Create(context.Background(), purchasing.CreateInput{
		SupplierID: f.demo.Supplier.ID, WarehouseID: f.demo.Warehouse.ID, ExpectedDeliveryDate: &eta,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseOrderStatusDraft, po.Status)
	assert.Regexp(t, `^PO-[A-Z0-9]{8}$`, po.OrderNumber)
	require.NotNil(t, po.ExpectedDeliveryDate)
	assert.Nil(t, po.ReceivedDate)
}

func TestCreate_ProveedorInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.po.Create(context.Background(), purchasing.CreateInput{SupplierID: "no-existe", WarehouseID: f.demo.Warehouse.ID})
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "proveedor", nf.Entity)
}

func TestAddItem_RecibidoIniciaEnCero(t *testing.T) {
	f := newFixture(t)

	po := f.draft(t, f.item(0, 0, 50, "350"), f.item(1, 1, 10, "2800"))

	require.Len(t, po.Items, 2)
	for _, it := range po.Items {
		assert.Equal(t, 0, it.ReceivedQuantity)
		assert.NotEmpty(t, it.ID)
	}
	assert.True(t, decimal.RequireFromString("45500").Equal(po.Total()))
}

func TestAddItem_PrecioNoPositivo(t *testing.T) {
	f := newFixture(t)
	po := f.draft(t)

	_, err := f.po.AddItem(context.Background(), po.ID, f.item(0, 0, 1, "0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddItem_SoloEnBorrador(t *testing.T) {
	f := newFixture(t)
	po := f.draft(t, f.item(0, 0, 5, "10"))
	_, err := f.po.Approve(context.Background(), po.ID)
	require.NoError(t, err)

	_, err = f.po.AddItem(context.Background(), po.ID, f.item(1, 0, 5, "10"))
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// Aprobar sin ítems viola una regla de negocio.
func TestApprove_SinItems(t *testing.T) {
	f := newFixture(t)
	po := f.draft(t)

	_, err := f.po.Approve(context.Background(), po.ID)

	var br *domain.BusinessRuleError
	require.True(t, errors.As(err, &br))
	assert.Equal(t, "no items", br.Rule)
	got, err := f.po.Get(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusDraft, got.Status)
}

func TestApprove_DosVeces(t *testing.T) {
	f := newFixture(t)
	po := f.draft(t, f.item(0, 0, 5, "10"))
	_, err := f.po.Approve(context.Background(), po.ID)
	require.NoError(t, err)

	_, err = f.po.Approve(context.Background(), po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive
// ──────────────────────────────────────────────────────────────────────────────

// Escenario F: recibir 50 pedidas (0 recibidas) suma 50 al saldo y registra un IN de 50.
func TestReceive_IngresaPendiente(t *testing.T) {
	f := newFixture(t)
	productID := f.demo.Products[0].ID
	locationID := f.demo.Locations[0].ID
	_, err := f.stock.AdjustStock(context.Background(), inventory.AdjustInput{ProductID: productID, LocationID: locationID, NewQuantity: 7})
	require.NoError(t, err)
	po := f.draft(t, f.item(0, 0, 50, "350"))
	_, err = f.po.Approve(context.Background(), po.ID)
	require.NoError(t, err)

	received, err := f.po.Receive(context.Background(), po.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseOrderStatusReceived, received.Status)
	require.NotNil(t, received.ReceivedDate)
	assert.Equal(t, 50, received.Items[0].ReceivedQuantity)

	b, err := f.store.Repos().Balances.Get(context.Background(), productID, locationID)
	require.NoError(t, err)
	assert.Equal(t, 57, b.Quantity)

	stored, err := f.po.Get(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, stored.Items[0].ReceivedQuantity)

	in := entity.MovementTypeIN
	movs, err := f.store.Repos().Movements.List(context.Background(), entity.MovementFilter{Type: &in})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, 50, movs[0].Quantity)
	assert.Equal(t, inventory.ReasonPurchaseOrderReceived, movs[0].Reason)
	assert.Equal(t, po.OrderNumber, movs[0].ReferenceNumber)
	require.NotNil(t, movs[0].ToLocationID)
	assert.Equal(t, locationID, *movs[0].ToLocationID)
}

func TestReceive_CreaSaldoInexistente(t *testing.T) {
	f := newFixture(t)
	po := f.draft(t, f.item(2, 2, 12, "5900"))
	_, err := f.po.Approve(context.Background(), po.ID)
	require.NoError(t, err)

	_, err = f.po.Receive(context.Background(), po.ID)
	require.NoError(t, err)

	b, err := f.store.Repos().Balances.Get(context.Background(), f.demo.Products[2].ID, f.demo.Locations[2].ID)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, 12, b.Quantity)
	assert.Equal(t, 0, b.ReservedQuantity)
}

func TestReceive_BorradorEsEstadoInvalido(t *testing.T) {
	f := newFixture(t)
	po := f.draft(t, f.item(0, 0, 5, "10"))

	_, err := f.po.Receive(context.Background(), po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestReceive_DosVecesNoDuplicaStock(t *testing.T) {
	f := newFixture(t)
	po := f.draft(t, f.item(0, 0, 5, "10"))
	_, err := f.po.Approve(context.Background(), po.ID)
	require.NoError(t, err)
	_, err = f.po.Receive(context.Background(), po.ID)
	require.NoError(t, err)

	_, err = f.po.Receive(context.Background(), po.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	b, err := f.store.Repos().Balances.Get(context.Background(), f.demo.Products[0].ID, f.demo.Locations[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 5, b.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas y documento
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltraPorEstado(t *testing.T) {
	f := newFixture(t)
	a := f.draft(t)
	b := f.draft(t, f.item(0, 0, 1, "1"))
	_, err := f.po.Approve(context.Background(), b.ID)
	require.NoError(t, err)

	approved := entity.PurchaseOrderStatusApproved
	list, err := f.po.List(context.Background(), &approved, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	all, err := f.po.List(context.Background(), nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a.ID, all[1].ID)
}

func TestRenderPDF_ResuelveCatalogo(t *testing.T) {
	f := newFixture(t)
	po := f.draft(t, f.item(1, 0, 3, "2800"))

	pdf, name, err := f.po.RenderPDF(context.Background(), po.ID)
	require.NoError(t, err)

	assert.Equal(t, po.OrderNumber+".pdf", name)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	require.Len(t, f.docs.last.Lines, 1)
	assert.Equal(t, f.demo.Products[1].SKU, f.docs.last.Lines[0].ProductSKU)
	assert.Equal(t, f.demo.Supplier.Name, f.docs.last.Supplier.Name)
	assert.Equal(t, f.demo.Warehouse.Name, f.docs.last.Warehouse.Name)
}

func TestRenderPDF_Inexistente(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.po.RenderPDF(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
