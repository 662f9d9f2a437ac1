package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/application/dto"
	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/application/orders"
	"github.com/jhoicas/wms-api/internal/application/purchasing"
	"github.com/jhoicas/wms-api/internal/application/seed"
	"github.com/jhoicas/wms-api/internal/infrastructure/memory"
	"github.com/jhoicas/wms-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/wms-api/internal/interfaces/http"
	"github.com/jhoicas/wms-api/pkg/logger"
	"github.com/jhoicas/wms-api/pkg/metrics"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: API completa sobre el store en memoria con el catálogo de demo
// ──────────────────────────────────────────────────────────────────────────────

type apiFixture struct {
	app   *fiber.App
	demo  *seed.DemoCatalog
	stock *inventory.StockUseCase
	token string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	demo, err := seed.Seed(ctx, seed.CatalogRepos{
		Products: store.Products(), Locations: store.Locations(),
		Warehouses: store.Warehouses(), Suppliers: store.Suppliers(),
	})
	require.NoError(t, err)

	tx := memory.NewTxRunner(store)
	catalog := inventory.NewCatalog(store.Products(), store.Locations(), store.Warehouses(), store.Suppliers())
	repos := store.Repos()
	m := metrics.New(metrics.DefaultConfig("wms-api-test"))
	log := logger.Nop()

	stock := inventory.NewStockUseCase(tx, catalog, repos.Balances, m, log)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName:    "wms-api-test",
		Stock:          stock,
		Movements:      inventory.NewMovementQueryUseCase(repos.Movements),
		Orders:         orders.NewSalesOrderUseCase(tx, catalog, repos.SalesOrders, repos.Reservations, nil, m, log),
		PurchaseOrders: purchasing.NewPurchaseOrderUseCase(tx, catalog, repos.PurchaseOrders, pdf.NewMarotoPDFGenerator(), nil, m, log),
		Metrics:        m,
		Log:            log,
		JWTSecret:      testJWTSecret,
		JWTIssuer:      testIssuer,
	})
	return &apiFixture{app: app, demo: demo, stock: stock, token: bearer(t, "bodeguero")}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", f.token)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (f *apiFixture) seedStock(t *testing.T, productID, locationID string, qty int) {
	t.Helper()
	_, err := f.stock.AdjustStock(context.Background(), inventory.AdjustInput{
		ProductID: productID, LocationID: locationID, NewQuantity: qty,
	})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Infraestructura
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth_RespondeOK(t *testing.T) {
	f := newAPI(t)
	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestMetrics_ExponeContadores(t *testing.T) {
	f := newAPI(t)
	f.seedStock(t, f.demo.Products[0].ID, f.demo.Locations[0].ID, 5)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "wms_stock_movements_total")
}

func TestRequestID_SePropagaAlMovimiento(t *testing.T) {
	f := newAPI(t)
	raw, _ := json.Marshal(dto.AdjustRequest{
		ProductID: f.demo.Products[0].ID, LocationID: f.demo.Locations[0].ID, NewQuantity: 12,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/inventory/adjustments", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", f.token)
	req.Header.Set(apphttp.HeaderRequestID, "req-abc-1")
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, "req-abc-1", resp.Header.Get(apphttp.HeaderRequestID))
	out := decode[dto.AdjustResponse](t, resp)
	assert.Equal(t, "req-abc-1", out.Movement.TraceID)
}

func TestAPI_SinToken_Retorna401(t *testing.T) {
	f := newAPI(t)
	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/api/orders", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_MueveStockYRegistraMovimiento(t *testing.T) {
	f := newAPI(t)
	p, a, b := f.demo.Products[0].ID, f.demo.Locations[0].ID, f.demo.Locations[1].ID
	f.seedStock(t, p, a, 20)

	resp := f.do(t, http.MethodPost, "/api/inventory/transfers", dto.TransferRequest{
		ProductID: p, FromLocationID: a, ToLocationID: b, Quantity: 8,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.TransferResponse](t, resp)
	assert.Equal(t, 12, out.From.Quantity)
	assert.Equal(t, 8, out.To.Quantity)
	assert.Equal(t, "TRANSFER", out.Movement.Type)

	list := decode[dto.ListResponse[dto.MovementResponse]](t,
		f.do(t, http.MethodGet, "/api/inventory/movements?type=TRANSFER&product_id="+p, nil))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, 8, list.Items[0].Quantity)
}

func TestTransfer_StockInsuficienteDevuelveDetalles(t *testing.T) {
	f := newAPI(t)
	p, a, b := f.demo.Products[0].ID, f.demo.Locations[0].ID, f.demo.Locations[1].ID
	f.seedStock(t, p, a, 3)

	resp := f.do(t, http.MethodPost, "/api/inventory/transfers", dto.TransferRequest{
		ProductID: p, FromLocationID: a, ToLocationID: b, Quantity: 5,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
	assert.EqualValues(t, 3, out.Details["available"])
	assert.EqualValues(t, 5, out.Details["required"])
}

func TestTransfer_CuerpoIncompletoEs400(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/inventory/transfers", map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Equal(t, "required", out.Details["product_id"])
}

func TestTransfer_CantidadCeroEs400(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/inventory/transfers", dto.TransferRequest{
		ProductID: f.demo.Products[0].ID, FromLocationID: f.demo.Locations[0].ID,
		ToLocationID: f.demo.Locations[1].ID, Quantity: 0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_QUANTITY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAdjust_ProductoInexistenteEs404(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/inventory/adjustments", dto.AdjustRequest{
		ProductID: "00000000-0000-0000-0000-00000000dead", LocationID: f.demo.Locations[0].ID, NewQuantity: 1,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestBalances_FiltroPorBodega(t *testing.T) {
	f := newAPI(t)
	f.seedStock(t, f.demo.Products[0].ID, f.demo.Locations[0].ID, 4)
	f.seedStock(t, f.demo.Products[1].ID, f.demo.Locations[2].ID, 9)

	list := decode[dto.ListResponse[dto.BalanceResponse]](t,
		f.do(t, http.MethodGet, "/api/inventory/balances?warehouse_id="+f.demo.Warehouse.ID, nil))
	require.Equal(t, 2, list.Total)
	for _, b := range list.Items {
		assert.Equal(t, f.demo.Warehouse.Name, b.WarehouseName)
		assert.Equal(t, b.Quantity, b.AvailableQuantity)
	}
}

func TestBalances_SinFiltroODosFiltrosEs400(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/inventory/balances", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/inventory/balances?product_id=a&location_id=b", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMovements_FechaMalFormadaEs400(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/inventory/movements?from=ayer", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "datetime", out.Details["from"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos de venta
// ──────────────────────────────────────────────────────────────────────────────

func TestOrders_FlujoCompleto(t *testing.T) {
	f := newAPI(t)
	p, l := f.demo.Products[1].ID, f.demo.Locations[0].ID
	f.seedStock(t, p, l, 10)

	resp := f.do(t, http.MethodPost, "/api/orders", dto.CreateOrderRequest{
		CustomerName: "Ferretería El Tornillo", WarehouseID: f.demo.Warehouse.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := decode[dto.OrderResponse](t, resp)
	assert.Equal(t, "PENDING", order.Status)
	assert.Regexp(t, `^ORD-[A-Z0-9]{8}$`, order.OrderNumber)

	resp = f.do(t, http.MethodPost, "/api/orders/"+order.ID+"/items", dto.AddOrderItemRequest{
		ProductID: p, LocationID: l, Quantity: 4,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[dto.OrderResponse](t, resp).Items, 1)

	resp = f.do(t, http.MethodPost, "/api/orders/"+order.ID+"/reserve", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "RESERVED", decode[dto.OrderResponse](t, resp).Status)

	bal := decode[dto.BalanceResponse](t, f.do(t, http.MethodGet, "/api/inventory/balances/"+p+"/"+l, nil))
	assert.Equal(t, 4, bal.ReservedQuantity)
	assert.Equal(t, 6, bal.AvailableQuantity)

	resp = f.do(t, http.MethodPost, "/api/orders/"+order.ID+"/ship", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	shipped := decode[dto.OrderResponse](t, resp)
	assert.Equal(t, "SHIPPED", shipped.Status)
	assert.NotNil(t, shipped.ShippedDate)

	bal = decode[dto.BalanceResponse](t, f.do(t, http.MethodGet, "/api/inventory/balances/"+p+"/"+l, nil))
	assert.Equal(t, 6, bal.Quantity)
	assert.Equal(t, 0, bal.ReservedQuantity)

	res := decode[dto.ListResponse[dto.ReservationResponse]](t,
		f.do(t, http.MethodGet, "/api/orders/"+order.ID+"/reservations", nil))
	require.Equal(t, 1, res.Total)
	assert.True(t, res.Items[0].Released)

	list := decode[dto.ListResponse[dto.OrderResponse]](t, f.do(t, http.MethodGet, "/api/orders?status=SHIPPED", nil))
	assert.Equal(t, 1, list.Total)
}

func TestOrders_DespacharPendienteEsEstadoInvalido(t *testing.T) {
	f := newAPI(t)
	order := decode[dto.OrderResponse](t, f.do(t, http.MethodPost, "/api/orders", dto.CreateOrderRequest{
		WarehouseID: f.demo.Warehouse.ID,
	}))

	resp := f.do(t, http.MethodPost, "/api/orders/"+order.ID+"/ship", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestOrders_ReservaSinStockNoReservaNada(t *testing.T) {
	f := newAPI(t)
	l := f.demo.Locations[0].ID
	f.seedStock(t, f.demo.Products[0].ID, l, 10)
	f.seedStock(t, f.demo.Products[1].ID, l, 1)

	order := decode[dto.OrderResponse](t, f.do(t, http.MethodPost, "/api/orders", dto.CreateOrderRequest{
		WarehouseID: f.demo.Warehouse.ID,
	}))
	f.do(t, http.MethodPost, "/api/orders/"+order.ID+"/items", dto.AddOrderItemRequest{ProductID: f.demo.Products[0].ID, LocationID: l, Quantity: 5})
	f.do(t, http.MethodPost, "/api/orders/"+order.ID+"/items", dto.AddOrderItemRequest{ProductID: f.demo.Products[1].ID, LocationID: l, Quantity: 2})

	resp := f.do(t, http.MethodPost, "/api/orders/"+order.ID+"/reserve", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	bal := decode[dto.BalanceResponse](t, f.do(t, http.MethodGet, "/api/inventory/balances/"+f.demo.Products[0].ID+"/"+l, nil))
	assert.Equal(t, 0, bal.ReservedQuantity)
	assert.Equal(t, "PENDING", decode[dto.OrderResponse](t, f.do(t, http.MethodGet, "/api/orders/"+order.ID, nil)).Status)
}

func TestOrders_EstadoDesconocidoEnFiltroEs400(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/orders?status=CANCELLED", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de compra
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchaseOrders_AprobarRecibirYPDF(t *testing.T) {
	f := newAPI(t)
	p, l := f.demo.Products[2].ID, f.demo.Locations[2].ID

	resp := f.do(t, http.MethodPost, "/api/purchase-orders", dto.CreatePurchaseOrderRequest{
		SupplierID: f.demo.Supplier.ID, WarehouseID: f.demo.Warehouse.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	po := decode[dto.PurchaseOrderResponse](t, resp)
	assert.Equal(t, "DRAFT", po.Status)

	resp = f.do(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/approve", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "sin líneas no se aprueba")
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/items", map[string]any{
		"product_id": p, "location_id": l, "ordered_quantity": 24, "unit_price": "5900",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	po = decode[dto.PurchaseOrderResponse](t, resp)
	assert.Equal(t, "141600", po.Total.String())

	resp = f.do(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "DRAFT no se recibe")
	resp.Body.Close()

	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/approve", nil).StatusCode)
	resp = f.do(t, http.MethodPost, "/api/purchase-orders/"+po.ID+"/receive", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	received := decode[dto.PurchaseOrderResponse](t, resp)
	assert.Equal(t, "RECEIVED", received.Status)
	assert.Equal(t, 24, received.Items[0].ReceivedQuantity)

	bal := decode[dto.BalanceResponse](t, f.do(t, http.MethodGet, "/api/inventory/balances/"+p+"/"+l, nil))
	assert.Equal(t, 24, bal.Quantity)

	resp = f.do(t, http.MethodGet, "/api/purchase-orders/"+po.ID+"/pdf", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), po.OrderNumber+".pdf")
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestPurchaseOrders_NoEncontradaEs404(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/purchase-orders/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
