package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/application/orders"
	"github.com/jhoicas/wms-api/internal/application/purchasing"
	"github.com/jhoicas/wms-api/pkg/logger"
	"github.com/jhoicas/wms-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName    string
	Stock          *inventory.StockUseCase
	Movements      *inventory.MovementQueryUseCase
	Orders         *orders.SalesOrderUseCase
	PurchaseOrders *purchasing.PurchaseOrderUseCase
	Metrics        *metrics.Metrics // nil = sin /metrics
	Log            *logger.Logger
	JWTSecret      string
	JWTIssuer      string
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestID())
	app.Use(AccessLog(deps.Log))
	app.Use(RequestMetrics(deps.Metrics))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	// Inventario
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Stock, deps.Movements, deps.Log)
	invGroup.Post("/transfers", inventoryHandler.Transfer)
	invGroup.Post("/adjustments", inventoryHandler.Adjust)
	invGroup.Get("/balances", inventoryHandler.ListBalances)
	invGroup.Get("/balances/:product_id/:location_id", inventoryHandler.GetBalance)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/:id", inventoryHandler.GetMovement)

	// Pedidos de venta
	ordersGroup := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.Orders, deps.Log)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.Get)
	ordersGroup.Post("/:id/items", orderHandler.AddItem)
	ordersGroup.Post("/:id/reserve", orderHandler.Reserve)
	ordersGroup.Post("/:id/ship", orderHandler.Ship)
	ordersGroup.Get("/:id/reservations", orderHandler.Reservations)

	// Órdenes de compra
	poGroup := api.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.PurchaseOrders, deps.Log)
	poGroup.Post("/", poHandler.Create)
	poGroup.Get("/", poHandler.List)
	poGroup.Get("/:id", poHandler.Get)
	poGroup.Post("/:id/items", poHandler.AddItem)
	poGroup.Post("/:id/approve", poHandler.Approve)
	poGroup.Post("/:id/receive", poHandler.Receive)
	poGroup.Get("/:id/pdf", poHandler.PDF)
}
