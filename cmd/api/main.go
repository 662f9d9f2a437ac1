package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/application/orders"
	"github.com/jhoicas/wms-api/internal/application/purchasing"
	infrapdf "github.com/jhoicas/wms-api/internal/infrastructure/pdf"
	"github.com/jhoicas/wms-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/wms-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/wms-api/internal/interfaces/http"
	"github.com/jhoicas/wms-api/pkg/config"
	"github.com/jhoicas/wms-api/pkg/logger"
	"github.com/jhoicas/wms-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(metrics.DefaultConfig(cfg.App.Name))
	}

	// Lock por pedido: Redis si está configurado; si no, basta el FOR UPDATE de PostgreSQL.
	var locker inventory.Locker = inventory.NoopLocker{}
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		orderLocker := infraredis.NewOrderLocker(client, time.Duration(cfg.Redis.LockTTLSeconds)*time.Second, 2*time.Second)
		defer orderLocker.Close()
		locker = orderLocker
		log.Info().Str("addr", cfg.Redis.Addr).Msg("locks distribuidos habilitados")
	}

	productRepo := postgres.NewProductRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	readRepos := postgres.ReposFor(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB.TxMaxRetries, m, log)

	catalog := inventory.NewCatalog(productRepo, locationRepo, warehouseRepo, supplierRepo)
	stockUC := inventory.NewStockUseCase(txRunner, catalog, readRepos.Balances, m, log)
	movementsUC := inventory.NewMovementQueryUseCase(readRepos.Movements)
	ordersUC := orders.NewSalesOrderUseCase(txRunner, catalog, readRepos.SalesOrders, readRepos.Reservations, locker, m, log)

	// PDF: documento de la orden de compra para el proveedor
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	purchaseUC := purchasing.NewPurchaseOrderUseCase(txRunner, catalog, readRepos.PurchaseOrders, pdfGenerator, locker, m, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "WMS API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:    cfg.App.Name,
		Stock:          stockUC,
		Movements:      movementsUC,
		Orders:         ordersUC,
		PurchaseOrders: purchaseUC,
		Metrics:        m,
		Log:            log,
		JWTSecret:      cfg.JWT.Secret,
		JWTIssuer:      cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
