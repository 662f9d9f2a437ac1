// seed carga el catálogo de demostración (bodega, ubicaciones, productos y proveedor)
// en la base configurada y opcionalmente fija stock inicial en cada par producto+ubicación.
//
// Uso: go run ./cmd/seed [-stock 100]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/application/seed"
	"github.com/jhoicas/wms-api/internal/infrastructure/postgres"
	"github.com/jhoicas/wms-api/pkg/config"
	"github.com/jhoicas/wms-api/pkg/logger"
)

func main() {
	initial := flag.Int("stock", 0, "cantidad inicial por producto y ubicación (0 = sin stock)")
	flag.Parse()

	if err := run(*initial); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

func run(initial int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		return err
	}

	products := postgres.NewProductRepository(pool)
	locations := postgres.NewLocationRepository(pool)
	warehouses := postgres.NewWarehouseRepository(pool)
	suppliers := postgres.NewSupplierRepository(pool)
	demo, err := seed.Seed(ctx, seed.CatalogRepos{
		Products: products, Locations: locations, Warehouses: warehouses, Suppliers: suppliers,
	})
	if err != nil {
		return err
	}
	log.Info().
		Str("warehouse_id", demo.Warehouse.ID).
		Int("locations", len(demo.Locations)).
		Int("products", len(demo.Products)).
		Str("supplier_id", demo.Supplier.ID).
		Msg("catálogo de demostración creado")

	if initial <= 0 {
		return nil
	}
	tx := postgres.NewTxRunner(pool, cfg.DB.TxMaxRetries, nil, log)
	stock := inventory.NewStockUseCase(tx, inventory.NewCatalog(products, locations, warehouses, suppliers), postgres.ReposFor(pool).Balances, nil, log)
	for _, p := range demo.Products {
		for _, l := range demo.Locations {
			if _, err := stock.AdjustStock(ctx, inventory.AdjustInput{
				ProductID: p.ID, LocationID: l.ID, NewQuantity: initial, Reason: "stock inicial",
			}); err != nil {
				return fmt.Errorf("stock inicial %s en %s: %w", p.SKU, l.Code, err)
			}
		}
	}
	log.Info().Int("quantity", initial).Msg("stock inicial cargado")
	return nil
}
