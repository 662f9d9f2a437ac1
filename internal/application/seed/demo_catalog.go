// Package seed carga un catálogo de demostración (bodega, ubicaciones, productos, proveedor)
// sobre cualquier implementación de los repositorios de catálogo.
package seed

import (
	"context"
	"fmt"

	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CatalogRepos repositorios de catálogo necesarios para sembrar.
type CatalogRepos struct {
	Products   repository.ProductRepository
	Locations  repository.LocationRepository
	Warehouses repository.WarehouseRepository
	Suppliers  repository.SupplierRepository
}

// DemoCatalog entidades creadas por DemoCatalog, para referenciarlas en tests y scripts.
type DemoCatalog struct {
	Warehouse *entity.Warehouse
	Locations []*entity.Location
	Products  []*entity.Product
	Supplier  *entity.Supplier
}

// Seed crea la bodega principal con tres ubicaciones, tres productos y un proveedor.
func Seed(ctx context.Context, repos CatalogRepos) (*DemoCatalog, error) {
	out := &DemoCatalog{}

	wh := &entity.Warehouse{Code: "WH-MAIN", Name: "Bodega Principal", Address: "Calle 10 # 20-30"}
	if err := repos.Warehouses.Create(ctx, wh); err != nil {
		return nil, fmt.Errorf("crear bodega: %w", err)
	}
	out.Warehouse = wh

	for _, l := range []entity.Location{
		{Code: "A-01-01", Description: "Pasillo A, estante 1, nivel 1", Aisle: "A", Rack: "01", Bin: "01"},
		{Code: "A-01-02", Description: "Pasillo A, estante 1, nivel 2", Aisle: "A", Rack: "01", Bin: "02"},
		{Code: "B-02-01", Description: "Pasillo B, estante 2, nivel 1", Aisle: "B", Rack: "02", Bin: "01"},
	} {
		l := l
		l.WarehouseID = wh.ID
		if err := repos.Locations.Create(ctx, &l); err != nil {
			return nil, fmt.Errorf("crear ubicación %s: %w", l.Code, err)
		}
		out.Locations = append(out.Locations, &l)
	}

	for _, p := range []entity.Product{
		{SKU: "SKU-TORN-001", Name: "Tornillo hexagonal 1/4", Unit: "UND", UnitPrice: decimal.RequireFromString("350"), MinStockLevel: 100, Category: "ferretería"},
		{SKU: "SKU-CAJA-010", Name: "Caja de cartón 40x30", Unit: "UND", UnitPrice: decimal.RequireFromString("2800"), MinStockLevel: 20, Category: "empaque"},
		{SKU: "SKU-CINT-005", Name: "Cinta de embalaje 48mm", Unit: "ROLLO", UnitPrice: decimal.RequireFromString("5900"), MinStockLevel: 10, Category: "empaque"},
	} {
		p := p
		if err := repos.Products.Create(ctx, &p); err != nil {
			return nil, fmt.Errorf("crear producto %s: %w", p.SKU, err)
		}
		out.Products = append(out.Products, &p)
	}

	sup := &entity.Supplier{
		Name:        "Distribuidora Andina S.A.S.",
		ContactName: "Laura Gómez",
		Email:       "compras@andina.example",
		Phone:       "+57 601 555 0101",
		Address:     "Carrera 7 # 45-12",
	}
	if err := repos.Suppliers.Create(ctx, sup); err != nil {
		return nil, fmt.Errorf("crear proveedor: %w", err)
	}
	out.Supplier = sup
	return out, nil
}
