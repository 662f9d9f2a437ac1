package inventory

import (
	"context"
	"errors"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// Catalog consultas de solo lectura a los catálogos externos (producto, ubicación, bodega, proveedor).
// Convierte ausencias en NotFoundError y entidades archivadas en InvalidStateError.
type Catalog struct {
	products   repository.ProductRepository
	locations  repository.LocationRepository
	warehouses repository.WarehouseRepository
	suppliers  repository.SupplierRepository
}

// NewCatalog construye el acceso a catálogos.
func NewCatalog(
	products repository.ProductRepository,
	locations repository.LocationRepository,
	warehouses repository.WarehouseRepository,
	suppliers repository.SupplierRepository,
) *Catalog {
	return &Catalog{products: products, locations: locations, warehouses: warehouses, suppliers: suppliers}
}

// RequireProduct devuelve el producto activo o un error tipado.
func (c *Catalog) RequireProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := c.products.GetByID(ctx, id)
	if err := lookupErr(p == nil, err, "producto", id); err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, archived("producto", p.Status)
	}
	return p, nil
}

// RequireLocation devuelve la ubicación activa o un error tipado.
func (c *Catalog) RequireLocation(ctx context.Context, id string) (*entity.Location, error) {
	l, err := c.locations.GetByID(ctx, id)
	if err := lookupErr(l == nil, err, "ubicación", id); err != nil {
		return nil, err
	}
	if !l.IsActive() {
		return nil, archived("ubicación", l.Status)
	}
	return l, nil
}

// RequireWarehouse devuelve la bodega activa o un error tipado.
func (c *Catalog) RequireWarehouse(ctx context.Context, id string) (*entity.Warehouse, error) {
	w, err := c.warehouses.GetByID(ctx, id)
	if err := lookupErr(w == nil, err, "bodega", id); err != nil {
		return nil, err
	}
	if !w.IsActive() {
		return nil, archived("bodega", w.Status)
	}
	return w, nil
}

// RequireSupplier devuelve el proveedor activo o un error tipado.
func (c *Catalog) RequireSupplier(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := c.suppliers.GetByID(ctx, id)
	if err := lookupErr(s == nil, err, "proveedor", id); err != nil {
		return nil, err
	}
	if !s.IsActive() {
		return nil, archived("proveedor", s.Status)
	}
	return s, nil
}

// Products expone el repositorio de productos (lectura para documentos).
func (c *Catalog) Products() repository.ProductRepository { return c.products }

func lookupErr(missing bool, err error, entityName, id string) error {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewNotFound(entityName, id)
		}
		return err
	}
	if missing {
		return domain.NewNotFound(entityName, id)
	}
	return nil
}

func archived(entityName string, status entity.LifecycleStatus) error {
	return &domain.InvalidStateError{Entity: entityName, Status: string(status), Operation: "operaciones nuevas"}
}
