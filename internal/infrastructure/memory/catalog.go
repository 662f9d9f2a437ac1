package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.LocationRepository  = (*LocationRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
	_ repository.SupplierRepository  = (*SupplierRepo)(nil)
)

func stamp(id *string, status *entity.LifecycleStatus, created, updated *time.Time) {
	if *id == "" {
		*id = uuid.New().String()
	}
	if *status == "" {
		*status = entity.LifecycleActive
	}
	now := time.Now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

// ProductRepo productos en memoria.
type ProductRepo struct{ h handle }

// GetByID devuelve nil si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	_ = r.h.view(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, nil
}

// Create inserta un producto; SKU duplicado es ErrDuplicate.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.h.update(func(st *state) error {
		for _, existing := range st.products {
			if existing.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		stamp(&p.ID, &p.Status, &p.CreatedAt, &p.UpdatedAt)
		st.products[p.ID] = *p
		return nil
	})
}

// LocationRepo ubicaciones en memoria.
type LocationRepo struct{ h handle }

// GetByID devuelve nil si no existe.
func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	_ = r.h.view(func(st *state) error {
		if l, ok := st.locations[id]; ok {
			out = &l
		}
		return nil
	})
	return out, nil
}

// Create inserta una ubicación; la bodega debe existir y el código ser único en ella.
func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	return r.h.update(func(st *state) error {
		if _, ok := st.warehouses[l.WarehouseID]; !ok {
			return domain.NewNotFound("bodega", l.WarehouseID)
		}
		for _, existing := range st.locations {
			if existing.WarehouseID == l.WarehouseID && existing.Code == l.Code {
				return domain.ErrDuplicate
			}
		}
		stamp(&l.ID, &l.Status, &l.CreatedAt, &l.UpdatedAt)
		st.locations[l.ID] = *l
		return nil
	})
}

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct{ h handle }

// GetByID devuelve nil si no existe.
func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	_ = r.h.view(func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
		return nil
	})
	return out, nil
}

// Create inserta una bodega; código duplicado es ErrDuplicate.
func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.h.update(func(st *state) error {
		for _, existing := range st.warehouses {
			if existing.Code == w.Code {
				return domain.ErrDuplicate
			}
		}
		stamp(&w.ID, &w.Status, &w.CreatedAt, &w.UpdatedAt)
		st.warehouses[w.ID] = *w
		return nil
	})
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct{ h handle }

// GetByID devuelve nil si no existe.
func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	_ = r.h.view(func(st *state) error {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, nil
}

// Create inserta un proveedor.
func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.h.update(func(st *state) error {
		stamp(&s.ID, &s.Status, &s.CreatedAt, &s.UpdatedAt)
		st.suppliers[s.ID] = *s
		return nil
	})
}
