package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var (
	_ repository.StockBalanceRepository     = (*StockBalanceRepo)(nil)
	_ repository.StockMovementRepository    = (*StockMovementRepo)(nil)
	_ repository.StockReservationRepository = (*StockReservationRepo)(nil)
)

func balanceKey(productID, locationID string) string {
	return productID + "|" + locationID
}

// StockBalanceRepo saldos en memoria con control de versión igual al de PostgreSQL.
type StockBalanceRepo struct{ h handle }

// Get devuelve nil si el par no tiene saldo.
func (r *StockBalanceRepo) Get(_ context.Context, productID, locationID string) (*entity.StockBalance, error) {
	var out *entity.StockBalance
	_ = r.h.view(func(st *state) error {
		if id, ok := st.balanceKey[balanceKey(productID, locationID)]; ok {
			b := st.balances[id]
			out = &b
		}
		return nil
	})
	return out, nil
}

// GetForUpdate equivale a Get: la unidad de trabajo ya tiene el store en exclusiva.
func (r *StockBalanceRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockBalance, error) {
	return r.Get(ctx, productID, locationID)
}

// GetByID devuelve nil si no existe.
func (r *StockBalanceRepo) GetByID(_ context.Context, id string) (*entity.StockBalance, error) {
	var out *entity.StockBalance
	_ = r.h.view(func(st *state) error {
		if b, ok := st.balances[id]; ok {
			out = &b
		}
		return nil
	})
	return out, nil
}

// Save inserta (ID vacío) o actualiza comparando Version.
func (r *StockBalanceRepo) Save(_ context.Context, b *entity.StockBalance) error {
	return r.h.update(func(st *state) error {
		key := balanceKey(b.ProductID, b.LocationID)
		if b.IsNew() {
			if _, exists := st.balanceKey[key]; exists {
				return domain.ErrConflict
			}
			b.ID = uuid.New().String()
			b.Version = 1
			if b.UpdatedAt.IsZero() {
				b.UpdatedAt = time.Now()
			}
			b.CreatedAt = b.UpdatedAt
			st.balances[b.ID] = *b
			st.balanceKey[key] = b.ID
			return nil
		}
		current, ok := st.balances[b.ID]
		if !ok {
			return domain.NewNotFound("saldo", b.ID)
		}
		if current.Version != b.Version {
			return domain.ErrConflict
		}
		b.Version++
		st.balances[b.ID] = *b
		return nil
	})
}

// ListByProduct saldos del producto con datos de ubicación y bodega.
func (r *StockBalanceRepo) ListByProduct(_ context.Context, productID string) ([]*entity.BalanceView, error) {
	return r.list(func(st *state, b entity.StockBalance) bool { return b.ProductID == productID })
}

// ListByLocation saldos de la ubicación.
func (r *StockBalanceRepo) ListByLocation(_ context.Context, locationID string) ([]*entity.BalanceView, error) {
	return r.list(func(st *state, b entity.StockBalance) bool { return b.LocationID == locationID })
}

// ListByWarehouse saldos de todas las ubicaciones de la bodega.
func (r *StockBalanceRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]*entity.BalanceView, error) {
	return r.list(func(st *state, b entity.StockBalance) bool {
		return st.locations[b.LocationID].WarehouseID == warehouseID
	})
}

func (r *StockBalanceRepo) list(match func(st *state, b entity.StockBalance) bool) ([]*entity.BalanceView, error) {
	out := []*entity.BalanceView{}
	_ = r.h.view(func(st *state) error {
		for _, b := range st.balances {
			if !match(st, b) {
				continue
			}
			p := st.products[b.ProductID]
			l := st.locations[b.LocationID]
			w := st.warehouses[l.WarehouseID]
			out = append(out, &entity.BalanceView{
				StockBalance:  b,
				ProductSKU:    p.SKU,
				ProductName:   p.Name,
				LocationCode:  l.Code,
				WarehouseID:   l.WarehouseID,
				WarehouseName: w.Name,
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductSKU != out[j].ProductSKU {
			return out[i].ProductSKU < out[j].ProductSKU
		}
		return out[i].LocationCode < out[j].LocationCode
	})
	return out, nil
}

// StockMovementRepo movimientos en memoria (solo inserción).
type StockMovementRepo struct{ h handle }

// Create agrega el movimiento.
func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.h.update(func(st *state) error {
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		st.movements = append(st.movements, *m)
		return nil
	})
}

// GetByID devuelve nil si no existe.
func (r *StockMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	_ = r.h.view(func(st *state) error {
		for _, m := range st.movements {
			if m.ID == id {
				m := m
				out = &m
				return nil
			}
		}
		return nil
	})
	return out, nil
}

// List más recientes primero; a igual fecha, el último insertado primero.
func (r *StockMovementRepo) List(_ context.Context, f entity.MovementFilter) ([]*entity.StockMovement, error) {
	out := []*entity.StockMovement{}
	_ = r.h.view(func(st *state) error {
		matched := make([]entity.StockMovement, 0, len(st.movements))
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if f.ProductID != nil && m.ProductID != *f.ProductID {
				continue
			}
			if f.Type != nil && m.Type != *f.Type {
				continue
			}
			if f.From != nil && m.MovementDate.Before(*f.From) {
				continue
			}
			if f.To != nil && m.MovementDate.After(*f.To) {
				continue
			}
			matched = append(matched, m)
		}
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].MovementDate.After(matched[j].MovementDate)
		})
		for i := f.Offset; i < len(matched); i++ {
			if f.Limit > 0 && len(out) >= f.Limit {
				break
			}
			m := matched[i]
			out = append(out, &m)
		}
		return nil
	})
	return out, nil
}

// StockReservationRepo reservas en memoria.
type StockReservationRepo struct{ h handle }

// Create agrega la reserva.
func (r *StockReservationRepo) Create(_ context.Context, res *entity.StockReservation) error {
	return r.h.update(func(st *state) error {
		if res.ID == "" {
			res.ID = uuid.New().String()
		}
		st.reservations = append(st.reservations, *res)
		return nil
	})
}

// ListByOrder todas las reservas del pedido en orden de creación.
func (r *StockReservationRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.StockReservation, error) {
	return r.list(orderID, false), nil
}

// ListOpenByOrder reservas no liberadas del pedido.
func (r *StockReservationRepo) ListOpenByOrder(_ context.Context, orderID string) ([]*entity.StockReservation, error) {
	return r.list(orderID, true), nil
}

func (r *StockReservationRepo) list(orderID string, openOnly bool) []*entity.StockReservation {
	out := []*entity.StockReservation{}
	_ = r.h.view(func(st *state) error {
		for _, res := range st.reservations {
			if res.OrderID != orderID || (openOnly && res.Released) {
				continue
			}
			res := res
			out = append(out, &res)
		}
		return nil
	})
	return out
}

// MarkReleased marca como liberadas las reservas indicadas.
func (r *StockReservationRepo) MarkReleased(_ context.Context, ids []string, at time.Time) error {
	return r.h.update(func(st *state) error {
		want := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			want[id] = struct{}{}
		}
		for i := range st.reservations {
			if _, ok := want[st.reservations[i].ID]; ok {
				st.reservations[i].Released = true
				releasedAt := at
				st.reservations[i].ReleasedAt = &releasedAt
			}
		}
		return nil
	})
}
