// Package memory implementa los repositorios y la unidad de trabajo en memoria.
// Se usa en tests y en desarrollo sin base de datos. Una unidad de trabajo trabaja
// sobre una copia del estado bajo el mutex del store y solo se publica si fn no falla.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/domain/entity"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

type state struct {
	products   map[string]entity.Product
	locations  map[string]entity.Location
	warehouses map[string]entity.Warehouse
	suppliers  map[string]entity.Supplier

	balances   map[string]entity.StockBalance // por ID
	balanceKey map[string]string              // producto|ubicación -> ID

	movements    []entity.StockMovement
	reservations []entity.StockReservation

	salesOrders  map[string]entity.SalesOrder
	orderSeq     []string
	orderNumbers map[string]string

	purchaseOrders map[string]entity.PurchaseOrder
	poSeq          []string
	poNumbers      map[string]string
}

func newState() *state {
	return &state{
		products:       map[string]entity.Product{},
		locations:      map[string]entity.Location{},
		warehouses:     map[string]entity.Warehouse{},
		suppliers:      map[string]entity.Supplier{},
		balances:       map[string]entity.StockBalance{},
		balanceKey:     map[string]string{},
		salesOrders:    map[string]entity.SalesOrder{},
		orderNumbers:   map[string]string{},
		purchaseOrders: map[string]entity.PurchaseOrder{},
		poNumbers:      map[string]string{},
	}
}

// clone copia profunda: los ítems de pedidos se copian para que la unidad de trabajo no toque el estado publicado.
func (s *state) clone() *state {
	c := &state{
		products:       copyMap(s.products),
		locations:      copyMap(s.locations),
		warehouses:     copyMap(s.warehouses),
		suppliers:      copyMap(s.suppliers),
		balances:       copyMap(s.balances),
		balanceKey:     copyMap(s.balanceKey),
		movements:      append([]entity.StockMovement(nil), s.movements...),
		reservations:   append([]entity.StockReservation(nil), s.reservations...),
		salesOrders:    make(map[string]entity.SalesOrder, len(s.salesOrders)),
		orderSeq:       append([]string(nil), s.orderSeq...),
		orderNumbers:   copyMap(s.orderNumbers),
		purchaseOrders: make(map[string]entity.PurchaseOrder, len(s.purchaseOrders)),
		poSeq:          append([]string(nil), s.poSeq...),
		poNumbers:      copyMap(s.poNumbers),
	}
	for id, o := range s.salesOrders {
		o.Items = append([]entity.OrderItem(nil), o.Items...)
		c.salesOrders[id] = o
	}
	for id, po := range s.purchaseOrders {
		po.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
		c.purchaseOrders[id] = po
	}
	return c
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store estado compartido protegido por un único mutex.
type Store struct {
	mu sync.RWMutex
	st *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState()}
}

// handle apunta al estado publicado (tx nil) o a la copia de una unidad de trabajo.
type handle struct {
	store *Store
	tx    *state
}

func (h handle) view(fn func(st *state) error) error {
	if h.tx != nil {
		return fn(h.tx)
	}
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	return fn(h.store.st)
}

func (h handle) update(fn func(st *state) error) error {
	if h.tx != nil {
		return fn(h.tx)
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return fn(h.store.st)
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{h: handle{store: s}} }

// Locations repositorio de ubicaciones fuera de transacción.
func (s *Store) Locations() *LocationRepo { return &LocationRepo{h: handle{store: s}} }

// Warehouses repositorio de bodegas fuera de transacción.
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{h: handle{store: s}} }

// Suppliers repositorio de proveedores fuera de transacción.
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{h: handle{store: s}} }

// Repos repositorios de lectura fuera de transacción (consultas).
// No deben usarse dentro de TxRunner.Run: el mutex ya está tomado.
func (s *Store) Repos() inventory.Repos {
	return reposFor(handle{store: s})
}

func reposFor(h handle) inventory.Repos {
	return inventory.Repos{
		Balances:       &StockBalanceRepo{h: h},
		Movements:      &StockMovementRepo{h: h},
		Reservations:   &StockReservationRepo{h: h},
		SalesOrders:    &SalesOrderRepo{h: h},
		PurchaseOrders: &PurchaseOrderRepo{h: h},
	}
}

// TxRunner unidad de trabajo en memoria: serializa todas las transacciones con el mutex del store.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{store: s}
}

// Run ejecuta fn sobre una copia del estado; la publica solo si fn devuelve nil.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	work := r.store.st.clone()
	if err := fn(ctx, reposFor(handle{store: r.store, tx: work})); err != nil {
		return err
	}
	r.store.st = work
	return nil
}
