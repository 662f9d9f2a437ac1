package inventory

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción (unidad de trabajo).
type Repos struct {
	Balances       repository.StockBalanceRepository
	Movements      repository.StockMovementRepository
	Reservations   repository.StockReservationRepository
	SalesOrders    repository.SalesOrderRepository
	PurchaseOrders repository.PurchaseOrderRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y ningún cambio queda visible.
// Ante domain.ErrConflict la implementación puede reintentar fn completa.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}

// Locker serializa transiciones sobre un mismo agregado entre instancias del servicio.
// Si el lock no se obtiene a tiempo debe devolver domain.ErrConflict.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(context.Context) error, err error)
}

// NoopLocker no bloquea; basta con el bloqueo de filas de la base de datos.
type NoopLocker struct{}

// Acquire devuelve siempre un release vacío.
func (NoopLocker) Acquire(context.Context, string) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}

// WithLock ejecuta fn con el lock de key tomado; libera aunque fn falle.
func WithLock(ctx context.Context, l Locker, key string, fn func() error) error {
	if l == nil {
		return fn()
	}
	release, err := l.Acquire(ctx, key)
	if err != nil {
		return err
	}
	defer func() { _ = release(context.WithoutCancel(ctx)) }()
	return fn()
}
