package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/pkg/logger"
	"github.com/jhoicas/wms-api/pkg/metrics"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Si la unidad de trabajo termina en domain.ErrConflict la repite completa hasta maxRetries veces.
type TxRunner struct {
	pool       *pgxpool.Pool
	maxRetries int
	metrics    *metrics.Metrics
	log        *logger.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, maxRetries int, m *metrics.Metrics, log *logger.Logger) *TxRunner {
	return &TxRunner{pool: pool, maxRetries: maxRetries, metrics: m, log: log}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.Repos) error) error {
	return RunWithRetry(ctx, r.maxRetries, r.metrics, r.log, func(ctx context.Context) error {
		return r.runOnce(ctx, fn)
	})
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(ctx context.Context, repos inventory.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(ctx, ReposFor(tx)); err != nil {
		return translate(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return translate(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// ReposFor arma los repositorios de la unidad de trabajo sobre q (pool o tx).
func ReposFor(q Querier) inventory.Repos {
	return inventory.Repos{
		Balances:       NewStockBalanceRepository(q),
		Movements:      NewStockMovementRepository(q),
		Reservations:   NewStockReservationRepository(q),
		SalesOrders:    NewSalesOrderRepository(q),
		PurchaseOrders: NewPurchaseOrderRepository(q),
	}
}

// RunWithRetry ejecuta attempt y lo repite mientras falle con domain.ErrConflict.
// maxRetries es el número de repeticiones adicionales al primer intento.
func RunWithRetry(ctx context.Context, maxRetries int, m *metrics.Metrics, log *logger.Logger, attempt func(ctx context.Context) error) error {
	var err error
	for i := 0; ; i++ {
		err = attempt(ctx)
		if !errors.Is(err, domain.ErrConflict) {
			return err
		}
		m.RecordConflict()
		if i >= maxRetries {
			return err
		}
		m.RecordRetry()
		if log != nil {
			log.Ctx(ctx).Debug().Int("attempt", i+1).Err(err).Msg("conflicto de concurrencia, reintentando transacción")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff(i)):
		}
	}
}

func backoff(attempt int) time.Duration {
	return time.Duration(attempt+1) * 10 * time.Millisecond
}
