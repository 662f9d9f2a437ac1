// Package redis implementa el lock distribuido por pedido con bsm/redislock.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/pkg/config"
)

var _ inventory.Locker = (*OrderLocker)(nil)

const keyPrefix = "wms:lock:"

// OrderLocker serializa transiciones sobre un mismo pedido entre instancias del servicio.
type OrderLocker struct {
	client *goredis.Client
	locker *redislock.Client
	ttl    time.Duration
	wait   time.Duration
}

// NewClient crea el cliente de Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewOrderLocker construye el locker. ttl es la vida máxima del lock; wait cuánto se reintenta obtenerlo.
func NewOrderLocker(client *goredis.Client, ttl, wait time.Duration) *OrderLocker {
	return &OrderLocker{
		client: client,
		locker: redislock.New(client),
		ttl:    ttl,
		wait:   wait,
	}
}

// Acquire obtiene el lock de key. Si otro proceso lo tiene más allá de wait devuelve domain.ErrConflict.
func (l *OrderLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	backoff := 50 * time.Millisecond
	retries := int(l.wait / backoff)
	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(backoff), retries),
	}
	lock, err := l.locker.Obtain(ctx, keyPrefix+key, l.ttl, opts)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("lock %s ocupado: %w", key, domain.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("obtener lock %s: %w", key, err)
	}
	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return err
		}
		return nil
	}, nil
}

// Close cierra la conexión con Redis.
func (l *OrderLocker) Close() error {
	return l.client.Close()
}
