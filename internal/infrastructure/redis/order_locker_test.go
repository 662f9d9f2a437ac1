package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/domain"
	wmsredis "github.com/jhoicas/wms-api/internal/infrastructure/redis"
	"github.com/jhoicas/wms-api/pkg/config"
)

// Requiere un Redis real: WMS_TEST_REDIS_ADDR=localhost:6379.
func newLocker(t *testing.T) *wmsredis.OrderLocker {
	t.Helper()
	addr := os.Getenv("WMS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("WMS_TEST_REDIS_ADDR no definido")
	}
	client, err := wmsredis.NewClient(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	l := wmsredis.NewOrderLocker(client, 5*time.Second, 100*time.Millisecond)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestOrderLocker_SegundoIntentoEsConflicto(t *testing.T) {
	l := newLocker(t)
	ctx := context.Background()
	key := "sales-order:" + uuid.NewString()

	release, err := l.Acquire(ctx, key)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, key)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, release(ctx))
	release2, err := l.Acquire(ctx, key)
	require.NoError(t, err)
	require.NoError(t, release2(ctx))
}
