package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/infrastructure/postgres"
	"github.com/jhoicas/wms-api/pkg/logger"
	"github.com/jhoicas/wms-api/pkg/metrics"
)

func TestRunWithRetry_ReintentaConflictoHastaExito(t *testing.T) {
	calls := 0
	err := postgres.RunWithRetry(context.Background(), 3, nil, logger.Nop(), func(context.Context) error {
		calls++
		if calls < 3 {
			return domain.ErrConflict
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRunWithRetry_AgotaReintentos(t *testing.T) {
	calls := 0
	m := metrics.New(metrics.DefaultConfig("wms-test"))
	err := postgres.RunWithRetry(context.Background(), 2, m, logger.Nop(), func(context.Context) error {
		calls++
		return domain.ErrConflict
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 3, calls, "un intento más dos reintentos")
}

func TestRunWithRetry_NoReintentaOtrosErrores(t *testing.T) {
	calls := 0
	err := postgres.RunWithRetry(context.Background(), 5, nil, logger.Nop(), func(context.Context) error {
		calls++
		return domain.ErrDuplicate
	})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 1, calls)
}

func TestRunWithRetry_RespetaCancelacion(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := postgres.RunWithRetry(ctx, 5, nil, logger.Nop(), func(context.Context) error {
		calls++
		cancel()
		return domain.ErrConflict
	})

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, calls)
}
