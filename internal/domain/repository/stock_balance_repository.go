package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// StockBalanceRepository puerto para saldos por producto+ubicación.
// Las escrituras deben hacerse con un repositorio atado a una transacción.
type StockBalanceRepository interface {
	// Get devuelve el saldo o nil si el par no existe.
	Get(ctx context.Context, productID, locationID string) (*entity.StockBalance, error)
	// GetForUpdate igual que Get pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockBalance, error)
	GetByID(ctx context.Context, id string) (*entity.StockBalance, error)
	// Save inserta un saldo nuevo (ID vacío) o actualiza uno existente comparando Version.
	// Si otra transacción escribió primero devuelve domain.ErrConflict.
	Save(ctx context.Context, balance *entity.StockBalance) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.BalanceView, error)
	ListByLocation(ctx context.Context, locationID string) ([]*entity.BalanceView, error)
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.BalanceView, error)
}
