package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

const balanceColumns = `id, product_id, location_id, quantity, reserved_quantity, version, created_at, updated_at`

// StockBalanceRepo implementación de StockBalanceRepository sobre PostgreSQL (usable con pool o tx).
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

// Get obtiene el saldo de un producto en una ubicación; nil si el par no existe.
func (r *StockBalanceRepo) Get(ctx context.Context, productID, locationID string) (*entity.StockBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM stock_balances WHERE product_id = $1 AND location_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, productID, locationID), "get stock balance")
}

// GetForUpdate obtiene el saldo y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockBalanceRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.StockBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM stock_balances WHERE product_id = $1 AND location_id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, productID, locationID), "get stock balance for update")
}

// GetByID obtiene un saldo por ID; nil si no existe.
func (r *StockBalanceRepo) GetByID(ctx context.Context, id string) (*entity.StockBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM stock_balances WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get stock balance by id")
}

func (r *StockBalanceRepo) scanOne(row pgx.Row, op string) (*entity.StockBalance, error) {
	var b entity.StockBalance
	err := row.Scan(&b.ID, &b.ProductID, &b.LocationID, &b.Quantity, &b.ReservedQuantity, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &b, nil
}

// Save inserta el saldo si es nuevo o lo actualiza si Version coincide con la persistida.
// Si otra transacción insertó el mismo par o escribió primero devuelve domain.ErrConflict.
func (r *StockBalanceRepo) Save(ctx context.Context, b *entity.StockBalance) error {
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = time.Now().UTC()
	}
	if b.IsNew() {
		id := uuid.New().String()
		tag, err := r.q.Exec(ctx, `
			INSERT INTO stock_balances (`+balanceColumns+`)
			VALUES ($1, $2, $3, $4, $5, 1, $6, $6)
			ON CONFLICT (product_id, location_id) DO NOTHING`,
			id, b.ProductID, b.LocationID, b.Quantity, b.ReservedQuantity, b.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert stock balance: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("saldo %s@%s creado por otra transacción: %w", b.ProductID, b.LocationID, domain.ErrConflict)
		}
		b.ID = id
		b.Version = 1
		b.CreatedAt = b.UpdatedAt
		return nil
	}

	tag, err := r.q.Exec(ctx, `
		UPDATE stock_balances
		SET quantity = $2, reserved_quantity = $3, version = version + 1, updated_at = $4
		WHERE id = $1 AND version = $5`,
		b.ID, b.Quantity, b.ReservedQuantity, b.UpdatedAt, b.Version,
	)
	if err != nil {
		return fmt.Errorf("update stock balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("saldo %s versión %d: %w", b.ID, b.Version, domain.ErrConflict)
	}
	b.Version++
	return nil
}

const balanceViewQuery = `
	SELECT b.id, b.product_id, b.location_id, b.quantity, b.reserved_quantity, b.version, b.created_at, b.updated_at,
	       p.sku, p.name, l.code, w.id, w.name
	FROM stock_balances b
	JOIN products p ON p.id = b.product_id
	JOIN locations l ON l.id = b.location_id
	JOIN warehouses w ON w.id = l.warehouse_id`

// ListByProduct saldos del producto con datos de ubicación y bodega.
func (r *StockBalanceRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.BalanceView, error) {
	return r.listViews(ctx, balanceViewQuery+` WHERE b.product_id = $1 ORDER BY p.sku, l.code`, productID)
}

// ListByLocation saldos de la ubicación.
func (r *StockBalanceRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.BalanceView, error) {
	return r.listViews(ctx, balanceViewQuery+` WHERE b.location_id = $1 ORDER BY p.sku, l.code`, locationID)
}

// ListByWarehouse saldos de todas las ubicaciones de la bodega.
func (r *StockBalanceRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.BalanceView, error) {
	return r.listViews(ctx, balanceViewQuery+` WHERE l.warehouse_id = $1 ORDER BY p.sku, l.code`, warehouseID)
}

func (r *StockBalanceRepo) listViews(ctx context.Context, query string, arg string) ([]*entity.BalanceView, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		if isInvalidUUID(err) {
			return []*entity.BalanceView{}, nil
		}
		return nil, fmt.Errorf("list stock balances: %w", err)
	}
	defer rows.Close()
	list := []*entity.BalanceView{}
	for rows.Next() {
		var v entity.BalanceView
		if err := rows.Scan(
			&v.ID, &v.ProductID, &v.LocationID, &v.Quantity, &v.ReservedQuantity, &v.Version, &v.CreatedAt, &v.UpdatedAt,
			&v.ProductSKU, &v.ProductName, &v.LocationCode, &v.WarehouseID, &v.WarehouseName,
		); err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
