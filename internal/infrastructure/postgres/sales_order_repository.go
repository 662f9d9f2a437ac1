package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

const salesOrderColumns = `id, order_number, customer_name, shipping_address, warehouse_id, status, order_date, shipped_date, created_at, updated_at`

// SalesOrderRepo pedidos de venta con sus ítems sobre PostgreSQL.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// Create inserta la cabecera y sus ítems. Número repetido es domain.ErrDuplicate.
func (r *SalesOrderRepo) Create(ctx context.Context, o *entity.SalesOrder) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO sales_orders (`+salesOrderColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		o.ID, o.OrderNumber, o.CustomerName, o.ShippingAddress, o.WarehouseID, o.Status,
		o.OrderDate, o.ShippedDate, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales order: %w", err)
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		if err := r.AddItem(ctx, &o.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetByID carga el pedido con sus ítems; nil si no existe.
func (r *SalesOrderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, `SELECT `+salesOrderColumns+` FROM sales_orders WHERE id = $1`, id)
}

// GetForUpdate carga el pedido con sus ítems y bloquea la cabecera.
func (r *SalesOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, `SELECT `+salesOrderColumns+` FROM sales_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *SalesOrderRepo) get(ctx context.Context, query, id string) (*entity.SalesOrder, error) {
	o, err := scanSalesOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	items, err := r.itemsByOrder(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

// AddItem inserta una línea del pedido.
func (r *SalesOrderRepo) AddItem(ctx context.Context, item *entity.OrderItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_items (id, order_id, product_id, location_id, quantity)
		VALUES ($1, $2, $3, $4, $5)`,
		item.ID, item.OrderID, item.ProductID, item.LocationID, item.Quantity,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewNotFound("pedido", item.OrderID)
		}
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// UpdateStatus persiste estado, fecha de despacho y UpdatedAt.
func (r *SalesOrderRepo) UpdateStatus(ctx context.Context, o *entity.SalesOrder) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE sales_orders SET status = $2, shipped_date = $3, updated_at = $4 WHERE id = $1`,
		o.ID, o.Status, o.ShippedDate, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("pedido", o.ID)
	}
	return nil
}

// List pedidos más recientes primero, con filtro opcional de estado.
func (r *SalesOrderRepo) List(ctx context.Context, status *entity.OrderStatus, limit, offset int) ([]*entity.SalesOrder, error) {
	query := `SELECT ` + salesOrderColumns + ` FROM sales_orders`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += fmt.Sprintf(` ORDER BY seq DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	list := []*entity.SalesOrder{}
	ids := []string{}
	for rows.Next() {
		o, err := scanSalesOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		list = append(list, o)
		ids = append(ids, o.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	items, err := r.itemsByOrder(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		o.Items = items[o.ID]
	}
	return list, nil
}

func (r *SalesOrderRepo) itemsByOrder(ctx context.Context, orderIDs []string) (map[string][]entity.OrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, location_id, quantity
		FROM order_items WHERE order_id = ANY($1) ORDER BY seq`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.OrderItem, len(orderIDs))
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.LocationID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func scanSalesOrder(row pgx.Row) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &o.ShippingAddress, &o.WarehouseID, &o.Status,
		&o.OrderDate, &o.ShippedDate, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
