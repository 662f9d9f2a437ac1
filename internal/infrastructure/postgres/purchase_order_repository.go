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

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const purchaseOrderColumns = `id, order_number, supplier_id, warehouse_id, status, order_date, expected_delivery_date, received_date, created_at, updated_at`

// PurchaseOrderRepo órdenes de compra con sus ítems sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta la cabecera y sus ítems. Número repetido es domain.ErrDuplicate.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	if po.ID == "" {
		po.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `INSERT INTO purchase_orders (`+purchaseOrderColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		po.ID, po.OrderNumber, po.SupplierID, po.WarehouseID, po.Status,
		po.OrderDate, po.ExpectedDeliveryDate, po.ReceivedDate, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for i := range po.Items {
		po.Items[i].PurchaseOrderID = po.ID
		if err := r.AddItem(ctx, &po.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

// GetByID carga la orden con sus ítems; nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate carga la orden con sus ítems y bloquea la cabecera.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) get(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	items, err := r.itemsByOrder(ctx, []string{po.ID})
	if err != nil {
		return nil, err
	}
	po.Items = items[po.ID]
	return po, nil
}

// AddItem inserta una línea de la orden.
func (r *PurchaseOrderRepo) AddItem(ctx context.Context, item *entity.PurchaseOrderItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_order_items (id, purchase_order_id, product_id, location_id, ordered_quantity, received_quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.PurchaseOrderID, item.ProductID, item.LocationID,
		item.OrderedQuantity, item.ReceivedQuantity, item.UnitPrice,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewNotFound("orden de compra", item.PurchaseOrderID)
		}
		return fmt.Errorf("insert purchase order item: %w", err)
	}
	return nil
}

// UpdateStatus persiste estado, fecha de recepción y UpdatedAt.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET status = $2, received_date = $3, updated_at = $4 WHERE id = $1`,
		po.ID, po.Status, po.ReceivedDate, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("orden de compra", po.ID)
	}
	return nil
}

// UpdateItemReceived fija la cantidad recibida de una línea.
func (r *PurchaseOrderRepo) UpdateItemReceived(ctx context.Context, itemID string, receivedQuantity int) error {
	tag, err := r.q.Exec(ctx, `UPDATE purchase_order_items SET received_quantity = $2 WHERE id = $1`, itemID, receivedQuantity)
	if err != nil {
		return fmt.Errorf("update received quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("ítem de orden de compra", itemID)
	}
	return nil
}

// List órdenes más recientes primero, con filtro opcional de estado.
func (r *PurchaseOrderRepo) List(ctx context.Context, status *entity.PurchaseOrderStatus, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + purchaseOrderColumns + ` FROM purchase_orders`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += fmt.Sprintf(` ORDER BY seq DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	list := []*entity.PurchaseOrder{}
	ids := []string{}
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
		ids = append(ids, po.ID)
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
	for _, po := range list {
		po.Items = items[po.ID]
	}
	return list, nil
}

func (r *PurchaseOrderRepo) itemsByOrder(ctx context.Context, ids []string) (map[string][]entity.PurchaseOrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_order_id, product_id, location_id, ordered_quantity, received_quantity, unit_price
		FROM purchase_order_items WHERE purchase_order_id = ANY($1) ORDER BY seq`, ids)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.PurchaseOrderItem, len(ids))
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.ProductID, &it.LocationID,
			&it.OrderedQuantity, &it.ReceivedQuantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		out[it.PurchaseOrderID] = append(out[it.PurchaseOrderID], it)
	}
	return out, rows.Err()
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(
		&po.ID, &po.OrderNumber, &po.SupplierID, &po.WarehouseID, &po.Status,
		&po.OrderDate, &po.ExpectedDeliveryDate, &po.ReceivedDate, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &po, nil
}
