package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

var (
	_ repository.SalesOrderRepository    = (*SalesOrderRepo)(nil)
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
)

// SalesOrderRepo pedidos de venta en memoria.
type SalesOrderRepo struct{ h handle }

// Create inserta el pedido; número duplicado es ErrDuplicate.
func (r *SalesOrderRepo) Create(_ context.Context, o *entity.SalesOrder) error {
	return r.h.update(func(st *state) error {
		if _, exists := st.orderNumbers[o.OrderNumber]; exists {
			return domain.ErrDuplicate
		}
		if o.ID == "" {
			o.ID = uuid.New().String()
		}
		for i := range o.Items {
			if o.Items[i].ID == "" {
				o.Items[i].ID = uuid.New().String()
			}
			o.Items[i].OrderID = o.ID
		}
		st.salesOrders[o.ID] = cloneOrder(*o)
		st.orderNumbers[o.OrderNumber] = o.ID
		st.orderSeq = append(st.orderSeq, o.ID)
		return nil
	})
}

// GetByID devuelve nil si no existe.
func (r *SalesOrderRepo) GetByID(_ context.Context, id string) (*entity.SalesOrder, error) {
	var out *entity.SalesOrder
	_ = r.h.view(func(st *state) error {
		if o, ok := st.salesOrders[id]; ok {
			c := cloneOrder(o)
			out = &c
		}
		return nil
	})
	return out, nil
}

// GetForUpdate equivale a GetByID dentro de la unidad de trabajo.
func (r *SalesOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.GetByID(ctx, id)
}

// AddItem agrega la línea al pedido persistido.
func (r *SalesOrderRepo) AddItem(_ context.Context, item *entity.OrderItem) error {
	return r.h.update(func(st *state) error {
		o, ok := st.salesOrders[item.OrderID]
		if !ok {
			return domain.NewNotFound("pedido", item.OrderID)
		}
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		o.Items = append(o.Items, *item)
		st.salesOrders[o.ID] = o
		return nil
	})
}

// UpdateStatus persiste estado, fechas y UpdatedAt.
func (r *SalesOrderRepo) UpdateStatus(_ context.Context, o *entity.SalesOrder) error {
	return r.h.update(func(st *state) error {
		current, ok := st.salesOrders[o.ID]
		if !ok {
			return domain.NewNotFound("pedido", o.ID)
		}
		current.Status = o.Status
		current.ShippedDate = o.ShippedDate
		current.UpdatedAt = o.UpdatedAt
		st.salesOrders[o.ID] = current
		return nil
	})
}

// List más recientes primero, con filtro opcional de estado.
func (r *SalesOrderRepo) List(_ context.Context, status *entity.OrderStatus, limit, offset int) ([]*entity.SalesOrder, error) {
	out := []*entity.SalesOrder{}
	_ = r.h.view(func(st *state) error {
		skipped := 0
		for i := len(st.orderSeq) - 1; i >= 0; i-- {
			o := st.salesOrders[st.orderSeq[i]]
			if status != nil && o.Status != *status {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			if limit > 0 && len(out) >= limit {
				break
			}
			c := cloneOrder(o)
			out = append(out, &c)
		}
		return nil
	})
	return out, nil
}

func cloneOrder(o entity.SalesOrder) entity.SalesOrder {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	return o
}

// PurchaseOrderRepo órdenes de compra en memoria.
type PurchaseOrderRepo struct{ h handle }

// Create inserta la orden; número duplicado es ErrDuplicate.
func (r *PurchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	return r.h.update(func(st *state) error {
		if _, exists := st.poNumbers[po.OrderNumber]; exists {
			return domain.ErrDuplicate
		}
		if po.ID == "" {
			po.ID = uuid.New().String()
		}
		for i := range po.Items {
			if po.Items[i].ID == "" {
				po.Items[i].ID = uuid.New().String()
			}
			po.Items[i].PurchaseOrderID = po.ID
		}
		st.purchaseOrders[po.ID] = clonePO(*po)
		st.poNumbers[po.OrderNumber] = po.ID
		st.poSeq = append(st.poSeq, po.ID)
		return nil
	})
}

// GetByID devuelve nil si no existe.
func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	_ = r.h.view(func(st *state) error {
		if po, ok := st.purchaseOrders[id]; ok {
			c := clonePO(po)
			out = &c
		}
		return nil
	})
	return out, nil
}

// GetForUpdate equivale a GetByID dentro de la unidad de trabajo.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

// AddItem agrega la línea a la orden persistida.
func (r *PurchaseOrderRepo) AddItem(_ context.Context, item *entity.PurchaseOrderItem) error {
	return r.h.update(func(st *state) error {
		po, ok := st.purchaseOrders[item.PurchaseOrderID]
		if !ok {
			return domain.NewNotFound("orden de compra", item.PurchaseOrderID)
		}
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		po.Items = append(po.Items, *item)
		st.purchaseOrders[po.ID] = po
		return nil
	})
}

// UpdateStatus persiste estado, fechas y UpdatedAt.
func (r *PurchaseOrderRepo) UpdateStatus(_ context.Context, po *entity.PurchaseOrder) error {
	return r.h.update(func(st *state) error {
		current, ok := st.purchaseOrders[po.ID]
		if !ok {
			return domain.NewNotFound("orden de compra", po.ID)
		}
		current.Status = po.Status
		current.ReceivedDate = po.ReceivedDate
		current.UpdatedAt = po.UpdatedAt
		st.purchaseOrders[po.ID] = current
		return nil
	})
}

// UpdateItemReceived fija la cantidad recibida de una línea.
func (r *PurchaseOrderRepo) UpdateItemReceived(_ context.Context, itemID string, receivedQuantity int) error {
	return r.h.update(func(st *state) error {
		for id, po := range st.purchaseOrders {
			for i := range po.Items {
				if po.Items[i].ID == itemID {
					po.Items[i].ReceivedQuantity = receivedQuantity
					st.purchaseOrders[id] = po
					return nil
				}
			}
		}
		return domain.NewNotFound("ítem de orden de compra", itemID)
	})
}

// List más recientes primero, con filtro opcional de estado.
func (r *PurchaseOrderRepo) List(_ context.Context, status *entity.PurchaseOrderStatus, limit, offset int) ([]*entity.PurchaseOrder, error) {
	out := []*entity.PurchaseOrder{}
	_ = r.h.view(func(st *state) error {
		skipped := 0
		for i := len(st.poSeq) - 1; i >= 0; i-- {
			po := st.purchaseOrders[st.poSeq[i]]
			if status != nil && po.Status != *status {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			if limit > 0 && len(out) >= limit {
				break
			}
			c := clonePO(po)
			out = append(out, &c)
		}
		return nil
	})
	return out, nil
}

func clonePO(po entity.PurchaseOrder) entity.PurchaseOrder {
	po.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
	return po
}
