package purchasing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/pkg/logger"
	"github.com/jhoicas/wms-api/pkg/metrics"
	"github.com/jhoicas/wms-api/pkg/ordernum"
)

const (
	workflow          = "purchase_order"
	maxNumberAttempts = 5
	defaultListLimit  = 50
)

// CreateInput cabecera de la orden de compra.
type CreateInput struct {
	SupplierID           string
	WarehouseID          string
	ExpectedDeliveryDate *time.Time
}

// AddItemInput línea de compra: producto a recibir en una ubicación.
type AddItemInput struct {
	ProductID       string
	LocationID      string
	OrderedQuantity int
	UnitPrice       decimal.Decimal
}

// PurchaseOrderUseCase flujo de la orden de compra: DRAFT → APPROVED → RECEIVED.
type PurchaseOrderUseCase struct {
	txRunner  inventory.TxRunner
	catalog   *inventory.Catalog
	orders    repository.PurchaseOrderRepository
	documents DocumentGenerator
	locker    inventory.Locker
	metrics   *metrics.Metrics
	log       *logger.Logger
	newNumber func() (string, error)
	now       func() time.Time
}

// NewPurchaseOrderUseCase construye el caso de uso. orders es el repositorio de lectura.
// documents, locker, m y log pueden ser nil.
func NewPurchaseOrderUseCase(
	txRunner inventory.TxRunner,
	catalog *inventory.Catalog,
	orders repository.PurchaseOrderRepository,
	documents DocumentGenerator,
	locker inventory.Locker,
	m *metrics.Metrics,
	log *logger.Logger,
) *PurchaseOrderUseCase {
	if locker == nil {
		locker = inventory.NoopLocker{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PurchaseOrderUseCase{
		txRunner:  txRunner,
		catalog:   catalog,
		orders:    orders,
		documents: documents,
		locker:    locker,
		metrics:   m,
		log:       log,
		newNumber: func() (string, error) { return ordernum.Generate(ordernum.PrefixPurchaseOrder) },
		now:       time.Now,
	}
}

// WithNumberGenerator reemplaza el generador de números (tests).
func (uc *PurchaseOrderUseCase) WithNumberGenerator(gen func() (string, error)) *PurchaseOrderUseCase {
	uc.newNumber = gen
	return uc
}

// Create crea la orden en DRAFT con número PO-XXXXXXXX.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in CreateInput) (*entity.PurchaseOrder, error) {
	if in.SupplierID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.catalog.RequireSupplier(ctx, in.SupplierID); err != nil {
		return nil, err
	}
	if _, err := uc.catalog.RequireWarehouse(ctx, in.WarehouseID); err != nil {
		return nil, err
	}

	var po *entity.PurchaseOrder
	var err error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		var number string
		if number, err = uc.newNumber(); err != nil {
			return nil, err
		}
		now := uc.now()
		po = &entity.PurchaseOrder{
			OrderNumber:          number,
			SupplierID:           in.SupplierID,
			WarehouseID:          in.WarehouseID,
			Status:               entity.PurchaseOrderStatusDraft,
			OrderDate:            now,
			ExpectedDeliveryDate: in.ExpectedDeliveryDate,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		err = uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.Repos) error {
			return repos.PurchaseOrders.Create(ctx, po)
		})
		if !errors.Is(err, domain.ErrDuplicate) {
			break
		}
		uc.log.Ctx(ctx).Debug().Str("order_number", number).Msg("número de orden de compra repetido, reintentando")
	}
	uc.metrics.RecordTransition(workflow, "create", err)
	if err != nil {
		return nil, err
	}
	uc.log.Ctx(ctx).Info().Str("purchase_order_id", po.ID).Str("order_number", po.OrderNumber).Msg("orden de compra creada")
	return po, nil
}

// AddItem agrega una línea a una orden DRAFT.
func (uc *PurchaseOrderUseCase) AddItem(ctx context.Context, poID string, in AddItemInput) (*entity.PurchaseOrder, error) {
	if in.ProductID == "" || in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.OrderedQuantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !in.UnitPrice.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.catalog.RequireProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}
	if _, err := uc.catalog.RequireLocation(ctx, in.LocationID); err != nil {
		return nil, err
	}

	var out *entity.PurchaseOrder
	err := uc.transition(ctx, poID, "add_item", func(ctx context.Context, repos inventory.Repos, po *entity.PurchaseOrder) error {
		if err := po.AddItem(entity.PurchaseOrderItem{
			ProductID:       in.ProductID,
			LocationID:      in.LocationID,
			OrderedQuantity: in.OrderedQuantity,
			UnitPrice:       in.UnitPrice,
		}); err != nil {
			return err
		}
		if err := repos.PurchaseOrders.AddItem(ctx, &po.Items[len(po.Items)-1]); err != nil {
			return fmt.Errorf("guardar ítem: %w", err)
		}
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Approve DRAFT → APPROVED; exige al menos un ítem.
func (uc *PurchaseOrderUseCase) Approve(ctx context.Context, poID string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := uc.transition(ctx, poID, "approve", func(ctx context.Context, repos inventory.Repos, po *entity.PurchaseOrder) error {
		if err := po.Approve(uc.now()); err != nil {
			return err
		}
		if err := repos.PurchaseOrders.UpdateStatus(ctx, po); err != nil {
			return fmt.Errorf("actualizar estado: %w", err)
		}
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Receive APPROVED → RECEIVED: ingresa lo pendiente de cada línea al saldo de su ubicación,
// registra un IN por línea y deja received = ordered.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, poID string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := uc.transition(ctx, poID, "receive", func(ctx context.Context, repos inventory.Repos, po *entity.PurchaseOrder) error {
		if err := po.CanReceive(); err != nil {
			return err
		}
		ledger := inventory.NewLedger(repos.Balances)
		recorder := inventory.NewMovementRecorder(repos.Movements, uc.metrics)
		for i := range po.Items {
			item := &po.Items[i]
			outstanding := item.Outstanding()
			if outstanding <= 0 {
				continue
			}
			b, err := ledger.GetOrCreateBalance(ctx, item.ProductID, item.LocationID)
			if err != nil {
				return err
			}
			if err := ledger.AdjustQuantity(ctx, b, outstanding); err != nil {
				return err
			}
			if err := repos.PurchaseOrders.UpdateItemReceived(ctx, item.ID, item.OrderedQuantity); err != nil {
				return fmt.Errorf("actualizar ítem recibido: %w", err)
			}
			item.ReceivedQuantity = item.OrderedQuantity
			if _, err := recorder.Record(ctx, inventory.MovementInput{
				Type:            entity.MovementTypeIN,
				ProductID:       item.ProductID,
				ToLocationID:    item.LocationID,
				Quantity:        outstanding,
				Reason:          inventory.ReasonPurchaseOrderReceived,
				ReferenceNumber: po.OrderNumber,
			}); err != nil {
				return err
			}
		}
		po.MarkReceived(uc.now())
		if err := repos.PurchaseOrders.UpdateStatus(ctx, po); err != nil {
			return fmt.Errorf("actualizar estado: %w", err)
		}
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get devuelve la orden con sus ítems.
func (uc *PurchaseOrderUseCase) Get(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.NewNotFound("orden de compra", id)
	}
	return po, nil
}

// List órdenes más recientes primero; status nil no filtra.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, status *entity.PurchaseOrderStatus, limit, offset int) ([]*entity.PurchaseOrder, error) {
	if status != nil {
		switch *status {
		case entity.PurchaseOrderStatusDraft, entity.PurchaseOrderStatusApproved, entity.PurchaseOrderStatusReceived:
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return uc.orders.List(ctx, status, limit, offset)
}

// RenderPDF genera el documento imprimible de la orden.
func (uc *PurchaseOrderUseCase) RenderPDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.documents == nil {
		return nil, "", fmt.Errorf("generador de documentos no configurado")
	}
	po, err := uc.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	supplier, err := uc.catalog.RequireSupplier(ctx, po.SupplierID)
	if err != nil && !errors.Is(err, domain.ErrInvalidState) {
		return nil, "", err
	}
	warehouse, err := uc.catalog.RequireWarehouse(ctx, po.WarehouseID)
	if err != nil && !errors.Is(err, domain.ErrInvalidState) {
		return nil, "", err
	}

	doc := PurchaseOrderDocument{Order: po, Supplier: supplier, Warehouse: warehouse}
	for _, it := range po.Items {
		line := DocumentLine{Item: it}
		if p, err := uc.catalog.Products().GetByID(ctx, it.ProductID); err == nil && p != nil {
			line.ProductSKU = p.SKU
			line.ProductName = p.Name
			line.Unit = p.Unit
		}
		doc.Lines = append(doc.Lines, line)
	}
	pdf, err := uc.documents.PurchaseOrderPDF(ctx, doc)
	if err != nil {
		uc.log.Ctx(ctx).Error().Err(err).Str("purchase_order_id", id).Msg("error generando PDF de orden de compra")
		return nil, "", err
	}
	return pdf, po.OrderNumber + ".pdf", nil
}

func (uc *PurchaseOrderUseCase) transition(
	ctx context.Context,
	poID, name string,
	fn func(ctx context.Context, repos inventory.Repos, po *entity.PurchaseOrder) error,
) error {
	if poID == "" {
		return domain.ErrInvalidInput
	}
	err := inventory.WithLock(ctx, uc.locker, "purchase-order:"+poID, func() error {
		return uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.Repos) error {
			po, err := repos.PurchaseOrders.GetForUpdate(ctx, poID)
			if err != nil {
				return err
			}
			if po == nil {
				return domain.NewNotFound("orden de compra", poID)
			}
			return fn(ctx, repos, po)
		})
	})
	uc.metrics.RecordTransition(workflow, name, err)
	if err != nil {
		uc.log.Ctx(ctx).Warn().Err(err).Str("purchase_order_id", poID).Str("transition", name).Msg("transición de orden de compra rechazada")
		return err
	}
	uc.log.Ctx(ctx).Info().Str("purchase_order_id", poID).Str("transition", name).Msg("transición de orden de compra aplicada")
	return nil
}
