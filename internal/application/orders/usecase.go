package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/wms-api/internal/application/inventory"
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/pkg/logger"
	"github.com/jhoicas/wms-api/pkg/metrics"
	"github.com/jhoicas/wms-api/pkg/ordernum"
)

const (
	workflow          = "sales_order"
	maxNumberAttempts = 5
	defaultListLimit  = 50
)

// CreateInput datos de cabecera del pedido.
type CreateInput struct {
	CustomerName    string
	ShippingAddress string
	WarehouseID     string
}

// AddItemInput línea a agregar: producto a despachar desde una ubicación.
type AddItemInput struct {
	ProductID  string
	LocationID string
	Quantity   int
}

// SalesOrderUseCase flujo del pedido de venta: PENDING → RESERVED → SHIPPED.
// Cada transición corre en una sola unidad de trabajo junto con los cambios de saldo y movimientos.
type SalesOrderUseCase struct {
	txRunner     inventory.TxRunner
	catalog      *inventory.Catalog
	orders       repository.SalesOrderRepository
	reservations repository.StockReservationRepository
	locker       inventory.Locker
	metrics      *metrics.Metrics
	log          *logger.Logger
	newNumber    func() (string, error)
	now          func() time.Time
}

// NewSalesOrderUseCase construye el caso de uso. orders y reservations son repositorios de lectura.
// locker, m y log pueden ser nil.
func NewSalesOrderUseCase(
	txRunner inventory.TxRunner,
	catalog *inventory.Catalog,
	orders repository.SalesOrderRepository,
	reservations repository.StockReservationRepository,
	locker inventory.Locker,
	m *metrics.Metrics,
	log *logger.Logger,
) *SalesOrderUseCase {
	if locker == nil {
		locker = inventory.NoopLocker{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SalesOrderUseCase{
		txRunner:     txRunner,
		catalog:      catalog,
		orders:       orders,
		reservations: reservations,
		locker:       locker,
		metrics:      m,
		log:          log,
		newNumber:    func() (string, error) { return ordernum.Generate(ordernum.PrefixSalesOrder) },
		now:          time.Now,
	}
}

// WithNumberGenerator reemplaza el generador de números (tests).
func (uc *SalesOrderUseCase) WithNumberGenerator(gen func() (string, error)) *SalesOrderUseCase {
	uc.newNumber = gen
	return uc
}

// Create crea el pedido en PENDING con número ORD-XXXXXXXX; reintenta si el número ya existe.
func (uc *SalesOrderUseCase) Create(ctx context.Context, in CreateInput) (*entity.SalesOrder, error) {
	if in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.catalog.RequireWarehouse(ctx, in.WarehouseID); err != nil {
		return nil, err
	}

	var order *entity.SalesOrder
	var err error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		var number string
		if number, err = uc.newNumber(); err != nil {
			return nil, err
		}
		now := uc.now()
		order = &entity.SalesOrder{
			OrderNumber:     number,
			CustomerName:    in.CustomerName,
			ShippingAddress: in.ShippingAddress,
			WarehouseID:     in.WarehouseID,
			Status:          entity.OrderStatusPending,
			OrderDate:       now,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		err = uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.Repos) error {
			return repos.SalesOrders.Create(ctx, order)
		})
		if !errors.Is(err, domain.ErrDuplicate) {
			break
		}
		uc.log.Ctx(ctx).Debug().Str("order_number", number).Msg("número de pedido repetido, reintentando")
	}
	uc.metrics.RecordTransition(workflow, "create", err)
	if err != nil {
		return nil, err
	}
	uc.log.Ctx(ctx).Info().Str("order_id", order.ID).Str("order_number", order.OrderNumber).Msg("pedido creado")
	return order, nil
}

// AddItem agrega una línea a un pedido PENDING.
func (uc *SalesOrderUseCase) AddItem(ctx context.Context, orderID string, in AddItemInput) (*entity.SalesOrder, error) {
	if in.ProductID == "" || in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if _, err := uc.catalog.RequireProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}
	if _, err := uc.catalog.RequireLocation(ctx, in.LocationID); err != nil {
		return nil, err
	}

	var order *entity.SalesOrder
	err := uc.transition(ctx, orderID, "add_item", func(ctx context.Context, repos inventory.Repos, o *entity.SalesOrder) error {
		if err := o.AddItem(entity.OrderItem{ProductID: in.ProductID, LocationID: in.LocationID, Quantity: in.Quantity}); err != nil {
			return err
		}
		if err := repos.SalesOrders.AddItem(ctx, &o.Items[len(o.Items)-1]); err != nil {
			return fmt.Errorf("guardar ítem: %w", err)
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ReserveStock reserva cada línea contra su saldo y pasa a RESERVED.
// Si cualquier línea falla no queda ninguna reserva ni cambio de saldo.
func (uc *SalesOrderUseCase) ReserveStock(ctx context.Context, orderID string) (*entity.SalesOrder, error) {
	var order *entity.SalesOrder
	err := uc.transition(ctx, orderID, "reserve", func(ctx context.Context, repos inventory.Repos, o *entity.SalesOrder) error {
		if err := o.CanReserve(); err != nil {
			return err
		}
		ledger := inventory.NewLedger(repos.Balances)
		now := uc.now()
		for _, item := range o.Items {
			b, err := ledger.GetBalance(ctx, item.ProductID, item.LocationID)
			if err != nil {
				return err
			}
			if err := ledger.Reserve(ctx, b, item.Quantity); err != nil {
				return err
			}
			if err := repos.Reservations.Create(ctx, &entity.StockReservation{
				OrderID:     o.ID,
				InventoryID: b.ID,
				Quantity:    item.Quantity,
				ReservedAt:  now,
			}); err != nil {
				return fmt.Errorf("crear reserva: %w", err)
			}
		}
		o.MarkReserved(now)
		if err := repos.SalesOrders.UpdateStatus(ctx, o); err != nil {
			return fmt.Errorf("actualizar estado: %w", err)
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ShipOrder descuenta y libera cada línea, registra un OUT por línea y pasa a SHIPPED.
// La reserva se libera antes de descontar para que reserved <= quantity se cumpla en cada escritura.
func (uc *SalesOrderUseCase) ShipOrder(ctx context.Context, orderID string) (*entity.SalesOrder, error) {
	var order *entity.SalesOrder
	err := uc.transition(ctx, orderID, "ship", func(ctx context.Context, repos inventory.Repos, o *entity.SalesOrder) error {
		if err := o.CanShip(); err != nil {
			return err
		}
		ledger := inventory.NewLedger(repos.Balances)
		recorder := inventory.NewMovementRecorder(repos.Movements, uc.metrics)
		for _, item := range o.Items {
			b, err := ledger.GetBalance(ctx, item.ProductID, item.LocationID)
			if err != nil {
				return err
			}
			if err := ledger.Release(ctx, b, item.Quantity); err != nil {
				return err
			}
			if err := ledger.AdjustQuantity(ctx, b, -item.Quantity); err != nil {
				return err
			}
			if _, err := recorder.Record(ctx, inventory.MovementInput{
				Type:            entity.MovementTypeOUT,
				ProductID:       item.ProductID,
				FromLocationID:  item.LocationID,
				Quantity:        item.Quantity,
				Reason:          inventory.ReasonOrderShipped,
				ReferenceNumber: o.OrderNumber,
			}); err != nil {
				return err
			}
		}

		now := uc.now()
		open, err := repos.Reservations.ListOpenByOrder(ctx, o.ID)
		if err != nil {
			return fmt.Errorf("listar reservas: %w", err)
		}
		if len(open) > 0 {
			ids := make([]string, 0, len(open))
			for _, r := range open {
				ids = append(ids, r.ID)
			}
			if err := repos.Reservations.MarkReleased(ctx, ids, now); err != nil {
				return fmt.Errorf("liberar reservas: %w", err)
			}
		}

		o.MarkShipped(now)
		if err := repos.SalesOrders.UpdateStatus(ctx, o); err != nil {
			return fmt.Errorf("actualizar estado: %w", err)
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Get devuelve el pedido con sus ítems.
func (uc *SalesOrderUseCase) Get(ctx context.Context, id string) (*entity.SalesOrder, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NewNotFound("pedido", id)
	}
	return o, nil
}

// List pedidos más recientes primero; status nil no filtra.
func (uc *SalesOrderUseCase) List(ctx context.Context, status *entity.OrderStatus, limit, offset int) ([]*entity.SalesOrder, error) {
	if status != nil {
		switch *status {
		case entity.OrderStatusPending, entity.OrderStatusReserved, entity.OrderStatusShipped:
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

// Reservations reservas (abiertas y liberadas) del pedido.
func (uc *SalesOrderUseCase) Reservations(ctx context.Context, orderID string) ([]*entity.StockReservation, error) {
	if _, err := uc.Get(ctx, orderID); err != nil {
		return nil, err
	}
	return uc.reservations.ListByOrder(ctx, orderID)
}

// transition toma el lock del pedido, lo carga bloqueado dentro de la unidad de trabajo y ejecuta fn.
func (uc *SalesOrderUseCase) transition(
	ctx context.Context,
	orderID, name string,
	fn func(ctx context.Context, repos inventory.Repos, o *entity.SalesOrder) error,
) error {
	if orderID == "" {
		return domain.ErrInvalidInput
	}
	err := inventory.WithLock(ctx, uc.locker, "sales-order:"+orderID, func() error {
		return uc.txRunner.Run(ctx, func(ctx context.Context, repos inventory.Repos) error {
			o, err := repos.SalesOrders.GetForUpdate(ctx, orderID)
			if err != nil {
				return err
			}
			if o == nil {
				return domain.NewNotFound("pedido", orderID)
			}
			return fn(ctx, repos, o)
		})
	})
	uc.metrics.RecordTransition(workflow, name, err)
	if err != nil {
		uc.log.Ctx(ctx).Warn().Err(err).Str("order_id", orderID).Str("transition", name).Msg("transición de pedido rechazada")
		return err
	}
	uc.log.Ctx(ctx).Info().Str("order_id", orderID).Str("transition", name).Msg("transición de pedido aplicada")
	return nil
}
