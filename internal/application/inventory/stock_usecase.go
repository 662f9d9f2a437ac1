package inventory

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/pkg/logger"
	"github.com/jhoicas/wms-api/pkg/metrics"
)

// TransferInput traslado de unidades de un producto entre dos ubicaciones.
type TransferInput struct {
	ProductID       string
	FromLocationID  string
	ToLocationID    string
	Quantity        int
	Reason          string
	ReferenceNumber string
}

// AdjustInput ajuste por conteo físico: fija la cantidad absoluta del par producto+ubicación.
type AdjustInput struct {
	ProductID       string
	LocationID      string
	NewQuantity     int
	Reason          string
	ReferenceNumber string
}

// TransferResult saldos resultantes y movimiento registrado.
type TransferResult struct {
	From     *entity.StockBalance
	To       *entity.StockBalance
	Movement *entity.StockMovement
}

// AdjustResult saldo resultante y movimiento registrado.
type AdjustResult struct {
	Balance     *entity.StockBalance
	OldQuantity int
	Movement    *entity.StockMovement
}

// StockUseCase operaciones directas sobre saldos (traslado, ajuste) y consultas de saldo.
type StockUseCase struct {
	txRunner TxRunner
	catalog  *Catalog
	balances repository.StockBalanceRepository
	metrics  *metrics.Metrics
	log      *logger.Logger
}

// NewStockUseCase construye el caso de uso. balances es el repositorio de lectura (fuera de tx).
func NewStockUseCase(
	txRunner TxRunner,
	catalog *Catalog,
	balances repository.StockBalanceRepository,
	m *metrics.Metrics,
	log *logger.Logger,
) *StockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StockUseCase{txRunner: txRunner, catalog: catalog, balances: balances, metrics: m, log: log}
}

// TransferStock valida catálogo, traslada en una sola transacción y registra un movimiento TRANSFER.
func (uc *StockUseCase) TransferStock(ctx context.Context, in TransferInput) (*TransferResult, error) {
	if in.ProductID == "" || in.FromLocationID == "" || in.ToLocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 || in.FromLocationID == in.ToLocationID {
		return nil, domain.ErrInvalidQuantity
	}
	if _, err := uc.catalog.RequireProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}
	if _, err := uc.catalog.RequireLocation(ctx, in.FromLocationID); err != nil {
		return nil, err
	}
	if _, err := uc.catalog.RequireLocation(ctx, in.ToLocationID); err != nil {
		return nil, err
	}
	reason := in.Reason
	if reason == "" {
		reason = ReasonStockTransfer
	}

	var res TransferResult
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		from, to, err := NewLedger(repos.Balances).Transfer(ctx, in.ProductID, in.FromLocationID, in.ToLocationID, in.Quantity)
		if err != nil {
			return err
		}
		mov, err := NewMovementRecorder(repos.Movements, uc.metrics).Record(ctx, MovementInput{
			Type:            entity.MovementTypeTRANSFER,
			ProductID:       in.ProductID,
			FromLocationID:  in.FromLocationID,
			ToLocationID:    in.ToLocationID,
			Quantity:        in.Quantity,
			Reason:          reason,
			ReferenceNumber: in.ReferenceNumber,
		})
		if err != nil {
			return err
		}
		res = TransferResult{From: from, To: to, Movement: mov}
		return nil
	})
	uc.metrics.RecordTransition("stock", "transfer", err)
	if err != nil {
		uc.log.Ctx(ctx).Warn().Err(err).
			Str("product_id", in.ProductID).
			Str("from", in.FromLocationID).
			Str("to", in.ToLocationID).
			Int("quantity", in.Quantity).
			Msg("traslado rechazado")
		return nil, err
	}
	uc.log.Ctx(ctx).Info().
		Str("product_id", in.ProductID).
		Str("from", in.FromLocationID).
		Str("to", in.ToLocationID).
		Int("quantity", in.Quantity).
		Msg("traslado aplicado")
	return &res, nil
}

// AdjustStock fija la cantidad absoluta de un par y registra un movimiento ADJUSTMENT con |nuevo-anterior|.
func (uc *StockUseCase) AdjustStock(ctx context.Context, in AdjustInput) (*AdjustResult, error) {
	if in.ProductID == "" || in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.NewQuantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if _, err := uc.catalog.RequireProduct(ctx, in.ProductID); err != nil {
		return nil, err
	}
	if _, err := uc.catalog.RequireLocation(ctx, in.LocationID); err != nil {
		return nil, err
	}
	reason := in.Reason
	if reason == "" {
		reason = ReasonStockAdjustment
	}

	var res AdjustResult
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos Repos) error {
		ledger := NewLedger(repos.Balances)
		b, err := ledger.GetOrCreateBalance(ctx, in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		old := b.Quantity
		if err := ledger.SetAbsoluteQuantity(ctx, b, in.NewQuantity); err != nil {
			return err
		}
		diff := in.NewQuantity - old
		if diff < 0 {
			diff = -diff
		}
		mov, err := NewMovementRecorder(repos.Movements, uc.metrics).Record(ctx, MovementInput{
			Type:            entity.MovementTypeADJUSTMENT,
			ProductID:       in.ProductID,
			ToLocationID:    in.LocationID,
			Quantity:        diff,
			Reason:          reason,
			ReferenceNumber: in.ReferenceNumber,
		})
		if err != nil {
			return err
		}
		res = AdjustResult{Balance: b, OldQuantity: old, Movement: mov}
		return nil
	})
	uc.metrics.RecordTransition("stock", "adjust", err)
	if err != nil {
		uc.log.Ctx(ctx).Warn().Err(err).
			Str("product_id", in.ProductID).
			Str("location_id", in.LocationID).
			Int("new_quantity", in.NewQuantity).
			Msg("ajuste rechazado")
		return nil, err
	}
	uc.log.Ctx(ctx).Info().
		Str("product_id", in.ProductID).
		Str("location_id", in.LocationID).
		Int("old_quantity", res.OldQuantity).
		Int("new_quantity", in.NewQuantity).
		Msg("ajuste aplicado")
	return &res, nil
}

// GetBalance saldo de un par; NotFound si no existe.
func (uc *StockUseCase) GetBalance(ctx context.Context, productID, locationID string) (*entity.StockBalance, error) {
	if productID == "" || locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.balances.Get(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.NewNotFound("saldo", productID+"@"+locationID)
	}
	return b, nil
}

// ListByProduct saldos de un producto en todas las ubicaciones.
func (uc *StockUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.BalanceView, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.balances.ListByProduct(ctx, productID)
}

// ListByLocation saldos de todos los productos en una ubicación.
func (uc *StockUseCase) ListByLocation(ctx context.Context, locationID string) ([]*entity.BalanceView, error) {
	if locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.balances.ListByLocation(ctx, locationID)
}

// ListByWarehouse saldos de todas las ubicaciones de una bodega.
func (uc *StockUseCase) ListByWarehouse(ctx context.Context, warehouseID string) ([]*entity.BalanceView, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.balances.ListByWarehouse(ctx, warehouseID)
}
