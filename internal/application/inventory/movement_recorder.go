package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/repository"
	"github.com/jhoicas/wms-api/pkg/logger"
	"github.com/jhoicas/wms-api/pkg/metrics"
)

// Motivos estándar de los movimientos generados por los flujos de pedidos.
const (
	ReasonOrderShipped          = "Order Shipped"
	ReasonPurchaseOrderReceived = "Purchase Order Received"
	ReasonStockTransfer         = "Stock Transfer"
	ReasonStockAdjustment       = "Stock Adjustment"
)

// MovementInput datos de un movimiento a registrar. FromLocationID/ToLocationID vacíos = ausentes.
type MovementInput struct {
	Type            entity.MovementType
	ProductID       string
	FromLocationID  string
	ToLocationID    string
	Quantity        int
	Reason          string
	ReferenceNumber string
}

// MovementRecorder agrega registros inmutables de auditoría en la misma transacción que el cambio de saldo.
type MovementRecorder struct {
	movements repository.StockMovementRepository
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewMovementRecorder construye el recorder atado al repositorio de la transacción actual.
// m puede ser nil.
func NewMovementRecorder(movements repository.StockMovementRepository, m *metrics.Metrics) *MovementRecorder {
	return &MovementRecorder{movements: movements, metrics: m, now: time.Now}
}

// Record valida los campos requeridos por tipo, fija fecha y trace id, y agrega el movimiento.
func (r *MovementRecorder) Record(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if err := validateMovement(in); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		Type:            in.Type,
		ProductID:       in.ProductID,
		FromLocationID:  optional(in.FromLocationID),
		ToLocationID:    optional(in.ToLocationID),
		Quantity:        in.Quantity,
		Reason:          in.Reason,
		ReferenceNumber: in.ReferenceNumber,
		TraceID:         logger.TraceID(ctx),
		MovementDate:    r.now(),
	}
	if err := r.movements.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("registrar movimiento %s: %w", in.Type, err)
	}
	r.metrics.RecordMovement(string(in.Type), in.Quantity)
	return mov, nil
}

// validateMovement: TRANSFER origen y destino; IN y ADJUSTMENT solo destino; OUT solo origen.
// ADJUSTMENT admite cantidad 0 (conteo igual al saldo); el resto exige cantidad positiva.
func validateMovement(in MovementInput) error {
	if in.ProductID == "" {
		return domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeTRANSFER:
		if in.FromLocationID == "" || in.ToLocationID == "" {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeIN, entity.MovementTypeADJUSTMENT:
		if in.ToLocationID == "" || in.FromLocationID != "" {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeOUT:
		if in.FromLocationID == "" || in.ToLocationID != "" {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	if in.Quantity < 0 || (in.Quantity == 0 && in.Type != entity.MovementTypeADJUSTMENT) {
		return domain.ErrInvalidQuantity
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
