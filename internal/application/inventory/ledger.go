package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
	"github.com/jhoicas/wms-api/internal/domain/inventory"
	"github.com/jhoicas/wms-api/internal/domain/repository"
)

// Ledger aplica las primitivas de saldo (ajuste, reserva, traslado) sobre un repositorio
// atado a la transacción del llamador. Toda lectura para escritura pasa por GetForUpdate.
type Ledger struct {
	balances repository.StockBalanceRepository
	now      func() time.Time
}

// NewLedger construye el ledger para la unidad de trabajo actual.
func NewLedger(balances repository.StockBalanceRepository) *Ledger {
	return &Ledger{balances: balances, now: time.Now}
}

// GetOrCreateBalance bloquea y devuelve el saldo del par; si no existe devuelve uno en cero
// aún no persistido (se inserta con la primera escritura).
func (l *Ledger) GetOrCreateBalance(ctx context.Context, productID, locationID string) (*entity.StockBalance, error) {
	b, err := l.balances.GetForUpdate(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}
	if b != nil {
		return b, nil
	}
	return &entity.StockBalance{ProductID: productID, LocationID: locationID}, nil
}

// GetBalance bloquea y devuelve el saldo existente; NotFound si el par no tiene saldo.
func (l *Ledger) GetBalance(ctx context.Context, productID, locationID string) (*entity.StockBalance, error) {
	b, err := l.balances.GetForUpdate(ctx, productID, locationID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.NewNotFound("saldo", productID+"@"+locationID)
	}
	return b, nil
}

// AdjustQuantity suma delta a Quantity y persiste. Falla con ErrInvalidQuantity si quedaría negativo.
func (l *Ledger) AdjustQuantity(ctx context.Context, b *entity.StockBalance, delta int) error {
	if err := inventory.Adjust(b, delta); err != nil {
		return err
	}
	return l.save(ctx, b)
}

// SetAbsoluteQuantity fija Quantity al conteo físico y persiste.
func (l *Ledger) SetAbsoluteQuantity(ctx context.Context, b *entity.StockBalance, newQty int) error {
	if err := inventory.SetAbsolute(b, newQty); err != nil {
		return err
	}
	return l.save(ctx, b)
}

// Reserve compromete qty unidades disponibles y persiste.
func (l *Ledger) Reserve(ctx context.Context, b *entity.StockBalance, qty int) error {
	if err := inventory.Reserve(b, qty); err != nil {
		return err
	}
	return l.save(ctx, b)
}

// Release libera qty unidades reservadas (piso en 0) y persiste.
func (l *Ledger) Release(ctx context.Context, b *entity.StockBalance, qty int) error {
	inventory.Release(b, qty)
	return l.save(ctx, b)
}

// Transfer mueve qty unidades de una ubicación a otra dentro de la misma transacción.
// Las filas se bloquean en orden de location id para que dos traslados cruzados no se bloqueen mutuamente.
// El destino se crea si no existe; el origen debe existir y tener disponible suficiente.
func (l *Ledger) Transfer(ctx context.Context, productID, fromLocationID, toLocationID string, qty int) (*entity.StockBalance, *entity.StockBalance, error) {
	if qty <= 0 || fromLocationID == toLocationID {
		return nil, nil, domain.ErrInvalidQuantity
	}

	var from, to *entity.StockBalance
	var err error
	if fromLocationID < toLocationID {
		if from, err = l.GetOrCreateBalance(ctx, productID, fromLocationID); err != nil {
			return nil, nil, err
		}
		if to, err = l.GetOrCreateBalance(ctx, productID, toLocationID); err != nil {
			return nil, nil, err
		}
	} else {
		if to, err = l.GetOrCreateBalance(ctx, productID, toLocationID); err != nil {
			return nil, nil, err
		}
		if from, err = l.GetOrCreateBalance(ctx, productID, fromLocationID); err != nil {
			return nil, nil, err
		}
	}
	if from.IsNew() {
		return nil, nil, domain.NewNotFound("saldo", productID+"@"+fromLocationID)
	}

	if err := inventory.CheckAvailable(from, qty); err != nil {
		return nil, nil, err
	}
	if err := l.AdjustQuantity(ctx, from, -qty); err != nil {
		return nil, nil, err
	}
	if err := l.AdjustQuantity(ctx, to, qty); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func (l *Ledger) save(ctx context.Context, b *entity.StockBalance) error {
	b.UpdatedAt = l.now()
	if err := l.balances.Save(ctx, b); err != nil {
		return fmt.Errorf("guardar saldo %s@%s: %w", b.ProductID, b.LocationID, err)
	}
	return nil
}
