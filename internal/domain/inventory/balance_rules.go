// Package inventory contiene las reglas puras sobre saldos de stock (servicio de dominio).
// No hace I/O: la persistencia y el bloqueo de filas los aplica la capa de aplicación.
package inventory

import (
	"github.com/jhoicas/wms-api/internal/domain"
	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// Adjust suma delta a Quantity. Falla con ErrInvalidQuantity si el resultado fuera negativo.
// ReservedQuantity no se modifica: el llamador ya validó reserva o disponibilidad.
func Adjust(b *entity.StockBalance, delta int) error {
	newQty := b.Quantity + delta
	if newQty < 0 {
		return domain.ErrInvalidQuantity
	}
	b.Quantity = newQty
	return nil
}

// SetAbsolute fija Quantity a un conteo físico. No puede quedar por debajo de lo reservado.
func SetAbsolute(b *entity.StockBalance, newQty int) error {
	if newQty < 0 {
		return domain.ErrInvalidQuantity
	}
	if newQty < b.ReservedQuantity {
		return &domain.BelowReservedError{Requested: newQty, Reserved: b.ReservedQuantity}
	}
	b.Quantity = newQty
	return nil
}

// Reserve compromete qty unidades del disponible.
func Reserve(b *entity.StockBalance, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	if qty > b.AvailableQuantity() {
		return &domain.InsufficientStockError{
			ProductID:  b.ProductID,
			LocationID: b.LocationID,
			Available:  b.AvailableQuantity(),
			Required:   qty,
		}
	}
	b.ReservedQuantity += qty
	return nil
}

// Release libera qty unidades reservadas; nunca deja ReservedQuantity negativo.
func Release(b *entity.StockBalance, qty int) {
	b.ReservedQuantity -= qty
	if b.ReservedQuantity < 0 {
		b.ReservedQuantity = 0
	}
}

// CheckAvailable verifica que el saldo tenga al menos qty unidades disponibles.
func CheckAvailable(b *entity.StockBalance, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	if b.AvailableQuantity() < qty {
		return &domain.InsufficientStockError{
			ProductID:  b.ProductID,
			LocationID: b.LocationID,
			Available:  b.AvailableQuantity(),
			Required:   qty,
		}
	}
	return nil
}
