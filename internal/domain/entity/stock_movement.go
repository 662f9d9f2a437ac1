package entity

import "time"

// MovementType tipo de movimiento de stock.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         MovementType = "IN"         // entrada
	MovementTypeOUT        MovementType = "OUT"        // salida
	MovementTypeADJUSTMENT MovementType = "ADJUSTMENT" // ajuste por conteo
	MovementTypeTRANSFER   MovementType = "TRANSFER"   // traslado entre ubicaciones
)

// Valid indica si el tipo es uno de los soportados.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT, MovementTypeTRANSFER:
		return true
	}
	return false
}

// StockMovement registro inmutable de auditoría de un cambio de saldo.
// TRANSFER lleva origen y destino; IN y ADJUSTMENT solo destino; OUT solo origen.
type StockMovement struct {
	ID              string
	Type            MovementType
	ProductID       string
	FromLocationID  *string
	ToLocationID    *string
	Quantity        int // magnitud del cambio, nunca negativa
	Reason          string
	ReferenceNumber string
	TraceID         string
	MovementDate    time.Time
}

// MovementFilter criterios de consulta de movimientos; los campos nil no filtran.
type MovementFilter struct {
	ProductID *string
	Type      *MovementType
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}
