package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
type Product struct {
	ID            string
	SKU           string // código único
	Barcode       string
	Name          string
	Description   string
	Unit          string
	UnitPrice     decimal.Decimal
	MinStockLevel int
	Category      string
	Status        LifecycleStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive indica si el producto admite operaciones nuevas.
func (p *Product) IsActive() bool { return p.Status == LifecycleActive }
