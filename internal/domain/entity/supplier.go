package entity

import "time"

// Supplier proveedor al que se emiten órdenes de compra.
type Supplier struct {
	ID          string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	Status      LifecycleStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive indica si el proveedor admite órdenes nuevas.
func (s *Supplier) IsActive() bool { return s.Status == LifecycleActive }
