package entity

import "time"

// Warehouse representa una bodega; agrupa ubicaciones de almacenamiento.
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Address   string
	Status    LifecycleStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si la bodega admite operaciones nuevas.
func (w *Warehouse) IsActive() bool { return w.Status == LifecycleActive }
