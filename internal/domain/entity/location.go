package entity

import "time"

// Location posición física dentro de una bodega (pasillo/estante/nivel).
type Location struct {
	ID          string
	WarehouseID string
	Code        string
	Description string
	Aisle       string
	Rack        string
	Bin         string
	Status      LifecycleStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive indica si la ubicación admite operaciones nuevas.
func (l *Location) IsActive() bool { return l.Status == LifecycleActive }
