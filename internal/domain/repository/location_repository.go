package repository

import (
	"context"

	"github.com/jhoicas/wms-api/internal/domain/entity"
)

// LocationRepository puerto de lectura de ubicaciones (DIP).
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	Create(ctx context.Context, location *entity.Location) error
}
