package warehouse

import (
	"context"

	"github.com/google/uuid"
	"github.com/librestock/backend/internal/domain/shared"
)

// LocationRepository defines the persistence interface for locations
type LocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Location, error)
	Save(ctx context.Context, location *Location) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// AreaRepository defines the persistence interface for areas
type AreaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Area, error)
	FindByLocation(ctx context.Context, locationID uuid.UUID) ([]Area, error)
	Save(ctx context.Context, area *Area) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)
}
