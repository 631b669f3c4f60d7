package catalog

import (
	"context"

	"github.com/google/uuid"
)

// PhotoRepository defines the persistence interface for product photos
type PhotoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Photo, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Photo, error)
	Save(ctx context.Context, photo *Photo) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}
