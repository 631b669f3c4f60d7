package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/librestock/backend/internal/domain/shared"
)

// RecordRepository defines the persistence interface for inventory records
type RecordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)
	FindBySlot(ctx context.Context, productID, locationID uuid.UUID, areaID *uuid.UUID, batchNumber string) (*Record, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Record, error)
	FindExpiringBefore(ctx context.Context, cutoff time.Time) ([]Record, error)
	Save(ctx context.Context, record *Record) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	CountByLocation(ctx context.Context, locationID uuid.UUID) (int64, error)
	TotalQuantityByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}

// MovementRepository defines the persistence interface for the stock ledger.
// The ledger is append-only: there is deliberately no update or delete.
type MovementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Movement, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Movement, error)
	Save(ctx context.Context, movement *Movement) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
