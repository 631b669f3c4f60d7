package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/librestock/backend/internal/domain/shared"
)

// OrderRepository defines the persistence interface for orders.
// FindByID and FindAll load orders with their items.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error)
	// NextDailySequence returns the next order-number sequence for the day.
	NextDailySequence(ctx context.Context, day time.Time) (int, error)
}
