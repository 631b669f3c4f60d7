package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/librestock/backend/internal/domain/shared"
)

// SupplierRepository defines the persistence interface for suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	Save(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// SupplierProductRepository defines the persistence interface for sourcing links
type SupplierProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SupplierProduct, error)
	FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]SupplierProduct, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]SupplierProduct, error)
	FindLink(ctx context.Context, supplierID, productID uuid.UUID) (*SupplierProduct, error)
	Save(ctx context.Context, link *SupplierProduct) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySupplier(ctx context.Context, supplierID uuid.UUID) error
}

// ClientRepository defines the persistence interface for clients
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)
	Save(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
