// Package inventory tracks on-hand stock per product and location, and the
// append-only movement ledger behind every quantity change.
package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/librestock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Record is the on-hand quantity of a product in one storage slot:
// a (product, location, optional area, optional batch) combination.
type Record struct {
	shared.BaseEntity
	ProductID    uuid.UUID        `gorm:"type:uuid;not null;index:idx_inventory_slot,priority:1"`
	LocationID   uuid.UUID        `gorm:"type:uuid;not null;index:idx_inventory_slot,priority:2"`
	AreaID       *uuid.UUID       `gorm:"type:uuid;index"`
	Quantity     int              `gorm:"not null;default:0"`
	BatchNumber  string           `gorm:"type:varchar(100)"`
	ExpiryDate   *time.Time       `gorm:""`
	CostPerUnit  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ReceivedDate *time.Time       `gorm:""`
}

// TableName returns the table name for GORM
func (Record) TableName() string {
	return "inventory"
}

// NewRecord creates an inventory record for a storage slot
func NewRecord(productID, locationID uuid.UUID, areaID *uuid.UUID, quantity int) (*Record, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product is required")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Location is required")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity cannot be negative")
	}

	return &Record{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		LocationID: locationID,
		AreaID:     areaID,
		Quantity:   quantity,
	}, nil
}

// Add increases the on-hand quantity
func (r *Record) Add(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity to add must be positive")
	}
	r.Quantity += quantity
	r.UpdatedAt = time.Now()
	return nil
}

// Remove decreases the on-hand quantity; stock can never go negative
func (r *Record) Remove(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity to remove must be positive")
	}
	if quantity > r.Quantity {
		return shared.ErrInsufficientStock
	}
	r.Quantity -= quantity
	r.UpdatedAt = time.Now()
	return nil
}

// SetQuantity replaces the on-hand quantity (count corrections)
func (r *Record) SetQuantity(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity cannot be negative")
	}
	r.Quantity = quantity
	r.UpdatedAt = time.Now()
	return nil
}

// IsExpiringWithin reports whether the batch expires inside the window.
// Records without an expiry date never expire.
func (r *Record) IsExpiringWithin(window time.Duration, now time.Time) bool {
	if r.ExpiryDate == nil {
		return false
	}
	return r.ExpiryDate.Before(now.Add(window))
}
