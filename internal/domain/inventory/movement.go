package inventory

import (
	"github.com/google/uuid"
	"github.com/librestock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MovementReason explains why stock changed
type MovementReason string

const (
	ReasonPurchaseReceive  MovementReason = "PURCHASE_RECEIVE"
	ReasonSale             MovementReason = "SALE"
	ReasonWaste            MovementReason = "WASTE"
	ReasonDamaged          MovementReason = "DAMAGED"
	ReasonExpired          MovementReason = "EXPIRED"
	ReasonCountCorrection  MovementReason = "COUNT_CORRECTION"
	ReasonReturnFromClient MovementReason = "RETURN_FROM_CLIENT"
	ReasonReturnToSupplier MovementReason = "RETURN_TO_SUPPLIER"
	ReasonInternalTransfer MovementReason = "INTERNAL_TRANSFER"
)

// IsValid reports whether the reason is a known value
func (r MovementReason) IsValid() bool {
	switch r {
	case ReasonPurchaseReceive, ReasonSale, ReasonWaste, ReasonDamaged, ReasonExpired,
		ReasonCountCorrection, ReasonReturnFromClient, ReasonReturnToSupplier, ReasonInternalTransfer:
		return true
	}
	return false
}

// Movement is one entry in the stock ledger. Movements are written in the
// same transaction as the quantity change they describe and are never
// updated or deleted afterwards. A nil FromLocationID means stock entered
// the system; a nil ToLocationID means it left.
type Movement struct {
	shared.BaseEntity
	ProductID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	FromLocationID  *uuid.UUID       `gorm:"type:uuid;index"`
	ToLocationID    *uuid.UUID       `gorm:"type:uuid;index"`
	Quantity        int              `gorm:"not null"`
	Reason          MovementReason   `gorm:"type:varchar(30);not null;index"`
	OrderID         *uuid.UUID       `gorm:"type:uuid;index"`
	ReferenceNumber string           `gorm:"type:varchar(100)"`
	CostPerUnit     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	UserID          uuid.UUID        `gorm:"type:uuid;not null"`
	Notes           string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Movement) TableName() string {
	return "stock_movements"
}

// NewMovement creates a ledger entry
func NewMovement(productID uuid.UUID, from, to *uuid.UUID, quantity int, reason MovementReason, userID uuid.UUID) (*Movement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product is required")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Movement quantity must be positive")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown movement reason")
	}
	if from == nil && to == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Movement needs a source or a destination")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "User is required")
	}

	return &Movement{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      productID,
		FromLocationID: from,
		ToLocationID:   to,
		Quantity:       quantity,
		Reason:         reason,
		UserID:         userID,
	}, nil
}
