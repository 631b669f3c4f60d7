package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/librestock/backend/internal/domain/inventory"
)

// ReceiveStockRequest books incoming stock into a storage slot
type ReceiveStockRequest struct {
	ProductID       uuid.UUID        `json:"product_id" binding:"required"`
	LocationID      uuid.UUID        `json:"location_id" binding:"required"`
	AreaID          *uuid.UUID       `json:"area_id"`
	Quantity        int              `json:"quantity" binding:"required,min=1"`
	BatchNumber     string           `json:"batch_number" binding:"max=100"`
	ExpiryDate      *time.Time       `json:"expiry_date"`
	CostPerUnit     *decimal.Decimal `json:"cost_per_unit"`
	ReferenceNumber string           `json:"reference_number" binding:"max=100"`
	Notes           string           `json:"notes"`
}

// AdjustStockRequest changes the quantity of one inventory record, either
// by a signed delta or to an absolute count. Exactly one of Delta and
// NewQuantity must be set.
type AdjustStockRequest struct {
	Delta       *int   `json:"delta"`
	NewQuantity *int   `json:"new_quantity" binding:"omitempty,min=0"`
	Reason      string `json:"reason" binding:"required"`
	Notes       string `json:"notes"`
}

// TransferStockRequest moves stock between two locations
type TransferStockRequest struct {
	ProductID    uuid.UUID  `json:"product_id" binding:"required"`
	FromLocation uuid.UUID  `json:"from_location_id" binding:"required"`
	FromArea     *uuid.UUID `json:"from_area_id"`
	ToLocation   uuid.UUID  `json:"to_location_id" binding:"required"`
	ToArea       *uuid.UUID `json:"to_area_id"`
	BatchNumber  string     `json:"batch_number" binding:"max=100"`
	Quantity     int        `json:"quantity" binding:"required,min=1"`
	Notes        string     `json:"notes"`
}

// RecordResponse represents an inventory record in API responses
type RecordResponse struct {
	ID           uuid.UUID        `json:"id"`
	ProductID    uuid.UUID        `json:"product_id"`
	LocationID   uuid.UUID        `json:"location_id"`
	AreaID       *uuid.UUID       `json:"area_id"`
	Quantity     int              `json:"quantity"`
	BatchNumber  string           `json:"batch_number"`
	ExpiryDate   *time.Time       `json:"expiry_date"`
	CostPerUnit  *decimal.Decimal `json:"cost_per_unit"`
	ReceivedDate *time.Time       `json:"received_date"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// MovementResponse represents a ledger entry in API responses
type MovementResponse struct {
	ID              uuid.UUID        `json:"id"`
	ProductID       uuid.UUID        `json:"product_id"`
	FromLocationID  *uuid.UUID       `json:"from_location_id"`
	ToLocationID    *uuid.UUID       `json:"to_location_id"`
	Quantity        int              `json:"quantity"`
	Reason          string           `json:"reason"`
	OrderID         *uuid.UUID       `json:"order_id"`
	ReferenceNumber string           `json:"reference_number"`
	CostPerUnit     *decimal.Decimal `json:"cost_per_unit"`
	UserID          uuid.UUID        `json:"user_id"`
	Notes           string           `json:"notes"`
	CreatedAt       time.Time        `json:"created_at"`
}

// RecordListFilter represents filter options for inventory records
type RecordListFilter struct {
	ProductID          *uuid.UUID `form:"product_id"`
	LocationID         *uuid.UUID `form:"location_id"`
	AreaID             *uuid.UUID `form:"area_id"`
	InStock            *bool      `form:"in_stock"`
	BelowReorder       *bool      `form:"below_reorder"`
	ExpiringWithinDays *int       `form:"expiring_within_days" binding:"omitempty,min=1"`
	Search             string     `form:"search"`
	Page               int        `form:"page"`
	PageSize           int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy            string     `form:"order_by"`
	OrderDir           string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// MovementListFilter represents filter options for the stock ledger
type MovementListFilter struct {
	ProductID  *uuid.UUID `form:"product_id"`
	LocationID *uuid.UUID `form:"location_id"`
	Reason     string     `form:"reason"`
	OrderID    *uuid.UUID `form:"order_id"`
	UserID     *uuid.UUID `form:"user_id"`
	Since      *time.Time `form:"since" time_format:"2006-01-02"`
	Until      *time.Time `form:"until" time_format:"2006-01-02"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToRecordResponse converts a domain Record to RecordResponse
func ToRecordResponse(r *inventory.Record) RecordResponse {
	return RecordResponse{
		ID:           r.ID,
		ProductID:    r.ProductID,
		LocationID:   r.LocationID,
		AreaID:       r.AreaID,
		Quantity:     r.Quantity,
		BatchNumber:  r.BatchNumber,
		ExpiryDate:   r.ExpiryDate,
		CostPerUnit:  r.CostPerUnit,
		ReceivedDate: r.ReceivedDate,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ToRecordResponses converts a slice of domain Records to RecordResponses
func ToRecordResponses(records []inventory.Record) []RecordResponse {
	responses := make([]RecordResponse, len(records))
	for i := range records {
		responses[i] = ToRecordResponse(&records[i])
	}
	return responses
}

// ToMovementResponse converts a domain Movement to MovementResponse
func ToMovementResponse(m *inventory.Movement) MovementResponse {
	return MovementResponse{
		ID:              m.ID,
		ProductID:       m.ProductID,
		FromLocationID:  m.FromLocationID,
		ToLocationID:    m.ToLocationID,
		Quantity:        m.Quantity,
		Reason:          string(m.Reason),
		OrderID:         m.OrderID,
		ReferenceNumber: m.ReferenceNumber,
		CostPerUnit:     m.CostPerUnit,
		UserID:          m.UserID,
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
	}
}

// ToMovementResponses converts a slice of domain Movements to MovementResponses
func ToMovementResponses(movements []inventory.Movement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToMovementResponse(&movements[i])
	}
	return responses
}
