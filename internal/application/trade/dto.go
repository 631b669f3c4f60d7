package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/librestock/backend/internal/domain/trade"
)

// CreateOrderRequest represents a request to open a draft order
type CreateOrderRequest struct {
	ClientID            uuid.UUID  `json:"client_id" binding:"required"`
	DeliveryDeadline    *time.Time `json:"delivery_deadline"`
	DeliveryAddress     string     `json:"delivery_address"`
	YachtName           string     `json:"yacht_name" binding:"max=200"`
	SpecialInstructions string     `json:"special_instructions"`
	AssignedTo          *uuid.UUID `json:"assigned_to"`
}

// UpdateOrderRequest represents a request to update an order's header.
// Only the provided fields change. SetDeadline and SetAssignee distinguish
// clearing a value from leaving it alone.
type UpdateOrderRequest struct {
	DeliveryDeadline    *time.Time `json:"delivery_deadline"`
	SetDeadline         bool       `json:"set_deadline"`
	DeliveryAddress     *string    `json:"delivery_address"`
	YachtName           *string    `json:"yacht_name" binding:"omitempty,max=200"`
	SpecialInstructions *string    `json:"special_instructions"`
	AssignedTo          *uuid.UUID `json:"assigned_to"`
	SetAssignee         bool       `json:"set_assignee"`
}

// AddOrderItemRequest adds a product line to a draft order. When the unit
// price is omitted the product's standard price is used.
type AddOrderItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int              `json:"quantity" binding:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Notes     string           `json:"notes"`
}

// UpdateOrderItemRequest changes a line on a draft order
type UpdateOrderItemRequest struct {
	Quantity  *int             `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Notes     *string          `json:"notes"`
}

// RecordPickRequest sets the picked quantity of one line
type RecordPickRequest struct {
	QuantityPicked *int `json:"quantity_picked" binding:"required,min=0"`
}

// RecordPackRequest sets the packed quantity of one line
type RecordPackRequest struct {
	QuantityPacked *int `json:"quantity_packed" binding:"required,min=0"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	OrderID        uuid.UUID       `json:"order_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Notes          string          `json:"notes"`
	QuantityPicked int             `json:"quantity_picked"`
	QuantityPacked int             `json:"quantity_packed"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                  uuid.UUID           `json:"id"`
	OrderNumber         string              `json:"order_number"`
	ClientID            uuid.UUID           `json:"client_id"`
	Status              string              `json:"status"`
	DeliveryDeadline    *time.Time          `json:"delivery_deadline"`
	DeliveryAddress     string              `json:"delivery_address"`
	YachtName           string              `json:"yacht_name"`
	SpecialInstructions string              `json:"special_instructions"`
	TotalAmount         decimal.Decimal     `json:"total_amount"`
	AssignedTo          *uuid.UUID          `json:"assigned_to"`
	CreatedBy           uuid.UUID           `json:"created_by"`
	ConfirmedAt         *time.Time          `json:"confirmed_at"`
	ShippedAt           *time.Time          `json:"shipped_at"`
	DeliveredAt         *time.Time          `json:"delivered_at"`
	Items               []OrderItemResponse `json:"items"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// OrderListFilter represents filter options for listing orders
type OrderListFilter struct {
	ClientID       *uuid.UUID `form:"client_id"`
	Status         string     `form:"status" binding:"omitempty,oneof=DRAFT CONFIRMED SOURCING PICKING PACKED SHIPPED DELIVERED CANCELLED ON_HOLD"`
	AssignedTo     *uuid.UUID `form:"assigned_to"`
	DeadlineBefore *time.Time `form:"deadline_before" time_format:"2006-01-02"`
	Search         string     `form:"search"`
	Page           int        `form:"page"`
	PageSize       int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy        string     `form:"order_by"`
	OrderDir       string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToOrderItemResponse converts a domain OrderItem to OrderItemResponse
func ToOrderItemResponse(item *trade.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:             item.ID,
		OrderID:        item.OrderID,
		ProductID:      item.ProductID,
		Quantity:       item.Quantity,
		UnitPrice:      item.UnitPrice,
		Subtotal:       item.Subtotal,
		Notes:          item.Notes,
		QuantityPicked: item.QuantityPicked,
		QuantityPacked: item.QuantityPacked,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = ToOrderItemResponse(&o.Items[i])
	}

	return OrderResponse{
		ID:                  o.ID,
		OrderNumber:         o.OrderNumber,
		ClientID:            o.ClientID,
		Status:              string(o.Status),
		DeliveryDeadline:    o.DeliveryDeadline,
		DeliveryAddress:     o.DeliveryAddress,
		YachtName:           o.YachtName,
		SpecialInstructions: o.SpecialInstructions,
		TotalAmount:         o.TotalAmount,
		AssignedTo:          o.AssignedTo,
		CreatedBy:           o.CreatedBy,
		ConfirmedAt:         o.ConfirmedAt,
		ShippedAt:           o.ShippedAt,
		DeliveredAt:         o.DeliveredAt,
		Items:               items,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of domain Orders to OrderResponses
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
