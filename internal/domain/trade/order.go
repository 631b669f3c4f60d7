// Package trade models client provisioning orders and their fulfilment
// lifecycle from draft through delivery.
package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/librestock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment stage of an order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusSourcing  OrderStatus = "SOURCING"
	OrderStatusPicking   OrderStatus = "PICKING"
	OrderStatusPacked    OrderStatus = "PACKED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusOnHold    OrderStatus = "ON_HOLD"
)

// Order is a client's provisioning request. Items are owned by the order
// and loaded with it; TotalAmount is denormalized from the items on every
// item mutation.
type Order struct {
	shared.BaseEntity
	OrderNumber         string           `gorm:"type:varchar(30);not null;uniqueIndex"`
	ClientID            uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status              OrderStatus      `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	DeliveryDeadline    *time.Time       `gorm:""`
	DeliveryAddress     string           `gorm:"type:text"`
	YachtName           string           `gorm:"type:varchar(200)"`
	SpecialInstructions string           `gorm:"type:text"`
	TotalAmount         decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	AssignedTo          *uuid.UUID       `gorm:"type:uuid"`
	CreatedBy           uuid.UUID        `gorm:"type:uuid;not null"`
	ConfirmedAt         *time.Time       `gorm:""`
	ShippedAt           *time.Time       `gorm:""`
	DeliveredAt         *time.Time       `gorm:""`
	Items               []OrderItem      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	// HeldFrom remembers the status to resume into after ON_HOLD
	HeldFrom OrderStatus `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one product line on an order
type OrderItem struct {
	shared.BaseEntity
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity       int             `gorm:"not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes          string          `gorm:"type:text"`
	QuantityPicked int             `gorm:"not null;default:0"`
	QuantityPacked int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrder creates a draft order
func NewOrder(orderNumber string, clientID, createdBy uuid.UUID) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order number is required")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client is required")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Creator is required")
	}

	return &Order{
		BaseEntity:  shared.NewBaseEntity(),
		OrderNumber: orderNumber,
		ClientID:    clientID,
		Status:      OrderStatusDraft,
		TotalAmount: decimal.Zero,
		CreatedBy:   createdBy,
	}, nil
}

// GenerateOrderNumber builds "ORD-YYYYMMDD-NNNN" from a daily sequence
func GenerateOrderNumber(day time.Time, sequence int) string {
	return fmt.Sprintf("ORD-%s-%04d", day.Format("20060102"), sequence)
}

// IsEditable reports whether header fields may still change
func (o *Order) IsEditable() bool {
	return o.Status == OrderStatusDraft || o.Status == OrderStatusOnHold
}

// UpdateHeader updates the order's delivery details while still editable
func (o *Order) UpdateHeader(deadline *time.Time, address, yachtName, instructions string) error {
	if !o.IsEditable() {
		return shared.ErrInvalidState
	}

	o.DeliveryDeadline = deadline
	o.DeliveryAddress = address
	o.YachtName = yachtName
	o.SpecialInstructions = instructions
	o.UpdatedAt = time.Now()
	return nil
}

// Assign sets the staff member responsible for fulfilment
func (o *Order) Assign(userID *uuid.UUID) {
	o.AssignedTo = userID
	o.UpdatedAt = time.Now()
}

// AddItem appends a product line while the order is a draft
func (o *Order) AddItem(productID uuid.UUID, quantity int, unitPrice decimal.Decimal, notes string) (*OrderItem, error) {
	if o.Status != OrderStatusDraft {
		return nil, shared.ErrInvalidState
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product is required")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}

	item := OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Subtotal:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Notes:      notes,
	}
	o.Items = append(o.Items, item)
	o.recalculateTotal()
	return &o.Items[len(o.Items)-1], nil
}

// UpdateItem changes a line's quantity and price while the order is a draft
func (o *Order) UpdateItem(itemID uuid.UUID, quantity int, unitPrice decimal.Decimal, notes string) error {
	if o.Status != OrderStatusDraft {
		return shared.ErrInvalidState
	}
	if quantity < 1 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}

	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items[i].Quantity = quantity
			o.Items[i].UnitPrice = unitPrice
			o.Items[i].Subtotal = unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
			o.Items[i].Notes = notes
			o.Items[i].UpdatedAt = time.Now()
			o.recalculateTotal()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveItem drops a line while the order is a draft
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if o.Status != OrderStatusDraft {
		return shared.ErrInvalidState
	}

	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items = append(o.Items[:i], o.Items[i+1:]...)
			o.recalculateTotal()
			return nil
		}
	}
	return shared.ErrNotFound
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal)
	}
	o.TotalAmount = total
	o.UpdatedAt = time.Now()
}

// Confirm moves a non-empty draft into CONFIRMED
func (o *Order) Confirm() error {
	if o.Status != OrderStatusDraft {
		return shared.ErrInvalidState
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot confirm an order without items")
	}

	now := time.Now()
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	return nil
}

// StartSourcing moves a confirmed order into SOURCING
func (o *Order) StartSourcing() error {
	return o.transition(OrderStatusSourcing, OrderStatusConfirmed)
}

// StartPicking begins warehouse picking
func (o *Order) StartPicking() error {
	return o.transition(OrderStatusPicking, OrderStatusConfirmed, OrderStatusSourcing)
}

// RecordPick sets the picked quantity for one line during PICKING
func (o *Order) RecordPick(itemID uuid.UUID, quantityPicked int) error {
	if o.Status != OrderStatusPicking {
		return shared.ErrInvalidState
	}

	for i := range o.Items {
		if o.Items[i].ID == itemID {
			if quantityPicked < 0 || quantityPicked > o.Items[i].Quantity {
				return shared.NewDomainError("INVALID_INPUT", "Picked quantity must be between 0 and the ordered quantity")
			}
			o.Items[i].QuantityPicked = quantityPicked
			if o.Items[i].QuantityPacked > quantityPicked {
				o.Items[i].QuantityPacked = quantityPicked
			}
			o.Items[i].UpdatedAt = time.Now()
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RecordPack sets the packed quantity for one line; packing never exceeds
// what was picked
func (o *Order) RecordPack(itemID uuid.UUID, quantityPacked int) error {
	if o.Status != OrderStatusPicking && o.Status != OrderStatusPacked {
		return shared.ErrInvalidState
	}

	for i := range o.Items {
		if o.Items[i].ID == itemID {
			if quantityPacked < 0 || quantityPacked > o.Items[i].QuantityPicked {
				return shared.NewDomainError("INVALID_INPUT", "Packed quantity must be between 0 and the picked quantity")
			}
			o.Items[i].QuantityPacked = quantityPacked
			o.Items[i].UpdatedAt = time.Now()
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// IsFullyPacked reports whether every line is packed to its ordered quantity
func (o *Order) IsFullyPacked() bool {
	for i := range o.Items {
		if o.Items[i].QuantityPacked < o.Items[i].Quantity {
			return false
		}
	}
	return len(o.Items) > 0
}

// MarkPacked closes the packing stage once every line is complete
func (o *Order) MarkPacked() error {
	if o.Status != OrderStatusPicking {
		return shared.ErrInvalidState
	}
	if !o.IsFullyPacked() {
		return shared.NewDomainError("INCOMPLETE_PACKING", "All items must be fully packed")
	}

	o.Status = OrderStatusPacked
	o.UpdatedAt = time.Now()
	return nil
}

// Ship dispatches a packed order. The caller performs the stock deduction
// in the same transaction.
func (o *Order) Ship() error {
	if o.Status != OrderStatusPacked {
		return shared.ErrInvalidState
	}

	now := time.Now()
	o.Status = OrderStatusShipped
	o.ShippedAt = &now
	o.UpdatedAt = now
	return nil
}

// Deliver closes the order after the client received it
func (o *Order) Deliver() error {
	if o.Status != OrderStatusShipped {
		return shared.ErrInvalidState
	}

	now := time.Now()
	o.Status = OrderStatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now
	return nil
}

// Hold pauses an in-flight order
func (o *Order) Hold() error {
	switch o.Status {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusSourcing, OrderStatusPicking, OrderStatusPacked:
		o.HeldFrom = o.Status
		o.Status = OrderStatusOnHold
		o.UpdatedAt = time.Now()
		return nil
	}
	return shared.ErrInvalidState
}

// Resume returns a held order to the stage it was paused at
func (o *Order) Resume() error {
	if o.Status != OrderStatusOnHold {
		return shared.ErrInvalidState
	}

	o.Status = o.HeldFrom
	o.HeldFrom = ""
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel aborts the order; shipped and delivered orders cannot be cancelled
func (o *Order) Cancel() error {
	switch o.Status {
	case OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return shared.ErrInvalidState
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

func (o *Order) transition(to OrderStatus, from ...OrderStatus) error {
	for _, s := range from {
		if o.Status == s {
			o.Status = to
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrInvalidState
}
