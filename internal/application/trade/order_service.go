// Package trade implements the application service for provisioning orders
// and their fulfilment lifecycle.
package trade

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	auditapp "github.com/librestock/backend/internal/application/audit"
	"github.com/librestock/backend/internal/domain/audit"
	"github.com/librestock/backend/internal/domain/catalog"
	"github.com/librestock/backend/internal/domain/inventory"
	"github.com/librestock/backend/internal/domain/partner"
	"github.com/librestock/backend/internal/domain/shared"
	"github.com/librestock/backend/internal/domain/trade"
)

// OrderService handles order business operations
type OrderService struct {
	scope       TransactionScope
	orderRepo   trade.OrderRepository
	clientRepo  partner.ClientRepository
	productRepo catalog.ProductRepository
	recorder    auditapp.Recorder
}

// NewOrderService creates a new OrderService. The plain order repository
// serves everything except shipping, which goes through the transaction
// scope.
func NewOrderService(
	scope TransactionScope,
	orderRepo trade.OrderRepository,
	clientRepo partner.ClientRepository,
	productRepo catalog.ProductRepository,
	recorder auditapp.Recorder,
) *OrderService {
	if recorder == nil {
		recorder = auditapp.NopRecorder{}
	}
	return &OrderService{
		scope:       scope,
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		recorder:    recorder,
	}
}

// Create opens a draft order for an active client and allocates its order
// number from the daily sequence.
func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CLIENT", "Client not found")
		}
		return nil, err
	}
	if !client.CanOrder() {
		return nil, shared.NewDomainError("CLIENT_SUSPENDED", "Client account cannot place orders")
	}

	now := time.Now()
	sequence, err := s.orderRepo.NextDailySequence(ctx, now)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewOrder(trade.GenerateOrderNumber(now, sequence), req.ClientID, userID)
	if err != nil {
		return nil, err
	}
	order.DeliveryDeadline = req.DeliveryDeadline
	order.DeliveryAddress = req.DeliveryAddress
	order.SpecialInstructions = req.SpecialInstructions
	order.YachtName = req.YachtName
	if order.YachtName == "" {
		order.YachtName = client.YachtName
	}
	if req.DeliveryAddress == "" {
		order.DeliveryAddress = client.DefaultDeliveryAddress
	}
	order.Assign(req.AssignedTo)

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		UserID:     &userID,
		Action:     audit.ActionCreate,
		EntityType: "order",
		EntityID:   order.ID.String(),
		Changes:    &audit.Changes{After: ToOrderResponse(order)},
	})

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order with its items
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByNumber retrieves an order by its order number
func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.AssignedTo != nil {
		domainFilter.Filters["assigned_to"] = *filter.AssignedTo
	}
	if filter.DeadlineBefore != nil {
		domainFilter.Filters["deadline_before"] = *filter.DeadlineBefore
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderResponses(orders), total, nil
}

// Update updates an order's header while it is still editable
func (s *OrderService) Update(ctx context.Context, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	before := ToOrderResponse(order)

	deadline := order.DeliveryDeadline
	if req.SetDeadline {
		deadline = req.DeliveryDeadline
	}
	address := order.DeliveryAddress
	if req.DeliveryAddress != nil {
		address = *req.DeliveryAddress
	}
	yachtName := order.YachtName
	if req.YachtName != nil {
		yachtName = *req.YachtName
	}
	instructions := order.SpecialInstructions
	if req.SpecialInstructions != nil {
		instructions = *req.SpecialInstructions
	}
	if err := order.UpdateHeader(deadline, address, yachtName, instructions); err != nil {
		return nil, invalidState(err, "Order header can only change while DRAFT or ON_HOLD")
	}

	if req.SetAssignee {
		order.Assign(req.AssignedTo)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionUpdate,
		EntityType: "order",
		EntityID:   order.ID.String(),
		Changes:    &audit.Changes{Before: before, After: ToOrderResponse(order)},
	})

	response := ToOrderResponse(order)
	return &response, nil
}

// Delete removes a draft or cancelled order
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != trade.OrderStatusDraft && order.Status != trade.OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Only draft and cancelled orders can be deleted")
	}

	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionDelete,
		EntityType: "order",
		EntityID:   orderID.String(),
		Changes:    &audit.Changes{Before: ToOrderResponse(order)},
	})
	return nil
}

// AddItem appends a product line to a draft order. Totals are recomputed.
func (s *OrderService) AddItem(ctx context.Context, orderID uuid.UUID, req AddOrderItemRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		return nil, err
	}

	unitPrice := req.UnitPrice
	if unitPrice == nil {
		if product.StandardPrice == nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unit price is required for products without a standard price")
		}
		unitPrice = product.StandardPrice
	}

	if _, err := order.AddItem(req.ProductID, req.Quantity, *unitPrice, req.Notes); err != nil {
		return nil, invalidState(err, "Items can only be added to a draft order")
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionUpdate,
		EntityType: "order",
		EntityID:   order.ID.String(),
		Changes:    &audit.Changes{After: ToOrderResponse(order)},
	})

	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateItem changes a line on a draft order. Totals are recomputed.
func (s *OrderService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, req UpdateOrderItemRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	item := findItem(order, itemID)
	if item == nil {
		return nil, shared.ErrNotFound
	}

	quantity := item.Quantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	unitPrice := item.UnitPrice
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}
	notes := item.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}

	if err := order.UpdateItem(itemID, quantity, unitPrice, notes); err != nil {
		return nil, invalidState(err, "Items can only change on a draft order")
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// RemoveItem drops a line from a draft order. Totals are recomputed.
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.RemoveItem(itemID); err != nil {
		return nil, invalidState(err, "Items can only be removed from a draft order")
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Confirm moves a non-empty draft into CONFIRMED
func (s *OrderService) Confirm(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *trade.Order) error { return o.Confirm() },
		"Only draft orders can be confirmed")
}

// StartSourcing moves a confirmed order into SOURCING
func (s *OrderService) StartSourcing(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *trade.Order) error { return o.StartSourcing() },
		"Sourcing starts from a confirmed order")
}

// StartPicking begins warehouse picking
func (s *OrderService) StartPicking(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *trade.Order) error { return o.StartPicking() },
		"Picking starts from a confirmed or sourcing order")
}

// RecordPick sets the picked quantity for one line during PICKING
func (s *OrderService) RecordPick(ctx context.Context, orderID, itemID uuid.UUID, req RecordPickRequest) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *trade.Order) error {
		return o.RecordPick(itemID, *req.QuantityPicked)
	}, "Picking progress is recorded while the order is in PICKING")
}

// RecordPack sets the packed quantity for one line
func (s *OrderService) RecordPack(ctx context.Context, orderID, itemID uuid.UUID, req RecordPackRequest) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *trade.Order) error {
		return o.RecordPack(itemID, *req.QuantityPacked)
	}, "Packing progress is recorded during picking and packing")
}

// MarkPacked closes the packing stage once every line is fully packed
func (s *OrderService) MarkPacked(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *trade.Order) error { return o.MarkPacked() },
		"Only a picking order can be marked packed")
}

// Ship dispatches a packed order. Stock is drained from the product's
// slots soonest expiry first, and a SALE ledger entry written per drained
// slot, all in one transaction. Insufficient stock for any line aborts the
// whole shipment.
func (s *OrderService) Ship(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	var order *trade.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.Ship(); err != nil {
			return invalidState(err, "Only a packed order can be shipped")
		}

		for i := range order.Items {
			if err := s.deductStock(ctx, repos, order, &order.Items[i], userID); err != nil {
				return err
			}
		}

		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		UserID:     &userID,
		Action:     audit.ActionStatusChange,
		EntityType: "order",
		EntityID:   order.ID.String(),
		Changes:    &audit.Changes{After: ToOrderResponse(order)},
	})

	response := ToOrderResponse(order)
	return &response, nil
}

// deductStock drains one order line from the product's stocked slots
func (s *OrderService) deductStock(ctx context.Context, repos TransactionalRepositories, order *trade.Order, item *trade.OrderItem, userID uuid.UUID) error {
	records, err := repos.RecordRepo().FindAll(ctx, shared.Filter{
		OrderBy:  "expiry_date",
		OrderDir: "asc",
		Filters: map[string]interface{}{
			"product_id": item.ProductID,
			"in_stock":   true,
		},
	})
	if err != nil {
		return err
	}

	remaining := item.Quantity
	for i := range records {
		if remaining == 0 {
			break
		}
		record := &records[i]

		take := record.Quantity
		if take > remaining {
			take = remaining
		}
		if err := record.Remove(take); err != nil {
			return err
		}
		if err := repos.RecordRepo().Save(ctx, record); err != nil {
			return err
		}

		movement, err := inventory.NewMovement(item.ProductID, &record.LocationID, nil, take, inventory.ReasonSale, userID)
		if err != nil {
			return err
		}
		movement.OrderID = &order.ID
		movement.ReferenceNumber = order.OrderNumber
		movement.CostPerUnit = record.CostPerUnit
		if err := repos.MovementRepo().Save(ctx, movement); err != nil {
			return err
		}

		remaining -= take
	}

	if remaining > 0 {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock to ship the order")
	}
	return nil
}

// Deliver closes the order after the client received it
func (s *OrderService) Deliver(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *trade.Order) error { return o.Deliver() },
		"Only a shipped order can be delivered")
}

// Hold pauses an in-flight order
func (s *OrderService) Hold(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *trade.Order) error { return o.Hold() },
		"Shipped, delivered and cancelled orders cannot be held")
}

// Resume returns a held order to the stage it was paused at
func (s *OrderService) Resume(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *trade.Order) error { return o.Resume() },
		"Only a held order can be resumed")
}

// Cancel aborts the order; shipped and delivered orders cannot be cancelled
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(o *trade.Order) error { return o.Cancel() },
		"Shipped and delivered orders cannot be cancelled")
}

// transition loads the order, applies the state change and saves it
func (s *OrderService) transition(ctx context.Context, orderID uuid.UUID, fn func(*trade.Order) error, stateMessage string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	before := string(order.Status)

	if err := fn(order); err != nil {
		return nil, invalidState(err, stateMessage)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	if string(order.Status) != before {
		s.recorder.Record(ctx, auditapp.Entry{
			Action:     audit.ActionStatusChange,
			EntityType: "order",
			EntityID:   order.ID.String(),
			Changes: &audit.Changes{
				Before: map[string]string{"status": before},
				After:  map[string]string{"status": string(order.Status)},
			},
		})
	}

	response := ToOrderResponse(order)
	return &response, nil
}

func findItem(order *trade.Order, itemID uuid.UUID) *trade.OrderItem {
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			return &order.Items[i]
		}
	}
	return nil
}

// invalidState converts the domain's invalid-state sentinel into a coded
// error with an operation-specific message. Other errors pass through.
func invalidState(err error, message string) error {
	if errors.Is(err, shared.ErrInvalidState) {
		return shared.NewDomainError("INVALID_STATE", message)
	}
	return err
}
