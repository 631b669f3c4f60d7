package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tradeapp "github.com/librestock/backend/internal/application/trade"
)

// OrderHandler handles provisioning orders through their fulfilment
// lifecycle
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.List)
		orders.POST("", h.Create)
		orders.GET("/number/:number", h.GetByNumber)
		orders.GET("/:id", h.GetByID)
		orders.PUT("/:id", h.Update)
		orders.DELETE("/:id", h.Delete)

		orders.POST("/:id/items", h.AddItem)
		orders.PUT("/:id/items/:itemID", h.UpdateItem)
		orders.DELETE("/:id/items/:itemID", h.RemoveItem)
		orders.POST("/:id/items/:itemID/pick", h.RecordPick)
		orders.POST("/:id/items/:itemID/pack", h.RecordPack)

		orders.POST("/:id/confirm", h.Confirm)
		orders.POST("/:id/start-sourcing", h.StartSourcing)
		orders.POST("/:id/start-picking", h.StartPicking)
		orders.POST("/:id/mark-packed", h.MarkPacked)
		orders.POST("/:id/ship", h.Ship)
		orders.POST("/:id/deliver", h.Deliver)
		orders.POST("/:id/hold", h.Hold)
		orders.POST("/:id/resume", h.Resume)
		orders.POST("/:id/cancel", h.Cancel)
	}
}

// List retrieves orders with filtering and pagination
func (h *OrderHandler) List(c *gin.Context) {
	var filter tradeapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// Create creates a draft order for a client
func (h *OrderHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req tradeapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.orderService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, response)
}

// GetByID retrieves an order with its items
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	response, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// GetByNumber retrieves an order by its human-readable number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	response, err := h.orderService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// Update updates an editable order's header fields
func (h *OrderHandler) Update(c *gin.Context) {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req tradeapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.orderService.Update(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// Delete removes a draft or cancelled order
func (h *OrderHandler) Delete(c *gin.Context) {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddItem adds a line to a draft order
func (h *OrderHandler) AddItem(c *gin.Context) {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req tradeapp.AddOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.orderService.AddItem(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// UpdateItem updates a line on a draft order
func (h *OrderHandler) UpdateItem(c *gin.Context) {
	orderID, itemID, ok := h.itemParams(c)
	if !ok {
		return
	}

	var req tradeapp.UpdateOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.orderService.UpdateItem(c.Request.Context(), orderID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// RemoveItem removes a line from a draft order
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	orderID, itemID, ok := h.itemParams(c)
	if !ok {
		return
	}

	response, err := h.orderService.RemoveItem(c.Request.Context(), orderID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// RecordPick records the picked quantity for a line
func (h *OrderHandler) RecordPick(c *gin.Context) {
	orderID, itemID, ok := h.itemParams(c)
	if !ok {
		return
	}

	var req tradeapp.RecordPickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.orderService.RecordPick(c.Request.Context(), orderID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// RecordPack records the packed quantity for a line
func (h *OrderHandler) RecordPack(c *gin.Context) {
	orderID, itemID, ok := h.itemParams(c)
	if !ok {
		return
	}

	var req tradeapp.RecordPackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.orderService.RecordPack(c.Request.Context(), orderID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// Confirm locks a draft order for fulfilment
func (h *OrderHandler) Confirm(c *gin.Context) {
	h.transition(c, h.orderService.Confirm)
}

// StartSourcing moves a confirmed order into sourcing
func (h *OrderHandler) StartSourcing(c *gin.Context) {
	h.transition(c, h.orderService.StartSourcing)
}

// StartPicking moves an order into picking
func (h *OrderHandler) StartPicking(c *gin.Context) {
	h.transition(c, h.orderService.StartPicking)
}

// MarkPacked marks a fully packed order ready to ship
func (h *OrderHandler) MarkPacked(c *gin.Context) {
	h.transition(c, h.orderService.MarkPacked)
}

// Ship ships a packed order and deducts its stock
func (h *OrderHandler) Ship(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	response, err := h.orderService.Ship(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// Deliver marks a shipped order as delivered
func (h *OrderHandler) Deliver(c *gin.Context) {
	h.transition(c, h.orderService.Deliver)
}

// Hold pauses an order before shipping
func (h *OrderHandler) Hold(c *gin.Context) {
	h.transition(c, h.orderService.Hold)
}

// Resume returns a held order to its previous status
func (h *OrderHandler) Resume(c *gin.Context) {
	h.transition(c, h.orderService.Resume)
}

// Cancel cancels an unshipped order
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.transition(c, h.orderService.Cancel)
}

func (h *OrderHandler) transition(c *gin.Context, fn func(ctx context.Context, orderID uuid.UUID) (*tradeapp.OrderResponse, error)) {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	response, err := fn(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

func (h *OrderHandler) itemParams(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return uuid.Nil, uuid.Nil, false
	}
	itemID, err := parseUUIDParam(c, "itemID")
	if err != nil {
		h.BadRequest(c, "Invalid order item ID")
		return uuid.Nil, uuid.Nil, false
	}
	return orderID, itemID, true
}
