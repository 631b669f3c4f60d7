package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	inventoryapp "github.com/librestock/backend/internal/application/inventory"
)

// InventoryHandler handles stock records and the movement ledger
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.Service
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.Service) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inventory := rg.Group("/inventory")
	{
		inventory.GET("", h.List)
		inventory.GET("/expiring", h.Expiring)
		inventory.POST("/receive", h.Receive)
		inventory.POST("/transfer", h.Transfer)
		inventory.GET("/:id", h.GetByID)
		inventory.POST("/:id/adjust", h.Adjust)
		inventory.DELETE("/:id", h.Delete)
	}

	movements := rg.Group("/movements")
	{
		movements.GET("", h.ListMovements)
		movements.GET("/:id", h.GetMovement)
	}
}

// List retrieves stock records with filtering and pagination
func (h *InventoryHandler) List(c *gin.Context) {
	var filter inventoryapp.RecordListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	records, total, err := h.inventoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, records, total, filter.Page, filter.PageSize)
}

// Expiring retrieves in-stock records expiring within the given days
func (h *InventoryHandler) Expiring(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 {
		h.BadRequest(c, "days must be a positive integer")
		return
	}

	records, err := h.inventoryService.ExpiringSoon(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// GetByID retrieves one stock record
func (h *InventoryHandler) GetByID(c *gin.Context) {
	recordID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid inventory record ID")
		return
	}

	response, err := h.inventoryService.GetByID(c.Request.Context(), recordID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// Receive books received stock into a slot and records the movement
func (h *InventoryHandler) Receive(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.inventoryService.Receive(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, response)
}

// Adjust corrects a record's quantity and records the movement
func (h *InventoryHandler) Adjust(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	recordID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid inventory record ID")
		return
	}

	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.inventoryService.Adjust(c.Request.Context(), userID, recordID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// Transfer moves stock between locations and records the movement
func (h *InventoryHandler) Transfer(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.TransferStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.inventoryService.Transfer(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// Delete removes an empty stock record
func (h *InventoryHandler) Delete(c *gin.Context) {
	recordID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid inventory record ID")
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), recordID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListMovements retrieves the stock ledger with filtering and pagination
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var filter inventoryapp.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	movements, total, err := h.inventoryService.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}

// GetMovement retrieves one ledger entry
func (h *InventoryHandler) GetMovement(c *gin.Context) {
	movementID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid movement ID")
		return
	}

	response, err := h.inventoryService.GetMovementByID(c.Request.Context(), movementID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}
