package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/librestock/backend/internal/application/partner"
)

// SupplierHandler handles suppliers and their product sourcing terms
type SupplierHandler struct {
	BaseHandler
	supplierService *partnerapp.SupplierService
	linkService     *partnerapp.SupplierProductService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *partnerapp.SupplierService, linkService *partnerapp.SupplierProductService) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplierService,
		linkService:     linkService,
	}
}

// RegisterRoutes registers supplier routes
func (h *SupplierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	{
		suppliers.GET("", h.List)
		suppliers.POST("", h.Create)
		suppliers.GET("/:id", h.GetByID)
		suppliers.PUT("/:id", h.Update)
		suppliers.DELETE("/:id", h.Delete)

		products := suppliers.Group("/:id/products")
		{
			products.GET("", h.ListProducts)
			products.POST("", h.LinkProduct)
			products.PUT("/:linkID", h.UpdateLink)
			products.DELETE("/:linkID", h.UnlinkProduct)
		}
	}

	// Reverse lookup: which suppliers can source a product.
	rg.GET("/products/:id/suppliers", h.ListByProduct)
}

// List retrieves suppliers with filtering and pagination
func (h *SupplierHandler) List(c *gin.Context) {
	var filter partnerapp.SupplierListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	suppliers, total, err := h.supplierService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, suppliers, total, filter.Page, filter.PageSize)
}

// Create creates a supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req partnerapp.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.supplierService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, response)
}

// GetByID retrieves a supplier by ID
func (h *SupplierHandler) GetByID(c *gin.Context) {
	supplierID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	response, err := h.supplierService.GetByID(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// Update updates a supplier
func (h *SupplierHandler) Update(c *gin.Context) {
	supplierID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req partnerapp.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.supplierService.Update(c.Request.Context(), supplierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// Delete removes a supplier and its product links
func (h *SupplierHandler) Delete(c *gin.Context) {
	supplierID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	if err := h.supplierService.Delete(c.Request.Context(), supplierID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListProducts retrieves the products a supplier can source
func (h *SupplierHandler) ListProducts(c *gin.Context) {
	supplierID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	links, err := h.linkService.ListBySupplier(c.Request.Context(), supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, links)
}

// ListByProduct retrieves the suppliers that can source a product
func (h *SupplierHandler) ListByProduct(c *gin.Context) {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	links, err := h.linkService.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, links)
}

// LinkProduct links a product to a supplier with sourcing terms
func (h *SupplierHandler) LinkProduct(c *gin.Context) {
	supplierID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req partnerapp.CreateSupplierProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.linkService.Create(c.Request.Context(), supplierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, response)
}

// UpdateLink updates a product link's sourcing terms
func (h *SupplierHandler) UpdateLink(c *gin.Context) {
	supplierID, linkID, ok := h.linkParams(c)
	if !ok {
		return
	}

	var req partnerapp.UpdateSupplierProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.linkService.Update(c.Request.Context(), supplierID, linkID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// UnlinkProduct removes a product link
func (h *SupplierHandler) UnlinkProduct(c *gin.Context) {
	supplierID, linkID, ok := h.linkParams(c)
	if !ok {
		return
	}

	if err := h.linkService.Delete(c.Request.Context(), supplierID, linkID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *SupplierHandler) linkParams(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	supplierID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return uuid.Nil, uuid.Nil, false
	}
	linkID, err := parseUUIDParam(c, "linkID")
	if err != nil {
		h.BadRequest(c, "Invalid link ID")
		return uuid.Nil, uuid.Nil, false
	}
	return supplierID, linkID, true
}
