package handler

import (
	"github.com/gin-gonic/gin"

	auditapp "github.com/librestock/backend/internal/application/audit"
)

// AuditHandler exposes the audit trail read API
type AuditHandler struct {
	BaseHandler
	queryService *auditapp.QueryService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(queryService *auditapp.QueryService) *AuditHandler {
	return &AuditHandler{queryService: queryService}
}

// RegisterRoutes registers audit trail routes
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	logs := rg.Group("/audit-logs")
	{
		logs.GET("", h.List)
		logs.GET("/:id", h.GetByID)
	}
}

// List retrieves audit entries with filtering and pagination
func (h *AuditHandler) List(c *gin.Context) {
	var filter auditapp.LogListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	entries, total, err := h.queryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// GetByID retrieves one audit entry
func (h *AuditHandler) GetByID(c *gin.Context) {
	entryID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid audit entry ID")
		return
	}

	response, err := h.queryService.GetByID(c.Request.Context(), entryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}
