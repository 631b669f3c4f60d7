package handler

import (
	"github.com/gin-gonic/gin"

	settingsapp "github.com/librestock/backend/internal/application/settings"
)

// SettingsHandler handles instance branding and the saved connector URL
type SettingsHandler struct {
	BaseHandler
	brandingService  *settingsapp.BrandingService
	connectorService *settingsapp.ConnectorService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(brandingService *settingsapp.BrandingService, connectorService *settingsapp.ConnectorService) *SettingsHandler {
	return &SettingsHandler{
		brandingService:  brandingService,
		connectorService: connectorService,
	}
}

// RegisterRoutes registers settings routes
func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	settings := rg.Group("/settings")
	{
		settings.GET("/branding", h.GetBranding)
		settings.PUT("/branding", h.UpdateBranding)
		settings.GET("/connector-url", h.GetConnectorURL)
		settings.PUT("/connector-url", h.UpdateConnectorURL)
	}
}

// GetBranding retrieves the instance branding with attribution
func (h *SettingsHandler) GetBranding(c *gin.Context) {
	response, err := h.brandingService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// UpdateBranding applies a partial branding update
func (h *SettingsHandler) UpdateBranding(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req settingsapp.UpdateBrandingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.brandingService.Update(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// GetConnectorURL retrieves the saved connector server URL
func (h *SettingsHandler) GetConnectorURL(c *gin.Context) {
	response, err := h.connectorService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// UpdateConnectorURL saves, normalizes or clears the connector server URL
func (h *SettingsHandler) UpdateConnectorURL(c *gin.Context) {
	var req settingsapp.UpdateConnectorURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.connectorService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}
