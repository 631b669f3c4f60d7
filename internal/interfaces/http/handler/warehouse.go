package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	warehouseapp "github.com/librestock/backend/internal/application/warehouse"
)

// WarehouseHandler handles storage locations and their areas
type WarehouseHandler struct {
	BaseHandler
	locationService *warehouseapp.LocationService
	areaService     *warehouseapp.AreaService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(locationService *warehouseapp.LocationService, areaService *warehouseapp.AreaService) *WarehouseHandler {
	return &WarehouseHandler{
		locationService: locationService,
		areaService:     areaService,
	}
}

// RegisterRoutes registers location and area routes
func (h *WarehouseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	locations := rg.Group("/locations")
	{
		locations.GET("", h.ListLocations)
		locations.POST("", h.CreateLocation)
		locations.GET("/:id", h.GetLocation)
		locations.PUT("/:id", h.UpdateLocation)
		locations.DELETE("/:id", h.DeleteLocation)

		areas := locations.Group("/:id/areas")
		{
			areas.GET("", h.ListAreas)
			areas.POST("", h.CreateArea)
			areas.GET("/:areaID", h.GetArea)
			areas.PUT("/:areaID", h.UpdateArea)
			areas.DELETE("/:areaID", h.DeleteArea)
		}
	}
}

// ListLocations retrieves locations with filtering and pagination
func (h *WarehouseHandler) ListLocations(c *gin.Context) {
	var filter warehouseapp.LocationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	locations, total, err := h.locationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, locations, total, filter.Page, filter.PageSize)
}

// CreateLocation creates a storage location
func (h *WarehouseHandler) CreateLocation(c *gin.Context) {
	var req warehouseapp.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.locationService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, response)
}

// GetLocation retrieves a location by ID
func (h *WarehouseHandler) GetLocation(c *gin.Context) {
	locationID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	response, err := h.locationService.GetByID(c.Request.Context(), locationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// UpdateLocation updates a location
func (h *WarehouseHandler) UpdateLocation(c *gin.Context) {
	locationID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	var req warehouseapp.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.locationService.Update(c.Request.Context(), locationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// DeleteLocation removes a location
func (h *WarehouseHandler) DeleteLocation(c *gin.Context) {
	locationID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	if err := h.locationService.Delete(c.Request.Context(), locationID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListAreas retrieves a location's areas
func (h *WarehouseHandler) ListAreas(c *gin.Context) {
	locationID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	areas, err := h.areaService.ListByLocation(c.Request.Context(), locationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, areas)
}

// CreateArea creates an area within a location
func (h *WarehouseHandler) CreateArea(c *gin.Context) {
	locationID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	var req warehouseapp.CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.areaService.Create(c.Request.Context(), locationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, response)
}

// GetArea retrieves an area scoped to its location
func (h *WarehouseHandler) GetArea(c *gin.Context) {
	locationID, areaID, ok := h.areaParams(c)
	if !ok {
		return
	}

	response, err := h.areaService.GetByID(c.Request.Context(), locationID, areaID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// UpdateArea updates an area
func (h *WarehouseHandler) UpdateArea(c *gin.Context) {
	locationID, areaID, ok := h.areaParams(c)
	if !ok {
		return
	}

	var req warehouseapp.UpdateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.areaService.Update(c.Request.Context(), locationID, areaID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// DeleteArea removes an area
func (h *WarehouseHandler) DeleteArea(c *gin.Context) {
	locationID, areaID, ok := h.areaParams(c)
	if !ok {
		return
	}

	if err := h.areaService.Delete(c.Request.Context(), locationID, areaID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func (h *WarehouseHandler) areaParams(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	locationID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return uuid.Nil, uuid.Nil, false
	}
	areaID, err := parseUUIDParam(c, "areaID")
	if err != nil {
		h.BadRequest(c, "Invalid area ID")
		return uuid.Nil, uuid.Nil, false
	}
	return locationID, areaID, true
}
