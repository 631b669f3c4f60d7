package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/librestock/backend/internal/application/catalog"
)

// PhotoHandler handles product photo management, including presigned
// direct-to-storage uploads
type PhotoHandler struct {
	BaseHandler
	photoService *catalogapp.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler
func NewPhotoHandler(photoService *catalogapp.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

// RegisterRoutes registers photo routes. Collection routes are scoped to
// the product; single-photo routes address the photo directly.
func (h *PhotoHandler) RegisterRoutes(rg *gin.RouterGroup) {
	productPhotos := rg.Group("/products/:id/photos")
	{
		productPhotos.GET("", h.ListByProduct)
		productPhotos.POST("", h.Add)
		productPhotos.POST("/uploads", h.InitiateUpload)
		productPhotos.POST("/uploads/confirm", h.ConfirmUpload)
		productPhotos.PUT("/reorder", h.Reorder)
	}

	photos := rg.Group("/photos")
	{
		photos.GET("/:id/download-url", h.GetDownloadURL)
		photos.PUT("/:id", h.Update)
		photos.DELETE("/:id", h.Delete)
	}
}

// ListByProduct retrieves a product's photos in display order
func (h *PhotoHandler) ListByProduct(c *gin.Context) {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	photos, err := h.photoService.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, photos)
}

// Add attaches an externally hosted photo to a product
func (h *PhotoHandler) Add(c *gin.Context) {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.photoService.Add(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, response)
}

// InitiateUpload issues a presigned upload URL for a new photo
func (h *PhotoHandler) InitiateUpload(c *gin.Context) {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.InitiateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.photoService.InitiateUpload(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// ConfirmUpload records a photo after its object has been uploaded
func (h *PhotoHandler) ConfirmUpload(c *gin.Context) {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.photoService.ConfirmUpload(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, response)
}

// Reorder sets the display order of a product's photos
func (h *PhotoHandler) Reorder(c *gin.Context) {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.ReorderPhotosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	photos, err := h.photoService.Reorder(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, photos)
}

// GetDownloadURL issues a presigned download URL for a stored photo
func (h *PhotoHandler) GetDownloadURL(c *gin.Context) {
	photoID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid photo ID")
		return
	}

	url, err := h.photoService.GetDownloadURL(c.Request.Context(), photoID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"url": url})
}

// Update updates a photo's metadata
func (h *PhotoHandler) Update(c *gin.Context) {
	photoID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid photo ID")
		return
	}

	var req catalogapp.UpdatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	response, err := h.photoService.Update(c.Request.Context(), photoID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, response)
}

// Delete removes a photo
func (h *PhotoHandler) Delete(c *gin.Context) {
	photoID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid photo ID")
		return
	}

	if err := h.photoService.Delete(c.Request.Context(), photoID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
