package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/librestock/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU               string           `json:"sku" binding:"required,min=1,max=50"`
	Name              string           `json:"name" binding:"required,min=1,max=200"`
	Description       string           `json:"description"`
	CategoryID        uuid.UUID        `json:"category_id" binding:"required"`
	Brand             string           `json:"brand" binding:"max=100"`
	VolumeML          *int             `json:"volume_ml"`
	WeightKG          *decimal.Decimal `json:"weight_kg"`
	DimensionsCM      string           `json:"dimensions_cm" binding:"max=50"`
	StandardCost      *decimal.Decimal `json:"standard_cost"`
	StandardPrice     *decimal.Decimal `json:"standard_price"`
	MarkupPercentage  *decimal.Decimal `json:"markup_percentage"`
	ReorderPoint      *int             `json:"reorder_point"`
	PrimarySupplierID *uuid.UUID       `json:"primary_supplier_id"`
	SupplierSKU       string           `json:"supplier_sku" binding:"max=50"`
	Barcode           string           `json:"barcode" binding:"max=100"`
	Unit              string           `json:"unit" binding:"max=50"`
	IsPerishable      *bool            `json:"is_perishable"`
	Notes             string           `json:"notes"`
}

// UpdateProductRequest represents a partial update to a product
type UpdateProductRequest struct {
	SKU               *string          `json:"sku" binding:"omitempty,min=1,max=50"`
	Name              *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description       *string          `json:"description"`
	CategoryID        *uuid.UUID       `json:"category_id"`
	Brand             *string          `json:"brand" binding:"omitempty,max=100"`
	VolumeML          *int             `json:"volume_ml"`
	WeightKG          *decimal.Decimal `json:"weight_kg"`
	DimensionsCM      *string          `json:"dimensions_cm" binding:"omitempty,max=50"`
	StandardCost      *decimal.Decimal `json:"standard_cost"`
	StandardPrice     *decimal.Decimal `json:"standard_price"`
	MarkupPercentage  *decimal.Decimal `json:"markup_percentage"`
	ReorderPoint      *int             `json:"reorder_point"`
	PrimarySupplierID *uuid.UUID       `json:"primary_supplier_id"`
	SupplierSKU       *string          `json:"supplier_sku" binding:"omitempty,max=50"`
	Barcode           *string          `json:"barcode" binding:"omitempty,max=100"`
	Unit              *string          `json:"unit" binding:"omitempty,max=50"`
	IsPerishable      *bool            `json:"is_perishable"`
	Notes             *string          `json:"notes"`
}

// BulkCreateProductsRequest carries up to 100 products to insert
type BulkCreateProductsRequest struct {
	Products []CreateProductRequest `json:"products" binding:"required,min=1,max=100,dive"`
}

// BulkDeleteProductsRequest carries up to 100 product ids to delete
type BulkDeleteProductsRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1,max=100"`
}

// BulkSetActiveRequest carries up to 100 product ids and the target state
type BulkSetActiveRequest struct {
	IDs      []uuid.UUID `json:"ids" binding:"required,min=1,max=100"`
	IsActive *bool       `json:"is_active" binding:"required"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                uuid.UUID        `json:"id"`
	SKU               string           `json:"sku"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	CategoryID        uuid.UUID        `json:"category_id"`
	Brand             string           `json:"brand"`
	VolumeML          *int             `json:"volume_ml"`
	WeightKG          *decimal.Decimal `json:"weight_kg"`
	DimensionsCM      string           `json:"dimensions_cm"`
	StandardCost      *decimal.Decimal `json:"standard_cost"`
	StandardPrice     *decimal.Decimal `json:"standard_price"`
	MarkupPercentage  *decimal.Decimal `json:"markup_percentage"`
	ReorderPoint      int              `json:"reorder_point"`
	PrimarySupplierID *uuid.UUID       `json:"primary_supplier_id"`
	SupplierSKU       string           `json:"supplier_sku"`
	Barcode           string           `json:"barcode"`
	Unit              string           `json:"unit"`
	IsActive          bool             `json:"is_active"`
	IsPerishable      bool             `json:"is_perishable"`
	Notes             string           `json:"notes"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ProductListResponse represents a list item for products
type ProductListResponse struct {
	ID            uuid.UUID        `json:"id"`
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	CategoryID    uuid.UUID        `json:"category_id"`
	Brand         string           `json:"brand"`
	StandardPrice *decimal.Decimal `json:"standard_price"`
	ReorderPoint  int              `json:"reorder_point"`
	Barcode       string           `json:"barcode"`
	Unit          string           `json:"unit"`
	IsActive      bool             `json:"is_active"`
	IsPerishable  bool             `json:"is_perishable"`
	CreatedAt     time.Time        `json:"created_at"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search            string     `form:"search"`
	CategoryID        *uuid.UUID `form:"category_id"`
	PrimarySupplierID *uuid.UUID `form:"supplier_id"`
	Brand             string     `form:"brand"`
	IsActive          *bool      `form:"is_active"`
	IsPerishable      *bool      `form:"is_perishable"`
	Page              int        `form:"page"`
	PageSize          int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy           string     `form:"order_by"`
	OrderDir          string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name,
		Description:       p.Description,
		CategoryID:        p.CategoryID,
		Brand:             p.Brand,
		VolumeML:          p.VolumeML,
		WeightKG:          p.WeightKG,
		DimensionsCM:      p.DimensionsCM,
		StandardCost:      p.StandardCost,
		StandardPrice:     p.StandardPrice,
		MarkupPercentage:  p.MarkupPercentage,
		ReorderPoint:      p.ReorderPoint,
		PrimarySupplierID: p.PrimarySupplierID,
		SupplierSKU:       p.SupplierSKU,
		Barcode:           p.Barcode,
		Unit:              p.Unit,
		IsActive:          p.IsActive,
		IsPerishable:      p.IsPerishable,
		Notes:             p.Notes,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// ToProductListResponse converts a domain Product to ProductListResponse
func ToProductListResponse(p *catalog.Product) ProductListResponse {
	return ProductListResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		CategoryID:    p.CategoryID,
		Brand:         p.Brand,
		StandardPrice: p.StandardPrice,
		ReorderPoint:  p.ReorderPoint,
		Barcode:       p.Barcode,
		Unit:          p.Unit,
		IsActive:      p.IsActive,
		IsPerishable:  p.IsPerishable,
		CreatedAt:     p.CreatedAt,
	}
}

// ToProductListResponses converts a slice of domain Products to ProductListResponses
func ToProductListResponses(products []catalog.Product) []ProductListResponse {
	responses := make([]ProductListResponse, len(products))
	for i := range products {
		responses[i] = ToProductListResponse(&products[i])
	}
	return responses
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Description string     `json:"description" binding:"max=500"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

// UpdateCategoryRequest represents a partial update to a category.
// SetParent distinguishes "leave the parent alone" from "re-parent to
// root": when true, ParentID (possibly nil) is applied.
type UpdateCategoryRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=500"`
	ParentID    *uuid.UUID `json:"parent_id"`
	SetParent   bool       `json:"set_parent"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CategoryTreeNode is a category with its nested children
type CategoryTreeNode struct {
	CategoryResponse
	Children []CategoryTreeNode `json:"children"`
}

// CategoryListFilter represents filter options for the flat category list
type CategoryListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of domain Categories to CategoryResponses
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}

// AddPhotoRequest attaches an externally hosted image to a product
type AddPhotoRequest struct {
	URL          string `json:"url" binding:"required,max=500"`
	Caption      string `json:"caption" binding:"max=255"`
	DisplayOrder int    `json:"display_order" binding:"min=0"`
}

// UpdatePhotoRequest changes a photo's caption and gallery position
type UpdatePhotoRequest struct {
	Caption      *string `json:"caption" binding:"omitempty,max=255"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,min=0"`
}

// ReorderPhotosRequest sets gallery order from an explicit id list
type ReorderPhotosRequest struct {
	PhotoIDs []uuid.UUID `json:"photo_ids" binding:"required,min=1"`
}

// InitiateUploadRequest asks for a presigned upload slot
type InitiateUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

// InitiateUploadResponse carries the presigned PUT URL for a direct upload
type InitiateUploadResponse struct {
	UploadURL  string    `json:"upload_url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ConfirmUploadRequest turns a completed upload into a photo row
type ConfirmUploadRequest struct {
	StorageKey   string `json:"storage_key" binding:"required,max=500"`
	Caption      string `json:"caption" binding:"max=255"`
	DisplayOrder int    `json:"display_order" binding:"min=0"`
}

// PhotoResponse represents a photo in API responses
type PhotoResponse struct {
	ID           uuid.UUID  `json:"id"`
	ProductID    uuid.UUID  `json:"product_id"`
	URL          string     `json:"url"`
	StorageKey   string     `json:"storage_key,omitempty"`
	Caption      string     `json:"caption"`
	DisplayOrder int        `json:"display_order"`
	UploadedBy   *uuid.UUID `json:"uploaded_by"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToPhotoResponse converts a domain Photo to PhotoResponse
func ToPhotoResponse(p *catalog.Photo) PhotoResponse {
	return PhotoResponse{
		ID:           p.ID,
		ProductID:    p.ProductID,
		URL:          p.URL,
		StorageKey:   p.StorageKey,
		Caption:      p.Caption,
		DisplayOrder: p.DisplayOrder,
		UploadedBy:   p.UploadedBy,
		CreatedAt:    p.CreatedAt,
	}
}

// ToPhotoResponses converts a slice of domain Photos to PhotoResponses
func ToPhotoResponses(photos []catalog.Photo) []PhotoResponse {
	responses := make([]PhotoResponse, len(photos))
	for i := range photos {
		responses[i] = ToPhotoResponse(&photos[i])
	}
	return responses
}
