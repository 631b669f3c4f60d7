package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/librestock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a provisioning item in the catalog.
// It is the aggregate root for product-related operations.
type Product struct {
	shared.BaseEntity
	SKU               string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name              string           `gorm:"type:varchar(200);not null"`
	Description       string           `gorm:"type:text"`
	CategoryID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	Brand             string           `gorm:"type:varchar(100)"`
	VolumeML          *int             `gorm:""`
	WeightKG          *decimal.Decimal `gorm:"type:decimal(10,3)"`
	DimensionsCM      string           `gorm:"type:varchar(50)"` // e.g. "10x10x5"
	StandardCost      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	StandardPrice     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MarkupPercentage  *decimal.Decimal `gorm:"type:decimal(6,2)"`
	ReorderPoint      int              `gorm:"not null;default:0"`
	PrimarySupplierID *uuid.UUID       `gorm:"type:uuid;index"`
	SupplierSKU       string           `gorm:"type:varchar(50)"`
	Barcode           string           `gorm:"type:varchar(100);index"`
	Unit              string           `gorm:"type:varchar(50)"`
	IsActive          bool             `gorm:"not null;default:true"`
	IsPerishable      bool             `gorm:"not null;default:false"`
	Notes             string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(sku, name string, categoryID uuid.UUID) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category is required")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		SKU:        strings.ToUpper(strings.TrimSpace(sku)),
		Name:       name,
		CategoryID: categoryID,
		IsActive:   true,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	return nil
}

// UpdateSKU changes the product SKU.
// Callers must verify uniqueness against the repository first.
func (p *Product) UpdateSKU(sku string) error {
	if err := validateSKU(sku); err != nil {
		return err
	}

	p.SKU = strings.ToUpper(strings.TrimSpace(sku))
	p.UpdatedAt = time.Now()
	return nil
}

// SetPricing updates cost, price and markup together
func (p *Product) SetPricing(cost, price, markup *decimal.Decimal) error {
	for _, v := range []*decimal.Decimal{cost, price, markup} {
		if v != nil && v.IsNegative() {
			return shared.NewDomainError("INVALID_INPUT", "Pricing values cannot be negative")
		}
	}

	p.StandardCost = cost
	p.StandardPrice = price
	p.MarkupPercentage = markup
	p.UpdatedAt = time.Now()
	return nil
}

// SetReorderPoint updates the low-stock threshold
func (p *Product) SetReorderPoint(point int) error {
	if point < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Reorder point cannot be negative")
	}
	p.ReorderPoint = point
	p.UpdatedAt = time.Now()
	return nil
}

// Activate marks the product as orderable
func (p *Product) Activate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
}

// Deactivate hides the product from ordering without deleting it
func (p *Product) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}

func validateSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return shared.NewDomainError("INVALID_INPUT", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_INPUT", "SKU cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Product name cannot exceed 200 characters")
	}
	return nil
}
