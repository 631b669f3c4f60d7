package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/librestock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SupplierProduct links a supplier to a product it can source, with the
// commercial terms for that pairing. Unique per (supplier, product).
type SupplierProduct struct {
	shared.BaseEntity
	SupplierID           uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_supplier_product,priority:1"`
	ProductID            uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_supplier_product,priority:2"`
	SupplierSKU          string           `gorm:"type:varchar(50)"`
	CostPerUnit          *decimal.Decimal `gorm:"type:decimal(12,2)"`
	LeadTimeDays         *int             `gorm:""`
	MinimumOrderQuantity int              `gorm:"not null;default:1"`
	IsPreferred          bool             `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (SupplierProduct) TableName() string {
	return "supplier_products"
}

// NewSupplierProduct creates a sourcing link between a supplier and a product
func NewSupplierProduct(supplierID, productID uuid.UUID) (*SupplierProduct, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Supplier is required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product is required")
	}

	return &SupplierProduct{
		BaseEntity:           shared.NewBaseEntity(),
		SupplierID:           supplierID,
		ProductID:            productID,
		MinimumOrderQuantity: 1,
	}, nil
}

// SetTerms updates the commercial terms of the sourcing link
func (sp *SupplierProduct) SetTerms(supplierSKU string, costPerUnit *decimal.Decimal, leadTimeDays *int, minimumOrderQuantity int) error {
	if costPerUnit != nil && costPerUnit.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Cost per unit cannot be negative")
	}
	if leadTimeDays != nil && *leadTimeDays < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Lead time cannot be negative")
	}
	if minimumOrderQuantity < 1 {
		return shared.NewDomainError("INVALID_INPUT", "Minimum order quantity must be at least 1")
	}

	sp.SupplierSKU = supplierSKU
	sp.CostPerUnit = costPerUnit
	sp.LeadTimeDays = leadTimeDays
	sp.MinimumOrderQuantity = minimumOrderQuantity
	sp.UpdatedAt = time.Now()
	return nil
}

// MarkPreferred flags this supplier as the preferred source for the product
func (sp *SupplierProduct) MarkPreferred(preferred bool) {
	sp.IsPreferred = preferred
	sp.UpdatedAt = time.Now()
}
