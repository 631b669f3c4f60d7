package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/librestock/backend/internal/domain/shared"
)

// Photo is an image attached to a product. DisplayOrder controls gallery
// position; StorageKey is set only for photos uploaded through object
// storage (direct-URL photos leave it empty).
type Photo struct {
	shared.BaseEntity
	ProductID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	URL          string     `gorm:"type:varchar(500);not null"`
	StorageKey   string     `gorm:"type:varchar(500)"`
	Caption      string     `gorm:"type:varchar(255)"`
	DisplayOrder int        `gorm:"not null;default:0"`
	UploadedBy   *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Photo) TableName() string {
	return "photos"
}

// NewPhoto creates a photo record for a product
func NewPhoto(productID uuid.UUID, url, caption string, displayOrder int, uploadedBy *uuid.UUID) (*Photo, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product is required")
	}
	if err := validatePhotoURL(url); err != nil {
		return nil, err
	}
	if displayOrder < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Display order cannot be negative")
	}

	return &Photo{
		BaseEntity:   shared.NewBaseEntity(),
		ProductID:    productID,
		URL:          url,
		Caption:      caption,
		DisplayOrder: displayOrder,
		UploadedBy:   uploadedBy,
	}, nil
}

// Update changes the caption and gallery position
func (p *Photo) Update(caption string, displayOrder int) error {
	if displayOrder < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Display order cannot be negative")
	}
	p.Caption = caption
	p.DisplayOrder = displayOrder
	p.UpdatedAt = time.Now()
	return nil
}

func validatePhotoURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Photo URL cannot be empty")
	}
	if len(url) > 500 {
		return shared.NewDomainError("INVALID_INPUT", "Photo URL cannot exceed 500 characters")
	}
	return nil
}
