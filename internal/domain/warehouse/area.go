package warehouse

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/librestock/backend/internal/domain/shared"
)

// Area subdivides a location (aisle, shelf, cold room). Areas may nest
// through ParentID but must stay within one location and cycle-free.
type Area struct {
	shared.BaseEntity
	LocationID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	Name        string     `gorm:"type:varchar(100);not null"`
	Code        string     `gorm:"type:varchar(50)"`
	Description string     `gorm:"type:varchar(500)"`
	IsActive    bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Area) TableName() string {
	return "areas"
}

// NewArea creates a new area within a location
func NewArea(locationID uuid.UUID, name, code string, parentID *uuid.UUID) (*Area, error) {
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Location is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Area name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Area name cannot exceed 100 characters")
	}

	return &Area{
		BaseEntity: shared.NewBaseEntity(),
		LocationID: locationID,
		ParentID:   parentID,
		Name:       name,
		Code:       strings.ToUpper(strings.TrimSpace(code)),
		IsActive:   true,
	}, nil
}

// Update updates the area's details
func (a *Area) Update(name, code, description string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Area name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_INPUT", "Area name cannot exceed 100 characters")
	}

	a.Name = name
	a.Code = strings.ToUpper(strings.TrimSpace(code))
	a.Description = description
	a.UpdatedAt = time.Now()
	return nil
}

// SetParent re-parents the area. The caller validates that the parent
// belongs to the same location and that no cycle is formed.
func (a *Area) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == a.ID {
		return shared.NewDomainError("CIRCULAR_REFERENCE", "Area cannot be its own parent")
	}
	a.ParentID = parentID
	a.UpdatedAt = time.Now()
	return nil
}
