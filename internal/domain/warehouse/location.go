// Package warehouse models the physical places stock can sit: locations
// (warehouses, supplier sites, transit, client vessels) and the areas that
// subdivide them.
package warehouse

import (
	"strings"
	"time"

	"github.com/librestock/backend/internal/domain/shared"
)

// LocationType classifies a stock location
type LocationType string

const (
	LocationTypeWarehouse LocationType = "WAREHOUSE"
	LocationTypeSupplier  LocationType = "SUPPLIER"
	LocationTypeInTransit LocationType = "IN_TRANSIT"
	LocationTypeClient    LocationType = "CLIENT"
)

// IsValid reports whether the location type is a known value
func (t LocationType) IsValid() bool {
	switch t {
	case LocationTypeWarehouse, LocationTypeSupplier, LocationTypeInTransit, LocationTypeClient:
		return true
	}
	return false
}

// Location is a physical place that holds inventory
type Location struct {
	shared.BaseEntity
	Name          string       `gorm:"type:varchar(100);not null"`
	Type          LocationType `gorm:"type:varchar(20);not null"`
	Address       string       `gorm:"type:text"`
	ContactPerson string       `gorm:"type:varchar(100)"`
	Phone         string       `gorm:"type:varchar(50)"`
	IsActive      bool         `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// NewLocation creates a new location
func NewLocation(name string, locType LocationType) (*Location, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Location name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Location name cannot exceed 100 characters")
	}
	if !locType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown location type")
	}

	return &Location{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Type:       locType,
		IsActive:   true,
	}, nil
}

// Update updates the location's details
func (l *Location) Update(name, address, contactPerson, phone string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Location name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_INPUT", "Location name cannot exceed 100 characters")
	}

	l.Name = name
	l.Address = address
	l.ContactPerson = contactPerson
	l.Phone = phone
	l.UpdatedAt = time.Now()
	return nil
}

// Activate marks the location as usable
func (l *Location) Activate() {
	l.IsActive = true
	l.UpdatedAt = time.Now()
}

// Deactivate retires the location from new stock operations
func (l *Location) Deactivate() {
	l.IsActive = false
	l.UpdatedAt = time.Now()
}
