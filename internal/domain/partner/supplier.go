// Package partner models the external parties of the provisioning business:
// suppliers on the sourcing side and yacht clients on the ordering side.
package partner

import (
	"strings"
	"time"

	"github.com/librestock/backend/internal/domain/shared"
)

// Supplier is a vendor products are sourced from
type Supplier struct {
	shared.BaseEntity
	Name          string `gorm:"type:varchar(200);not null"`
	ContactPerson string `gorm:"type:varchar(100)"`
	Email         string `gorm:"type:varchar(255)"`
	Phone         string `gorm:"type:varchar(50)"`
	Address       string `gorm:"type:text"`
	Website       string `gorm:"type:varchar(500)"`
	Notes         string `gorm:"type:text"`
	IsActive      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name string) (*Supplier, error) {
	if err := validatePartnerName(name, "Supplier"); err != nil {
		return nil, err
	}

	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		IsActive:   true,
	}, nil
}

// Update updates the supplier's details
func (s *Supplier) Update(name, contactPerson, email, phone, address, website, notes string) error {
	if err := validatePartnerName(name, "Supplier"); err != nil {
		return err
	}

	s.Name = name
	s.ContactPerson = contactPerson
	s.Email = email
	s.Phone = phone
	s.Address = address
	s.Website = website
	s.Notes = notes
	s.UpdatedAt = time.Now()
	return nil
}

// Activate marks the supplier as usable for sourcing
func (s *Supplier) Activate() {
	s.IsActive = true
	s.UpdatedAt = time.Now()
}

// Deactivate retires the supplier without deleting its history
func (s *Supplier) Deactivate() {
	s.IsActive = false
	s.UpdatedAt = time.Now()
}

func validatePartnerName(name, kind string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", kind+" name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_INPUT", kind+" name cannot exceed 200 characters")
	}
	return nil
}
