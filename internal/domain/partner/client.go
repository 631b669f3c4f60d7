package partner

import (
	"time"

	"github.com/librestock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ClientStatus is the account standing of a client
type ClientStatus string

const (
	ClientStatusActive    ClientStatus = "ACTIVE"
	ClientStatusSuspended ClientStatus = "SUSPENDED"
	ClientStatusInactive  ClientStatus = "INACTIVE"
)

// IsValid reports whether the status is a known value
func (s ClientStatus) IsValid() bool {
	switch s {
	case ClientStatusActive, ClientStatusSuspended, ClientStatusInactive:
		return true
	}
	return false
}

// Client is a yacht-management company or vessel that places orders
type Client struct {
	shared.BaseEntity
	CompanyName            string           `gorm:"type:varchar(200);not null"`
	YachtName              string           `gorm:"type:varchar(200)"`
	ContactPerson          string           `gorm:"type:varchar(100)"`
	Email                  string           `gorm:"type:varchar(255)"`
	Phone                  string           `gorm:"type:varchar(50)"`
	BillingAddress         string           `gorm:"type:text"`
	DefaultDeliveryAddress string           `gorm:"type:text"`
	AccountStatus          ClientStatus     `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	PaymentTerms           string           `gorm:"type:varchar(100)"`
	CreditLimit            *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Notes                  string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new client account
func NewClient(companyName string) (*Client, error) {
	if err := validatePartnerName(companyName, "Client"); err != nil {
		return nil, err
	}

	return &Client{
		BaseEntity:    shared.NewBaseEntity(),
		CompanyName:   companyName,
		AccountStatus: ClientStatusActive,
	}, nil
}

// Update updates the client's details
func (c *Client) Update(companyName, yachtName, contactPerson, email, phone string) error {
	if err := validatePartnerName(companyName, "Client"); err != nil {
		return err
	}

	c.CompanyName = companyName
	c.YachtName = yachtName
	c.ContactPerson = contactPerson
	c.Email = email
	c.Phone = phone
	c.UpdatedAt = time.Now()
	return nil
}

// SetCreditLimit updates the credit ceiling for the account
func (c *Client) SetCreditLimit(limit *decimal.Decimal) error {
	if limit != nil && limit.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Credit limit cannot be negative")
	}
	c.CreditLimit = limit
	c.UpdatedAt = time.Now()
	return nil
}

// Suspend blocks the account from placing new orders
func (c *Client) Suspend() error {
	if c.AccountStatus == ClientStatusSuspended {
		return shared.ErrInvalidState
	}
	c.AccountStatus = ClientStatusSuspended
	c.UpdatedAt = time.Now()
	return nil
}

// Reactivate restores a suspended or inactive account
func (c *Client) Reactivate() {
	c.AccountStatus = ClientStatusActive
	c.UpdatedAt = time.Now()
}

// CanOrder reports whether the account may place new orders
func (c *Client) CanOrder() bool {
	return c.AccountStatus == ClientStatusActive
}
