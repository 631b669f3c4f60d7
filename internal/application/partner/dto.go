package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/librestock/backend/internal/domain/partner"
)

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	ContactPerson string `json:"contact_person" binding:"max=100"`
	Email         string `json:"email" binding:"omitempty,email,max=255"`
	Phone         string `json:"phone" binding:"max=50"`
	Address       string `json:"address"`
	Website       string `json:"website" binding:"max=500"`
	Notes         string `json:"notes"`
}

// UpdateSupplierRequest represents a request to update a supplier.
// Only the provided fields change.
type UpdateSupplierRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=200"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=100"`
	Email         *string `json:"email" binding:"omitempty,email,max=255"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	Address       *string `json:"address"`
	Website       *string `json:"website" binding:"omitempty,max=500"`
	Notes         *string `json:"notes"`
	IsActive      *bool   `json:"is_active"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Website       string    `json:"website"`
	Notes         string    `json:"notes"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SupplierListFilter represents filter options for listing suppliers
type SupplierListFilter struct {
	IsActive *bool  `form:"is_active"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateSupplierProductRequest links a product to the supplier
type CreateSupplierProductRequest struct {
	ProductID            uuid.UUID        `json:"product_id" binding:"required"`
	SupplierSKU          string           `json:"supplier_sku" binding:"max=50"`
	CostPerUnit          *decimal.Decimal `json:"cost_per_unit"`
	LeadTimeDays         *int             `json:"lead_time_days" binding:"omitempty,min=0"`
	MinimumOrderQuantity *int             `json:"minimum_order_quantity" binding:"omitempty,min=1"`
	IsPreferred          *bool            `json:"is_preferred"`
}

// UpdateSupplierProductRequest updates the terms of a sourcing link
type UpdateSupplierProductRequest struct {
	SupplierSKU          *string          `json:"supplier_sku" binding:"omitempty,max=50"`
	CostPerUnit          *decimal.Decimal `json:"cost_per_unit"`
	LeadTimeDays         *int             `json:"lead_time_days" binding:"omitempty,min=0"`
	MinimumOrderQuantity *int             `json:"minimum_order_quantity" binding:"omitempty,min=1"`
	IsPreferred          *bool            `json:"is_preferred"`
}

// SupplierProductResponse represents a sourcing link in API responses
type SupplierProductResponse struct {
	ID                   uuid.UUID        `json:"id"`
	SupplierID           uuid.UUID        `json:"supplier_id"`
	ProductID            uuid.UUID        `json:"product_id"`
	SupplierSKU          string           `json:"supplier_sku"`
	CostPerUnit          *decimal.Decimal `json:"cost_per_unit"`
	LeadTimeDays         *int             `json:"lead_time_days"`
	MinimumOrderQuantity int              `json:"minimum_order_quantity"`
	IsPreferred          bool             `json:"is_preferred"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// CreateClientRequest represents a request to create a client account
type CreateClientRequest struct {
	CompanyName            string           `json:"company_name" binding:"required,max=200"`
	YachtName              string           `json:"yacht_name" binding:"max=200"`
	ContactPerson          string           `json:"contact_person" binding:"max=100"`
	Email                  string           `json:"email" binding:"omitempty,email,max=255"`
	Phone                  string           `json:"phone" binding:"max=50"`
	BillingAddress         string           `json:"billing_address"`
	DefaultDeliveryAddress string           `json:"default_delivery_address"`
	PaymentTerms           string           `json:"payment_terms" binding:"max=100"`
	CreditLimit            *decimal.Decimal `json:"credit_limit"`
	Notes                  string           `json:"notes"`
}

// UpdateClientRequest represents a request to update a client.
// Only the provided fields change.
type UpdateClientRequest struct {
	CompanyName            *string          `json:"company_name" binding:"omitempty,max=200"`
	YachtName              *string          `json:"yacht_name" binding:"omitempty,max=200"`
	ContactPerson          *string          `json:"contact_person" binding:"omitempty,max=100"`
	Email                  *string          `json:"email" binding:"omitempty,email,max=255"`
	Phone                  *string          `json:"phone" binding:"omitempty,max=50"`
	BillingAddress         *string          `json:"billing_address"`
	DefaultDeliveryAddress *string          `json:"default_delivery_address"`
	PaymentTerms           *string          `json:"payment_terms" binding:"omitempty,max=100"`
	CreditLimit            *decimal.Decimal `json:"credit_limit"`
	Notes                  *string          `json:"notes"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID                     uuid.UUID        `json:"id"`
	CompanyName            string           `json:"company_name"`
	YachtName              string           `json:"yacht_name"`
	ContactPerson          string           `json:"contact_person"`
	Email                  string           `json:"email"`
	Phone                  string           `json:"phone"`
	BillingAddress         string           `json:"billing_address"`
	DefaultDeliveryAddress string           `json:"default_delivery_address"`
	AccountStatus          string           `json:"account_status"`
	PaymentTerms           string           `json:"payment_terms"`
	CreditLimit            *decimal.Decimal `json:"credit_limit"`
	Notes                  string           `json:"notes"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
}

// ClientListFilter represents filter options for listing clients
type ClientListFilter struct {
	AccountStatus string `form:"account_status" binding:"omitempty,oneof=ACTIVE SUSPENDED INACTIVE"`
	Search        string `form:"search"`
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string `form:"order_by"`
	OrderDir      string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToSupplierResponse converts a domain Supplier to SupplierResponse
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		Website:       s.Website,
		Notes:         s.Notes,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToSupplierResponses converts a slice of domain Suppliers to SupplierResponses
func ToSupplierResponses(suppliers []partner.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = ToSupplierResponse(&suppliers[i])
	}
	return responses
}

// ToSupplierProductResponse converts a domain SupplierProduct to SupplierProductResponse
func ToSupplierProductResponse(sp *partner.SupplierProduct) SupplierProductResponse {
	return SupplierProductResponse{
		ID:                   sp.ID,
		SupplierID:           sp.SupplierID,
		ProductID:            sp.ProductID,
		SupplierSKU:          sp.SupplierSKU,
		CostPerUnit:          sp.CostPerUnit,
		LeadTimeDays:         sp.LeadTimeDays,
		MinimumOrderQuantity: sp.MinimumOrderQuantity,
		IsPreferred:          sp.IsPreferred,
		CreatedAt:            sp.CreatedAt,
		UpdatedAt:            sp.UpdatedAt,
	}
}

// ToSupplierProductResponses converts a slice of domain SupplierProducts to responses
func ToSupplierProductResponses(links []partner.SupplierProduct) []SupplierProductResponse {
	responses := make([]SupplierProductResponse, len(links))
	for i := range links {
		responses[i] = ToSupplierProductResponse(&links[i])
	}
	return responses
}

// ToClientResponse converts a domain Client to ClientResponse
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:                     c.ID,
		CompanyName:            c.CompanyName,
		YachtName:              c.YachtName,
		ContactPerson:          c.ContactPerson,
		Email:                  c.Email,
		Phone:                  c.Phone,
		BillingAddress:         c.BillingAddress,
		DefaultDeliveryAddress: c.DefaultDeliveryAddress,
		AccountStatus:          string(c.AccountStatus),
		PaymentTerms:           c.PaymentTerms,
		CreditLimit:            c.CreditLimit,
		Notes:                  c.Notes,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

// ToClientResponses converts a slice of domain Clients to ClientResponses
func ToClientResponses(clients []partner.Client) []ClientResponse {
	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses
}
