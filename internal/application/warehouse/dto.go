package warehouse

import (
	"time"

	"github.com/google/uuid"

	"github.com/librestock/backend/internal/domain/warehouse"
)

// CreateLocationRequest represents a request to create a location
type CreateLocationRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=100"`
	Type          string `json:"type" binding:"required,oneof=WAREHOUSE SUPPLIER IN_TRANSIT CLIENT"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person" binding:"max=100"`
	Phone         string `json:"phone" binding:"max=50"`
}

// UpdateLocationRequest represents a partial update to a location
type UpdateLocationRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=100"`
	Address       *string `json:"address"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=100"`
	Phone         *string `json:"phone" binding:"omitempty,max=50"`
	IsActive      *bool   `json:"is_active"`
}

// LocationResponse represents a location in API responses
type LocationResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Address       string    `json:"address"`
	ContactPerson string    `json:"contact_person"`
	Phone         string    `json:"phone"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LocationListFilter represents filter options for location list
type LocationListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=WAREHOUSE SUPPLIER IN_TRANSIT CLIENT"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToLocationResponse converts a domain Location to LocationResponse
func ToLocationResponse(l *warehouse.Location) LocationResponse {
	return LocationResponse{
		ID:            l.ID,
		Name:          l.Name,
		Type:          string(l.Type),
		Address:       l.Address,
		ContactPerson: l.ContactPerson,
		Phone:         l.Phone,
		IsActive:      l.IsActive,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

// ToLocationResponses converts a slice of domain Locations to LocationResponses
func ToLocationResponses(locations []warehouse.Location) []LocationResponse {
	responses := make([]LocationResponse, len(locations))
	for i := range locations {
		responses[i] = ToLocationResponse(&locations[i])
	}
	return responses
}

// CreateAreaRequest represents a request to create an area in a location
type CreateAreaRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Code        string     `json:"code" binding:"max=50"`
	Description string     `json:"description" binding:"max=500"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

// UpdateAreaRequest represents a partial update to an area.
// SetParent distinguishes "leave the parent alone" from "re-parent to
// the location root": when true, ParentID (possibly nil) is applied.
type UpdateAreaRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Code        *string    `json:"code" binding:"omitempty,max=50"`
	Description *string    `json:"description" binding:"omitempty,max=500"`
	ParentID    *uuid.UUID `json:"parent_id"`
	SetParent   bool       `json:"set_parent"`
	IsActive    *bool      `json:"is_active"`
}

// AreaResponse represents an area in API responses
type AreaResponse struct {
	ID          uuid.UUID  `json:"id"`
	LocationID  uuid.UUID  `json:"location_id"`
	ParentID    *uuid.UUID `json:"parent_id"`
	Name        string     `json:"name"`
	Code        string     `json:"code"`
	Description string     `json:"description"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToAreaResponse converts a domain Area to AreaResponse
func ToAreaResponse(a *warehouse.Area) AreaResponse {
	return AreaResponse{
		ID:          a.ID,
		LocationID:  a.LocationID,
		ParentID:    a.ParentID,
		Name:        a.Name,
		Code:        a.Code,
		Description: a.Description,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToAreaResponses converts a slice of domain Areas to AreaResponses
func ToAreaResponses(areas []warehouse.Area) []AreaResponse {
	responses := make([]AreaResponse, len(areas))
	for i := range areas {
		responses[i] = ToAreaResponse(&areas[i])
	}
	return responses
}
