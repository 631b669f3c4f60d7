package settings

import (
	"time"

	"github.com/google/uuid"

	"github.com/librestock/backend/internal/domain/settings"
)

// UpdateBrandingRequest carries the branding fields a PUT may change.
// Nil fields are left untouched; an empty logo or favicon URL clears it.
type UpdateBrandingRequest struct {
	AppName      *string `json:"app_name" binding:"omitempty,max=100"`
	Tagline      *string `json:"tagline" binding:"omitempty,max=255"`
	LogoURL      *string `json:"logo_url" binding:"omitempty,max=500"`
	FaviconURL   *string `json:"favicon_url" binding:"omitempty,max=500"`
	PrimaryColor *string `json:"primary_color" binding:"omitempty,max=7"`
}

// BrandingResponse is the resolved branding returned to the frontend
type BrandingResponse struct {
	AppName      string             `json:"app_name"`
	Tagline      string             `json:"tagline"`
	LogoURL      *string            `json:"logo_url"`
	FaviconURL   *string            `json:"favicon_url"`
	PrimaryColor string             `json:"primary_color"`
	UpdatedAt    time.Time          `json:"updated_at"`
	UpdatedBy    *uuid.UUID         `json:"updated_by"`
	PoweredBy    settings.PoweredBy `json:"powered_by"`
}

// ToBrandingResponse converts branding settings to a response, stamping
// the attribution block
func ToBrandingResponse(b *settings.Branding) BrandingResponse {
	return BrandingResponse{
		AppName:      b.AppName,
		Tagline:      b.Tagline,
		LogoURL:      b.LogoURL,
		FaviconURL:   b.FaviconURL,
		PrimaryColor: b.PrimaryColor,
		UpdatedAt:    b.UpdatedAt,
		UpdatedBy:    b.UpdatedBy,
		PoweredBy:    settings.Attribution(),
	}
}

// UpdateConnectorURLRequest sets or clears the saved remote-console URL
type UpdateConnectorURLRequest struct {
	URL string `json:"url" binding:"max=500"`
}

// ConnectorURLResponse is the saved remote-console URL. Warning is set when
// a previously saved value had to be discarded.
type ConnectorURLResponse struct {
	URL     string `json:"url"`
	Warning string `json:"warning,omitempty"`
}
