// Package settings holds instance-wide configuration stored in the
// database, currently the branding of the web frontend.
package settings

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/librestock/backend/internal/domain/shared"
)

// BrandingID pins the branding table to a single row.
const BrandingID = 1

// Default branding values, used when no row has been saved yet and as the
// base the stored row is merged over.
const (
	DefaultAppName      = "LibreStock"
	DefaultTagline      = "Inventory management system"
	DefaultPrimaryColor = "#3b82f6"
)

// PoweredBy is the attribution block stamped onto every branding read.
// It is computed, never persisted, and cannot be overridden.
type PoweredBy struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Attribution returns the fixed powered-by block
func Attribution() PoweredBy {
	return PoweredBy{
		Name: "LibreStock",
		URL:  "https://github.com/maximilianpw/librestock",
	}
}

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Branding is the single-row table of frontend branding settings
type Branding struct {
	ID           int        `gorm:"primaryKey"`
	AppName      string     `gorm:"type:varchar(100);not null;default:'LibreStock'"`
	Tagline      string     `gorm:"type:varchar(255);not null;default:'Inventory management system'"`
	LogoURL      *string    `gorm:"type:varchar(500)"`
	FaviconURL   *string    `gorm:"type:varchar(500)"`
	PrimaryColor string     `gorm:"type:varchar(7);not null;default:'#3b82f6'"`
	UpdatedAt    time.Time  `gorm:"not null"`
	UpdatedBy    *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Branding) TableName() string {
	return "branding_settings"
}

// DefaultBranding returns the settings used before anything was saved
func DefaultBranding() *Branding {
	return &Branding{
		ID:           BrandingID,
		AppName:      DefaultAppName,
		Tagline:      DefaultTagline,
		PrimaryColor: DefaultPrimaryColor,
		UpdatedAt:    time.Now(),
	}
}

// Patch holds the fields a branding update may change. Nil fields are
// left untouched.
type Patch struct {
	AppName      *string
	Tagline      *string
	LogoURL      *string
	FaviconURL   *string
	PrimaryColor *string
}

// Apply merges the patch into the settings and stamps the editor
func (b *Branding) Apply(patch Patch, updatedBy uuid.UUID) error {
	if patch.AppName != nil {
		if *patch.AppName == "" || len(*patch.AppName) > 100 {
			return shared.NewDomainError("INVALID_INPUT", "App name must be between 1 and 100 characters")
		}
		b.AppName = *patch.AppName
	}
	if patch.Tagline != nil {
		if len(*patch.Tagline) > 255 {
			return shared.NewDomainError("INVALID_INPUT", "Tagline cannot exceed 255 characters")
		}
		b.Tagline = *patch.Tagline
	}
	if patch.LogoURL != nil {
		if len(*patch.LogoURL) > 500 {
			return shared.NewDomainError("INVALID_INPUT", "Logo URL cannot exceed 500 characters")
		}
		if *patch.LogoURL == "" {
			b.LogoURL = nil
		} else {
			b.LogoURL = patch.LogoURL
		}
	}
	if patch.FaviconURL != nil {
		if len(*patch.FaviconURL) > 500 {
			return shared.NewDomainError("INVALID_INPUT", "Favicon URL cannot exceed 500 characters")
		}
		if *patch.FaviconURL == "" {
			b.FaviconURL = nil
		} else {
			b.FaviconURL = patch.FaviconURL
		}
	}
	if patch.PrimaryColor != nil {
		if !hexColorPattern.MatchString(*patch.PrimaryColor) {
			return shared.NewDomainError("INVALID_INPUT", "Primary color must be a #rrggbb hex value")
		}
		b.PrimaryColor = *patch.PrimaryColor
	}

	b.ID = BrandingID
	b.UpdatedAt = time.Now()
	b.UpdatedBy = &updatedBy
	return nil
}

// BrandingRepository defines the persistence interface for the branding row
type BrandingRepository interface {
	// Get returns the stored row or nil when nothing was saved yet.
	Get(ctx context.Context) (*Branding, error)
	Upsert(ctx context.Context, branding *Branding) error
}
