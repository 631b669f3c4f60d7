package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/librestock/backend/internal/domain/settings"
)

// GormBrandingRepository implements BrandingRepository using GORM
type GormBrandingRepository struct {
	db *gorm.DB
}

// NewGormBrandingRepository creates a new GormBrandingRepository
func NewGormBrandingRepository(db *gorm.DB) *GormBrandingRepository {
	return &GormBrandingRepository{db: db}
}

// Get returns the stored branding row, or nil when nothing was saved yet
func (r *GormBrandingRepository) Get(ctx context.Context) (*settings.Branding, error) {
	var branding settings.Branding
	if err := r.db.WithContext(ctx).
		First(&branding, "id = ?", settings.BrandingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &branding, nil
}

// Upsert writes the single branding row, creating it on first save
func (r *GormBrandingRepository) Upsert(ctx context.Context, branding *settings.Branding) error {
	branding.ID = settings.BrandingID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(branding).Error
}

// Ensure GormBrandingRepository implements BrandingRepository
var _ settings.BrandingRepository = (*GormBrandingRepository)(nil)
