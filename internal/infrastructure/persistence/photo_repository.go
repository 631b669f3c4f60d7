package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/librestock/backend/internal/domain/catalog"
	"github.com/librestock/backend/internal/domain/shared"
)

// GormPhotoRepository implements PhotoRepository using GORM
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewGormPhotoRepository creates a new GormPhotoRepository
func NewGormPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

// FindByID finds a photo by its ID
func (r *GormPhotoRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Photo, error) {
	var photo catalog.Photo
	if err := r.db.WithContext(ctx).First(&photo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &photo, nil
}

// FindByProduct finds all photos of a product, in display order
func (r *GormPhotoRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Photo, error) {
	var photos []catalog.Photo
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("display_order ASC, created_at ASC").
		Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

// Save creates or updates a photo
func (r *GormPhotoRepository) Save(ctx context.Context, photo *catalog.Photo) error {
	return r.db.WithContext(ctx).Save(photo).Error
}

// Delete deletes a photo
func (r *GormPhotoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Photo{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByProduct deletes all photos of a product
func (r *GormPhotoRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&catalog.Photo{}, "product_id = ?", productID).Error
}

// Ensure GormPhotoRepository implements PhotoRepository
var _ catalog.PhotoRepository = (*GormPhotoRepository)(nil)
