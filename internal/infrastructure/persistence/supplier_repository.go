package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/librestock/backend/internal/domain/partner"
	"github.com/librestock/backend/internal/domain/shared"
)

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindAll finds all suppliers matching the filter
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	var suppliers []partner.Supplier
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Supplier{}), filter)

	if err := query.Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

// Delete deletes a supplier
func (r *GormSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Supplier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts suppliers matching the filter
func (r *GormSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&partner.Supplier{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormSupplierRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SupplierSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if orderBy == "name" && filter.OrderBy == "" {
		orderDir = "ASC"
	}
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSupplierRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR contact_person ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}

	return query
}

// Ensure GormSupplierRepository implements SupplierRepository
var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)

// GormSupplierProductRepository implements SupplierProductRepository using GORM
type GormSupplierProductRepository struct {
	db *gorm.DB
}

// NewGormSupplierProductRepository creates a new GormSupplierProductRepository
func NewGormSupplierProductRepository(db *gorm.DB) *GormSupplierProductRepository {
	return &GormSupplierProductRepository{db: db}
}

// FindByID finds a sourcing link by its ID
func (r *GormSupplierProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.SupplierProduct, error) {
	var link partner.SupplierProduct
	if err := r.db.WithContext(ctx).First(&link, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// FindBySupplier finds all products a supplier can source
func (r *GormSupplierProductRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]partner.SupplierProduct, error) {
	var links []partner.SupplierProduct
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("created_at ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// FindByProduct finds all suppliers that can source a product
func (r *GormSupplierProductRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]partner.SupplierProduct, error) {
	var links []partner.SupplierProduct
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("is_preferred DESC, created_at ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// FindLink finds the sourcing link between a supplier and a product
func (r *GormSupplierProductRepository) FindLink(ctx context.Context, supplierID, productID uuid.UUID) (*partner.SupplierProduct, error) {
	var link partner.SupplierProduct
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND product_id = ?", supplierID, productID).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// Save creates or updates a sourcing link
func (r *GormSupplierProductRepository) Save(ctx context.Context, link *partner.SupplierProduct) error {
	return r.db.WithContext(ctx).Save(link).Error
}

// Delete deletes a sourcing link
func (r *GormSupplierProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.SupplierProduct{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteBySupplier deletes every sourcing link of a supplier
func (r *GormSupplierProductRepository) DeleteBySupplier(ctx context.Context, supplierID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&partner.SupplierProduct{}, "supplier_id = ?", supplierID).Error
}

// Ensure GormSupplierProductRepository implements SupplierProductRepository
var _ partner.SupplierProductRepository = (*GormSupplierProductRepository)(nil)
