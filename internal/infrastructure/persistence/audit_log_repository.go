package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/librestock/backend/internal/domain/audit"
	"github.com/librestock/backend/internal/domain/shared"
)

// GormAuditLogRepository implements LogRepository using GORM. Entries are
// append-only, so there is no update or delete.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// FindByID finds an audit entry by its ID
func (r *GormAuditLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*audit.Log, error) {
	var entry audit.Log
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAll finds all audit entries matching the filter
func (r *GormAuditLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]audit.Log, error) {
	var entries []audit.Log
	query := r.applyFilter(r.db.WithContext(ctx).Model(&audit.Log{}), filter)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save appends an audit entry
func (r *GormAuditLogRepository) Save(ctx context.Context, entry *audit.Log) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Count counts audit entries matching the filter
func (r *GormAuditLogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&audit.Log{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormAuditLogRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, AuditLogSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormAuditLogRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("entity_type ILIKE ? OR entity_id ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "action":
			query = query.Where("action = ?", value)
		case "entity_type":
			query = query.Where("entity_type = ?", value)
		case "entity_id":
			query = query.Where("entity_id = ?", value)
		case "since":
			query = query.Where("created_at >= ?", value)
		case "until":
			query = query.Where("created_at <= ?", value)
		}
	}

	return query
}

// Ensure GormAuditLogRepository implements LogRepository
var _ audit.LogRepository = (*GormAuditLogRepository)(nil)
