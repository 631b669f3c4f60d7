package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/librestock/backend/internal/domain/audit"
	"github.com/librestock/backend/internal/domain/shared"
)

// LogResponse represents an audit entry in API responses
type LogResponse struct {
	ID         uuid.UUID       `json:"id"`
	UserID     *uuid.UUID      `json:"user_id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Changes    json.RawMessage `json:"changes,omitempty"`
	IPAddress  string          `json:"ip_address,omitempty"`
	UserAgent  string          `json:"user_agent,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// LogListFilter represents filter options for the audit trail
type LogListFilter struct {
	UserID     *uuid.UUID `form:"user_id"`
	Action     string     `form:"action"`
	EntityType string     `form:"entity_type"`
	EntityID   string     `form:"entity_id"`
	Since      *time.Time `form:"since" time_format:"2006-01-02"`
	Until      *time.Time `form:"until" time_format:"2006-01-02"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// QueryService is the read API over the audit trail
type QueryService struct {
	repo audit.LogRepository
}

// NewQueryService creates a new QueryService
func NewQueryService(repo audit.LogRepository) *QueryService {
	return &QueryService{repo: repo}
}

// GetByID retrieves one audit entry
func (s *QueryService) GetByID(ctx context.Context, id uuid.UUID) (*LogResponse, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := toLogResponse(entry)
	return &response, nil
}

// List retrieves audit entries with filtering and pagination
func (s *QueryService) List(ctx context.Context, filter LogListFilter) ([]LogResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}

	if filter.UserID != nil {
		domainFilter.Filters["user_id"] = *filter.UserID
	}
	if filter.Action != "" {
		domainFilter.Filters["action"] = filter.Action
	}
	if filter.EntityType != "" {
		domainFilter.Filters["entity_type"] = filter.EntityType
	}
	if filter.EntityID != "" {
		domainFilter.Filters["entity_id"] = filter.EntityID
	}
	if filter.Since != nil {
		domainFilter.Filters["since"] = *filter.Since
	}
	if filter.Until != nil {
		domainFilter.Filters["until"] = *filter.Until
	}

	entries, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]LogResponse, len(entries))
	for i := range entries {
		responses[i] = toLogResponse(&entries[i])
	}
	return responses, total, nil
}

func toLogResponse(entry *audit.Log) LogResponse {
	return LogResponse{
		ID:         entry.ID,
		UserID:     entry.UserID,
		Action:     string(entry.Action),
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Changes:    entry.Changes,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
		CreatedAt:  entry.CreatedAt,
	}
}
