// Package audit records who changed what. Entries are append-only; there
// is no update or delete path anywhere in the system.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/librestock/backend/internal/domain/shared"
)

// Action classifies what happened to an entity
type Action string

const (
	ActionCreate         Action = "CREATE"
	ActionUpdate         Action = "UPDATE"
	ActionDelete         Action = "DELETE"
	ActionAdjustQuantity Action = "ADJUST_QUANTITY"
	ActionAddPhoto       Action = "ADD_PHOTO"
	ActionStatusChange   Action = "STATUS_CHANGE"
)

// IsValid reports whether the action is a known value
func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionAdjustQuantity, ActionAddPhoto, ActionStatusChange:
		return true
	}
	return false
}

// Changes is the before/after snapshot stored with an entry
type Changes struct {
	Before interface{} `json:"before,omitempty"`
	After  interface{} `json:"after,omitempty"`
}

// Log is one audit entry. UserID is nil for system-initiated changes.
type Log struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     *uuid.UUID      `gorm:"type:uuid;index"`
	Action     Action          `gorm:"type:varchar(30);not null;index"`
	EntityType string          `gorm:"type:varchar(50);not null;index"`
	EntityID   string          `gorm:"type:varchar(100);not null;index"`
	Changes    json.RawMessage `gorm:"type:jsonb"`
	IPAddress  string          `gorm:"type:varchar(45)"`
	UserAgent  string          `gorm:"type:varchar(500)"`
	CreatedAt  time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Log) TableName() string {
	return "audit_logs"
}

// NewLog creates an audit entry
func NewLog(userID *uuid.UUID, action Action, entityType, entityID string, changes *Changes) (*Log, error) {
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown audit action")
	}
	if entityType == "" || entityID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Entity type and id are required")
	}

	entry := &Log{
		ID:         uuid.New(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now(),
	}

	if changes != nil {
		payload, err := json.Marshal(changes)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Audit changes are not serializable")
		}
		entry.Changes = payload
	}

	return entry, nil
}

// LogRepository defines the persistence interface for audit entries
type LogRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Log, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Log, error)
	Save(ctx context.Context, entry *Log) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
