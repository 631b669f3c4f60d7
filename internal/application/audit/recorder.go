// Package audit provides the application-layer recorder that mutating
// services write trail entries through, plus the read API over the trail.
package audit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/librestock/backend/internal/domain/audit"
)

// Entry is one change to record. UserID is nil for system-initiated
// changes; Changes carries the optional before/after snapshot.
type Entry struct {
	UserID     *uuid.UUID
	Action     audit.Action
	EntityType string
	EntityID   string
	Changes    *audit.Changes
}

// Recorder accepts audit entries from mutating services. Recording is
// best-effort: implementations log failures and never return them, so a
// broken trail cannot fail the business operation it describes.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

type requestInfoKey struct{}

type actorKey struct{}

// WithActor returns a context carrying the authenticated user's id.
// The JWT middleware sets this once per request; entries recorded without
// an explicit UserID pick it up.
func WithActor(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFrom returns the authenticated user's id from the context, or nil
// for unauthenticated and system-initiated work.
func ActorFrom(ctx context.Context) *uuid.UUID {
	if id, ok := ctx.Value(actorKey{}).(uuid.UUID); ok {
		return &id
	}
	return nil
}

// RequestInfo is the HTTP-level context attached to recorded entries.
type RequestInfo struct {
	IPAddress string
	UserAgent string
}

// WithRequestInfo returns a context carrying the caller's request info.
// The HTTP middleware sets this once per request.
func WithRequestInfo(ctx context.Context, info RequestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, info)
}

func requestInfoFrom(ctx context.Context) RequestInfo {
	info, _ := ctx.Value(requestInfoKey{}).(RequestInfo)
	return info
}

// LogRecorder persists entries through the audit log repository.
type LogRecorder struct {
	repo   audit.LogRepository
	logger *zap.Logger
}

// NewLogRecorder creates a recorder backed by the given repository.
func NewLogRecorder(repo audit.LogRepository, logger *zap.Logger) *LogRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogRecorder{repo: repo, logger: logger}
}

// Record writes one entry. Failures are logged and swallowed.
func (r *LogRecorder) Record(ctx context.Context, entry Entry) {
	userID := entry.UserID
	if userID == nil {
		userID = ActorFrom(ctx)
	}

	log, err := audit.NewLog(userID, entry.Action, entry.EntityType, entry.EntityID, entry.Changes)
	if err != nil {
		r.logger.Warn("Dropping invalid audit entry",
			zap.String("entity_type", entry.EntityType),
			zap.String("entity_id", entry.EntityID),
			zap.Error(err))
		return
	}

	info := requestInfoFrom(ctx)
	log.IPAddress = info.IPAddress
	log.UserAgent = info.UserAgent

	if err := r.repo.Save(ctx, log); err != nil {
		r.logger.Warn("Failed to persist audit entry",
			zap.String("entity_type", entry.EntityType),
			zap.String("entity_id", entry.EntityID),
			zap.String("action", string(entry.Action)),
			zap.Error(err))
	}
}

// NopRecorder discards every entry. Used in tests and in wiring paths
// where auditing is disabled.
type NopRecorder struct{}

// Record discards the entry
func (NopRecorder) Record(context.Context, Entry) {}

var (
	_ Recorder = (*LogRecorder)(nil)
	_ Recorder = NopRecorder{}
)
