// Package settings implements the application services for instance-wide
// settings: frontend branding and the saved remote-console URL.
package settings

import (
	"context"

	"github.com/google/uuid"

	auditapp "github.com/librestock/backend/internal/application/audit"
	"github.com/librestock/backend/internal/domain/audit"
	"github.com/librestock/backend/internal/domain/settings"
	"github.com/librestock/backend/internal/domain/shared"
	"github.com/librestock/backend/internal/infrastructure/cache"
	"github.com/librestock/backend/internal/urlkit"
)

// BrandingService resolves and updates the single branding row
type BrandingService struct {
	repo     settings.BrandingRepository
	cache    cache.BrandingCache
	recorder auditapp.Recorder
}

// NewBrandingService creates a new BrandingService
func NewBrandingService(repo settings.BrandingRepository, brandingCache cache.BrandingCache, recorder auditapp.Recorder) *BrandingService {
	if brandingCache == nil {
		brandingCache = cache.NewNoopBrandingCache()
	}
	if recorder == nil {
		recorder = auditapp.NopRecorder{}
	}
	return &BrandingService{
		repo:     repo,
		cache:    brandingCache,
		recorder: recorder,
	}
}

// Get returns the stored branding merged over the defaults, with the
// attribution block stamped on. Before anything was saved it returns
// exactly the defaults.
func (s *BrandingService) Get(ctx context.Context) (*BrandingResponse, error) {
	cached, err := s.cache.Get(ctx)
	if err == nil && cached != nil {
		response := ToBrandingResponse(cached)
		return &response, nil
	}

	stored, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		response := ToBrandingResponse(settings.DefaultBranding())
		return &response, nil
	}

	resolved := resolve(stored)
	// Serving from the database still works when the cache write fails.
	_ = s.cache.Set(ctx, resolved)

	response := ToBrandingResponse(resolved)
	return &response, nil
}

// Update merges the provided fields into the stored row, upserts it,
// invalidates the cache and returns the freshly resolved branding.
func (s *BrandingService) Update(ctx context.Context, userID uuid.UUID, req UpdateBrandingRequest) (*BrandingResponse, error) {
	logoURL, err := normalizeBrandingURL(req.LogoURL, "Logo URL")
	if err != nil {
		return nil, err
	}
	faviconURL, err := normalizeBrandingURL(req.FaviconURL, "Favicon URL")
	if err != nil {
		return nil, err
	}

	branding, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if branding == nil {
		branding = settings.DefaultBranding()
	}

	patch := settings.Patch{
		AppName:      req.AppName,
		Tagline:      req.Tagline,
		LogoURL:      logoURL,
		FaviconURL:   faviconURL,
		PrimaryColor: req.PrimaryColor,
	}
	if err := branding.Apply(patch, userID); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, branding); err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		UserID:     &userID,
		Action:     audit.ActionUpdate,
		EntityType: "branding",
		EntityID:   "1",
		Changes:    &audit.Changes{After: ToBrandingResponse(branding)},
	})

	return s.Get(ctx)
}

// resolve fills blank stored columns from the defaults
func resolve(stored *settings.Branding) *settings.Branding {
	resolved := *stored
	if resolved.AppName == "" {
		resolved.AppName = settings.DefaultAppName
	}
	if resolved.Tagline == "" {
		resolved.Tagline = settings.DefaultTagline
	}
	if resolved.PrimaryColor == "" {
		resolved.PrimaryColor = settings.DefaultPrimaryColor
	}
	return &resolved
}

// normalizeBrandingURL runs a provided URL through NormalizeURL. An empty
// value passes through to clear the field; anything that does not
// normalize to an http(s) origin is rejected.
func normalizeBrandingURL(raw *string, label string) (*string, error) {
	if raw == nil || *raw == "" {
		return raw, nil
	}
	normalized := urlkit.NormalizeURL(*raw)
	if normalized == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", label+" is not a valid URL")
	}
	return &normalized, nil
}
