package settings

import (
	"context"

	"github.com/librestock/backend/internal/domain/shared"
	"github.com/librestock/backend/internal/infrastructure/cache"
	"github.com/librestock/backend/internal/urlkit"
)

// connectorURLKey is where the remote-console URL is stored in the KV store.
const connectorURLKey = "connector:server_url"

// ConnectorService reads and writes the saved remote-console server URL
type ConnectorService struct {
	store cache.KVStore
}

// NewConnectorService creates a new ConnectorService
func NewConnectorService(store cache.KVStore) *ConnectorService {
	return &ConnectorService{store: store}
}

// Get returns the saved URL. A stored value that no longer validates is
// removed and reported through the warning so the caller prompts for a
// new one.
func (s *ConnectorService) Get(ctx context.Context) (*ConnectorURLResponse, error) {
	url, warning, err := urlkit.ReadStoredURL(ctx, s.store, connectorURLKey)
	if err != nil {
		return nil, err
	}
	return &ConnectorURLResponse{URL: url, Warning: warning}, nil
}

// Update saves a normalized URL, or clears the saved one when the request
// is empty
func (s *ConnectorService) Update(ctx context.Context, req UpdateConnectorURLRequest) (*ConnectorURLResponse, error) {
	if req.URL == "" {
		if err := s.store.RemoveItem(ctx, connectorURLKey); err != nil {
			return nil, err
		}
		return &ConnectorURLResponse{}, nil
	}

	normalized := urlkit.NormalizeURL(req.URL)
	if normalized == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Server URL is not a valid http(s) URL")
	}

	if err := s.store.SetItem(ctx, connectorURLKey, normalized); err != nil {
		return nil, err
	}
	return &ConnectorURLResponse{URL: normalized}, nil
}
