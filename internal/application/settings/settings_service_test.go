package settings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/librestock/backend/internal/domain/settings"
	"github.com/librestock/backend/internal/domain/shared"
	"github.com/librestock/backend/internal/infrastructure/cache"
	"github.com/librestock/backend/internal/urlkit"
)

// MockBrandingRepository is a mock implementation of settings.BrandingRepository
type MockBrandingRepository struct {
	mock.Mock
}

func (m *MockBrandingRepository) Get(ctx context.Context) (*settings.Branding, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.Branding), args.Error(1)
}

func (m *MockBrandingRepository) Upsert(ctx context.Context, branding *settings.Branding) error {
	args := m.Called(ctx, branding)
	return args.Error(0)
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestBrandingService_Get(t *testing.T) {
	t.Run("returns the defaults before anything was saved", func(t *testing.T) {
		repo := new(MockBrandingRepository)
		service := NewBrandingService(repo, nil, nil)

		repo.On("Get", mock.Anything).Return(nil, nil)

		response, err := service.Get(context.Background())

		require.NoError(t, err)
		assert.Equal(t, settings.DefaultAppName, response.AppName)
		assert.Equal(t, settings.DefaultTagline, response.Tagline)
		assert.Equal(t, settings.DefaultPrimaryColor, response.PrimaryColor)
		assert.Nil(t, response.LogoURL)
	})

	t.Run("stamps the attribution on every read", func(t *testing.T) {
		repo := new(MockBrandingRepository)
		service := NewBrandingService(repo, nil, nil)

		stored := settings.DefaultBranding()
		stored.AppName = "Poseidon Provisions"
		repo.On("Get", mock.Anything).Return(stored, nil)

		response, err := service.Get(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "Poseidon Provisions", response.AppName)
		assert.Equal(t, "LibreStock", response.PoweredBy.Name)
		assert.Equal(t, "https://github.com/maximilianpw/librestock", response.PoweredBy.URL)
	})
}

func TestBrandingService_Update(t *testing.T) {
	userID := uuid.New()

	t.Run("merges only the provided fields and records the editor", func(t *testing.T) {
		repo := new(MockBrandingRepository)
		service := NewBrandingService(repo, nil, nil)

		stored := settings.DefaultBranding()
		stored.Tagline = "Provisioning for the Riviera"
		repo.On("Get", mock.Anything).Return(stored, nil)
		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(b *settings.Branding) bool {
			return b.ID == settings.BrandingID &&
				b.AppName == "Poseidon Provisions" &&
				b.Tagline == "Provisioning for the Riviera" &&
				b.UpdatedBy != nil && *b.UpdatedBy == userID
		})).Return(nil)

		appName := "Poseidon Provisions"
		response, err := service.Update(context.Background(), userID, UpdateBrandingRequest{AppName: &appName})

		require.NoError(t, err)
		assert.Equal(t, "Poseidon Provisions", response.AppName)
		assert.Equal(t, "Provisioning for the Riviera", response.Tagline)
		repo.AssertExpectations(t)
	})

	t.Run("normalizes the logo URL before storage", func(t *testing.T) {
		repo := new(MockBrandingRepository)
		service := NewBrandingService(repo, nil, nil)

		repo.On("Get", mock.Anything).Return(nil, nil)
		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(b *settings.Branding) bool {
			return b.LogoURL != nil && *b.LogoURL == "http://cdn.example.com"
		})).Return(nil)

		logo := "cdn.example.com/logo.png"
		_, err := service.Update(context.Background(), userID, UpdateBrandingRequest{LogoURL: &logo})

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an unparseable favicon URL", func(t *testing.T) {
		repo := new(MockBrandingRepository)
		service := NewBrandingService(repo, nil, nil)

		favicon := "not a url"
		_, err := service.Update(context.Background(), userID, UpdateBrandingRequest{FaviconURL: &favicon})

		assertDomainCode(t, err, "INVALID_INPUT")
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("rejects a malformed primary color", func(t *testing.T) {
		repo := new(MockBrandingRepository)
		service := NewBrandingService(repo, nil, nil)

		repo.On("Get", mock.Anything).Return(nil, nil)

		color := "blue"
		_, err := service.Update(context.Background(), userID, UpdateBrandingRequest{PrimaryColor: &color})

		assertDomainCode(t, err, "INVALID_INPUT")
	})
}

func TestConnectorService(t *testing.T) {
	t.Run("round-trips a normalized URL", func(t *testing.T) {
		store := cache.NewInMemoryKVStore()
		service := NewConnectorService(store)

		saved, err := service.Update(context.Background(), UpdateConnectorURLRequest{URL: "example.com:8080"})
		require.NoError(t, err)
		assert.Equal(t, "http://example.com:8080", saved.URL)

		read, err := service.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "http://example.com:8080", read.URL)
		assert.Empty(t, read.Warning)
	})

	t.Run("an invalid saved value is discarded with a warning", func(t *testing.T) {
		store := cache.NewInMemoryKVStore()
		service := NewConnectorService(store)

		require.NoError(t, store.SetItem(context.Background(), "connector:server_url", "ftp://archive.example.com"))

		read, err := service.Get(context.Background())
		require.NoError(t, err)
		assert.Empty(t, read.URL)
		assert.Equal(t, urlkit.InvalidSavedURLMessage, read.Warning)

		stored, err := store.GetItem(context.Background(), "connector:server_url")
		require.NoError(t, err)
		assert.Empty(t, stored, "the invalid value is removed")
	})

	t.Run("an empty update clears the saved URL", func(t *testing.T) {
		store := cache.NewInMemoryKVStore()
		service := NewConnectorService(store)

		_, err := service.Update(context.Background(), UpdateConnectorURLRequest{URL: "https://console.example.com/path"})
		require.NoError(t, err)

		cleared, err := service.Update(context.Background(), UpdateConnectorURLRequest{})
		require.NoError(t, err)
		assert.Empty(t, cleared.URL)

		read, err := service.Get(context.Background())
		require.NoError(t, err)
		assert.Empty(t, read.URL)
	})

	t.Run("rejects a URL with an unsupported scheme", func(t *testing.T) {
		service := NewConnectorService(cache.NewInMemoryKVStore())

		_, err := service.Update(context.Background(), UpdateConnectorURLRequest{URL: "ftp://x"})

		assertDomainCode(t, err, "INVALID_INPUT")
	})
}
