package catalog

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	auditapp "github.com/librestock/backend/internal/application/audit"
	"github.com/librestock/backend/internal/domain/audit"
	"github.com/librestock/backend/internal/domain/catalog"
	"github.com/librestock/backend/internal/domain/shared"
)

// allowedPhotoContentTypes lists the image types accepted for upload
var allowedPhotoContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// PhotoServiceConfig holds tunables for the photo upload flow
type PhotoServiceConfig struct {
	UploadURLExpiry     time.Duration
	DownloadURLExpiry   time.Duration
	MaxPhotosPerProduct int
}

// DefaultPhotoServiceConfig returns the default photo service configuration
func DefaultPhotoServiceConfig() PhotoServiceConfig {
	return PhotoServiceConfig{
		UploadURLExpiry:     15 * time.Minute,
		DownloadURLExpiry:   time.Hour,
		MaxPhotosPerProduct: 20,
	}
}

// PhotoService manages product photos: directly linked images and images
// uploaded through object storage with presigned URLs.
type PhotoService struct {
	photoRepo   catalog.PhotoRepository
	productRepo catalog.ProductRepository
	storage     ObjectStorageService
	config      PhotoServiceConfig
	recorder    auditapp.Recorder
	logger      *zap.Logger
}

// NewPhotoService creates a new PhotoService
func NewPhotoService(
	photoRepo catalog.PhotoRepository,
	productRepo catalog.ProductRepository,
	storage ObjectStorageService,
	config PhotoServiceConfig,
	recorder auditapp.Recorder,
	logger *zap.Logger,
) *PhotoService {
	if config.UploadURLExpiry <= 0 {
		config.UploadURLExpiry = 15 * time.Minute
	}
	if config.DownloadURLExpiry <= 0 {
		config.DownloadURLExpiry = time.Hour
	}
	if config.MaxPhotosPerProduct <= 0 {
		config.MaxPhotosPerProduct = 20
	}
	if recorder == nil {
		recorder = auditapp.NopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PhotoService{
		photoRepo:   photoRepo,
		productRepo: productRepo,
		storage:     storage,
		config:      config,
		recorder:    recorder,
		logger:      logger,
	}
}

// ListByProduct returns a product's photos in gallery order
func (s *PhotoService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]PhotoResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	photos, err := s.photoRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToPhotoResponses(photos), nil
}

// Add attaches an externally hosted image to a product
func (s *PhotoService) Add(ctx context.Context, productID uuid.UUID, req AddPhotoRequest) (*PhotoResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.checkPhotoLimit(ctx, productID); err != nil {
		return nil, err
	}

	photo, err := catalog.NewPhoto(productID, req.URL, req.Caption, req.DisplayOrder, auditapp.ActorFrom(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.photoRepo.Save(ctx, photo); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionAddPhoto,
		EntityType: "product",
		EntityID:   productID.String(),
		Changes:    &audit.Changes{After: ToPhotoResponse(photo)},
	})

	response := ToPhotoResponse(photo)
	return &response, nil
}

// InitiateUpload reserves a storage key and returns a presigned PUT URL.
// The photo row is only created once ConfirmUpload verifies the object
// actually landed in storage.
func (s *PhotoService) InitiateUpload(ctx context.Context, productID uuid.UUID, req InitiateUploadRequest) (*InitiateUploadResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_DISABLED", "Object storage is not configured")
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.checkPhotoLimit(ctx, productID); err != nil {
		return nil, err
	}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	if _, ok := allowedPhotoContentTypes[contentType]; !ok {
		return nil, shared.NewDomainError("INVALID_INPUT", "Only JPEG, PNG, WebP and GIF images can be uploaded")
	}

	storageKey := buildPhotoStorageKey(productID, req.FileName)

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, contentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	return &InitiateUploadResponse{
		UploadURL:  uploadURL,
		StorageKey: storageKey,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmUpload creates the photo row for a completed upload
func (s *PhotoService) ConfirmUpload(ctx context.Context, productID uuid.UUID, req ConfirmUploadRequest) (*PhotoResponse, error) {
	if s.storage == nil {
		return nil, shared.NewDomainError("STORAGE_DISABLED", "Object storage is not configured")
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, req.StorageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "Uploaded file not found in storage")
	}

	url, _, err := s.storage.GenerateDownloadURL(ctx, req.StorageKey, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate download URL: %w", err)
	}

	photo, err := catalog.NewPhoto(productID, url, req.Caption, req.DisplayOrder, auditapp.ActorFrom(ctx))
	if err != nil {
		return nil, err
	}
	photo.StorageKey = req.StorageKey

	if err := s.photoRepo.Save(ctx, photo); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionAddPhoto,
		EntityType: "product",
		EntityID:   productID.String(),
		Changes:    &audit.Changes{After: ToPhotoResponse(photo)},
	})

	response := ToPhotoResponse(photo)
	return &response, nil
}

// GetDownloadURL returns a fresh URL for viewing a photo. Stored-object
// photos get a new presigned URL; direct-URL photos return the URL as-is.
func (s *PhotoService) GetDownloadURL(ctx context.Context, photoID uuid.UUID) (string, error) {
	photo, err := s.photoRepo.FindByID(ctx, photoID)
	if err != nil {
		return "", err
	}

	if photo.StorageKey == "" || s.storage == nil {
		return photo.URL, nil
	}

	url, _, err := s.storage.GenerateDownloadURL(ctx, photo.StorageKey, s.config.DownloadURLExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to generate download URL: %w", err)
	}
	return url, nil
}

// Update changes a photo's caption and gallery position
func (s *PhotoService) Update(ctx context.Context, photoID uuid.UUID, req UpdatePhotoRequest) (*PhotoResponse, error) {
	photo, err := s.photoRepo.FindByID(ctx, photoID)
	if err != nil {
		return nil, err
	}

	caption := photo.Caption
	displayOrder := photo.DisplayOrder
	if req.Caption != nil {
		caption = *req.Caption
	}
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	}
	if err := photo.Update(caption, displayOrder); err != nil {
		return nil, err
	}

	if err := s.photoRepo.Save(ctx, photo); err != nil {
		return nil, err
	}

	response := ToPhotoResponse(photo)
	return &response, nil
}

// Reorder sets the gallery order of a product's photos from an explicit
// id list. Every listed id must belong to the product.
func (s *PhotoService) Reorder(ctx context.Context, productID uuid.UUID, req ReorderPhotosRequest) ([]PhotoResponse, error) {
	photos, err := s.photoRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Photo, len(photos))
	for i := range photos {
		byID[photos[i].ID] = &photos[i]
	}

	for position, id := range req.PhotoIDs {
		photo, ok := byID[id]
		if !ok {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Photo %s does not belong to this product", id))
		}
		if err := photo.Update(photo.Caption, position); err != nil {
			return nil, err
		}
		if err := s.photoRepo.Save(ctx, photo); err != nil {
			return nil, err
		}
	}

	updated, err := s.photoRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToPhotoResponses(updated), nil
}

// Delete removes a photo. For photos uploaded through object storage the
// stored object is removed as well; a storage failure is logged but does
// not keep the row alive.
func (s *PhotoService) Delete(ctx context.Context, photoID uuid.UUID) error {
	photo, err := s.photoRepo.FindByID(ctx, photoID)
	if err != nil {
		return err
	}

	if photo.StorageKey != "" && s.storage != nil {
		if err := s.storage.DeleteObject(ctx, photo.StorageKey); err != nil {
			s.logger.Warn("Failed to delete photo object from storage",
				zap.String("photo_id", photoID.String()),
				zap.String("storage_key", photo.StorageKey),
				zap.Error(err))
		}
	}

	if err := s.photoRepo.Delete(ctx, photoID); err != nil {
		return err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionDelete,
		EntityType: "photo",
		EntityID:   photoID.String(),
		Changes:    &audit.Changes{Before: ToPhotoResponse(photo)},
	})
	return nil
}

func (s *PhotoService) checkPhotoLimit(ctx context.Context, productID uuid.UUID) error {
	photos, err := s.photoRepo.FindByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if len(photos) >= s.config.MaxPhotosPerProduct {
		return shared.NewDomainError("LIMIT_EXCEEDED",
			fmt.Sprintf("Products can have at most %d photos", s.config.MaxPhotosPerProduct))
	}
	return nil
}

// buildPhotoStorageKey derives a collision-free object key, keeping the
// original file extension when there is one.
func buildPhotoStorageKey(productID uuid.UUID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	if len(ext) > 10 {
		ext = ""
	}
	return fmt.Sprintf("products/%s/%s%s", productID, uuid.New(), ext)
}
