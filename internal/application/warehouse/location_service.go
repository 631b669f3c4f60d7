// Package warehouse implements the application services for stock
// locations and the areas that subdivide them.
package warehouse

import (
	"context"

	"github.com/google/uuid"

	auditapp "github.com/librestock/backend/internal/application/audit"
	"github.com/librestock/backend/internal/domain/audit"
	"github.com/librestock/backend/internal/domain/inventory"
	"github.com/librestock/backend/internal/domain/shared"
	"github.com/librestock/backend/internal/domain/warehouse"
)

// LocationService handles location-related business operations
type LocationService struct {
	locationRepo  warehouse.LocationRepository
	inventoryRepo inventory.RecordRepository
	recorder      auditapp.Recorder
}

// NewLocationService creates a new LocationService
func NewLocationService(
	locationRepo warehouse.LocationRepository,
	inventoryRepo inventory.RecordRepository,
	recorder auditapp.Recorder,
) *LocationService {
	if recorder == nil {
		recorder = auditapp.NopRecorder{}
	}
	return &LocationService{
		locationRepo:  locationRepo,
		inventoryRepo: inventoryRepo,
		recorder:      recorder,
	}
}

// Create creates a new location
func (s *LocationService) Create(ctx context.Context, req CreateLocationRequest) (*LocationResponse, error) {
	location, err := warehouse.NewLocation(req.Name, warehouse.LocationType(req.Type))
	if err != nil {
		return nil, err
	}
	location.Address = req.Address
	location.ContactPerson = req.ContactPerson
	location.Phone = req.Phone

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionCreate,
		EntityType: "location",
		EntityID:   location.ID.String(),
		Changes:    &audit.Changes{After: ToLocationResponse(location)},
	})

	response := ToLocationResponse(location)
	return &response, nil
}

// GetByID retrieves a location by ID
func (s *LocationService) GetByID(ctx context.Context, locationID uuid.UUID) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}

	response := ToLocationResponse(location)
	return &response, nil
}

// List retrieves locations with filtering and pagination
func (s *LocationService) List(ctx context.Context, filter LocationListFilter) ([]LocationResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	locations, err := s.locationRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.locationRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToLocationResponses(locations), total, nil
}

// Update applies a partial update to a location
func (s *LocationService) Update(ctx context.Context, locationID uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	before := ToLocationResponse(location)

	name := location.Name
	address := location.Address
	contactPerson := location.ContactPerson
	phone := location.Phone
	if req.Name != nil {
		name = *req.Name
	}
	if req.Address != nil {
		address = *req.Address
	}
	if req.ContactPerson != nil {
		contactPerson = *req.ContactPerson
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if err := location.Update(name, address, contactPerson, phone); err != nil {
		return nil, err
	}

	if req.IsActive != nil {
		if *req.IsActive {
			location.Activate()
		} else {
			location.Deactivate()
		}
	}

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}

	response := ToLocationResponse(location)
	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionUpdate,
		EntityType: "location",
		EntityID:   location.ID.String(),
		Changes:    &audit.Changes{Before: before, After: response},
	})
	return &response, nil
}

// Delete removes a location. Locations still holding inventory cannot be
// deleted.
func (s *LocationService) Delete(ctx context.Context, locationID uuid.UUID) error {
	location, err := s.locationRepo.FindByID(ctx, locationID)
	if err != nil {
		return err
	}

	count, err := s.inventoryRepo.CountByLocation(ctx, locationID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("HAS_INVENTORY", "Location holds inventory and cannot be deleted")
	}

	if err := s.locationRepo.Delete(ctx, locationID); err != nil {
		return err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionDelete,
		EntityType: "location",
		EntityID:   locationID.String(),
		Changes:    &audit.Changes{Before: ToLocationResponse(location)},
	})
	return nil
}
