package warehouse

import (
	"context"
	"errors"

	"github.com/google/uuid"

	auditapp "github.com/librestock/backend/internal/application/audit"
	"github.com/librestock/backend/internal/domain/audit"
	"github.com/librestock/backend/internal/domain/inventory"
	"github.com/librestock/backend/internal/domain/shared"
	"github.com/librestock/backend/internal/domain/warehouse"
)

// maxAreaDepth bounds the ancestor walk when re-parenting areas
const maxAreaDepth = 32

// AreaService handles area-related business operations. Areas live under
// a location, so every operation is scoped by location id.
type AreaService struct {
	areaRepo      warehouse.AreaRepository
	locationRepo  warehouse.LocationRepository
	inventoryRepo inventory.RecordRepository
	recorder      auditapp.Recorder
}

// NewAreaService creates a new AreaService
func NewAreaService(
	areaRepo warehouse.AreaRepository,
	locationRepo warehouse.LocationRepository,
	inventoryRepo inventory.RecordRepository,
	recorder auditapp.Recorder,
) *AreaService {
	if recorder == nil {
		recorder = auditapp.NopRecorder{}
	}
	return &AreaService{
		areaRepo:      areaRepo,
		locationRepo:  locationRepo,
		inventoryRepo: inventoryRepo,
		recorder:      recorder,
	}
}

// Create creates an area within a location
func (s *AreaService) Create(ctx context.Context, locationID uuid.UUID, req CreateAreaRequest) (*AreaResponse, error) {
	if _, err := s.locationRepo.FindByID(ctx, locationID); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if err := s.checkParent(ctx, locationID, uuid.Nil, req.ParentID); err != nil {
			return nil, err
		}
	}

	area, err := warehouse.NewArea(locationID, req.Name, req.Code, req.ParentID)
	if err != nil {
		return nil, err
	}
	area.Description = req.Description

	if err := s.areaRepo.Save(ctx, area); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionCreate,
		EntityType: "area",
		EntityID:   area.ID.String(),
		Changes:    &audit.Changes{After: ToAreaResponse(area)},
	})

	response := ToAreaResponse(area)
	return &response, nil
}

// GetByID retrieves an area scoped to its location
func (s *AreaService) GetByID(ctx context.Context, locationID, areaID uuid.UUID) (*AreaResponse, error) {
	area, err := s.findScoped(ctx, locationID, areaID)
	if err != nil {
		return nil, err
	}

	response := ToAreaResponse(area)
	return &response, nil
}

// ListByLocation returns all areas of a location
func (s *AreaService) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]AreaResponse, error) {
	if _, err := s.locationRepo.FindByID(ctx, locationID); err != nil {
		return nil, err
	}

	areas, err := s.areaRepo.FindByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	return ToAreaResponses(areas), nil
}

// Update applies a partial update to an area
func (s *AreaService) Update(ctx context.Context, locationID, areaID uuid.UUID, req UpdateAreaRequest) (*AreaResponse, error) {
	area, err := s.findScoped(ctx, locationID, areaID)
	if err != nil {
		return nil, err
	}
	before := ToAreaResponse(area)

	name := area.Name
	code := area.Code
	description := area.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Code != nil {
		code = *req.Code
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := area.Update(name, code, description); err != nil {
		return nil, err
	}

	if req.SetParent {
		if err := s.checkParent(ctx, locationID, areaID, req.ParentID); err != nil {
			return nil, err
		}
		if err := area.SetParent(req.ParentID); err != nil {
			return nil, err
		}
	}

	if req.IsActive != nil {
		area.IsActive = *req.IsActive
	}

	if err := s.areaRepo.Save(ctx, area); err != nil {
		return nil, err
	}

	response := ToAreaResponse(area)
	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionUpdate,
		EntityType: "area",
		EntityID:   area.ID.String(),
		Changes:    &audit.Changes{Before: before, After: response},
	})
	return &response, nil
}

// Delete removes an area. Areas with child areas or inventory cannot be
// deleted.
func (s *AreaService) Delete(ctx context.Context, locationID, areaID uuid.UUID) error {
	area, err := s.findScoped(ctx, locationID, areaID)
	if err != nil {
		return err
	}

	hasChildren, err := s.areaRepo.HasChildren(ctx, areaID)
	if err != nil {
		return err
	}
	if hasChildren {
		return shared.NewDomainError("HAS_CHILDREN", "Area has child areas and cannot be deleted")
	}

	count, err := s.inventoryRepo.Count(ctx, shared.Filter{
		Filters: map[string]interface{}{"area_id": areaID},
	})
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("HAS_INVENTORY", "Area holds inventory and cannot be deleted")
	}

	if err := s.areaRepo.Delete(ctx, areaID); err != nil {
		return err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionDelete,
		EntityType: "area",
		EntityID:   areaID.String(),
		Changes:    &audit.Changes{Before: ToAreaResponse(area)},
	})
	return nil
}

// findScoped loads an area and verifies it belongs to the location
func (s *AreaService) findScoped(ctx context.Context, locationID, areaID uuid.UUID) (*warehouse.Area, error) {
	area, err := s.areaRepo.FindByID(ctx, areaID)
	if err != nil {
		return nil, err
	}
	if area.LocationID != locationID {
		return nil, shared.ErrNotFound
	}
	return area, nil
}

// checkParent validates a proposed parent: it must exist, belong to the
// same location, and the ancestor chain from it must not pass through the
// area being written. areaID is uuid.Nil on create.
func (s *AreaService) checkParent(ctx context.Context, locationID, areaID uuid.UUID, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}
	if areaID != uuid.Nil && *parentID == areaID {
		return shared.NewDomainError("CIRCULAR_REFERENCE", "Area cannot be its own parent")
	}

	current := parentID
	for depth := 0; current != nil; depth++ {
		if depth >= maxAreaDepth {
			return shared.NewDomainError("CIRCULAR_REFERENCE", "Area tree is too deep")
		}

		ancestor, err := s.areaRepo.FindByID(ctx, *current)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_PARENT", "Parent area not found")
			}
			return err
		}
		if ancestor.LocationID != locationID {
			return shared.NewDomainError("INVALID_PARENT", "Parent area belongs to another location")
		}
		if areaID != uuid.Nil && ancestor.ID == areaID {
			return shared.NewDomainError("CIRCULAR_REFERENCE", "Area cannot be moved under its own descendant")
		}
		current = ancestor.ParentID
	}
	return nil
}
