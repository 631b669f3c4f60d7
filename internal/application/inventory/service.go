// Package inventory implements the application service for on-hand stock
// and the append-only movement ledger. Every quantity change writes its
// ledger entry in the same database transaction.
package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	auditapp "github.com/librestock/backend/internal/application/audit"
	"github.com/librestock/backend/internal/domain/audit"
	"github.com/librestock/backend/internal/domain/catalog"
	"github.com/librestock/backend/internal/domain/inventory"
	"github.com/librestock/backend/internal/domain/shared"
	"github.com/librestock/backend/internal/domain/warehouse"
)

// Service handles inventory business operations
type Service struct {
	scope        TransactionScope
	recordRepo   inventory.RecordRepository
	movementRepo inventory.MovementRepository
	productRepo  catalog.ProductRepository
	locationRepo warehouse.LocationRepository
	recorder     auditapp.Recorder
}

// NewService creates a new inventory Service. The plain repositories
// serve the read paths; writes go through the transaction scope.
func NewService(
	scope TransactionScope,
	recordRepo inventory.RecordRepository,
	movementRepo inventory.MovementRepository,
	productRepo catalog.ProductRepository,
	locationRepo warehouse.LocationRepository,
	recorder auditapp.Recorder,
) *Service {
	if recorder == nil {
		recorder = auditapp.NopRecorder{}
	}
	return &Service{
		scope:        scope,
		recordRepo:   recordRepo,
		movementRepo: movementRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		recorder:     recorder,
	}
}

// GetByID retrieves one inventory record
func (s *Service) GetByID(ctx context.Context, recordID uuid.UUID) (*RecordResponse, error) {
	record, err := s.recordRepo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	response := ToRecordResponse(record)
	return &response, nil
}

// List retrieves inventory records with filtering and pagination
func (s *Service) List(ctx context.Context, filter RecordListFilter) ([]RecordResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.LocationID != nil {
		domainFilter.Filters["location_id"] = *filter.LocationID
	}
	if filter.AreaID != nil {
		domainFilter.Filters["area_id"] = *filter.AreaID
	}
	if filter.InStock != nil {
		domainFilter.Filters["in_stock"] = *filter.InStock
	}
	if filter.BelowReorder != nil && *filter.BelowReorder {
		domainFilter.Filters["below_reorder"] = true
	}
	if filter.ExpiringWithinDays != nil {
		cutoff := time.Now().AddDate(0, 0, *filter.ExpiringWithinDays)
		domainFilter.Filters["expiring_before"] = cutoff
	}

	records, err := s.recordRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.recordRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToRecordResponses(records), total, nil
}

// ExpiringSoon returns batches that expire within the given number of
// days, soonest first.
func (s *Service) ExpiringSoon(ctx context.Context, days int) ([]RecordResponse, error) {
	if days <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Days must be positive")
	}

	cutoff := time.Now().AddDate(0, 0, days)
	records, err := s.recordRepo.FindExpiringBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	return ToRecordResponses(records), nil
}

// Receive books incoming stock into a slot, creating the record on first
// receipt and topping it up afterwards. Writes a PURCHASE_RECEIVE ledger
// entry in the same transaction.
func (s *Service) Receive(ctx context.Context, userID uuid.UUID, req ReceiveStockRequest) (*RecordResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		return nil, err
	}
	if _, err := s.locationRepo.FindByID(ctx, req.LocationID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_LOCATION", "Location not found")
		}
		return nil, err
	}

	var record *inventory.Record
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.RecordRepo().FindBySlot(ctx, req.ProductID, req.LocationID, req.AreaID, req.BatchNumber)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		now := time.Now()
		if existing != nil {
			if err := existing.Add(req.Quantity); err != nil {
				return err
			}
			existing.ReceivedDate = &now
			if req.CostPerUnit != nil {
				existing.CostPerUnit = req.CostPerUnit
			}
			if req.ExpiryDate != nil {
				existing.ExpiryDate = req.ExpiryDate
			}
			record = existing
		} else {
			created, err := inventory.NewRecord(req.ProductID, req.LocationID, req.AreaID, req.Quantity)
			if err != nil {
				return err
			}
			created.BatchNumber = req.BatchNumber
			created.ExpiryDate = req.ExpiryDate
			created.CostPerUnit = req.CostPerUnit
			created.ReceivedDate = &now
			record = created
		}

		if err := repos.RecordRepo().Save(ctx, record); err != nil {
			return err
		}

		movement, err := inventory.NewMovement(req.ProductID, nil, &req.LocationID, req.Quantity, inventory.ReasonPurchaseReceive, userID)
		if err != nil {
			return err
		}
		movement.ReferenceNumber = req.ReferenceNumber
		movement.CostPerUnit = req.CostPerUnit
		movement.Notes = req.Notes
		return repos.MovementRepo().Save(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		UserID:     &userID,
		Action:     audit.ActionAdjustQuantity,
		EntityType: "inventory",
		EntityID:   record.ID.String(),
		Changes:    &audit.Changes{After: ToRecordResponse(record)},
	})

	response := ToRecordResponse(record)
	return &response, nil
}

// Adjust changes one record's quantity by a signed delta or to an
// absolute count. Stock never goes negative. The ledger entry uses the
// caller's reason.
func (s *Service) Adjust(ctx context.Context, userID, recordID uuid.UUID, req AdjustStockRequest) (*RecordResponse, error) {
	if (req.Delta == nil) == (req.NewQuantity == nil) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Provide exactly one of delta and new_quantity")
	}

	reason := inventory.MovementReason(req.Reason)
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown movement reason")
	}
	if reason == inventory.ReasonPurchaseReceive || reason == inventory.ReasonInternalTransfer {
		return nil, shared.NewDomainError("INVALID_INPUT", "Use the receive and transfer operations for this reason")
	}

	var record *inventory.Record
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		record, err = repos.RecordRepo().FindByID(ctx, recordID)
		if err != nil {
			return err
		}
		before := ToRecordResponse(record)

		delta := 0
		if req.Delta != nil {
			delta = *req.Delta
		} else {
			delta = *req.NewQuantity - record.Quantity
		}
		if delta == 0 {
			return shared.NewDomainError("INVALID_INPUT", "Adjustment changes nothing")
		}

		if delta > 0 {
			if err := record.Add(delta); err != nil {
				return err
			}
		} else {
			if err := record.Remove(-delta); err != nil {
				return err
			}
		}

		if err := repos.RecordRepo().Save(ctx, record); err != nil {
			return err
		}

		var from, to *uuid.UUID
		quantity := delta
		if delta > 0 {
			to = &record.LocationID
		} else {
			from = &record.LocationID
			quantity = -delta
		}

		movement, err := inventory.NewMovement(record.ProductID, from, to, quantity, reason, userID)
		if err != nil {
			return err
		}
		movement.Notes = req.Notes
		if err := repos.MovementRepo().Save(ctx, movement); err != nil {
			return err
		}

		s.recorder.Record(ctx, auditapp.Entry{
			UserID:     &userID,
			Action:     audit.ActionAdjustQuantity,
			EntityType: "inventory",
			EntityID:   record.ID.String(),
			Changes:    &audit.Changes{Before: before, After: ToRecordResponse(record)},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToRecordResponse(record)
	return &response, nil
}

// Transfer moves stock between two slots atomically: the source is
// decremented, the destination created or topped up, and a single
// INTERNAL_TRANSFER ledger entry written.
func (s *Service) Transfer(ctx context.Context, userID uuid.UUID, req TransferStockRequest) (*RecordResponse, error) {
	if req.FromLocation == req.ToLocation && equalAreaIDs(req.FromArea, req.ToArea) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Source and destination are the same slot")
	}
	if _, err := s.locationRepo.FindByID(ctx, req.ToLocation); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_LOCATION", "Destination location not found")
		}
		return nil, err
	}

	var destination *inventory.Record
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		source, err := repos.RecordRepo().FindBySlot(ctx, req.ProductID, req.FromLocation, req.FromArea, req.BatchNumber)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INSUFFICIENT_STOCK", "No stock at the source location")
			}
			return err
		}
		if err := source.Remove(req.Quantity); err != nil {
			return err
		}
		if err := repos.RecordRepo().Save(ctx, source); err != nil {
			return err
		}

		destination, err = repos.RecordRepo().FindBySlot(ctx, req.ProductID, req.ToLocation, req.ToArea, req.BatchNumber)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if destination != nil {
			if err := destination.Add(req.Quantity); err != nil {
				return err
			}
		} else {
			destination, err = inventory.NewRecord(req.ProductID, req.ToLocation, req.ToArea, req.Quantity)
			if err != nil {
				return err
			}
			destination.BatchNumber = req.BatchNumber
			destination.ExpiryDate = source.ExpiryDate
			destination.CostPerUnit = source.CostPerUnit
			destination.ReceivedDate = source.ReceivedDate
		}
		if err := repos.RecordRepo().Save(ctx, destination); err != nil {
			return err
		}

		movement, err := inventory.NewMovement(req.ProductID, &req.FromLocation, &req.ToLocation, req.Quantity, inventory.ReasonInternalTransfer, userID)
		if err != nil {
			return err
		}
		movement.Notes = req.Notes
		return repos.MovementRepo().Save(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		UserID:     &userID,
		Action:     audit.ActionAdjustQuantity,
		EntityType: "inventory",
		EntityID:   destination.ID.String(),
		Changes:    &audit.Changes{After: ToRecordResponse(destination)},
	})

	response := ToRecordResponse(destination)
	return &response, nil
}

// Delete removes an empty inventory record. Records still holding stock
// must be adjusted to zero first so the ledger stays complete.
func (s *Service) Delete(ctx context.Context, recordID uuid.UUID) error {
	record, err := s.recordRepo.FindByID(ctx, recordID)
	if err != nil {
		return err
	}
	if record.Quantity != 0 {
		return shared.NewDomainError("INVALID_STATE", "Only empty inventory records can be deleted")
	}

	if err := s.recordRepo.Delete(ctx, recordID); err != nil {
		return err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionDelete,
		EntityType: "inventory",
		EntityID:   recordID.String(),
		Changes:    &audit.Changes{Before: ToRecordResponse(record)},
	})
	return nil
}

// GetMovementByID retrieves one ledger entry
func (s *Service) GetMovementByID(ctx context.Context, movementID uuid.UUID) (*MovementResponse, error) {
	movement, err := s.movementRepo.FindByID(ctx, movementID)
	if err != nil {
		return nil, err
	}

	response := ToMovementResponse(movement)
	return &response, nil
}

// ListMovements retrieves ledger entries with filtering and pagination
func (s *Service) ListMovements(ctx context.Context, filter MovementListFilter) ([]MovementResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
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

	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if filter.LocationID != nil {
		domainFilter.Filters["location_id"] = *filter.LocationID
	}
	if filter.Reason != "" {
		domainFilter.Filters["reason"] = filter.Reason
	}
	if filter.OrderID != nil {
		domainFilter.Filters["order_id"] = *filter.OrderID
	}
	if filter.UserID != nil {
		domainFilter.Filters["user_id"] = *filter.UserID
	}
	if filter.Since != nil {
		domainFilter.Filters["since"] = *filter.Since
	}
	if filter.Until != nil {
		domainFilter.Filters["until"] = *filter.Until
	}

	movements, err := s.movementRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.movementRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToMovementResponses(movements), total, nil
}

func equalAreaIDs(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
