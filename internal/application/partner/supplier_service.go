// Package partner implements the application services for suppliers,
// sourcing links and yacht clients.
package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"

	auditapp "github.com/librestock/backend/internal/application/audit"
	"github.com/librestock/backend/internal/domain/audit"
	"github.com/librestock/backend/internal/domain/catalog"
	"github.com/librestock/backend/internal/domain/partner"
	"github.com/librestock/backend/internal/domain/shared"
)

// SupplierService handles supplier business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	linkRepo     partner.SupplierProductRepository
	productRepo  catalog.ProductRepository
	recorder     auditapp.Recorder
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(
	supplierRepo partner.SupplierRepository,
	linkRepo partner.SupplierProductRepository,
	productRepo catalog.ProductRepository,
	recorder auditapp.Recorder,
) *SupplierService {
	if recorder == nil {
		recorder = auditapp.NopRecorder{}
	}
	return &SupplierService{
		supplierRepo: supplierRepo,
		linkRepo:     linkRepo,
		productRepo:  productRepo,
		recorder:     recorder,
	}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(req.Name)
	if err != nil {
		return nil, err
	}
	supplier.ContactPerson = req.ContactPerson
	supplier.Email = req.Email
	supplier.Phone = req.Phone
	supplier.Address = req.Address
	supplier.Website = req.Website
	supplier.Notes = req.Notes

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionCreate,
		EntityType: "supplier",
		EntityID:   supplier.ID.String(),
		Changes:    &audit.Changes{After: ToSupplierResponse(supplier)},
	})

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by its ID
func (s *SupplierService) GetByID(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, filter SupplierListFilter) ([]SupplierResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
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
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	suppliers, err := s.supplierRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.supplierRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSupplierResponses(suppliers), total, nil
}

// Update updates a supplier's details
func (s *SupplierService) Update(ctx context.Context, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	before := ToSupplierResponse(supplier)

	name := supplier.Name
	if req.Name != nil {
		name = *req.Name
	}
	contactPerson := supplier.ContactPerson
	if req.ContactPerson != nil {
		contactPerson = *req.ContactPerson
	}
	email := supplier.Email
	if req.Email != nil {
		email = *req.Email
	}
	phone := supplier.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	address := supplier.Address
	if req.Address != nil {
		address = *req.Address
	}
	website := supplier.Website
	if req.Website != nil {
		website = *req.Website
	}
	notes := supplier.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := supplier.Update(name, contactPerson, email, phone, address, website, notes); err != nil {
		return nil, err
	}

	if req.IsActive != nil {
		if *req.IsActive {
			supplier.Activate()
		} else {
			supplier.Deactivate()
		}
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionUpdate,
		EntityType: "supplier",
		EntityID:   supplier.ID.String(),
		Changes:    &audit.Changes{Before: before, After: ToSupplierResponse(supplier)},
	})

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete deletes a supplier along with its sourcing links. Suppliers still
// named as a product's primary supplier cannot be deleted.
func (s *SupplierService) Delete(ctx context.Context, supplierID uuid.UUID) error {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return err
	}

	count, err := s.productRepo.CountBySupplier(ctx, supplierID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("IN_USE", "Supplier is the primary supplier of existing products")
	}

	if err := s.linkRepo.DeleteBySupplier(ctx, supplierID); err != nil {
		return err
	}
	if err := s.supplierRepo.Delete(ctx, supplierID); err != nil {
		return err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionDelete,
		EntityType: "supplier",
		EntityID:   supplierID.String(),
		Changes:    &audit.Changes{Before: ToSupplierResponse(supplier)},
	})
	return nil
}

// SupplierProductService manages the sourcing links between suppliers and
// products
type SupplierProductService struct {
	linkRepo     partner.SupplierProductRepository
	supplierRepo partner.SupplierRepository
	productRepo  catalog.ProductRepository
	recorder     auditapp.Recorder
}

// NewSupplierProductService creates a new SupplierProductService
func NewSupplierProductService(
	linkRepo partner.SupplierProductRepository,
	supplierRepo partner.SupplierRepository,
	productRepo catalog.ProductRepository,
	recorder auditapp.Recorder,
) *SupplierProductService {
	if recorder == nil {
		recorder = auditapp.NopRecorder{}
	}
	return &SupplierProductService{
		linkRepo:     linkRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		recorder:     recorder,
	}
}

// ListBySupplier lists the products a supplier can source
func (s *SupplierProductService) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]SupplierProductResponse, error) {
	if _, err := s.supplierRepo.FindByID(ctx, supplierID); err != nil {
		return nil, err
	}

	links, err := s.linkRepo.FindBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return ToSupplierProductResponses(links), nil
}

// ListByProduct lists the suppliers a product can be sourced from,
// preferred sources first
func (s *SupplierProductService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]SupplierProductResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	links, err := s.linkRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToSupplierProductResponses(links), nil
}

// Create links a product to a supplier. Each pairing is unique.
func (s *SupplierProductService) Create(ctx context.Context, supplierID uuid.UUID, req CreateSupplierProductRequest) (*SupplierProductResponse, error) {
	if _, err := s.supplierRepo.FindByID(ctx, supplierID); err != nil {
		return nil, err
	}
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found")
		}
		return nil, err
	}

	if _, err := s.linkRepo.FindLink(ctx, supplierID, req.ProductID); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product is already linked to this supplier")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	link, err := partner.NewSupplierProduct(supplierID, req.ProductID)
	if err != nil {
		return nil, err
	}

	minimumOrderQuantity := link.MinimumOrderQuantity
	if req.MinimumOrderQuantity != nil {
		minimumOrderQuantity = *req.MinimumOrderQuantity
	}
	if err := link.SetTerms(req.SupplierSKU, req.CostPerUnit, req.LeadTimeDays, minimumOrderQuantity); err != nil {
		return nil, err
	}
	if req.IsPreferred != nil {
		link.MarkPreferred(*req.IsPreferred)
	}

	if err := s.linkRepo.Save(ctx, link); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionCreate,
		EntityType: "supplier_product",
		EntityID:   link.ID.String(),
		Changes:    &audit.Changes{After: ToSupplierProductResponse(link)},
	})

	response := ToSupplierProductResponse(link)
	return &response, nil
}

// Update changes the terms of a sourcing link
func (s *SupplierProductService) Update(ctx context.Context, supplierID, linkID uuid.UUID, req UpdateSupplierProductRequest) (*SupplierProductResponse, error) {
	link, err := s.findScoped(ctx, supplierID, linkID)
	if err != nil {
		return nil, err
	}
	before := ToSupplierProductResponse(link)

	supplierSKU := link.SupplierSKU
	if req.SupplierSKU != nil {
		supplierSKU = *req.SupplierSKU
	}
	costPerUnit := link.CostPerUnit
	if req.CostPerUnit != nil {
		costPerUnit = req.CostPerUnit
	}
	leadTimeDays := link.LeadTimeDays
	if req.LeadTimeDays != nil {
		leadTimeDays = req.LeadTimeDays
	}
	minimumOrderQuantity := link.MinimumOrderQuantity
	if req.MinimumOrderQuantity != nil {
		minimumOrderQuantity = *req.MinimumOrderQuantity
	}
	if err := link.SetTerms(supplierSKU, costPerUnit, leadTimeDays, minimumOrderQuantity); err != nil {
		return nil, err
	}
	if req.IsPreferred != nil {
		link.MarkPreferred(*req.IsPreferred)
	}

	if err := s.linkRepo.Save(ctx, link); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionUpdate,
		EntityType: "supplier_product",
		EntityID:   link.ID.String(),
		Changes:    &audit.Changes{Before: before, After: ToSupplierProductResponse(link)},
	})

	response := ToSupplierProductResponse(link)
	return &response, nil
}

// Delete removes a sourcing link
func (s *SupplierProductService) Delete(ctx context.Context, supplierID, linkID uuid.UUID) error {
	link, err := s.findScoped(ctx, supplierID, linkID)
	if err != nil {
		return err
	}

	if err := s.linkRepo.Delete(ctx, linkID); err != nil {
		return err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionDelete,
		EntityType: "supplier_product",
		EntityID:   linkID.String(),
		Changes:    &audit.Changes{Before: ToSupplierProductResponse(link)},
	})
	return nil
}

// findScoped loads a link and checks it belongs to the supplier
func (s *SupplierProductService) findScoped(ctx context.Context, supplierID, linkID uuid.UUID) (*partner.SupplierProduct, error) {
	link, err := s.linkRepo.FindByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if link.SupplierID != supplierID {
		return nil, shared.ErrNotFound
	}
	return link, nil
}
