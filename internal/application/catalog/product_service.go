// Package catalog implements the application services for products,
// categories and product photos.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	auditapp "github.com/librestock/backend/internal/application/audit"
	"github.com/librestock/backend/internal/domain/audit"
	"github.com/librestock/backend/internal/domain/bulk"
	"github.com/librestock/backend/internal/domain/catalog"
	"github.com/librestock/backend/internal/domain/inventory"
	"github.com/librestock/backend/internal/domain/shared"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo   catalog.ProductRepository
	categoryRepo  catalog.CategoryRepository
	inventoryRepo inventory.RecordRepository
	recorder      auditapp.Recorder
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	inventoryRepo inventory.RecordRepository,
	recorder auditapp.Recorder,
) *ProductService {
	if recorder == nil {
		recorder = auditapp.NopRecorder{}
	}
	return &ProductService{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		inventoryRepo: inventoryRepo,
		recorder:      recorder,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return nil, err
	}

	product, err := s.buildProduct(req)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionCreate,
		EntityType: "product",
		EntityID:   product.ID.String(),
		Changes:    &audit.Changes{After: ToProductResponse(product)},
	})

	response := ToProductResponse(product)
	return &response, nil
}

// buildProduct constructs a product from a create request without
// touching the repositories. Shared by Create and BulkCreate.
func (s *ProductService) buildProduct(req CreateProductRequest) (*catalog.Product, error) {
	product, err := catalog.NewProduct(req.SKU, req.Name, req.CategoryID)
	if err != nil {
		return nil, err
	}

	product.Description = req.Description
	product.Brand = req.Brand
	product.VolumeML = req.VolumeML
	product.WeightKG = req.WeightKG
	product.DimensionsCM = req.DimensionsCM
	product.PrimarySupplierID = req.PrimarySupplierID
	product.SupplierSKU = req.SupplierSKU
	product.Barcode = req.Barcode
	product.Unit = req.Unit
	product.Notes = req.Notes

	if req.IsPerishable != nil {
		product.IsPerishable = *req.IsPerishable
	}

	if req.StandardCost != nil || req.StandardPrice != nil || req.MarkupPercentage != nil {
		if err := product.SetPricing(req.StandardCost, req.StandardPrice, req.MarkupPercentage); err != nil {
			return nil, err
		}
	}

	if req.ReorderPoint != nil {
		if err := product.SetReorderPoint(*req.ReorderPoint); err != nil {
			return nil, err
		}
	}

	return product, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetBySKU retrieves a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductListResponse, int64, error) {
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

	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.PrimarySupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.PrimarySupplierID
	}
	if filter.Brand != "" {
		domainFilter.Filters["brand"] = filter.Brand
	}
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}
	if filter.IsPerishable != nil {
		domainFilter.Filters["is_perishable"] = *filter.IsPerishable
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductListResponses(products), total, nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	before := ToProductResponse(product)

	if req.SKU != nil {
		normalized := strings.ToUpper(strings.TrimSpace(*req.SKU))
		if normalized != product.SKU {
			exists, err := s.productRepo.ExistsBySKU(ctx, normalized)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
			}
		}
		if err := product.UpdateSKU(*req.SKU); err != nil {
			return nil, err
		}
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		description := product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
		product.CategoryID = *req.CategoryID
	}

	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.VolumeML != nil {
		product.VolumeML = req.VolumeML
	}
	if req.WeightKG != nil {
		product.WeightKG = req.WeightKG
	}
	if req.DimensionsCM != nil {
		product.DimensionsCM = *req.DimensionsCM
	}
	if req.PrimarySupplierID != nil {
		product.PrimarySupplierID = req.PrimarySupplierID
	}
	if req.SupplierSKU != nil {
		product.SupplierSKU = *req.SupplierSKU
	}
	if req.Barcode != nil {
		product.Barcode = *req.Barcode
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}
	if req.IsPerishable != nil {
		product.IsPerishable = *req.IsPerishable
	}
	if req.Notes != nil {
		product.Notes = *req.Notes
	}

	if req.StandardCost != nil || req.StandardPrice != nil || req.MarkupPercentage != nil {
		cost := product.StandardCost
		price := product.StandardPrice
		markup := product.MarkupPercentage
		if req.StandardCost != nil {
			cost = req.StandardCost
		}
		if req.StandardPrice != nil {
			price = req.StandardPrice
		}
		if req.MarkupPercentage != nil {
			markup = req.MarkupPercentage
		}
		if err := product.SetPricing(cost, price, markup); err != nil {
			return nil, err
		}
	}

	if req.ReorderPoint != nil {
		if err := product.SetReorderPoint(*req.ReorderPoint); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionUpdate,
		EntityType: "product",
		EntityID:   product.ID.String(),
		Changes:    &audit.Changes{Before: before, After: response},
	})
	return &response, nil
}

// Delete removes a product. Products with stock on hand cannot be deleted.
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	if err := s.ensureNoInventory(ctx, productID); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionDelete,
		EntityType: "product",
		EntityID:   productID.String(),
		Changes:    &audit.Changes{Before: ToProductResponse(product)},
	})
	return nil
}

func (s *ProductService) ensureNoInventory(ctx context.Context, productID uuid.UUID) error {
	count, err := s.inventoryRepo.CountByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("HAS_INVENTORY", "Product has inventory records and cannot be deleted")
	}
	return nil
}

// Activate marks a product as orderable
func (s *ProductService) Activate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	return s.setActive(ctx, productID, true)
}

// Deactivate hides a product from ordering
func (s *ProductService) Deactivate(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	return s.setActive(ctx, productID, false)
}

func (s *ProductService) setActive(ctx context.Context, productID uuid.UUID, active bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if active {
		product.Activate()
	} else {
		product.Deactivate()
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionUpdate,
		EntityType: "product",
		EntityID:   product.ID.String(),
		Changes:    &audit.Changes{After: response},
	})
	return &response, nil
}

// BulkCreate inserts up to 100 products with per-item isolation: one bad
// item is recorded as a failure and never aborts the rest. Within the
// request, only the first occurrence of a SKU proceeds; repeats fail with
// DUPLICATE_SKU. SKUs already stored fail with ALREADY_EXISTS.
func (s *ProductService) BulkCreate(ctx context.Context, req BulkCreateProductsRequest) (*bulk.Result, error) {
	skus := make([]string, len(req.Products))
	for i, item := range req.Products {
		skus[i] = strings.ToUpper(strings.TrimSpace(item.SKU))
	}

	duplicateSet := make(map[string]struct{})
	for _, sku := range bulk.FindDuplicates(skus) {
		duplicateSet[sku] = struct{}{}
	}

	stored, err := s.productRepo.FindExistingSKUs(ctx, skus)
	if err != nil {
		return nil, err
	}

	result := bulk.NewResult()
	seen := make(map[string]struct{}, len(skus))

	for i, item := range req.Products {
		sku := skus[i]

		if _, isDup := duplicateSet[sku]; isDup {
			if _, alreadySeen := seen[sku]; alreadySeen {
				result.AddFailureBySKU(item.SKU, "DUPLICATE_SKU: SKU appears more than once in this request")
				continue
			}
		}
		seen[sku] = struct{}{}

		if _, exists := stored[sku]; exists {
			result.AddFailureBySKU(item.SKU, "ALREADY_EXISTS: Product with this SKU already exists")
			continue
		}

		product, err := s.buildProduct(item)
		if err != nil {
			result.AddFailureBySKU(item.SKU, err.Error())
			continue
		}

		if _, err := s.categoryRepo.FindByID(ctx, item.CategoryID); err != nil {
			result.AddFailureBySKU(item.SKU, "Category not found")
			continue
		}

		if err := s.productRepo.Save(ctx, product); err != nil {
			result.AddFailureBySKU(item.SKU, err.Error())
			continue
		}

		result.AddSuccess(product.ID)
		s.recorder.Record(ctx, auditapp.Entry{
			Action:     audit.ActionCreate,
			EntityType: "product",
			EntityID:   product.ID.String(),
		})
	}

	return result, nil
}

// BulkDelete removes up to 100 products with per-item isolation. Missing
// ids and products with stock on hand are recorded as failures.
func (s *ProductService) BulkDelete(ctx context.Context, req BulkDeleteProductsRequest) (*bulk.Result, error) {
	existing, err := s.productRepo.FindExistingIDs(ctx, req.IDs)
	if err != nil {
		return nil, err
	}

	found, missing := bulk.PartitionByExistence(req.IDs, existing)

	result := bulk.NewResult()
	result.AddNotFoundFailures("product", missing)

	for _, id := range found {
		if err := s.ensureNoInventory(ctx, id); err != nil {
			result.AddFailureByID(id, err.Error())
			continue
		}
		if err := s.productRepo.Delete(ctx, id); err != nil {
			result.AddFailureByID(id, err.Error())
			continue
		}
		result.AddSuccess(id)
		s.recorder.Record(ctx, auditapp.Entry{
			Action:     audit.ActionDelete,
			EntityType: "product",
			EntityID:   id.String(),
		})
	}

	return result, nil
}

// BulkSetActive flips is_active on up to 100 products with per-item
// isolation. Missing ids are recorded as failures.
func (s *ProductService) BulkSetActive(ctx context.Context, req BulkSetActiveRequest) (*bulk.Result, error) {
	existing, err := s.productRepo.FindExistingIDs(ctx, req.IDs)
	if err != nil {
		return nil, err
	}

	found, missing := bulk.PartitionByExistence(req.IDs, existing)

	result := bulk.NewResult()
	result.AddNotFoundFailures("product", missing)

	for _, id := range found {
		product, err := s.productRepo.FindByID(ctx, id)
		if err != nil {
			result.AddFailureByID(id, err.Error())
			continue
		}

		if *req.IsActive {
			product.Activate()
		} else {
			product.Deactivate()
		}

		if err := s.productRepo.Save(ctx, product); err != nil {
			result.AddFailureByID(id, err.Error())
			continue
		}
		result.AddSuccess(id)
		s.recorder.Record(ctx, auditapp.Entry{
			Action:     audit.ActionUpdate,
			EntityType: "product",
			EntityID:   id.String(),
		})
	}

	return result, nil
}
