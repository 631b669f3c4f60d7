package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditapp "github.com/librestock/backend/internal/application/audit"
	"github.com/librestock/backend/internal/domain/audit"
	"github.com/librestock/backend/internal/domain/catalog"
	"github.com/librestock/backend/internal/domain/shared"
)

// capturingRecorder collects audit entries for assertions.
type capturingRecorder struct {
	entries []auditapp.Entry
}

func (r *capturingRecorder) Record(_ context.Context, entry auditapp.Entry) {
	r.entries = append(r.entries, entry)
}

func newProductService(
	productRepo *MockProductRepository,
	categoryRepo *MockCategoryRepository,
	inventoryRepo *MockInventoryRepository,
) *ProductService {
	return NewProductService(productRepo, categoryRepo, inventoryRepo, nil)
}

func testCategory(t *testing.T) *catalog.Category {
	t.Helper()
	category, err := catalog.NewCategory("Beverages", "", nil)
	require.NoError(t, err)
	return category
}

func testProduct(t *testing.T, sku string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(sku, "Sparkling Water 750ml", uuid.New())
	require.NoError(t, err)
	return product
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestProductService_Create(t *testing.T) {
	category := testCategory(t)

	t.Run("creates product and normalizes SKU", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := newProductService(productRepo, categoryRepo, new(MockInventoryRepository))

		productRepo.On("ExistsBySKU", mock.Anything, "bev-001").Return(false, nil)
		categoryRepo.On("FindByID", mock.Anything, category.ID).Return(category, nil)
		productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		response, err := service.Create(context.Background(), CreateProductRequest{
			SKU:        "bev-001",
			Name:       "Sparkling Water 750ml",
			CategoryID: category.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "BEV-001", response.SKU)
		assert.True(t, response.IsActive)
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate SKU", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo, new(MockCategoryRepository), new(MockInventoryRepository))

		productRepo.On("ExistsBySKU", mock.Anything, "BEV-001").Return(true, nil)

		_, err := service.Create(context.Background(), CreateProductRequest{
			SKU:        "BEV-001",
			Name:       "Sparkling Water 750ml",
			CategoryID: category.ID,
		})

		assertDomainCode(t, err, "ALREADY_EXISTS")
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := newProductService(productRepo, categoryRepo, new(MockInventoryRepository))

		missing := uuid.New()
		productRepo.On("ExistsBySKU", mock.Anything, "BEV-001").Return(false, nil)
		categoryRepo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

		_, err := service.Create(context.Background(), CreateProductRequest{
			SKU:        "BEV-001",
			Name:       "Sparkling Water 750ml",
			CategoryID: missing,
		})

		assertDomainCode(t, err, "INVALID_CATEGORY")
	})
}

func TestProductService_Update(t *testing.T) {
	t.Run("SKU change re-checks uniqueness", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo, new(MockCategoryRepository), new(MockInventoryRepository))

		product := testProduct(t, "BEV-001")
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		productRepo.On("ExistsBySKU", mock.Anything, "BEV-002").Return(true, nil)

		newSKU := "bev-002"
		_, err := service.Update(context.Background(), product.ID, UpdateProductRequest{SKU: &newSKU})

		assertDomainCode(t, err, "ALREADY_EXISTS")
	})

	t.Run("same SKU skips the uniqueness check", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo, new(MockCategoryRepository), new(MockInventoryRepository))

		product := testProduct(t, "BEV-001")
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		productRepo.On("Save", mock.Anything, product).Return(nil)

		sameSKU := "bev-001"
		response, err := service.Update(context.Background(), product.ID, UpdateProductRequest{SKU: &sameSKU})

		require.NoError(t, err)
		assert.Equal(t, "BEV-001", response.SKU)
		productRepo.AssertNotCalled(t, "ExistsBySKU", mock.Anything, mock.Anything)
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		service := newProductService(productRepo, new(MockCategoryRepository), new(MockInventoryRepository))

		product := testProduct(t, "BEV-001")
		product.Brand = "Aqua Azzurra"
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		productRepo.On("Save", mock.Anything, product).Return(nil)

		notes := "Carry spare crates in season"
		response, err := service.Update(context.Background(), product.ID, UpdateProductRequest{Notes: &notes})

		require.NoError(t, err)
		assert.Equal(t, "Aqua Azzurra", response.Brand)
		assert.Equal(t, notes, response.Notes)
	})
}

func TestProductService_Delete(t *testing.T) {
	t.Run("blocked while inventory exists", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		inventoryRepo := new(MockInventoryRepository)
		service := newProductService(productRepo, new(MockCategoryRepository), inventoryRepo)

		product := testProduct(t, "BEV-001")
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		inventoryRepo.On("CountByProduct", mock.Anything, product.ID).Return(int64(3), nil)

		err := service.Delete(context.Background(), product.ID)

		assertDomainCode(t, err, "HAS_INVENTORY")
		productRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes when no inventory remains", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		inventoryRepo := new(MockInventoryRepository)
		service := newProductService(productRepo, new(MockCategoryRepository), inventoryRepo)

		product := testProduct(t, "BEV-001")
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		inventoryRepo.On("CountByProduct", mock.Anything, product.ID).Return(int64(0), nil)
		productRepo.On("Delete", mock.Anything, product.ID).Return(nil)

		require.NoError(t, service.Delete(context.Background(), product.ID))
		productRepo.AssertExpectations(t)
	})
}

func TestProductService_List(t *testing.T) {
	productRepo := new(MockProductRepository)
	service := newProductService(productRepo, new(MockCategoryRepository), new(MockInventoryRepository))

	isActive := true
	productRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.OrderBy == "name" && f.Filters["is_active"] == true
	})).Return([]catalog.Product{*testProduct(t, "BEV-001")}, nil)
	productRepo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	items, total, err := service.List(context.Background(), ProductListFilter{IsActive: &isActive})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "BEV-001", items[0].SKU)
}

func TestProductService_BulkCreate(t *testing.T) {
	category := testCategory(t)

	t.Run("isolates duplicate and stored SKUs", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := newProductService(productRepo, categoryRepo, new(MockInventoryRepository))

		productRepo.On("FindExistingSKUs", mock.Anything, []string{"BEV-001", "BEV-001", "BEV-TAKEN"}).
			Return(map[string]struct{}{"BEV-TAKEN": {}}, nil)
		categoryRepo.On("FindByID", mock.Anything, category.ID).Return(category, nil)
		productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil).Once()

		result, err := service.BulkCreate(context.Background(), BulkCreateProductsRequest{
			Products: []CreateProductRequest{
				{SKU: "BEV-001", Name: "Sparkling Water 750ml", CategoryID: category.ID},
				{SKU: "bev-001", Name: "Sparkling Water 750ml", CategoryID: category.ID},
				{SKU: "BEV-TAKEN", Name: "Still Water 750ml", CategoryID: category.ID},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.SuccessCount)
		assert.Equal(t, 2, result.FailureCount)
		require.Len(t, result.Failures, 2)
		assert.Contains(t, result.Failures[0].Reason, "DUPLICATE_SKU")
		assert.Contains(t, result.Failures[1].Reason, "ALREADY_EXISTS")
		productRepo.AssertExpectations(t)
	})

	t.Run("an invalid item never aborts the batch", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		categoryRepo := new(MockCategoryRepository)
		service := newProductService(productRepo, categoryRepo, new(MockInventoryRepository))

		productRepo.On("FindExistingSKUs", mock.Anything, mock.Anything).
			Return(map[string]struct{}{}, nil)
		categoryRepo.On("FindByID", mock.Anything, category.ID).Return(category, nil)
		productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil).Once()

		result, err := service.BulkCreate(context.Background(), BulkCreateProductsRequest{
			Products: []CreateProductRequest{
				{SKU: "BEV-001", Name: "", CategoryID: category.ID}, // empty name fails validation
				{SKU: "BEV-002", Name: "Tonic Water 200ml", CategoryID: category.ID},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.SuccessCount)
		assert.Equal(t, 1, result.FailureCount)
		assert.Equal(t, "BEV-001", result.Failures[0].SKU)
	})
}

func TestProductService_BulkDelete(t *testing.T) {
	productRepo := new(MockProductRepository)
	inventoryRepo := new(MockInventoryRepository)
	service := newProductService(productRepo, new(MockCategoryRepository), inventoryRepo)

	deletable := uuid.New()
	blocked := uuid.New()
	missing := uuid.New()
	ids := []uuid.UUID{deletable, blocked, missing}

	productRepo.On("FindExistingIDs", mock.Anything, ids).
		Return(map[uuid.UUID]struct{}{deletable: {}, blocked: {}}, nil)
	inventoryRepo.On("CountByProduct", mock.Anything, deletable).Return(int64(0), nil)
	inventoryRepo.On("CountByProduct", mock.Anything, blocked).Return(int64(5), nil)
	productRepo.On("Delete", mock.Anything, deletable).Return(nil)

	result, err := service.BulkDelete(context.Background(), BulkDeleteProductsRequest{IDs: ids})

	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 2, result.FailureCount)
	assert.Equal(t, []uuid.UUID{deletable}, result.Succeeded)

	reasons := []string{result.Failures[0].Reason, result.Failures[1].Reason}
	assert.Contains(t, reasons[0], "product not found")
	assert.Contains(t, reasons[1], "inventory")
	productRepo.AssertNotCalled(t, "Delete", mock.Anything, blocked)
}

func TestProductService_BulkSetActive(t *testing.T) {
	productRepo := new(MockProductRepository)
	recorder := &capturingRecorder{}
	service := NewProductService(productRepo, new(MockCategoryRepository), new(MockInventoryRepository), recorder)

	product := testProduct(t, "BEV-001")
	missing := uuid.New()
	ids := []uuid.UUID{product.ID, missing}

	productRepo.On("FindExistingIDs", mock.Anything, ids).
		Return(map[uuid.UUID]struct{}{product.ID: {}}, nil)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("Save", mock.Anything, product).Return(nil)

	inactive := false
	result, err := service.BulkSetActive(context.Background(), BulkSetActiveRequest{IDs: ids, IsActive: &inactive})

	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	assert.False(t, product.IsActive)

	// each flipped product leaves an UPDATE audit entry; the missing id none
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, audit.ActionUpdate, recorder.entries[0].Action)
	assert.Equal(t, "product", recorder.entries[0].EntityType)
	assert.Equal(t, product.ID.String(), recorder.entries[0].EntityID)
}
