package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/librestock/backend/internal/domain/catalog"
	"github.com/librestock/backend/internal/domain/shared"
)

func newCategoryService(categoryRepo *MockCategoryRepository, productRepo *MockProductRepository) *CategoryService {
	return NewCategoryService(categoryRepo, productRepo, nil)
}

func namedCategory(t *testing.T, name string, parentID *uuid.UUID) *catalog.Category {
	t.Helper()
	category, err := catalog.NewCategory(name, "", parentID)
	require.NoError(t, err)
	return category
}

func TestCategoryService_Create(t *testing.T) {
	t.Run("creates a root category", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := newCategoryService(categoryRepo, new(MockProductRepository))

		categoryRepo.On("ExistsByName", mock.Anything, "Beverages").Return(false, nil)
		categoryRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Category")).Return(nil)

		response, err := service.Create(context.Background(), CreateCategoryRequest{Name: "Beverages"})

		require.NoError(t, err)
		assert.Equal(t, "Beverages", response.Name)
		assert.Nil(t, response.ParentID)
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := newCategoryService(categoryRepo, new(MockProductRepository))

		categoryRepo.On("ExistsByName", mock.Anything, "Beverages").Return(true, nil)

		_, err := service.Create(context.Background(), CreateCategoryRequest{Name: "Beverages"})

		assertDomainCode(t, err, "ALREADY_EXISTS")
	})

	t.Run("rejects a missing parent", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := newCategoryService(categoryRepo, new(MockProductRepository))

		parentID := uuid.New()
		categoryRepo.On("ExistsByName", mock.Anything, "Wine").Return(false, nil)
		categoryRepo.On("FindByID", mock.Anything, parentID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(context.Background(), CreateCategoryRequest{Name: "Wine", ParentID: &parentID})

		assertDomainCode(t, err, "INVALID_PARENT")
	})
}

func TestCategoryService_Update_CycleChecks(t *testing.T) {
	t.Run("category cannot be its own parent", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := newCategoryService(categoryRepo, new(MockProductRepository))

		category := namedCategory(t, "Beverages", nil)
		categoryRepo.On("FindByID", mock.Anything, category.ID).Return(category, nil)

		_, err := service.Update(context.Background(), category.ID, UpdateCategoryRequest{
			SetParent: true,
			ParentID:  &category.ID,
		})

		assertDomainCode(t, err, "CIRCULAR_REFERENCE")
	})

	t.Run("category cannot move under its own descendant", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := newCategoryService(categoryRepo, new(MockProductRepository))

		// Beverages -> Wine -> Red; moving Beverages under Red closes a loop.
		beverages := namedCategory(t, "Beverages", nil)
		wine := namedCategory(t, "Wine", &beverages.ID)
		red := namedCategory(t, "Red", &wine.ID)

		categoryRepo.On("FindByID", mock.Anything, beverages.ID).Return(beverages, nil)
		categoryRepo.On("FindByID", mock.Anything, wine.ID).Return(wine, nil)
		categoryRepo.On("FindByID", mock.Anything, red.ID).Return(red, nil)

		_, err := service.Update(context.Background(), beverages.ID, UpdateCategoryRequest{
			SetParent: true,
			ParentID:  &red.ID,
		})

		assertDomainCode(t, err, "CIRCULAR_REFERENCE")
		categoryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("re-parenting to root always passes the cycle check", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := newCategoryService(categoryRepo, new(MockProductRepository))

		beverages := namedCategory(t, "Beverages", nil)
		wine := namedCategory(t, "Wine", &beverages.ID)

		categoryRepo.On("FindByID", mock.Anything, wine.ID).Return(wine, nil)
		categoryRepo.On("Save", mock.Anything, wine).Return(nil)

		response, err := service.Update(context.Background(), wine.ID, UpdateCategoryRequest{SetParent: true})

		require.NoError(t, err)
		assert.Nil(t, response.ParentID)
	})
}

func TestCategoryService_Tree(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := newCategoryService(categoryRepo, new(MockProductRepository))

	beverages := namedCategory(t, "Beverages", nil)
	provisions := namedCategory(t, "Provisions", nil)
	wine := namedCategory(t, "Wine", &beverages.ID)
	red := namedCategory(t, "Red", &wine.ID)

	categoryRepo.On("FindAll", mock.Anything, mock.Anything).
		Return([]catalog.Category{*beverages, *provisions, *wine, *red}, nil)

	tree, err := service.Tree(context.Background())

	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "Beverages", tree[0].Name)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Wine", tree[0].Children[0].Name)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "Red", tree[0].Children[0].Children[0].Name)
	assert.Empty(t, tree[1].Children)
}

func TestCategoryService_Delete(t *testing.T) {
	t.Run("blocked while products reference it", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		service := newCategoryService(categoryRepo, productRepo)

		category := namedCategory(t, "Beverages", nil)
		categoryRepo.On("FindByID", mock.Anything, category.ID).Return(category, nil)
		productRepo.On("CountByCategory", mock.Anything, category.ID).Return(int64(4), nil)

		err := service.Delete(context.Background(), category.ID)

		assertDomainCode(t, err, "HAS_PRODUCTS")
		categoryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes an empty category", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		productRepo := new(MockProductRepository)
		service := newCategoryService(categoryRepo, productRepo)

		category := namedCategory(t, "Beverages", nil)
		categoryRepo.On("FindByID", mock.Anything, category.ID).Return(category, nil)
		productRepo.On("CountByCategory", mock.Anything, category.ID).Return(int64(0), nil)
		categoryRepo.On("Delete", mock.Anything, category.ID).Return(nil)

		require.NoError(t, service.Delete(context.Background(), category.ID))
		categoryRepo.AssertExpectations(t)
	})
}
