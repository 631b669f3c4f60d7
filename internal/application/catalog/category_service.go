package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	auditapp "github.com/librestock/backend/internal/application/audit"
	"github.com/librestock/backend/internal/domain/audit"
	"github.com/librestock/backend/internal/domain/catalog"
	"github.com/librestock/backend/internal/domain/shared"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
	recorder     auditapp.Recorder
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	recorder auditapp.Recorder,
) *CategoryService {
	if recorder == nil {
		recorder = auditapp.NopRecorder{}
	}
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		recorder:     recorder,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
	}

	if req.ParentID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
	}

	category, err := catalog.NewCategory(req.Name, req.Description, req.ParentID)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionCreate,
		EntityType: "category",
		EntityID:   category.ID.String(),
		Changes:    &audit.Changes{After: ToCategoryResponse(category)},
	})

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, categoryID uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// List retrieves a flat page of categories
func (s *CategoryService) List(ctx context.Context, filter CategoryListFilter) ([]CategoryResponse, int64, error) {
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

	categories, err := s.categoryRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.categoryRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCategoryResponses(categories), total, nil
}

// Tree returns all categories as a nested forest. Built in two passes:
// group children by parent id, then attach subtrees starting from the
// roots.
func (s *CategoryService) Tree(ctx context.Context) ([]CategoryTreeNode, error) {
	categories, err := s.categoryRepo.FindAll(ctx, shared.Filter{
		OrderBy:  "name",
		OrderDir: "asc",
	})
	if err != nil {
		return nil, err
	}

	childrenOf := make(map[uuid.UUID][]*catalog.Category)
	var roots []*catalog.Category
	for i := range categories {
		c := &categories[i]
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c)
		}
	}

	var build func(c *catalog.Category) CategoryTreeNode
	build = func(c *catalog.Category) CategoryTreeNode {
		node := CategoryTreeNode{
			CategoryResponse: ToCategoryResponse(c),
			Children:         []CategoryTreeNode{},
		}
		for _, child := range childrenOf[c.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	tree := make([]CategoryTreeNode, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, build(root))
	}
	return tree, nil
}

// Update renames, re-describes or re-parents a category
func (s *CategoryService) Update(ctx context.Context, categoryID uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	before := ToCategoryResponse(category)

	if req.Name != nil && *req.Name != category.Name {
		exists, err := s.categoryRepo.ExistsByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
		}
	}

	if req.Name != nil || req.Description != nil {
		name := category.Name
		description := category.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := category.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.SetParent {
		if err := s.checkNoCycle(ctx, categoryID, req.ParentID); err != nil {
			return nil, err
		}
		if err := category.SetParent(req.ParentID); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionUpdate,
		EntityType: "category",
		EntityID:   category.ID.String(),
		Changes:    &audit.Changes{Before: before, After: response},
	})
	return &response, nil
}

// checkNoCycle walks the ancestor chain from the proposed parent to the
// root. Finding categoryID on the way, or a chain deeper than
// MaxCategoryDepth, means the re-parenting would close a loop.
func (s *CategoryService) checkNoCycle(ctx context.Context, categoryID uuid.UUID, parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}
	if *parentID == categoryID {
		return shared.NewDomainError("CIRCULAR_REFERENCE", "Category cannot be its own parent")
	}

	current := parentID
	for depth := 0; current != nil; depth++ {
		if depth >= catalog.MaxCategoryDepth {
			return shared.NewDomainError("CIRCULAR_REFERENCE", "Category tree is too deep")
		}

		ancestor, err := s.categoryRepo.FindByID(ctx, *current)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return err
		}
		if ancestor.ID == categoryID {
			return shared.NewDomainError("CIRCULAR_REFERENCE", "Category cannot be moved under its own descendant")
		}
		current = ancestor.ParentID
	}
	return nil
}

// Delete removes a category. Categories still referenced by products
// cannot be deleted; child categories are re-parented to the root by the
// database.
func (s *CategoryService) Delete(ctx context.Context, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return err
	}

	count, err := s.productRepo.CountByCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("HAS_PRODUCTS", "Category has products and cannot be deleted")
	}

	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		return err
	}

	s.recorder.Record(ctx, auditapp.Entry{
		Action:     audit.ActionDelete,
		EntityType: "category",
		EntityID:   categoryID.String(),
		Changes:    &audit.Changes{Before: ToCategoryResponse(category)},
	})
	return nil
}
