package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/librestock/backend/internal/domain/shared"
)

// MaxCategoryDepth bounds the ancestor walk when re-parenting; the tree is
// expected to stay much shallower in practice.
const MaxCategoryDepth = 32

// Category groups products into a cycle-free tree.
// A nil ParentID marks a root category.
type Category struct {
	shared.BaseEntity
	Name        string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string     `gorm:"type:varchar(500)"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, description string, parentID *uuid.UUID) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := validateCategoryDescription(description); err != nil {
		return nil, err
	}

	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		ParentID:    parentID,
	}, nil
}

// Update updates the category's name and description
func (c *Category) Update(name, description string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}
	if err := validateCategoryDescription(description); err != nil {
		return err
	}

	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
	return nil
}

// SetParent re-parents the category. The caller is responsible for the
// ancestor cycle check before persisting.
func (c *Category) SetParent(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == c.ID {
		return shared.NewDomainError("CIRCULAR_REFERENCE", "Category cannot be its own parent")
	}
	c.ParentID = parentID
	c.UpdatedAt = time.Now()
	return nil
}

func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_INPUT", "Category name cannot exceed 100 characters")
	}
	return nil
}

func validateCategoryDescription(description string) error {
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_INPUT", "Category description cannot exceed 500 characters")
	}
	return nil
}
