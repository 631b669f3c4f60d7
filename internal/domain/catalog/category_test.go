package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	parentID := uuid.New()

	tests := []struct {
		name        string
		catName     string
		description string
		parentID    *uuid.UUID
		wantErr     bool
	}{
		{name: "root category", catName: "Beverages", description: "Drinks and mixers"},
		{name: "child category", catName: "Wine", parentID: &parentID},
		{name: "empty name", catName: "", wantErr: true},
		{name: "name too long", catName: strings.Repeat("c", 101), wantErr: true},
		{name: "description too long", catName: "Beverages", description: strings.Repeat("d", 501), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, err := NewCategory(tt.catName, tt.description, tt.parentID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.catName, category.Name)
			assert.Equal(t, tt.parentID, category.ParentID)
		})
	}
}

func TestCategory_SetParent(t *testing.T) {
	category, err := NewCategory("Beverages", "", nil)
	require.NoError(t, err)

	parentID := uuid.New()
	require.NoError(t, category.SetParent(&parentID))
	assert.Equal(t, &parentID, category.ParentID)

	require.NoError(t, category.SetParent(nil))
	assert.Nil(t, category.ParentID)

	err = category.SetParent(&category.ID)
	assert.Error(t, err, "self-parenting must be rejected")
}
