package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	categoryID := uuid.New()

	tests := []struct {
		name       string
		sku        string
		prodName   string
		categoryID uuid.UUID
		wantErr    bool
	}{
		{name: "valid product", sku: "prov-001", prodName: "Marine Pump", categoryID: categoryID},
		{name: "empty sku", sku: "", prodName: "Marine Pump", categoryID: categoryID, wantErr: true},
		{name: "sku too long", sku: strings.Repeat("X", 51), prodName: "Marine Pump", categoryID: categoryID, wantErr: true},
		{name: "empty name", sku: "PROV-001", prodName: "", categoryID: categoryID, wantErr: true},
		{name: "name too long", sku: "PROV-001", prodName: strings.Repeat("n", 201), categoryID: categoryID, wantErr: true},
		{name: "missing category", sku: "PROV-001", prodName: "Marine Pump", categoryID: uuid.Nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := NewProduct(tt.sku, tt.prodName, tt.categoryID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "PROV-001", product.SKU, "SKU should be uppercased")
			assert.True(t, product.IsActive)
			assert.False(t, product.IsPerishable)
			assert.Equal(t, 0, product.ReorderPoint)
			assert.NotEqual(t, uuid.Nil, product.ID)
		})
	}
}

func TestProduct_SetPricing(t *testing.T) {
	product, err := NewProduct("PROV-001", "Marine Pump", uuid.New())
	require.NoError(t, err)

	cost := decimal.NewFromFloat(10.50)
	price := decimal.NewFromFloat(15.75)

	require.NoError(t, product.SetPricing(&cost, &price, nil))
	assert.True(t, product.StandardCost.Equal(cost))
	assert.True(t, product.StandardPrice.Equal(price))
	assert.Nil(t, product.MarkupPercentage)

	negative := decimal.NewFromInt(-1)
	assert.Error(t, product.SetPricing(&negative, nil, nil))
}

func TestProduct_SetReorderPoint(t *testing.T) {
	product, err := NewProduct("PROV-001", "Marine Pump", uuid.New())
	require.NoError(t, err)

	require.NoError(t, product.SetReorderPoint(25))
	assert.Equal(t, 25, product.ReorderPoint)

	assert.Error(t, product.SetReorderPoint(-1))
}

func TestProduct_ActivateDeactivate(t *testing.T) {
	product, err := NewProduct("PROV-001", "Marine Pump", uuid.New())
	require.NoError(t, err)

	product.Deactivate()
	assert.False(t, product.IsActive)

	product.Activate()
	assert.True(t, product.IsActive)
}

func TestProduct_UpdateSKU(t *testing.T) {
	product, err := NewProduct("PROV-001", "Marine Pump", uuid.New())
	require.NoError(t, err)

	require.NoError(t, product.UpdateSKU(" prov-002 "))
	assert.Equal(t, "PROV-002", product.SKU)

	assert.Error(t, product.UpdateSKU(""))
}
