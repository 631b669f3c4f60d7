package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventoryapp "github.com/librestock/backend/internal/application/inventory"
	"github.com/librestock/backend/internal/domain/shared"
	"github.com/librestock/backend/internal/infrastructure/persistence"
)

func newInventoryService(tdb *TestDB) *inventoryapp.Service {
	return inventoryapp.NewService(
		persistence.NewGormInventoryTransactionScope(tdb.DB),
		persistence.NewGormInventoryRepository(tdb.DB),
		persistence.NewGormMovementRepository(tdb.DB),
		persistence.NewGormProductRepository(tdb.DB),
		persistence.NewGormLocationRepository(tdb.DB),
		nil,
	)
}

func TestInventoryFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	ctx := context.Background()
	svc := newInventoryService(tdb)

	userID := tdb.SeedUser("ops@example.com", "password123", "staff").ID
	category := tdb.SeedCategory("Beverages")
	product := tdb.SeedProduct("WTR-001", "Still Water 1L", category.ID)
	warehouse := tdb.SeedLocation("Main Warehouse")
	coldStore := tdb.SeedLocation("Cold Store")

	t.Run("receive creates a record and a ledger entry", func(t *testing.T) {
		expiry := time.Now().AddDate(0, 6, 0)
		record, err := svc.Receive(ctx, userID, inventoryapp.ReceiveStockRequest{
			ProductID:   product.ID,
			LocationID:  warehouse.ID,
			Quantity:    24,
			BatchNumber: "B-100",
			ExpiryDate:  &expiry,
		})
		require.NoError(t, err)
		assert.Equal(t, 24, record.Quantity)
		assert.Equal(t, "B-100", record.BatchNumber)

		movements, total, err := svc.ListMovements(ctx, inventoryapp.MovementListFilter{ProductID: &product.ID})
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		assert.Equal(t, "PURCHASE_RECEIVE", movements[0].Reason)
		assert.Nil(t, movements[0].FromLocationID)
		require.NotNil(t, movements[0].ToLocationID)
		assert.Equal(t, warehouse.ID, *movements[0].ToLocationID)
	})

	t.Run("receiving into the same slot tops it up", func(t *testing.T) {
		record, err := svc.Receive(ctx, userID, inventoryapp.ReceiveStockRequest{
			ProductID:   product.ID,
			LocationID:  warehouse.ID,
			Quantity:    12,
			BatchNumber: "B-100",
		})
		require.NoError(t, err)
		assert.Equal(t, 36, record.Quantity)

		records, total, err := svc.List(ctx, inventoryapp.RecordListFilter{ProductID: &product.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Len(t, records, 1)
	})

	t.Run("transfer moves stock between locations", func(t *testing.T) {
		destination, err := svc.Transfer(ctx, userID, inventoryapp.TransferStockRequest{
			ProductID:    product.ID,
			FromLocation: warehouse.ID,
			ToLocation:   coldStore.ID,
			BatchNumber:  "B-100",
			Quantity:     10,
		})
		require.NoError(t, err)
		assert.Equal(t, coldStore.ID, destination.LocationID)
		assert.Equal(t, 10, destination.Quantity)
		assert.Equal(t, "B-100", destination.BatchNumber)

		records, _, err := svc.List(ctx, inventoryapp.RecordListFilter{
			ProductID:  &product.ID,
			LocationID: &warehouse.ID,
		})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 26, records[0].Quantity)

		movements, _, err := svc.ListMovements(ctx, inventoryapp.MovementListFilter{
			ProductID: &product.ID,
			Reason:    "INTERNAL_TRANSFER",
		})
		require.NoError(t, err)
		require.Len(t, movements, 1)
		assert.Equal(t, 10, movements[0].Quantity)
	})

	t.Run("transfer fails when the source lacks stock", func(t *testing.T) {
		_, err := svc.Transfer(ctx, userID, inventoryapp.TransferStockRequest{
			ProductID:    product.ID,
			FromLocation: warehouse.ID,
			ToLocation:   coldStore.ID,
			BatchNumber:  "B-100",
			Quantity:     1000,
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	})

	t.Run("adjust writes a ledger entry with the given reason", func(t *testing.T) {
		records, _, err := svc.List(ctx, inventoryapp.RecordListFilter{
			ProductID:  &product.ID,
			LocationID: &coldStore.ID,
		})
		require.NoError(t, err)
		require.Len(t, records, 1)

		delta := -2
		record, err := svc.Adjust(ctx, userID, records[0].ID, inventoryapp.AdjustStockRequest{
			Delta:  &delta,
			Reason: "DAMAGED",
			Notes:  "dropped pallet",
		})
		require.NoError(t, err)
		assert.Equal(t, 8, record.Quantity)

		movements, _, err := svc.ListMovements(ctx, inventoryapp.MovementListFilter{
			ProductID: &product.ID,
			Reason:    "DAMAGED",
		})
		require.NoError(t, err)
		require.Len(t, movements, 1)
		assert.Equal(t, 2, movements[0].Quantity)
	})

	t.Run("expiring soon surfaces short-dated batches", func(t *testing.T) {
		soon := time.Now().AddDate(0, 0, 7)
		_, err := svc.Receive(ctx, userID, inventoryapp.ReceiveStockRequest{
			ProductID:   product.ID,
			LocationID:  warehouse.ID,
			Quantity:    6,
			BatchNumber: "B-SHORT",
			ExpiryDate:  &soon,
		})
		require.NoError(t, err)

		expiring, err := svc.ExpiringSoon(ctx, 14)
		require.NoError(t, err)
		require.Len(t, expiring, 1)
		assert.Equal(t, "B-SHORT", expiring[0].BatchNumber)
	})

	t.Run("only empty records can be deleted", func(t *testing.T) {
		records, _, err := svc.List(ctx, inventoryapp.RecordListFilter{
			ProductID:  &product.ID,
			LocationID: &coldStore.ID,
		})
		require.NoError(t, err)
		require.Len(t, records, 1)
		recordID := records[0].ID

		err = svc.Delete(ctx, recordID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)

		zero := 0
		_, err = svc.Adjust(ctx, userID, recordID, inventoryapp.AdjustStockRequest{
			NewQuantity: &zero,
			Reason:      "COUNT_CORRECTION",
		})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, recordID))

		_, err = svc.GetByID(ctx, recordID)
		assert.Error(t, err)
	})
}
