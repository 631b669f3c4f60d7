package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/librestock/backend/internal/domain/catalog"
	"github.com/librestock/backend/internal/domain/inventory"
	"github.com/librestock/backend/internal/domain/shared"
	"github.com/librestock/backend/internal/domain/warehouse"
)

// MockRecordRepository is a mock implementation of inventory.RecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Record), args.Error(1)
}

func (m *MockRecordRepository) FindBySlot(ctx context.Context, productID, locationID uuid.UUID, areaID *uuid.UUID, batchNumber string) (*inventory.Record, error) {
	args := m.Called(ctx, productID, locationID, areaID, batchNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Record), args.Error(1)
}

func (m *MockRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Record, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Record), args.Error(1)
}

func (m *MockRecordRepository) FindExpiringBefore(ctx context.Context, cutoff time.Time) ([]inventory.Record, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]inventory.Record), args.Error(1)
}

func (m *MockRecordRepository) Save(ctx context.Context, record *inventory.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordRepository) CountByLocation(ctx context.Context, locationID uuid.UUID) (int64, error) {
	args := m.Called(ctx, locationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordRepository) TotalQuantityByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

// MockMovementRepository is a mock implementation of inventory.MovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Movement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Movement), args.Error(1)
}

func (m *MockMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Movement, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Movement), args.Error(1)
}

func (m *MockMovementRepository) Save(ctx context.Context, movement *inventory.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[uuid.UUID]struct{}), args.Error(1)
}

func (m *MockProductRepository) FindExistingSKUs(ctx context.Context, skus []string) (map[string]struct{}, error) {
	args := m.Called(ctx, skus)
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

// MockLocationRepository is a mock implementation of warehouse.LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.Location), args.Error(1)
}

func (m *MockLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]warehouse.Location, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]warehouse.Location), args.Error(1)
}

func (m *MockLocationRepository) Save(ctx context.Context, location *warehouse.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLocationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type serviceMocks struct {
	recordRepo   *MockRecordRepository
	movementRepo *MockMovementRepository
	productRepo  *MockProductRepository
	locationRepo *MockLocationRepository
}

func newTestService(t *testing.T) (*Service, serviceMocks) {
	t.Helper()
	mocks := serviceMocks{
		recordRepo:   new(MockRecordRepository),
		movementRepo: new(MockMovementRepository),
		productRepo:  new(MockProductRepository),
		locationRepo: new(MockLocationRepository),
	}
	scope := NewNoOpTransactionScope(mocks.recordRepo, mocks.movementRepo)
	service := NewService(scope, mocks.recordRepo, mocks.movementRepo, mocks.productRepo, mocks.locationRepo, nil)
	return service, mocks
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func testProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("BEV-001", "Sparkling Water 750ml", uuid.New())
	require.NoError(t, err)
	return product
}

func testLocation(t *testing.T) *warehouse.Location {
	t.Helper()
	location, err := warehouse.NewLocation("Main Warehouse", warehouse.LocationTypeWarehouse)
	require.NoError(t, err)
	return location
}

func testRecord(t *testing.T, quantity int) *inventory.Record {
	t.Helper()
	record, err := inventory.NewRecord(uuid.New(), uuid.New(), nil, quantity)
	require.NoError(t, err)
	return record
}

func TestService_Receive(t *testing.T) {
	userID := uuid.New()
	product := testProduct(t)
	location := testLocation(t)

	t.Run("creates the slot on first receipt and writes the ledger", func(t *testing.T) {
		service, mocks := newTestService(t)

		mocks.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		mocks.locationRepo.On("FindByID", mock.Anything, location.ID).Return(location, nil)
		mocks.recordRepo.On("FindBySlot", mock.Anything, product.ID, location.ID, (*uuid.UUID)(nil), "LOT-7").
			Return(nil, shared.ErrNotFound)
		mocks.recordRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.Record")).Return(nil)
		mocks.movementRepo.On("Save", mock.Anything, mock.MatchedBy(func(m *inventory.Movement) bool {
			return m.Reason == inventory.ReasonPurchaseReceive &&
				m.FromLocationID == nil &&
				m.ToLocationID != nil && *m.ToLocationID == location.ID &&
				m.Quantity == 24 &&
				m.UserID == userID
		})).Return(nil)

		response, err := service.Receive(context.Background(), userID, ReceiveStockRequest{
			ProductID:   product.ID,
			LocationID:  location.ID,
			Quantity:    24,
			BatchNumber: "LOT-7",
		})

		require.NoError(t, err)
		assert.Equal(t, 24, response.Quantity)
		assert.Equal(t, "LOT-7", response.BatchNumber)
		mocks.movementRepo.AssertExpectations(t)
	})

	t.Run("tops up an existing slot", func(t *testing.T) {
		service, mocks := newTestService(t)

		existing := testRecord(t, 10)
		existing.ProductID = product.ID
		existing.LocationID = location.ID

		mocks.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		mocks.locationRepo.On("FindByID", mock.Anything, location.ID).Return(location, nil)
		mocks.recordRepo.On("FindBySlot", mock.Anything, product.ID, location.ID, (*uuid.UUID)(nil), "").
			Return(existing, nil)
		mocks.recordRepo.On("Save", mock.Anything, existing).Return(nil)
		mocks.movementRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.Movement")).Return(nil)

		response, err := service.Receive(context.Background(), userID, ReceiveStockRequest{
			ProductID:  product.ID,
			LocationID: location.ID,
			Quantity:   14,
		})

		require.NoError(t, err)
		assert.Equal(t, 24, response.Quantity)
	})

	t.Run("rejects an unknown product", func(t *testing.T) {
		service, mocks := newTestService(t)

		missing := uuid.New()
		mocks.productRepo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

		_, err := service.Receive(context.Background(), userID, ReceiveStockRequest{
			ProductID:  missing,
			LocationID: location.ID,
			Quantity:   1,
		})

		assertDomainCode(t, err, "INVALID_PRODUCT")
	})
}

func TestService_Adjust(t *testing.T) {
	userID := uuid.New()

	t.Run("negative delta below zero is rejected", func(t *testing.T) {
		service, mocks := newTestService(t)

		record := testRecord(t, 5)
		mocks.recordRepo.On("FindByID", mock.Anything, record.ID).Return(record, nil)

		delta := -8
		_, err := service.Adjust(context.Background(), userID, record.ID, AdjustStockRequest{
			Delta:  &delta,
			Reason: "WASTE",
		})

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, 5, record.Quantity, "quantity is untouched after a failed adjustment")
		mocks.movementRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("absolute count writes a COUNT_CORRECTION movement", func(t *testing.T) {
		service, mocks := newTestService(t)

		record := testRecord(t, 10)
		mocks.recordRepo.On("FindByID", mock.Anything, record.ID).Return(record, nil)
		mocks.recordRepo.On("Save", mock.Anything, record).Return(nil)
		mocks.movementRepo.On("Save", mock.Anything, mock.MatchedBy(func(m *inventory.Movement) bool {
			return m.Reason == inventory.ReasonCountCorrection && m.Quantity == 3 && m.FromLocationID != nil
		})).Return(nil)

		newQuantity := 7
		response, err := service.Adjust(context.Background(), userID, record.ID, AdjustStockRequest{
			NewQuantity: &newQuantity,
			Reason:      "COUNT_CORRECTION",
		})

		require.NoError(t, err)
		assert.Equal(t, 7, response.Quantity)
		mocks.movementRepo.AssertExpectations(t)
	})

	t.Run("requires exactly one of delta and new_quantity", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.Adjust(context.Background(), userID, uuid.New(), AdjustStockRequest{Reason: "WASTE"})

		assertDomainCode(t, err, "INVALID_INPUT")
	})

	t.Run("receive and transfer reasons are reserved", func(t *testing.T) {
		service, _ := newTestService(t)

		delta := 1
		_, err := service.Adjust(context.Background(), userID, uuid.New(), AdjustStockRequest{
			Delta:  &delta,
			Reason: "PURCHASE_RECEIVE",
		})

		assertDomainCode(t, err, "INVALID_INPUT")
	})
}

func TestService_Transfer(t *testing.T) {
	userID := uuid.New()
	product := testProduct(t)
	destination := testLocation(t)

	t.Run("moves stock and writes one INTERNAL_TRANSFER entry", func(t *testing.T) {
		service, mocks := newTestService(t)

		source := testRecord(t, 20)
		source.ProductID = product.ID

		mocks.locationRepo.On("FindByID", mock.Anything, destination.ID).Return(destination, nil)
		mocks.recordRepo.On("FindBySlot", mock.Anything, product.ID, source.LocationID, (*uuid.UUID)(nil), "").
			Return(source, nil)
		mocks.recordRepo.On("FindBySlot", mock.Anything, product.ID, destination.ID, (*uuid.UUID)(nil), "").
			Return(nil, shared.ErrNotFound)
		mocks.recordRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.Record")).Return(nil)
		mocks.movementRepo.On("Save", mock.Anything, mock.MatchedBy(func(m *inventory.Movement) bool {
			return m.Reason == inventory.ReasonInternalTransfer &&
				m.FromLocationID != nil && *m.FromLocationID == source.LocationID &&
				m.ToLocationID != nil && *m.ToLocationID == destination.ID &&
				m.Quantity == 15
		})).Return(nil)

		response, err := service.Transfer(context.Background(), userID, TransferStockRequest{
			ProductID:    product.ID,
			FromLocation: source.LocationID,
			ToLocation:   destination.ID,
			Quantity:     15,
		})

		require.NoError(t, err)
		assert.Equal(t, 5, source.Quantity)
		assert.Equal(t, 15, response.Quantity)
		assert.Equal(t, destination.ID, response.LocationID)
		mocks.movementRepo.AssertExpectations(t)
	})

	t.Run("insufficient stock aborts the transfer", func(t *testing.T) {
		service, mocks := newTestService(t)

		source := testRecord(t, 2)
		source.ProductID = product.ID

		mocks.locationRepo.On("FindByID", mock.Anything, destination.ID).Return(destination, nil)
		mocks.recordRepo.On("FindBySlot", mock.Anything, product.ID, source.LocationID, (*uuid.UUID)(nil), "").
			Return(source, nil)

		_, err := service.Transfer(context.Background(), userID, TransferStockRequest{
			ProductID:    product.ID,
			FromLocation: source.LocationID,
			ToLocation:   destination.ID,
			Quantity:     15,
		})

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		mocks.recordRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects a transfer onto the same slot", func(t *testing.T) {
		service, _ := newTestService(t)

		locationID := uuid.New()
		_, err := service.Transfer(context.Background(), userID, TransferStockRequest{
			ProductID:    product.ID,
			FromLocation: locationID,
			ToLocation:   locationID,
			Quantity:     1,
		})

		assertDomainCode(t, err, "INVALID_INPUT")
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("only empty records can be deleted", func(t *testing.T) {
		service, mocks := newTestService(t)

		record := testRecord(t, 4)
		mocks.recordRepo.On("FindByID", mock.Anything, record.ID).Return(record, nil)

		err := service.Delete(context.Background(), record.ID)

		assertDomainCode(t, err, "INVALID_STATE")
	})

	t.Run("deletes an empty record", func(t *testing.T) {
		service, mocks := newTestService(t)

		record := testRecord(t, 0)
		mocks.recordRepo.On("FindByID", mock.Anything, record.ID).Return(record, nil)
		mocks.recordRepo.On("Delete", mock.Anything, record.ID).Return(nil)

		require.NoError(t, service.Delete(context.Background(), record.ID))
	})
}

func TestService_List_ExpiryWindow(t *testing.T) {
	service, mocks := newTestService(t)

	days := 7
	mocks.recordRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		cutoff, ok := f.Filters["expiring_before"].(time.Time)
		return ok && time.Until(cutoff) > 6*24*time.Hour && time.Until(cutoff) <= 7*24*time.Hour
	})).Return([]inventory.Record{}, nil)
	mocks.recordRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

	_, _, err := service.List(context.Background(), RecordListFilter{ExpiringWithinDays: &days})

	require.NoError(t, err)
	mocks.recordRepo.AssertExpectations(t)
}
