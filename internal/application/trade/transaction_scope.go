package trade

import (
	"context"

	"github.com/librestock/backend/internal/domain/inventory"
	"github.com/librestock/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories a
// shipment touches. The status change, the stock deductions and the SALE
// ledger entries commit or roll back together.
type TransactionScope interface {
	// Execute runs fn inside a database transaction. An error from fn
	// rolls the transaction back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the current
// transaction.
type TransactionalRepositories interface {
	OrderRepo() trade.OrderRepository
	RecordRepo() inventory.RecordRepository
	MovementRepo() inventory.MovementRepository
}

// NoOpTransactionScope runs the function against plain repositories
// without a real transaction. Used in tests.
type NoOpTransactionScope struct {
	orderRepo    trade.OrderRepository
	recordRepo   inventory.RecordRepository
	movementRepo inventory.MovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given
// repositories.
func NewNoOpTransactionScope(
	orderRepo trade.OrderRepository,
	recordRepo inventory.RecordRepository,
	movementRepo inventory.MovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:    orderRepo,
		recordRepo:   recordRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() trade.OrderRepository {
	return s.orderRepo
}

// RecordRepo returns the inventory record repository
func (s *NoOpTransactionScope) RecordRepo() inventory.RecordRepository {
	return s.recordRepo
}

// MovementRepo returns the stock movement repository
func (s *NoOpTransactionScope) MovementRepo() inventory.MovementRepository {
	return s.movementRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
