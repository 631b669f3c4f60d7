package inventory

import (
	"context"

	"github.com/librestock/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the inventory
// repositories. Every quantity change and the ledger entry describing it
// are written through one scope execution, so they commit or roll back
// together.
type TransactionScope interface {
	// Execute runs fn inside a database transaction. An error from fn
	// rolls the transaction back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the inventory repositories bound to
// the current transaction.
type TransactionalRepositories interface {
	RecordRepo() inventory.RecordRepository
	MovementRepo() inventory.MovementRepository
}

// NoOpTransactionScope runs the function against plain repositories
// without a real transaction. Used in tests.
type NoOpTransactionScope struct {
	recordRepo   inventory.RecordRepository
	movementRepo inventory.MovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given
// repositories.
func NewNoOpTransactionScope(
	recordRepo inventory.RecordRepository,
	movementRepo inventory.MovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		recordRepo:   recordRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
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
