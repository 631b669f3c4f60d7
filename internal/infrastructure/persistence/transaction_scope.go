package persistence

import (
	"context"

	"gorm.io/gorm"

	inventoryapp "github.com/librestock/backend/internal/application/inventory"
	tradeapp "github.com/librestock/backend/internal/application/trade"
	"github.com/librestock/backend/internal/domain/inventory"
	"github.com/librestock/backend/internal/domain/trade"
)

// GormInventoryTransactionScope runs inventory writes and their ledger
// entries in one database transaction.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs fn inside a transaction; an error rolls it back
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos inventoryapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryTransactionalRepositories{tx: tx})
	})
}

type gormInventoryTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormInventoryTransactionalRepositories) RecordRepo() inventory.RecordRepository {
	return NewGormInventoryRepository(r.tx)
}

func (r *gormInventoryTransactionalRepositories) MovementRepo() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

var (
	_ inventoryapp.TransactionScope          = (*GormInventoryTransactionScope)(nil)
	_ inventoryapp.TransactionalRepositories = (*gormInventoryTransactionalRepositories)(nil)
)

// GormTradeTransactionScope runs a shipment's order update, stock
// deductions and SALE ledger entries in one database transaction.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs fn inside a transaction; an error rolls it back
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos tradeapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTradeTransactionalRepositories{tx: tx})
	})
}

type gormTradeTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTradeTransactionalRepositories) OrderRepo() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTradeTransactionalRepositories) RecordRepo() inventory.RecordRepository {
	return NewGormInventoryRepository(r.tx)
}

func (r *gormTradeTransactionalRepositories) MovementRepo() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

var (
	_ tradeapp.TransactionScope          = (*GormTradeTransactionScope)(nil)
	_ tradeapp.TransactionalRepositories = (*gormTradeTransactionalRepositories)(nil)
)
