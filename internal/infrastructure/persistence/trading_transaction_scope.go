package persistence

import (
	"context"

	apptrading "github.com/vintrade/backend/internal/application/trading"
	"github.com/vintrade/backend/internal/domain/allocation"
	"github.com/vintrade/backend/internal/domain/entitlement"
	"gorm.io/gorm"
)

// GormTradingTransactionScope implements the trading TransactionScope
// using GORM transactions. Supply reservation and voucher issuance
// commit or roll back together.
type GormTradingTransactionScope struct {
	db *gorm.DB
}

// NewGormTradingTransactionScope creates a new GormTradingTransactionScope
func NewGormTradingTransactionScope(db *gorm.DB) *GormTradingTransactionScope {
	return &GormTradingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTradingTransactionScope) Execute(ctx context.Context, fn func(repos apptrading.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTradingRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTradingRepositories provides trading repositories scoped to one transaction
type gormTradingRepositories struct {
	tx *gorm.DB
}

// AllocationRepo returns the allocation repository scoped to the current transaction
func (r *gormTradingRepositories) AllocationRepo() allocation.Repository {
	return NewGormAllocationRepository(r.tx)
}

// VoucherRepo returns the voucher repository scoped to the current transaction
func (r *gormTradingRepositories) VoucherRepo() entitlement.VoucherRepository {
	return NewGormVoucherRepository(r.tx)
}

// CaseRepo returns the case entitlement repository scoped to the current transaction
func (r *gormTradingRepositories) CaseRepo() entitlement.CaseEntitlementRepository {
	return NewGormCaseEntitlementRepository(r.tx)
}

// Ensure GormTradingTransactionScope implements TransactionScope
var _ apptrading.TransactionScope = (*GormTradingTransactionScope)(nil)

// Ensure gormTradingRepositories implements TransactionalRepositories
var _ apptrading.TransactionalRepositories = (*gormTradingRepositories)(nil)
