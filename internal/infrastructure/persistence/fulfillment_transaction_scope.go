package persistence

import (
	"context"

	appfulfillment "github.com/vintrade/backend/internal/application/fulfillment"
	"github.com/vintrade/backend/internal/domain/cellar"
	"github.com/vintrade/backend/internal/domain/entitlement"
	"github.com/vintrade/backend/internal/domain/fulfillment"
	"gorm.io/gorm"
)

// GormFulfillmentTransactionScope implements the fulfillment
// TransactionScope using GORM transactions. A binding touches the
// line, the voucher and the bottle; all three move together.
type GormFulfillmentTransactionScope struct {
	db *gorm.DB
}

// NewGormFulfillmentTransactionScope creates a new GormFulfillmentTransactionScope
func NewGormFulfillmentTransactionScope(db *gorm.DB) *GormFulfillmentTransactionScope {
	return &GormFulfillmentTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormFulfillmentTransactionScope) Execute(ctx context.Context, fn func(repos appfulfillment.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormFulfillmentRepositories{tx: tx}
		return fn(repos)
	})
}

// gormFulfillmentRepositories provides fulfillment repositories scoped to one transaction
type gormFulfillmentRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the shipping order repository scoped to the current transaction
func (r *gormFulfillmentRepositories) OrderRepo() fulfillment.OrderRepository {
	return NewGormShippingOrderRepository(r.tx)
}

// LineRepo returns the shipping line repository scoped to the current transaction
func (r *gormFulfillmentRepositories) LineRepo() fulfillment.LineRepository {
	return NewGormShippingLineRepository(r.tx)
}

// ExceptionRepo returns the order exception repository scoped to the current transaction
func (r *gormFulfillmentRepositories) ExceptionRepo() fulfillment.OrderExceptionRepository {
	return NewGormOrderExceptionRepository(r.tx)
}

// VoucherRepo returns the voucher repository scoped to the current transaction
func (r *gormFulfillmentRepositories) VoucherRepo() entitlement.VoucherRepository {
	return NewGormVoucherRepository(r.tx)
}

// BottleRepo returns the bottle repository scoped to the current transaction
func (r *gormFulfillmentRepositories) BottleRepo() cellar.BottleRepository {
	return NewGormBottleRepository(r.tx)
}

// CaseRepo returns the physical case repository scoped to the current transaction
func (r *gormFulfillmentRepositories) CaseRepo() cellar.PhysicalCaseRepository {
	return NewGormPhysicalCaseRepository(r.tx)
}

// CaseEntitlementRepo returns the case entitlement repository scoped to the current transaction
func (r *gormFulfillmentRepositories) CaseEntitlementRepo() entitlement.CaseEntitlementRepository {
	return NewGormCaseEntitlementRepository(r.tx)
}

// Ensure GormFulfillmentTransactionScope implements TransactionScope
var _ appfulfillment.TransactionScope = (*GormFulfillmentTransactionScope)(nil)

// Ensure gormFulfillmentRepositories implements TransactionalRepositories
var _ appfulfillment.TransactionalRepositories = (*gormFulfillmentRepositories)(nil)
