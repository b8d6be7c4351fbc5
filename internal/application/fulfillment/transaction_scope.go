package fulfillment

import (
	"context"

	"github.com/vintrade/backend/internal/domain/cellar"
	"github.com/vintrade/backend/internal/domain/entitlement"
	"github.com/vintrade/backend/internal/domain/fulfillment"
)

// TransactionScope provides transactional access to the repositories a
// binding touches. A bind moves a line, a voucher and a bottle
// together; partial writes would leave a voucher locked with no line
// holding it.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories scoped to one
// transaction
type TransactionalRepositories interface {
	// OrderRepo returns the shipping order repository scoped to the transaction
	OrderRepo() fulfillment.OrderRepository
	// LineRepo returns the order line repository scoped to the transaction
	LineRepo() fulfillment.LineRepository
	// ExceptionRepo returns the order exception repository scoped to the transaction
	ExceptionRepo() fulfillment.OrderExceptionRepository
	// VoucherRepo returns the voucher repository scoped to the transaction
	VoucherRepo() entitlement.VoucherRepository
	// BottleRepo returns the bottle repository scoped to the transaction
	BottleRepo() cellar.BottleRepository
	// CaseRepo returns the physical case repository scoped to the transaction
	CaseRepo() cellar.PhysicalCaseRepository
	// CaseEntitlementRepo returns the case entitlement repository scoped to the transaction
	CaseEntitlementRepo() entitlement.CaseEntitlementRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests.
type NoOpTransactionScope struct {
	orderRepo           fulfillment.OrderRepository
	lineRepo            fulfillment.LineRepository
	exceptionRepo       fulfillment.OrderExceptionRepository
	voucherRepo         entitlement.VoucherRepository
	bottleRepo          cellar.BottleRepository
	caseRepo            cellar.PhysicalCaseRepository
	caseEntitlementRepo entitlement.CaseEntitlementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	orderRepo fulfillment.OrderRepository,
	lineRepo fulfillment.LineRepository,
	exceptionRepo fulfillment.OrderExceptionRepository,
	voucherRepo entitlement.VoucherRepository,
	bottleRepo cellar.BottleRepository,
	caseRepo cellar.PhysicalCaseRepository,
	caseEntitlementRepo entitlement.CaseEntitlementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:           orderRepo,
		lineRepo:            lineRepo,
		exceptionRepo:       exceptionRepo,
		voucherRepo:         voucherRepo,
		bottleRepo:          bottleRepo,
		caseRepo:            caseRepo,
		caseEntitlementRepo: caseEntitlementRepo,
	}
}

// Execute runs the function without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the shipping order repository
func (s *NoOpTransactionScope) OrderRepo() fulfillment.OrderRepository { return s.orderRepo }

// LineRepo returns the order line repository
func (s *NoOpTransactionScope) LineRepo() fulfillment.LineRepository { return s.lineRepo }

// ExceptionRepo returns the order exception repository
func (s *NoOpTransactionScope) ExceptionRepo() fulfillment.OrderExceptionRepository {
	return s.exceptionRepo
}

// VoucherRepo returns the voucher repository
func (s *NoOpTransactionScope) VoucherRepo() entitlement.VoucherRepository { return s.voucherRepo }

// BottleRepo returns the bottle repository
func (s *NoOpTransactionScope) BottleRepo() cellar.BottleRepository { return s.bottleRepo }

// CaseRepo returns the physical case repository
func (s *NoOpTransactionScope) CaseRepo() cellar.PhysicalCaseRepository { return s.caseRepo }

// CaseEntitlementRepo returns the case entitlement repository
func (s *NoOpTransactionScope) CaseEntitlementRepo() entitlement.CaseEntitlementRepository {
	return s.caseEntitlementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
