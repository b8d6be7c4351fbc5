package trading

import (
	"context"

	"github.com/vintrade/backend/internal/domain/allocation"
	"github.com/vintrade/backend/internal/domain/entitlement"
)

// TransactionScope provides transactional access to the trading
// repositories. When a function executes within a scope, all
// repository operations share one database transaction and commit or
// roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories participating in
// a voucher issuance or cancellation transaction. Supply reservation
// (the allocation conditional update) and voucher creation must land
// in the same transaction or a crash between the two leaks supply.
type TransactionalRepositories interface {
	// AllocationRepo returns the allocation repository scoped to the transaction
	AllocationRepo() allocation.Repository
	// VoucherRepo returns the voucher repository scoped to the transaction
	VoucherRepo() entitlement.VoucherRepository
	// CaseRepo returns the case entitlement repository scoped to the transaction
	CaseRepo() entitlement.CaseEntitlementRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests.
type NoOpTransactionScope struct {
	allocationRepo allocation.Repository
	voucherRepo    entitlement.VoucherRepository
	caseRepo       entitlement.CaseEntitlementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	allocationRepo allocation.Repository,
	voucherRepo entitlement.VoucherRepository,
	caseRepo entitlement.CaseEntitlementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		allocationRepo: allocationRepo,
		voucherRepo:    voucherRepo,
		caseRepo:       caseRepo,
	}
}

// Execute runs the function without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// AllocationRepo returns the allocation repository
func (s *NoOpTransactionScope) AllocationRepo() allocation.Repository {
	return s.allocationRepo
}

// VoucherRepo returns the voucher repository
func (s *NoOpTransactionScope) VoucherRepo() entitlement.VoucherRepository {
	return s.voucherRepo
}

// CaseRepo returns the case entitlement repository
func (s *NoOpTransactionScope) CaseRepo() entitlement.CaseEntitlementRepository {
	return s.caseRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
