package cellar

import (
	"context"

	"github.com/vintrade/backend/internal/domain/cellar"
)

// TransactionScope provides transactional access to the cellar
// repositories. A movement and the bottle/case rows it touches must
// land in one transaction, as must a batch serialization and its
// bottle inserts.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the cellar repositories scoped to
// one transaction
type TransactionalRepositories interface {
	// BottleRepo returns the bottle repository scoped to the transaction
	BottleRepo() cellar.BottleRepository
	// CaseRepo returns the physical case repository scoped to the transaction
	CaseRepo() cellar.PhysicalCaseRepository
	// BatchRepo returns the inbound batch repository scoped to the transaction
	BatchRepo() cellar.InboundBatchRepository
	// MovementRepo returns the movement repository scoped to the transaction
	MovementRepo() cellar.MovementRepository
	// ExceptionRepo returns the exception repository scoped to the transaction
	ExceptionRepo() cellar.ExceptionRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests.
type NoOpTransactionScope struct {
	bottleRepo    cellar.BottleRepository
	caseRepo      cellar.PhysicalCaseRepository
	batchRepo     cellar.InboundBatchRepository
	movementRepo  cellar.MovementRepository
	exceptionRepo cellar.ExceptionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	bottleRepo cellar.BottleRepository,
	caseRepo cellar.PhysicalCaseRepository,
	batchRepo cellar.InboundBatchRepository,
	movementRepo cellar.MovementRepository,
	exceptionRepo cellar.ExceptionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		bottleRepo:    bottleRepo,
		caseRepo:      caseRepo,
		batchRepo:     batchRepo,
		movementRepo:  movementRepo,
		exceptionRepo: exceptionRepo,
	}
}

// Execute runs the function without a transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BottleRepo returns the bottle repository
func (s *NoOpTransactionScope) BottleRepo() cellar.BottleRepository { return s.bottleRepo }

// CaseRepo returns the physical case repository
func (s *NoOpTransactionScope) CaseRepo() cellar.PhysicalCaseRepository { return s.caseRepo }

// BatchRepo returns the inbound batch repository
func (s *NoOpTransactionScope) BatchRepo() cellar.InboundBatchRepository { return s.batchRepo }

// MovementRepo returns the movement repository
func (s *NoOpTransactionScope) MovementRepo() cellar.MovementRepository { return s.movementRepo }

// ExceptionRepo returns the exception repository
func (s *NoOpTransactionScope) ExceptionRepo() cellar.ExceptionRepository { return s.exceptionRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
