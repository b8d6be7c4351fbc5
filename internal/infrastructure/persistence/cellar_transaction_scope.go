package persistence

import (
	"context"

	appcellar "github.com/vintrade/backend/internal/application/cellar"
	"github.com/vintrade/backend/internal/domain/cellar"
	"gorm.io/gorm"
)

// GormCellarTransactionScope implements the cellar TransactionScope
// using GORM transactions. A movement and the state changes it drives
// on bottles and cases commit or roll back together.
type GormCellarTransactionScope struct {
	db *gorm.DB
}

// NewGormCellarTransactionScope creates a new GormCellarTransactionScope
func NewGormCellarTransactionScope(db *gorm.DB) *GormCellarTransactionScope {
	return &GormCellarTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormCellarTransactionScope) Execute(ctx context.Context, fn func(repos appcellar.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormCellarRepositories{tx: tx}
		return fn(repos)
	})
}

// gormCellarRepositories provides cellar repositories scoped to one transaction
type gormCellarRepositories struct {
	tx *gorm.DB
}

// BottleRepo returns the bottle repository scoped to the current transaction
func (r *gormCellarRepositories) BottleRepo() cellar.BottleRepository {
	return NewGormBottleRepository(r.tx)
}

// CaseRepo returns the physical case repository scoped to the current transaction
func (r *gormCellarRepositories) CaseRepo() cellar.PhysicalCaseRepository {
	return NewGormPhysicalCaseRepository(r.tx)
}

// BatchRepo returns the inbound batch repository scoped to the current transaction
func (r *gormCellarRepositories) BatchRepo() cellar.InboundBatchRepository {
	return NewGormInboundBatchRepository(r.tx)
}

// MovementRepo returns the movement repository scoped to the current transaction
func (r *gormCellarRepositories) MovementRepo() cellar.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

// ExceptionRepo returns the inventory exception repository scoped to the current transaction
func (r *gormCellarRepositories) ExceptionRepo() cellar.ExceptionRepository {
	return NewGormInventoryExceptionRepository(r.tx)
}

// Ensure GormCellarTransactionScope implements TransactionScope
var _ appcellar.TransactionScope = (*GormCellarTransactionScope)(nil)

// Ensure gormCellarRepositories implements TransactionalRepositories
var _ appcellar.TransactionalRepositories = (*gormCellarRepositories)(nil)
