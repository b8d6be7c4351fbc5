package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/cellar"
	"github.com/vintrade/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInventoryExceptionRepository implements cellar.ExceptionRepository using GORM
type GormInventoryExceptionRepository struct {
	db *gorm.DB
}

// NewGormInventoryExceptionRepository creates a new GormInventoryExceptionRepository
func NewGormInventoryExceptionRepository(db *gorm.DB) *GormInventoryExceptionRepository {
	return &GormInventoryExceptionRepository{db: db}
}

// FindByID finds an exception by its ID
func (r *GormInventoryExceptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*cellar.InventoryException, error) {
	var e cellar.InventoryException
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindOpen lists open exceptions, oldest first so the review queue
// surfaces the longest-waiting problems
func (r *GormInventoryExceptionRepository) FindOpen(ctx context.Context, filter shared.Filter) ([]cellar.InventoryException, error) {
	var exceptions []cellar.InventoryException
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&cellar.InventoryException{}).
			Where("status = ?", cellar.ExceptionOpen),
		filter, "created_at ASC",
	)

	if err := query.Find(&exceptions).Error; err != nil {
		return nil, err
	}
	return exceptions, nil
}

// FindByType lists exceptions of a type
func (r *GormInventoryExceptionRepository) FindByType(ctx context.Context, exceptionType cellar.ExceptionType, filter shared.Filter) ([]cellar.InventoryException, error) {
	var exceptions []cellar.InventoryException
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&cellar.InventoryException{}).
			Where("exception_type = ?", exceptionType),
		filter, "created_at DESC",
	)

	if err := query.Find(&exceptions).Error; err != nil {
		return nil, err
	}
	return exceptions, nil
}

// Create inserts an exception
func (r *GormInventoryExceptionRepository) Create(ctx context.Context, e *cellar.InventoryException) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// Save updates an exception
func (r *GormInventoryExceptionRepository) Save(ctx context.Context, e *cellar.InventoryException) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// CountOpen counts open exceptions
func (r *GormInventoryExceptionRepository) CountOpen(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&cellar.InventoryException{}).
		Where("status = ?", cellar.ExceptionOpen).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormInventoryExceptionRepository) applyFilter(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "exception_type":
			query = query.Where("exception_type = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "bottle_id":
			query = query.Where("bottle_id = ?", value)
		case "batch_id":
			query = query.Where("batch_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, InventoryExceptionSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order(defaultOrder)
	}

	return query
}

// Ensure GormInventoryExceptionRepository implements cellar.ExceptionRepository
var _ cellar.ExceptionRepository = (*GormInventoryExceptionRepository)(nil)
