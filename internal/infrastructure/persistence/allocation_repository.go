package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/allocation"
	"github.com/vintrade/backend/internal/domain/shared"
	"github.com/vintrade/backend/internal/domain/shared/valueobject"
	"gorm.io/gorm"
)

// GormAllocationRepository implements allocation.Repository using GORM
type GormAllocationRepository struct {
	db *gorm.DB
}

// NewGormAllocationRepository creates a new GormAllocationRepository
func NewGormAllocationRepository(db *gorm.DB) *GormAllocationRepository {
	return &GormAllocationRepository{db: db}
}

// FindByID finds an allocation by its ID
func (r *GormAllocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*allocation.Allocation, error) {
	var a allocation.Allocation
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByProduct finds allocations for a product reference
func (r *GormAllocationRepository) FindByProduct(ctx context.Context, ref valueobject.ProductReference, filter shared.Filter) ([]allocation.Allocation, error) {
	var allocations []allocation.Allocation
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&allocation.Allocation{}).
			Where("product_ref = ?", ref),
		filter,
	)

	if err := query.Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

// FindByStatus finds allocations in a given status
func (r *GormAllocationRepository) FindByStatus(ctx context.Context, status allocation.Status, filter shared.Filter) ([]allocation.Allocation, error) {
	var allocations []allocation.Allocation
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&allocation.Allocation{}).
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

// FindAll finds all allocations matching the filter
func (r *GormAllocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]allocation.Allocation, error) {
	var allocations []allocation.Allocation
	query := r.applyFilter(r.db.WithContext(ctx).Model(&allocation.Allocation{}), filter)

	if err := query.Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

// Save creates or updates an allocation
func (r *GormAllocationRepository) Save(ctx context.Context, a *allocation.Allocation) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormAllocationRepository) SaveWithLock(ctx context.Context, a *allocation.Allocation) error {
	result := r.db.WithContext(ctx).
		Model(a).
		Where("id = ? AND version = ?", a.ID, a.Version-1).
		Updates(map[string]interface{}{
			"total_quantity": a.TotalQuantity,
			"status":         a.Status,
			"closed_at":      a.ClosedAt,
			"version":        a.Version,
			"updated_at":     a.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Allocation was modified by another transaction")
	}
	return nil
}

// ReserveSupply atomically increments sold_quantity within the supply
// bound. The whole check-and-increment is a single UPDATE so two
// concurrent sales cannot both pass a stale read of sold_quantity.
func (r *GormAllocationRepository) ReserveSupply(ctx context.Context, id uuid.UUID, qty int64) (*allocation.Allocation, error) {
	if qty <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Reserve quantity must be positive")
	}

	result := r.db.WithContext(ctx).
		Model(&allocation.Allocation{}).
		Where("id = ? AND status = ? AND sold_quantity + ? <= total_quantity", id, allocation.StatusActive, qty).
		Updates(map[string]interface{}{
			"sold_quantity": gorm.Expr("sold_quantity + ?", qty),
			"status":        gorm.Expr("CASE WHEN sold_quantity + ? >= total_quantity THEN ? ELSE status END", qty, allocation.StatusExhausted),
			"version":       gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing row from an exhausted one
		a, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if a.Status != allocation.StatusActive {
			return nil, shared.NewDomainErrorf(shared.CodeInvalidStateTransition,
				"Cannot reserve supply on allocation in status %q", a.Status)
		}
		return nil, shared.ErrInsufficientSupply
	}

	return r.FindByID(ctx, id)
}

// ReleaseSupply atomically decrements sold_quantity and reopens an
// exhausted allocation. Releasing more than was sold is a bookkeeping
// error and is rejected, mirroring the reservation's guarded UPDATE.
func (r *GormAllocationRepository) ReleaseSupply(ctx context.Context, id uuid.UUID, qty int64) (*allocation.Allocation, error) {
	if qty <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Release quantity must be positive")
	}

	result := r.db.WithContext(ctx).
		Model(&allocation.Allocation{}).
		Where("id = ? AND sold_quantity >= ?", id, qty).
		Updates(map[string]interface{}{
			"sold_quantity": gorm.Expr("sold_quantity - ?", qty),
			"status":        gorm.Expr("CASE WHEN status = ? THEN ? ELSE status END", allocation.StatusExhausted, allocation.StatusActive),
			"version":       gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing row from an over-release
		a, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, shared.NewDomainErrorf(shared.CodeInvalidStateTransition,
			"Cannot release %d units, allocation has only %d sold", qty, a.SoldQuantity)
	}

	return r.FindByID(ctx, id)
}

// Count counts allocations matching the filter
func (r *GormAllocationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&allocation.Allocation{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormAllocationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, AllocationSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormAllocationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "source_type":
			query = query.Where("source_type = ?", value)
		case "supply_form":
			query = query.Where("supply_form = ?", value)
		case "product_ref":
			query = query.Where("product_ref = ?", value)
		case "serialization_required":
			query = query.Where("serialization_required = ?", value)
		case "has_remaining":
			if value == true {
				query = query.Where("sold_quantity < total_quantity")
			}
		}
	}

	return query
}

// Ensure GormAllocationRepository implements allocation.Repository
var _ allocation.Repository = (*GormAllocationRepository)(nil)
