package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/cellar"
	"github.com/vintrade/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInboundBatchRepository implements cellar.InboundBatchRepository using GORM
type GormInboundBatchRepository struct {
	db *gorm.DB
}

// NewGormInboundBatchRepository creates a new GormInboundBatchRepository
func NewGormInboundBatchRepository(db *gorm.DB) *GormInboundBatchRepository {
	return &GormInboundBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormInboundBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*cellar.InboundBatch, error) {
	var b cellar.InboundBatch
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindByAllocation finds batches received against an allocation
func (r *GormInboundBatchRepository) FindByAllocation(ctx context.Context, allocationID uuid.UUID, filter shared.Filter) ([]cellar.InboundBatch, error) {
	var batches []cellar.InboundBatch
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&cellar.InboundBatch{}).
			Where("allocation_id = ?", allocationID),
		filter,
	)

	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindPendingSerialization finds received batches awaiting serialization
func (r *GormInboundBatchRepository) FindPendingSerialization(ctx context.Context, filter shared.Filter) ([]cellar.InboundBatch, error) {
	var batches []cellar.InboundBatch
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&cellar.InboundBatch{}).
			Where("status = ?", cellar.BatchReceived),
		filter,
	)

	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// Create inserts a batch
func (r *GormInboundBatchRepository) Create(ctx context.Context, b *cellar.InboundBatch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// Save updates a batch
func (r *GormInboundBatchRepository) Save(ctx context.Context, b *cellar.InboundBatch) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// applyFilter applies filter options to the query
func (r *GormInboundBatchRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "location_id":
			query = query.Where("location_id = ?", value)
		case "purchase_order_ref":
			query = query.Where("purchase_order_ref = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, InboundBatchSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("received_at DESC")
	}

	return query
}

// Ensure GormInboundBatchRepository implements cellar.InboundBatchRepository
var _ cellar.InboundBatchRepository = (*GormInboundBatchRepository)(nil)
