package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/fulfillment"
	"github.com/vintrade/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderExceptionRepository implements fulfillment.OrderExceptionRepository using GORM
type GormOrderExceptionRepository struct {
	db *gorm.DB
}

// NewGormOrderExceptionRepository creates a new GormOrderExceptionRepository
func NewGormOrderExceptionRepository(db *gorm.DB) *GormOrderExceptionRepository {
	return &GormOrderExceptionRepository{db: db}
}

// FindByID finds an exception by its ID
func (r *GormOrderExceptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.ShippingOrderException, error) {
	var e fulfillment.ShippingOrderException
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindOpenByOrder finds the open exceptions against an order
func (r *GormOrderExceptionRepository) FindOpenByOrder(ctx context.Context, orderID uuid.UUID) ([]fulfillment.ShippingOrderException, error) {
	var exceptions []fulfillment.ShippingOrderException
	if err := r.db.WithContext(ctx).
		Where("shipping_order_id = ? AND status = ?", orderID, fulfillment.ExceptionOpen).
		Order("created_at ASC").
		Find(&exceptions).Error; err != nil {
		return nil, err
	}
	return exceptions, nil
}

// FindOpenByLine finds the open exceptions against a line
func (r *GormOrderExceptionRepository) FindOpenByLine(ctx context.Context, lineID uuid.UUID) ([]fulfillment.ShippingOrderException, error) {
	var exceptions []fulfillment.ShippingOrderException
	if err := r.db.WithContext(ctx).
		Where("line_id = ? AND status = ?", lineID, fulfillment.ExceptionOpen).
		Order("created_at ASC").
		Find(&exceptions).Error; err != nil {
		return nil, err
	}
	return exceptions, nil
}

// FindOpen lists open exceptions, oldest first
func (r *GormOrderExceptionRepository) FindOpen(ctx context.Context, filter shared.Filter) ([]fulfillment.ShippingOrderException, error) {
	var exceptions []fulfillment.ShippingOrderException
	query := r.db.WithContext(ctx).Model(&fulfillment.ShippingOrderException{}).
		Where("status = ?", fulfillment.ExceptionOpen)

	for key, value := range filter.Filters {
		switch key {
		case "exception_type":
			query = query.Where("exception_type = ?", value)
		case "shipping_order_id":
			query = query.Where("shipping_order_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, OrderExceptionSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at ASC")
	}

	if err := query.Find(&exceptions).Error; err != nil {
		return nil, err
	}
	return exceptions, nil
}

// Create inserts an exception
func (r *GormOrderExceptionRepository) Create(ctx context.Context, e *fulfillment.ShippingOrderException) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// Save updates an exception
func (r *GormOrderExceptionRepository) Save(ctx context.Context, e *fulfillment.ShippingOrderException) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// Ensure GormOrderExceptionRepository implements fulfillment.OrderExceptionRepository
var _ fulfillment.OrderExceptionRepository = (*GormOrderExceptionRepository)(nil)
