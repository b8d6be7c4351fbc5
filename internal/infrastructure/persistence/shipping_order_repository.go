package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/fulfillment"
	"github.com/vintrade/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormShippingOrderRepository implements fulfillment.OrderRepository using GORM
type GormShippingOrderRepository struct {
	db *gorm.DB
}

// NewGormShippingOrderRepository creates a new GormShippingOrderRepository
func NewGormShippingOrderRepository(db *gorm.DB) *GormShippingOrderRepository {
	return &GormShippingOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormShippingOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.ShippingOrder, error) {
	var o fulfillment.ShippingOrder
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByIDWithLines finds an order with its lines preloaded
func (r *GormShippingOrderRepository) FindByIDWithLines(ctx context.Context, id uuid.UUID) (*fulfillment.ShippingOrder, error) {
	var o fulfillment.ShippingOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByCustomer finds orders placed by a customer
func (r *GormShippingOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]fulfillment.ShippingOrder, error) {
	var orders []fulfillment.ShippingOrder
	query := r.db.WithContext(ctx).Model(&fulfillment.ShippingOrder{}).
		Where("customer_id = ?", customerID)

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "destination_channel":
			query = query.Where("destination_channel = ?", value)
		case "destination_geography":
			query = query.Where("destination_geography = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, ShippingOrderSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Create inserts an order with its lines. The line insert carries the
// partial unique index on voucher_id, so a voucher on a live line of
// another order rejects the whole order.
func (r *GormShippingOrderRepository) Create(ctx context.Context, o *fulfillment.ShippingOrder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(o).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save updates an order
func (r *GormShippingOrderRepository) Save(ctx context.Context, o *fulfillment.ShippingOrder) error {
	return r.db.WithContext(ctx).Omit("Lines").Save(o).Error
}

// Ensure GormShippingOrderRepository implements fulfillment.OrderRepository
var _ fulfillment.OrderRepository = (*GormShippingOrderRepository)(nil)
