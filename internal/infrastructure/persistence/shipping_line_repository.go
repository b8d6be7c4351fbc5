package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/fulfillment"
	"github.com/vintrade/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormShippingLineRepository implements fulfillment.LineRepository using GORM
type GormShippingLineRepository struct {
	db *gorm.DB
}

// NewGormShippingLineRepository creates a new GormShippingLineRepository
func NewGormShippingLineRepository(db *gorm.DB) *GormShippingLineRepository {
	return &GormShippingLineRepository{db: db}
}

// FindByID finds a line by its ID
func (r *GormShippingLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.ShippingOrderLine, error) {
	var l fulfillment.ShippingOrderLine
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// FindByOrder finds the lines of an order
func (r *GormShippingLineRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]fulfillment.ShippingOrderLine, error) {
	var lines []fulfillment.ShippingOrderLine
	if err := r.db.WithContext(ctx).
		Where("shipping_order_id = ?", orderID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// FindByVoucher finds the live (non-cancelled) line for a voucher.
// At most one exists under the partial unique index.
func (r *GormShippingLineRepository) FindByVoucher(ctx context.Context, voucherID uuid.UUID) (*fulfillment.ShippingOrderLine, error) {
	var l fulfillment.ShippingOrderLine
	if err := r.db.WithContext(ctx).
		Where("voucher_id = ? AND status <> ?", voucherID, fulfillment.LineCancelled).
		First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// Create inserts a line
func (r *GormShippingLineRepository) Create(ctx context.Context, l *fulfillment.ShippingOrderLine) error {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save updates a line
func (r *GormShippingLineRepository) Save(ctx context.Context, l *fulfillment.ShippingOrderLine) error {
	return r.db.WithContext(ctx).Save(l).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormShippingLineRepository) SaveWithLock(ctx context.Context, l *fulfillment.ShippingOrderLine) error {
	result := r.db.WithContext(ctx).
		Model(l).
		Where("id = ? AND version = ?", l.ID, l.Version-1).
		Updates(map[string]interface{}{
			"status":               l.Status,
			"bound_bottle_serial":  l.BoundBottleSerial,
			"bound_case_id":        l.BoundCaseID,
			"early_binding_serial": l.EarlyBindingSerial,
			"binding_confirmed_at": l.BindingConfirmedAt,
			"binding_confirmed_by": l.BindingConfirmedBy,
			"version":              l.Version,
			"updated_at":           l.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Shipping order line was modified by another transaction")
	}
	return nil
}

// Ensure GormShippingLineRepository implements fulfillment.LineRepository
var _ fulfillment.LineRepository = (*GormShippingLineRepository)(nil)
