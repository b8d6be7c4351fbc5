package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/entitlement"
	"github.com/vintrade/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTransferRepository implements entitlement.TransferRepository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// FindByID finds a transfer by its ID
func (r *GormTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*entitlement.VoucherTransfer, error) {
	var t entitlement.VoucherTransfer
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindPendingByVoucher returns the pending transfer for a voucher
func (r *GormTransferRepository) FindPendingByVoucher(ctx context.Context, voucherID uuid.UUID) (*entitlement.VoucherTransfer, error) {
	var t entitlement.VoucherTransfer
	if err := r.db.WithContext(ctx).
		Where("voucher_id = ? AND status = ?", voucherID, entitlement.TransferPending).
		First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByVoucher lists all transfers of a voucher
func (r *GormTransferRepository) FindByVoucher(ctx context.Context, voucherID uuid.UUID, filter shared.Filter) ([]entitlement.VoucherTransfer, error) {
	var transfers []entitlement.VoucherTransfer
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&entitlement.VoucherTransfer{}).
			Where("voucher_id = ?", voucherID),
		filter,
	)

	if err := query.Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// FindExpiredPending finds pending transfers whose deadline passed before cutoff
func (r *GormTransferRepository) FindExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]entitlement.VoucherTransfer, error) {
	var transfers []entitlement.VoucherTransfer
	query := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", entitlement.TransferPending, cutoff).
		Order("expires_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// Create inserts a pending transfer. The partial unique index on
// (voucher_id) WHERE status='pending' makes the second initiator lose.
func (r *GormTransferRepository) Create(ctx context.Context, t *entitlement.VoucherTransfer) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save updates a transfer
func (r *GormTransferRepository) Save(ctx context.Context, t *entitlement.VoucherTransfer) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// applyFilter applies filter options to the query
func (r *GormTransferRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "to_customer_id":
			query = query.Where("to_customer_id = ?", value)
		case "from_customer_id":
			query = query.Where("from_customer_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, TransferSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormTransferRepository implements entitlement.TransferRepository
var _ entitlement.TransferRepository = (*GormTransferRepository)(nil)
