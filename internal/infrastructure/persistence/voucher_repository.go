package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/entitlement"
	"github.com/vintrade/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormVoucherRepository implements entitlement.VoucherRepository using GORM
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewGormVoucherRepository creates a new GormVoucherRepository
func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// FindByID finds a voucher by its ID
func (r *GormVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*entitlement.Voucher, error) {
	var v entitlement.Voucher
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// FindByCustomer finds vouchers held by a customer
func (r *GormVoucherRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]entitlement.Voucher, error) {
	var vouchers []entitlement.Voucher
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&entitlement.Voucher{}).
			Where("customer_id = ?", customerID),
		filter,
	)

	if err := query.Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

// FindByAllocation finds vouchers issued against an allocation
func (r *GormVoucherRepository) FindByAllocation(ctx context.Context, allocationID uuid.UUID, filter shared.Filter) ([]entitlement.Voucher, error) {
	var vouchers []entitlement.Voucher
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&entitlement.Voucher{}).
			Where("allocation_id = ?", allocationID),
		filter,
	)

	if err := query.Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

// FindBySaleReference finds the voucher set for an idempotency key
func (r *GormVoucherRepository) FindBySaleReference(ctx context.Context, allocationID, customerID uuid.UUID, saleReference string) ([]entitlement.Voucher, error) {
	var vouchers []entitlement.Voucher
	if err := r.db.WithContext(ctx).
		Where("allocation_id = ? AND customer_id = ? AND sale_reference = ?", allocationID, customerID, saleReference).
		Order("sale_ordinal ASC").
		Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

// FindByCaseEntitlement finds the member vouchers of a case
func (r *GormVoucherRepository) FindByCaseEntitlement(ctx context.Context, caseEntitlementID uuid.UUID) ([]entitlement.Voucher, error) {
	var vouchers []entitlement.Voucher
	if err := r.db.WithContext(ctx).
		Where("case_entitlement_id = ?", caseEntitlementID).
		Order("sale_ordinal ASC").
		Find(&vouchers).Error; err != nil {
		return nil, err
	}
	return vouchers, nil
}

// CreateSet inserts a voucher set in one statement so a concurrent
// duplicate sale either wins the whole set or loses the whole set
func (r *GormVoucherRepository) CreateSet(ctx context.Context, vouchers []*entitlement.Voucher) error {
	if len(vouchers) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(vouchers).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save updates a voucher
func (r *GormVoucherRepository) Save(ctx context.Context, v *entitlement.Voucher) error {
	return r.db.WithContext(ctx).Save(v).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormVoucherRepository) SaveWithLock(ctx context.Context, v *entitlement.Voucher) error {
	result := r.db.WithContext(ctx).
		Model(v).
		Where("id = ? AND version = ?", v.ID, v.Version-1).
		Updates(map[string]interface{}{
			"customer_id":         v.CustomerID,
			"case_entitlement_id": v.CaseEntitlementID,
			"lifecycle_state":     v.LifecycleState,
			"tradable":            v.Tradable,
			"giftable":            v.Giftable,
			"suspended":           v.Suspended,
			"requires_attention":  v.RequiresAttention,
			"attention_reason":    v.AttentionReason,
			"redeemed_at":         v.RedeemedAt,
			"cancelled_at":        v.CancelledAt,
			"version":             v.Version,
			"updated_at":          v.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Voucher was modified by another transaction")
	}
	return nil
}

// CountByAllocation counts non-cancelled vouchers for an allocation
func (r *GormVoucherRepository) CountByAllocation(ctx context.Context, allocationID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entitlement.Voucher{}).
		Where("allocation_id = ? AND lifecycle_state <> ?", allocationID, entitlement.StateCancelled).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormVoucherRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, VoucherSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormVoucherRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "lifecycle_state":
			query = query.Where("lifecycle_state = ?", value)
		case "allocation_id":
			query = query.Where("allocation_id = ?", value)
		case "wine_variant_id":
			query = query.Where("wine_variant_id = ?", value)
		case "suspended":
			query = query.Where("suspended = ?", value)
		case "requires_attention":
			query = query.Where("requires_attention = ?", value)
		case "in_case":
			if value == true {
				query = query.Where("case_entitlement_id IS NOT NULL")
			} else if value == false {
				query = query.Where("case_entitlement_id IS NULL")
			}
		}
	}

	return query
}

// Ensure GormVoucherRepository implements entitlement.VoucherRepository
var _ entitlement.VoucherRepository = (*GormVoucherRepository)(nil)
