package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/entitlement"
	"github.com/vintrade/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCaseEntitlementRepository implements entitlement.CaseEntitlementRepository using GORM
type GormCaseEntitlementRepository struct {
	db *gorm.DB
}

// NewGormCaseEntitlementRepository creates a new GormCaseEntitlementRepository
func NewGormCaseEntitlementRepository(db *gorm.DB) *GormCaseEntitlementRepository {
	return &GormCaseEntitlementRepository{db: db}
}

// FindByID finds a case entitlement by its ID
func (r *GormCaseEntitlementRepository) FindByID(ctx context.Context, id uuid.UUID) (*entitlement.CaseEntitlement, error) {
	var c entitlement.CaseEntitlement
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByCustomer finds case entitlements held by a customer
func (r *GormCaseEntitlementRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]entitlement.CaseEntitlement, error) {
	var cases []entitlement.CaseEntitlement
	query := r.db.WithContext(ctx).Model(&entitlement.CaseEntitlement{}).
		Where("customer_id = ?", customerID)

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "sellable_sku_id":
			query = query.Where("sellable_sku_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, CaseEntitlementSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&cases).Error; err != nil {
		return nil, err
	}
	return cases, nil
}

// Create inserts a case entitlement
func (r *GormCaseEntitlementRepository) Create(ctx context.Context, c *entitlement.CaseEntitlement) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// Save updates a case entitlement
func (r *GormCaseEntitlementRepository) Save(ctx context.Context, c *entitlement.CaseEntitlement) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Ensure GormCaseEntitlementRepository implements entitlement.CaseEntitlementRepository
var _ entitlement.CaseEntitlementRepository = (*GormCaseEntitlementRepository)(nil)
