package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/cellar"
	"github.com/vintrade/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPhysicalCaseRepository implements cellar.PhysicalCaseRepository using GORM
type GormPhysicalCaseRepository struct {
	db *gorm.DB
}

// NewGormPhysicalCaseRepository creates a new GormPhysicalCaseRepository
func NewGormPhysicalCaseRepository(db *gorm.DB) *GormPhysicalCaseRepository {
	return &GormPhysicalCaseRepository{db: db}
}

// FindByID finds a case with its member bottles preloaded
func (r *GormPhysicalCaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*cellar.PhysicalCase, error) {
	var c cellar.PhysicalCase
	if err := r.db.WithContext(ctx).
		Preload("Bottles").
		First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindIntactByAllocation finds sealed cases of an allocation
func (r *GormPhysicalCaseRepository) FindIntactByAllocation(ctx context.Context, allocationID uuid.UUID, filter shared.Filter) ([]cellar.PhysicalCase, error) {
	var cases []cellar.PhysicalCase
	query := r.db.WithContext(ctx).Model(&cellar.PhysicalCase{}).
		Preload("Bottles").
		Where("allocation_id = ? AND integrity_status = ?", allocationID, cellar.CaseIntact)

	for key, value := range filter.Filters {
		switch key {
		case "location_id":
			query = query.Where("current_location_id = ?", value)
		case "case_configuration_id":
			query = query.Where("case_configuration_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, PhysicalCaseSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&cases).Error; err != nil {
		return nil, err
	}
	return cases, nil
}

// CreateBatch inserts cases
func (r *GormPhysicalCaseRepository) CreateBatch(ctx context.Context, cases []*cellar.PhysicalCase) error {
	if len(cases) == 0 {
		return nil
	}
	// Omit the association so member bottles are inserted once, by the
	// bottle repository, not a second time through the case
	return r.db.WithContext(ctx).Omit("Bottles").Create(cases).Error
}

// Save updates a case
func (r *GormPhysicalCaseRepository) Save(ctx context.Context, c *cellar.PhysicalCase) error {
	return r.db.WithContext(ctx).Omit("Bottles").Save(c).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormPhysicalCaseRepository) SaveWithLock(ctx context.Context, c *cellar.PhysicalCase) error {
	result := r.db.WithContext(ctx).
		Model(c).
		Where("id = ? AND version = ?", c.ID, c.Version-1).
		Updates(map[string]interface{}{
			"current_location_id": c.CurrentLocationID,
			"integrity_status":    c.IntegrityStatus,
			"broken_at":           c.BrokenAt,
			"broken_by":           c.BrokenBy,
			"broken_reason":       c.BrokenReason,
			"version":             c.Version,
			"updated_at":          c.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Physical case was modified by another transaction")
	}
	return nil
}

// Ensure GormPhysicalCaseRepository implements cellar.PhysicalCaseRepository
var _ cellar.PhysicalCaseRepository = (*GormPhysicalCaseRepository)(nil)
