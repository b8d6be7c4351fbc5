package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/cellar"
	"github.com/vintrade/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBottleRepository implements cellar.BottleRepository using GORM
type GormBottleRepository struct {
	db *gorm.DB
}

// NewGormBottleRepository creates a new GormBottleRepository
func NewGormBottleRepository(db *gorm.DB) *GormBottleRepository {
	return &GormBottleRepository{db: db}
}

// FindByID finds a bottle by its ID
func (r *GormBottleRepository) FindByID(ctx context.Context, id uuid.UUID) (*cellar.SerializedBottle, error) {
	var b cellar.SerializedBottle
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindBySerial finds a bottle by its serial number
func (r *GormBottleRepository) FindBySerial(ctx context.Context, serialNumber string) (*cellar.SerializedBottle, error) {
	var b cellar.SerializedBottle
	if err := r.db.WithContext(ctx).
		Where("serial_number = ?", serialNumber).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindByCase finds the bottles inside a physical case
func (r *GormBottleRepository) FindByCase(ctx context.Context, caseID uuid.UUID) ([]cellar.SerializedBottle, error) {
	var bottles []cellar.SerializedBottle
	if err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("serial_number ASC").
		Find(&bottles).Error; err != nil {
		return nil, err
	}
	return bottles, nil
}

// FindByBatch finds the bottles serialized from an inbound batch
func (r *GormBottleRepository) FindByBatch(ctx context.Context, batchID uuid.UUID) ([]cellar.SerializedBottle, error) {
	var bottles []cellar.SerializedBottle
	if err := r.db.WithContext(ctx).
		Where("inbound_batch_id = ?", batchID).
		Order("serial_number ASC").
		Find(&bottles).Error; err != nil {
		return nil, err
	}
	return bottles, nil
}

// FindAvailableByAllocation finds stored bottles of an allocation that
// are individually bindable. Bottles inside an intact case are excluded
// because pulling one would break the case.
func (r *GormBottleRepository) FindAvailableByAllocation(ctx context.Context, allocationID uuid.UUID, filter shared.Filter) ([]cellar.SerializedBottle, error) {
	var bottles []cellar.SerializedBottle
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&cellar.SerializedBottle{}).
			Where("allocation_id = ? AND state = ?", allocationID, cellar.BottleStored).
			Where("case_id IS NULL OR case_id IN (?)",
				r.db.Model(&cellar.PhysicalCase{}).Select("id").Where("integrity_status = ?", cellar.CaseBroken),
			),
		filter,
	)

	if err := query.Find(&bottles).Error; err != nil {
		return nil, err
	}
	return bottles, nil
}

// CreateBatch inserts a set of bottles
func (r *GormBottleRepository) CreateBatch(ctx context.Context, bottles []*cellar.SerializedBottle) error {
	if len(bottles) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(bottles).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save updates a bottle
func (r *GormBottleRepository) Save(ctx context.Context, b *cellar.SerializedBottle) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormBottleRepository) SaveWithLock(ctx context.Context, b *cellar.SerializedBottle) error {
	result := r.db.WithContext(ctx).
		Model(b).
		Where("id = ? AND version = ?", b.ID, b.Version-1).
		Updates(map[string]interface{}{
			"current_location_id": b.CurrentLocationID,
			"case_id":             b.CaseID,
			"state":               b.State,
			"correction_ref":      b.CorrectionRef,
			"version":             b.Version,
			"updated_at":          b.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Bottle was modified by another transaction")
	}
	return nil
}

// CountByState counts an allocation's bottles in a state
func (r *GormBottleRepository) CountByState(ctx context.Context, allocationID uuid.UUID, state cellar.BottleState) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&cellar.SerializedBottle{}).
		Where("allocation_id = ? AND state = ?", allocationID, state).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormBottleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "state":
			query = query.Where("state = ?", value)
		case "location_id":
			query = query.Where("current_location_id = ?", value)
		case "wine_variant_id":
			query = query.Where("wine_variant_id = ?", value)
		case "ownership_type":
			query = query.Where("ownership_type = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, BottleSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("serial_number ASC")
	}

	return query
}

// Ensure GormBottleRepository implements cellar.BottleRepository
var _ cellar.BottleRepository = (*GormBottleRepository)(nil)
