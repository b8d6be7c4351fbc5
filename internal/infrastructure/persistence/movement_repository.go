package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/cellar"
	"github.com/vintrade/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMovementRepository implements cellar.MovementRepository using GORM.
// The ledger is append-only; no update path exists on purpose.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// FindByID finds a movement with its items
func (r *GormMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*cellar.InventoryMovement, error) {
	var m cellar.InventoryMovement
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindByWMSEventID finds the movement recorded for a WMS event
func (r *GormMovementRepository) FindByWMSEventID(ctx context.Context, wmsEventID string) (*cellar.InventoryMovement, error) {
	var m cellar.InventoryMovement
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("wms_event_id = ?", wmsEventID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindByBottle lists the movements touching a bottle, newest first
func (r *GormMovementRepository) FindByBottle(ctx context.Context, bottleID uuid.UUID, filter shared.Filter) ([]cellar.InventoryMovement, error) {
	var movements []cellar.InventoryMovement
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&cellar.InventoryMovement{}).
			Preload("Items").
			Where("id IN (?)",
				r.db.Model(&cellar.MovementItem{}).Select("movement_id").Where("bottle_id = ?", bottleID),
			),
		filter,
	)

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindAll lists movements matching the filter
func (r *GormMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]cellar.InventoryMovement, error) {
	var movements []cellar.InventoryMovement
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&cellar.InventoryMovement{}).Preload("Items"),
		filter,
	)

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// Create appends a movement and its items atomically. The unique index
// on wms_event_id rejects a replayed WMS event; that surfaces as
// shared.ErrAlreadyExists so the caller can fetch the first recording.
func (r *GormMovementRepository) Create(ctx context.Context, m *cellar.InventoryMovement) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(m).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormMovementRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "movement_type":
			query = query.Where("movement_type = ?", value)
		case "trigger":
			query = query.Where("trigger = ?", value)
		case "source_location_id":
			query = query.Where("source_location_id = ?", value)
		case "destination_location_id":
			query = query.Where("destination_location_id = ?", value)
		case "occurred_after":
			query = query.Where("occurred_at >= ?", value)
		case "occurred_before":
			query = query.Where("occurred_at < ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, MovementSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("occurred_at DESC")
	}

	return query
}

// Ensure GormMovementRepository implements cellar.MovementRepository
var _ cellar.MovementRepository = (*GormMovementRepository)(nil)
