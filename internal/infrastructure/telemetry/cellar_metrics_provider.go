// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCellarMetricsProvider implements CellarMetricsProvider using GORM.
// It queries the serialized_bottles, inventory_exceptions, and allocations
// tables directly for aggregated metrics.
type GormCellarMetricsProvider struct {
	db *gorm.DB
}

// NewGormCellarMetricsProvider creates a new GormCellarMetricsProvider.
func NewGormCellarMetricsProvider(db *gorm.DB) *GormCellarMetricsProvider {
	return &GormCellarMetricsProvider{db: db}
}

// GetBottleCountsByState returns the number of serialized bottles per lifecycle state.
func (p *GormCellarMetricsProvider) GetBottleCountsByState(ctx context.Context) (map[string]int64, error) {
	type result struct {
		State string `gorm:"column:state"`
		Count int64  `gorm:"column:count"`
	}

	var results []result
	err := p.db.WithContext(ctx).
		Table("serialized_bottles").
		Select("state, COUNT(*) as count").
		Group("state").
		Find(&results).Error

	if err != nil {
		return nil, err
	}

	m := make(map[string]int64, len(results))
	for _, r := range results {
		m[r.State] = r.Count
	}

	return m, nil
}

// GetOpenExceptionCount returns the number of unresolved inventory exceptions.
func (p *GormCellarMetricsProvider) GetOpenExceptionCount(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("inventory_exceptions").
		Where("status = ?", "open").
		Count(&count).Error

	return count, err
}

// GetAllocationHeadroom returns remaining sellable quantity per active allocation.
func (p *GormCellarMetricsProvider) GetAllocationHeadroom(ctx context.Context) (map[uuid.UUID]int64, error) {
	type result struct {
		AllocationID uuid.UUID `gorm:"column:allocation_id"`
		Remaining    int64     `gorm:"column:remaining"`
	}

	var results []result
	err := p.db.WithContext(ctx).
		Table("allocations").
		Select("id as allocation_id, total_quantity - sold_quantity as remaining").
		Where("status = ?", "active").
		Find(&results).Error

	if err != nil {
		return nil, err
	}

	m := make(map[uuid.UUID]int64, len(results))
	for _, r := range results {
		m[r.AllocationID] = r.Remaining
	}

	return m, nil
}
