package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/vintrade/backend/internal/domain/shared"
)

// GormAuditLog persists the append-only audit trail
type GormAuditLog struct {
	db *gorm.DB
}

// NewGormAuditLog creates a new GormAuditLog
func NewGormAuditLog(db *gorm.DB) *GormAuditLog {
	return &GormAuditLog{db: db}
}

// Append writes audit entries. Entries are immutable once written.
func (l *GormAuditLog) Append(ctx context.Context, entries ...*shared.AuditEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return l.db.WithContext(ctx).Create(entries).Error
}

// FindByEntity lists the change history of one entity, oldest first
func (l *GormAuditLog) FindByEntity(ctx context.Context, ref shared.AuditRef, filter shared.Filter) ([]shared.AuditEntry, error) {
	var entries []shared.AuditEntry
	query := l.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", ref.EntityType, ref.EntityID).
		Order("recorded_at ASC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
