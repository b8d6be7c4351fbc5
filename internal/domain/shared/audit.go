package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditEntityType is the closed set of entity kinds that appear in the
// audit trail. A typed reference avoids reflection-driven polymorphism.
type AuditEntityType string

const (
	AuditEntityAllocation      AuditEntityType = "allocation"
	AuditEntityVoucher         AuditEntityType = "voucher"
	AuditEntityVoucherTransfer AuditEntityType = "voucher_transfer"
	AuditEntityCaseEntitlement AuditEntityType = "case_entitlement"
	AuditEntityBottle          AuditEntityType = "serialized_bottle"
	AuditEntityPhysicalCase    AuditEntityType = "physical_case"
	AuditEntityShippingLine    AuditEntityType = "shipping_order_line"
	AuditEntityMovement        AuditEntityType = "inventory_movement"
	AuditEntityException       AuditEntityType = "inventory_exception"
)

// AuditRef is a typed reference to an audited entity
type AuditRef struct {
	EntityType AuditEntityType `gorm:"type:varchar(40);not null;index:idx_audit_entity,priority:1" json:"entity_type"`
	EntityID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_audit_entity,priority:2" json:"entity_id"`
}

// AuditEntry is one immutable line of the change history. Entries are
// append-only; corrections append new entries rather than rewriting.
type AuditEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AuditRef   `gorm:"embedded"`
	Action     string     `gorm:"type:varchar(60);not null"`
	Detail     string     `gorm:"type:text"`
	ActorID    *uuid.UUID `gorm:"type:uuid"`
	RecordedAt time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditEntry) TableName() string {
	return "audit_entries"
}

// NewAuditEntry creates an audit entry for an entity state change
func NewAuditEntry(ref AuditRef, action, detail string, actorID *uuid.UUID) *AuditEntry {
	return &AuditEntry{
		ID:         uuid.New(),
		AuditRef:   ref,
		Action:     action,
		Detail:     detail,
		ActorID:    actorID,
		RecordedAt: time.Now(),
	}
}

// AuditLog appends entries to the immutable audit trail
type AuditLog interface {
	Append(ctx context.Context, entries ...*AuditEntry) error
	FindByEntity(ctx context.Context, ref AuditRef, filter Filter) ([]AuditEntry, error)
}
