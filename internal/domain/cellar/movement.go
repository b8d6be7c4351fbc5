package cellar

import (
	"time"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
)

// MovementType represents the kind of physical relocation
type MovementType string

const (
	MovementInbound      MovementType = "inbound"
	MovementPutaway      MovementType = "putaway"
	MovementPick         MovementType = "pick"
	MovementShip         MovementType = "ship"
	MovementTransfer     MovementType = "transfer"
	MovementAdjustment   MovementType = "adjustment"
	MovementCaseBreaking MovementType = "case_breaking"
)

// IsValid returns true if the movement type is valid
func (m MovementType) IsValid() bool {
	switch m {
	case MovementInbound, MovementPutaway, MovementPick, MovementShip,
		MovementTransfer, MovementAdjustment, MovementCaseBreaking:
		return true
	}
	return false
}

// MovementTrigger names who or what caused the movement
type MovementTrigger string

const (
	TriggerWMSEvent        MovementTrigger = "wms_event"
	TriggerERPOperator     MovementTrigger = "erp_operator"
	TriggerSystemAutomatic MovementTrigger = "system_automatic"
)

// IsValid returns true if the trigger is valid
func (t MovementTrigger) IsValid() bool {
	switch t {
	case TriggerWMSEvent, TriggerERPOperator, TriggerSystemAutomatic:
		return true
	}
	return false
}

// InventoryMovement is one line of the immutable movement ledger. Once
// created it is never modified; corrections are new movements. The
// nullable unique WMSEventID absorbs at-least-once WMS deliveries:
// a replayed event is a no-op, not an error.
type InventoryMovement struct {
	shared.BaseEntity
	MovementType          MovementType    `gorm:"type:varchar(30);not null;index"`
	Trigger               MovementTrigger `gorm:"type:varchar(30);not null"`
	SourceLocationID      *uuid.UUID      `gorm:"type:uuid"`
	DestinationLocationID *uuid.UUID      `gorm:"type:uuid"`
	CustodyChanged        bool            `gorm:"not null;default:false"`
	WMSEventID            *string         `gorm:"type:varchar(100);uniqueIndex"`
	RecordedBy            *uuid.UUID      `gorm:"type:uuid"`
	OccurredAt            time.Time       `gorm:"not null;index"`

	Items []MovementItem `gorm:"foreignKey:MovementID;references:ID"`
}

// TableName returns the table name for GORM
func (InventoryMovement) TableName() string {
	return "inventory_movements"
}

// MovementItem references one bottle or case moved by a movement
type MovementItem struct {
	shared.BaseEntity
	MovementID uuid.UUID  `gorm:"type:uuid;not null;index"`
	BottleID   *uuid.UUID `gorm:"type:uuid;index"`
	CaseID     *uuid.UUID `gorm:"type:uuid;index"`
	Quantity   int64      `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (MovementItem) TableName() string {
	return "movement_items"
}

// MovementItemInput describes one unit to move
type MovementItemInput struct {
	BottleID *uuid.UUID
	CaseID   *uuid.UUID
	Quantity int64
}

// NewInventoryMovement builds a movement with its items. Each item must
// reference exactly one of bottle or case.
func NewInventoryMovement(
	movementType MovementType,
	trigger MovementTrigger,
	source, destination *uuid.UUID,
	custodyChanged bool,
	wmsEventID *string,
	recordedBy *uuid.UUID,
	items []MovementItemInput,
) (*InventoryMovement, error) {
	if !movementType.IsValid() {
		return nil, shared.NewDomainErrorf("INVALID_MOVEMENT_TYPE", "Unknown movement type %q", movementType)
	}
	if !trigger.IsValid() {
		return nil, shared.NewDomainErrorf("INVALID_TRIGGER", "Unknown movement trigger %q", trigger)
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "A movement needs at least one item")
	}

	m := &InventoryMovement{
		BaseEntity:            shared.NewBaseEntity(),
		MovementType:          movementType,
		Trigger:               trigger,
		SourceLocationID:      source,
		DestinationLocationID: destination,
		CustodyChanged:        custodyChanged,
		WMSEventID:            wmsEventID,
		RecordedBy:            recordedBy,
		OccurredAt:            time.Now(),
	}

	for _, in := range items {
		if (in.BottleID == nil) == (in.CaseID == nil) {
			return nil, shared.NewDomainError("INVALID_ITEMS",
				"A movement item references exactly one bottle or one case")
		}
		qty := in.Quantity
		if qty <= 0 {
			qty = 1
		}
		m.Items = append(m.Items, MovementItem{
			BaseEntity: shared.NewBaseEntity(),
			MovementID: m.ID,
			BottleID:   in.BottleID,
			CaseID:     in.CaseID,
			Quantity:   qty,
		})
	}

	return m, nil
}
