package cellar

import (
	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeSerializedBottle  = "SerializedBottle"
	AggregateTypePhysicalCase      = "PhysicalCase"
	AggregateTypeInboundBatch      = "InboundBatch"
	AggregateTypeInventoryMovement = "InventoryMovement"
)

// Event type constants
const (
	EventTypeBottleStateChanged = "BottleStateChanged"
	EventTypePhysicalCaseBroken = "PhysicalCaseBroken"
	EventTypeBatchSerialized    = "BatchSerialized"
	EventTypeMovementRecorded   = "MovementRecorded"
	EventTypeExceptionRaised    = "InventoryExceptionRaised"
)

// BottleStateChangedEvent is raised on every bottle state transition
type BottleStateChangedEvent struct {
	shared.BaseDomainEvent
	SerialNumber string      `json:"serial_number"`
	FromState    BottleState `json:"from_state"`
	ToState      BottleState `json:"to_state"`
}

// NewBottleStateChangedEvent creates a new BottleStateChangedEvent
func NewBottleStateChangedEvent(b *SerializedBottle, from BottleState) *BottleStateChangedEvent {
	return &BottleStateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBottleStateChanged, AggregateTypeSerializedBottle, b.ID),
		SerialNumber:    b.SerialNumber,
		FromState:       from,
		ToState:         b.State,
	}
}

// PhysicalCaseBrokenEvent is raised exactly once, when the case first breaks
type PhysicalCaseBrokenEvent struct {
	shared.BaseDomainEvent
	AllocationID uuid.UUID `json:"allocation_id"`
	Reason       string    `json:"reason"`
}

// NewPhysicalCaseBrokenEvent creates a new PhysicalCaseBrokenEvent
func NewPhysicalCaseBrokenEvent(c *PhysicalCase, reason string) *PhysicalCaseBrokenEvent {
	return &PhysicalCaseBrokenEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePhysicalCaseBroken, AggregateTypePhysicalCase, c.ID),
		AllocationID:    c.AllocationID,
		Reason:          reason,
	}
}

// BatchSerializedEvent is raised when an inbound batch finishes serialization
type BatchSerializedEvent struct {
	shared.BaseDomainEvent
	AllocationID     uuid.UUID `json:"allocation_id"`
	SerializedCount  int64     `json:"serialized_count"`
	ExpectedQuantity int64     `json:"expected_quantity"`
}

// NewBatchSerializedEvent creates a new BatchSerializedEvent
func NewBatchSerializedEvent(b *InboundBatch) *BatchSerializedEvent {
	return &BatchSerializedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeBatchSerialized, AggregateTypeInboundBatch, b.ID),
		AllocationID:     b.AllocationID,
		SerializedCount:  b.SerializedCount,
		ExpectedQuantity: b.ExpectedQuantity,
	}
}

// MovementRecordedEvent is raised when a ledger entry is persisted
type MovementRecordedEvent struct {
	shared.BaseDomainEvent
	MovementType   MovementType    `json:"movement_type"`
	Trigger        MovementTrigger `json:"trigger"`
	CustodyChanged bool            `json:"custody_changed"`
	WMSEventID     *string         `json:"wms_event_id,omitempty"`
	ItemCount      int             `json:"item_count"`
}

// NewMovementRecordedEvent creates a new MovementRecordedEvent
func NewMovementRecordedEvent(m *InventoryMovement) *MovementRecordedEvent {
	return &MovementRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMovementRecorded, AggregateTypeInventoryMovement, m.ID),
		MovementType:    m.MovementType,
		Trigger:         m.Trigger,
		CustodyChanged:  m.CustodyChanged,
		WMSEventID:      m.WMSEventID,
		ItemCount:       len(m.Items),
	}
}

// ExceptionRaisedEvent feeds the operator review queue
type ExceptionRaisedEvent struct {
	shared.BaseDomainEvent
	ExceptionType ExceptionType `json:"exception_type"`
	Detail        string        `json:"detail"`
}

// NewExceptionRaisedEvent creates a new ExceptionRaisedEvent
func NewExceptionRaisedEvent(e *InventoryException) *ExceptionRaisedEvent {
	return &ExceptionRaisedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExceptionRaised, "InventoryException", e.ID),
		ExceptionType:   e.ExceptionType,
		Detail:          e.Detail,
	}
}
