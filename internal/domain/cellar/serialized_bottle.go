package cellar

import (
	"time"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
)

// BottleState represents the physical lifecycle of a serialized bottle
type BottleState string

const (
	BottleStored        BottleState = "stored"
	BottleReserved      BottleState = "reserved_for_picking"
	BottleShipped       BottleState = "shipped"
	BottleConsumed      BottleState = "consumed"
	BottleDestroyed     BottleState = "destroyed"
	BottleMissing       BottleState = "missing"
	BottleMisSerialized BottleState = "mis_serialized"
)

// IsValid returns true if the state is valid
func (s BottleState) IsValid() bool {
	switch s {
	case BottleStored, BottleReserved, BottleShipped, BottleConsumed,
		BottleDestroyed, BottleMissing, BottleMisSerialized:
		return true
	}
	return false
}

// IsTerminal returns true for states with no outgoing transitions
func (s BottleState) IsTerminal() bool {
	switch s {
	case BottleConsumed, BottleDestroyed, BottleMisSerialized:
		return true
	}
	return false
}

// bottleTransitions is the explicit transition table. Early-bound
// bottles ship straight from stored; missing bottles can resurface.
var bottleTransitions = map[BottleState][]BottleState{
	BottleStored:   {BottleReserved, BottleShipped, BottleConsumed, BottleDestroyed, BottleMissing, BottleMisSerialized},
	BottleReserved: {BottleShipped, BottleStored, BottleMissing},
	BottleShipped:  {BottleConsumed},
	BottleMissing:  {BottleStored, BottleDestroyed},
}

// CanTransitionBottle returns true if from -> to is a legal step
func CanTransitionBottle(from, to BottleState) bool {
	for _, next := range bottleTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OwnershipType mirrors the allocation source the bottle was drawn under
type OwnershipType string

const (
	OwnershipOwned       OwnershipType = "owned"
	OwnershipConsignment OwnershipType = "consignment"
	OwnershipCustody     OwnershipType = "custody"
)

// SerializedBottle is one physical bottle with a globally unique serial
// number. SerialNumber, AllocationID and InboundBatchID are immutable
// lineage: a bottle is never re-lineaged to a different allocation.
// State changes are the only mutation path.
type SerializedBottle struct {
	shared.BaseAggregateRoot
	SerialNumber      string        `gorm:"type:varchar(64);not null;uniqueIndex"`
	WineVariantID     uuid.UUID     `gorm:"type:uuid;not null"`
	FormatID          uuid.UUID     `gorm:"type:uuid;not null"`
	AllocationID      uuid.UUID     `gorm:"type:uuid;not null;index"`
	InboundBatchID    uuid.UUID     `gorm:"type:uuid;not null;index"`
	CurrentLocationID uuid.UUID     `gorm:"type:uuid;not null;index"`
	CaseID            *uuid.UUID    `gorm:"type:uuid;index"`
	OwnershipType     OwnershipType `gorm:"type:varchar(20);not null"`
	State             BottleState   `gorm:"type:varchar(30);not null;default:'stored';index"`
	CorrectionRef     *uuid.UUID    `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (SerializedBottle) TableName() string {
	return "serialized_bottles"
}

// NewSerializedBottle creates a stored bottle from an inbound batch
func NewSerializedBottle(
	serialNumber string,
	wineVariantID, formatID uuid.UUID,
	allocationID, inboundBatchID, locationID uuid.UUID,
	ownership OwnershipType,
) (*SerializedBottle, error) {
	if serialNumber == "" {
		return nil, shared.NewDomainError("INVALID_SERIAL", "Serial number is required")
	}
	if allocationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ALLOCATION", "Allocation lineage is required")
	}
	if inboundBatchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Inbound batch lineage is required")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location is required")
	}

	return &SerializedBottle{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SerialNumber:      serialNumber,
		WineVariantID:     wineVariantID,
		FormatID:          formatID,
		AllocationID:      allocationID,
		InboundBatchID:    inboundBatchID,
		CurrentLocationID: locationID,
		OwnershipType:     ownership,
		State:             BottleStored,
	}, nil
}

// TransitionTo moves the bottle state, rejecting illegal steps
func (b *SerializedBottle) TransitionTo(to BottleState) error {
	if !CanTransitionBottle(b.State, to) {
		return shared.NewDomainErrorf(shared.CodeInvalidStateTransition,
			"Bottle %s cannot move from %q to %q", b.SerialNumber, b.State, to)
	}
	from := b.State
	b.State = to
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	b.AddDomainEvent(NewBottleStateChangedEvent(b, from))
	return nil
}

// ReserveForPicking holds the bottle for a confirmed binding
func (b *SerializedBottle) ReserveForPicking() error {
	return b.TransitionTo(BottleReserved)
}

// ReleaseToStored returns a reserved bottle to the shelf
func (b *SerializedBottle) ReleaseToStored() error {
	if b.State != BottleReserved && b.State != BottleMissing {
		return shared.NewDomainErrorf(shared.CodeInvalidStateTransition,
			"Bottle %s cannot return to stored from %q", b.SerialNumber, b.State)
	}
	return b.TransitionTo(BottleStored)
}

// Ship marks the bottle as physically shipped
func (b *SerializedBottle) Ship() error {
	return b.TransitionTo(BottleShipped)
}

// MoveTo relocates the bottle. Movement is recorded by the ledger; the
// bottle only tracks its current location.
func (b *SerializedBottle) MoveTo(locationID uuid.UUID) error {
	if locationID == uuid.Nil {
		return shared.NewDomainError("INVALID_LOCATION", "Location is required")
	}
	if b.State.IsTerminal() {
		return shared.NewDomainErrorf(shared.CodeInvalidStateTransition,
			"Bottle %s in terminal state %q cannot move", b.SerialNumber, b.State)
	}
	b.CurrentLocationID = locationID
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// MarkMisSerialized retires a wrongly serialized record, pointing at
// the corrected bottle. Terminal.
func (b *SerializedBottle) MarkMisSerialized(correctionID uuid.UUID) error {
	if err := b.TransitionTo(BottleMisSerialized); err != nil {
		return err
	}
	b.CorrectionRef = &correctionID
	return nil
}

// AssignToCase places the bottle inside a physical case
func (b *SerializedBottle) AssignToCase(caseID uuid.UUID) {
	b.CaseID = &caseID
	b.UpdatedAt = time.Now()
}

// RemoveFromCase frees the bottle after its case is broken
func (b *SerializedBottle) RemoveFromCase() {
	b.CaseID = nil
	b.UpdatedAt = time.Now()
}
