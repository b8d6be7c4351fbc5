package fulfillment

import (
	"time"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
)

// LineStatus represents the shipping order line lifecycle
type LineStatus string

const (
	LinePending   LineStatus = "pending"
	LineValidated LineStatus = "validated"
	LinePicked    LineStatus = "picked"
	LineShipped   LineStatus = "shipped"
	LineCancelled LineStatus = "cancelled"
)

// IsValid returns true if the status is valid
func (s LineStatus) IsValid() bool {
	switch s {
	case LinePending, LineValidated, LinePicked, LineShipped, LineCancelled:
		return true
	}
	return false
}

var lineTransitions = map[LineStatus][]LineStatus{
	LinePending:   {LineValidated, LineCancelled},
	LineValidated: {LinePicked, LineCancelled},
	LinePicked:    {LineShipped, LineCancelled},
}

// CanTransitionLine returns true if from -> to is a legal step
func CanTransitionLine(from, to LineStatus) bool {
	for _, next := range lineTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ShippingOrderLine carries one voucher toward one physical bottle.
// AllocationID is copied from the voucher at creation and never
// changes. Exactly one of BoundBottleSerial, BoundCaseID and
// EarlyBindingSerial may ever be filled, and the fill is one-way;
// cancellation clears it, nothing else does.
type ShippingOrderLine struct {
	shared.BaseAggregateRoot
	ShippingOrderID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	VoucherID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	AllocationID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status             LineStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	BoundBottleSerial  *string    `gorm:"type:varchar(64);index"`
	BoundCaseID        *uuid.UUID `gorm:"type:uuid"`
	EarlyBindingSerial *string    `gorm:"type:varchar(64)"`
	BindingConfirmedAt *time.Time `gorm:"type:timestamp"`
	BindingConfirmedBy *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ShippingOrderLine) TableName() string {
	return "shipping_order_lines"
}

// NewShippingOrderLine creates a pending line for a voucher. The
// (voucher_id, shipping_order_id) pair is unique among non-cancelled
// lines; that partial index lives in the migration, not in a tag.
func NewShippingOrderLine(orderID, voucherID, allocationID uuid.UUID) (*ShippingOrderLine, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Shipping order ID is required")
	}
	if voucherID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VOUCHER", "Voucher ID is required")
	}
	if allocationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ALLOCATION", "Allocation lineage is required")
	}

	return &ShippingOrderLine{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ShippingOrderID:   orderID,
		VoucherID:         voucherID,
		AllocationID:      allocationID,
		Status:            LinePending,
	}, nil
}

// transition moves the line status, rejecting illegal steps
func (l *ShippingOrderLine) transition(to LineStatus) error {
	if !CanTransitionLine(l.Status, to) {
		return shared.NewDomainErrorf(shared.CodeInvalidStateTransition,
			"Line cannot move from %q to %q", l.Status, to)
	}
	l.Status = to
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}

// BindingCount returns how many binding fields are filled
func (l *ShippingOrderLine) BindingCount() int {
	n := 0
	if l.BoundBottleSerial != nil {
		n++
	}
	if l.BoundCaseID != nil {
		n++
	}
	if l.EarlyBindingSerial != nil {
		n++
	}
	return n
}

// IsBound returns true when exactly one binding field is filled
func (l *ShippingOrderLine) IsBound() bool {
	return l.BindingCount() == 1
}

// BoundSerial returns the serial the line is bound to, whichever path
// filled it
func (l *ShippingOrderLine) BoundSerial() *string {
	if l.BoundBottleSerial != nil {
		return l.BoundBottleSerial
	}
	return l.EarlyBindingSerial
}

// markValidated records a passed eligibility check
func (l *ShippingOrderLine) markValidated() error {
	if err := l.transition(LineValidated); err != nil {
		return err
	}
	l.AddDomainEvent(NewLineValidatedEvent(l))
	return nil
}

// bindBottle fills the late-binding serial and moves the line to picked
func (l *ShippingOrderLine) bindBottle(serial string, confirmedBy *uuid.UUID) error {
	if l.BindingCount() != 0 {
		return shared.NewDomainError(shared.CodeBindingConflict, "Line is already bound")
	}
	if err := l.transition(LinePicked); err != nil {
		return err
	}
	now := time.Now()
	l.BoundBottleSerial = &serial
	l.BindingConfirmedAt = &now
	l.BindingConfirmedBy = confirmedBy
	l.AddDomainEvent(NewLineBoundEvent(l, serial, false))
	return nil
}

// bindEarly fills the early-binding serial without advancing the line;
// the WMS pick confirmation still moves validated to picked
func (l *ShippingOrderLine) bindEarly(serial string, confirmedBy *uuid.UUID) error {
	if l.BindingCount() != 0 {
		return shared.NewDomainError(shared.CodeBindingConflict, "Line is already bound")
	}
	if l.Status != LinePending && l.Status != LineValidated {
		return shared.NewDomainErrorf(shared.CodeInvalidStateTransition,
			"Early binding is not allowed once the line is %q", l.Status)
	}
	now := time.Now()
	l.EarlyBindingSerial = &serial
	l.BindingConfirmedAt = &now
	l.BindingConfirmedBy = confirmedBy
	l.UpdatedAt = now
	l.IncrementVersion()
	l.AddDomainEvent(NewLineBoundEvent(l, serial, true))
	return nil
}

// markPicked advances an early-bound line on WMS pick confirmation
func (l *ShippingOrderLine) markPicked() error {
	if l.EarlyBindingSerial == nil {
		return shared.NewDomainError(shared.CodeBindingConflict,
			"Only an early-bound line is picked without a late binding")
	}
	return l.transition(LinePicked)
}

// markShipped closes the line at ship confirmation
func (l *ShippingOrderLine) markShipped() error {
	if !l.IsBound() {
		return shared.NewDomainError(shared.CodeBindingConflict,
			"Line must carry exactly one binding to ship")
	}
	var serial string
	if s := l.BoundSerial(); s != nil {
		serial = *s
	}
	if err := l.transition(LineShipped); err != nil {
		return err
	}
	l.AddDomainEvent(NewLineShippedEvent(l, serial))
	return nil
}

// cancel voids the line and clears any binding
func (l *ShippingOrderLine) cancel() error {
	if err := l.transition(LineCancelled); err != nil {
		return err
	}
	l.BoundBottleSerial = nil
	l.BoundCaseID = nil
	l.EarlyBindingSerial = nil
	l.BindingConfirmedAt = nil
	l.BindingConfirmedBy = nil
	l.AddDomainEvent(NewLineCancelledEvent(l))
	return nil
}
