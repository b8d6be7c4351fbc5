package fulfillment

import (
	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeShippingOrder     = "ShippingOrder"
	AggregateTypeShippingOrderLine = "ShippingOrderLine"
)

// Event type constants
const (
	EventTypeLineValidated        = "ShippingOrderLineValidated"
	EventTypeLineBound            = "ShippingOrderLineBound"
	EventTypeLineShipped          = "ShippingOrderLineShipped"
	EventTypeLineCancelled        = "ShippingOrderLineCancelled"
	EventTypeOrderExceptionRaised = "ShippingOrderExceptionRaised"
)

// LineValidatedEvent is raised when a line passes eligibility checks
type LineValidatedEvent struct {
	shared.BaseDomainEvent
	ShippingOrderID uuid.UUID `json:"shipping_order_id"`
	VoucherID       uuid.UUID `json:"voucher_id"`
}

// NewLineValidatedEvent creates a new LineValidatedEvent
func NewLineValidatedEvent(l *ShippingOrderLine) *LineValidatedEvent {
	return &LineValidatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLineValidated, AggregateTypeShippingOrderLine, l.ID),
		ShippingOrderID: l.ShippingOrderID,
		VoucherID:       l.VoucherID,
	}
}

// LineBoundEvent is raised when a binding field fills, either path
type LineBoundEvent struct {
	shared.BaseDomainEvent
	ShippingOrderID uuid.UUID `json:"shipping_order_id"`
	VoucherID       uuid.UUID `json:"voucher_id"`
	Serial          string    `json:"serial"`
	Early           bool      `json:"early"`
}

// NewLineBoundEvent creates a new LineBoundEvent
func NewLineBoundEvent(l *ShippingOrderLine, serial string, early bool) *LineBoundEvent {
	return &LineBoundEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLineBound, AggregateTypeShippingOrderLine, l.ID),
		ShippingOrderID: l.ShippingOrderID,
		VoucherID:       l.VoucherID,
		Serial:          serial,
		Early:           early,
	}
}

// LineShippedEvent is raised when a line ships and its voucher redeems
type LineShippedEvent struct {
	shared.BaseDomainEvent
	ShippingOrderID uuid.UUID `json:"shipping_order_id"`
	VoucherID       uuid.UUID `json:"voucher_id"`
	Serial          string    `json:"serial"`
}

// NewLineShippedEvent creates a new LineShippedEvent
func NewLineShippedEvent(l *ShippingOrderLine, serial string) *LineShippedEvent {
	return &LineShippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLineShipped, AggregateTypeShippingOrderLine, l.ID),
		ShippingOrderID: l.ShippingOrderID,
		VoucherID:       l.VoucherID,
		Serial:          serial,
	}
}

// LineCancelledEvent is raised when a line is voided before shipping
type LineCancelledEvent struct {
	shared.BaseDomainEvent
	ShippingOrderID uuid.UUID `json:"shipping_order_id"`
	VoucherID       uuid.UUID `json:"voucher_id"`
}

// NewLineCancelledEvent creates a new LineCancelledEvent
func NewLineCancelledEvent(l *ShippingOrderLine) *LineCancelledEvent {
	return &LineCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLineCancelled, AggregateTypeShippingOrderLine, l.ID),
		ShippingOrderID: l.ShippingOrderID,
		VoucherID:       l.VoucherID,
	}
}

// OrderExceptionRaisedEvent feeds the operator review queue
type OrderExceptionRaisedEvent struct {
	shared.BaseDomainEvent
	ShippingOrderID uuid.UUID          `json:"shipping_order_id"`
	ExceptionType   OrderExceptionType `json:"exception_type"`
	Detail          string             `json:"detail"`
}

// NewOrderExceptionRaisedEvent creates a new OrderExceptionRaisedEvent
func NewOrderExceptionRaisedEvent(e *ShippingOrderException) *OrderExceptionRaisedEvent {
	return &OrderExceptionRaisedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderExceptionRaised, "ShippingOrderException", e.ID),
		ShippingOrderID: e.ShippingOrderID,
		ExceptionType:   e.ExceptionType,
		Detail:          e.Detail,
	}
}
