package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/vintrade/backend/internal/domain/allocation"
	"github.com/vintrade/backend/internal/domain/cellar"
	"github.com/vintrade/backend/internal/domain/entitlement"
	"github.com/vintrade/backend/internal/domain/fulfillment"
	"github.com/vintrade/backend/internal/domain/shared"
)

// OperationalSignalHandler consumes the outbound signals the back
// office raises for human attention: allocation exhaustion and
// reopening, attention flags, broken cases and exceptions. It turns
// each one into a structured log line that downstream alerting keys
// on. Wrap it in an IdempotentHandler when subscribing; the outbox
// redelivers after a processor crash.
type OperationalSignalHandler struct {
	logger *zap.Logger
}

// NewOperationalSignalHandler creates a new operational signal handler
func NewOperationalSignalHandler(logger *zap.Logger) *OperationalSignalHandler {
	return &OperationalSignalHandler{logger: logger}
}

// EventTypes returns the signal event types this handler consumes
func (h *OperationalSignalHandler) EventTypes() []string {
	return []string{
		allocation.EventTypeAllocationExhausted,
		allocation.EventTypeAllocationReopened,
		entitlement.EventTypeVoucherFlagged,
		entitlement.EventTypeCaseEntitlementBroken,
		cellar.EventTypeExceptionRaised,
		fulfillment.EventTypeOrderExceptionRaised,
	}
}

// Handle logs the signal with its type-specific detail fields
func (h *OperationalSignalHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch e := event.(type) {
	case *allocation.AllocationExhaustedEvent:
		fields = append(fields,
			zap.String("product_ref", e.ProductRef),
			zap.Int64("total_quantity", e.TotalQuantity),
		)
	case *allocation.AllocationReopenedEvent:
		fields = append(fields, zap.Int64("remaining", e.Remaining))
	case *entitlement.VoucherFlaggedEvent:
		fields = append(fields, zap.String("reason", e.Reason))
	case *entitlement.CaseEntitlementBrokenEvent:
		fields = append(fields,
			zap.String("customer_id", e.CustomerID.String()),
			zap.String("reason", string(e.Reason)),
		)
	case *cellar.ExceptionRaisedEvent:
		fields = append(fields,
			zap.String("exception_type", string(e.ExceptionType)),
			zap.String("detail", e.Detail),
		)
	case *fulfillment.OrderExceptionRaisedEvent:
		fields = append(fields,
			zap.String("shipping_order_id", e.ShippingOrderID.String()),
			zap.String("exception_type", string(e.ExceptionType)),
			zap.String("detail", e.Detail),
		)
	}

	h.logger.Info("Operational signal", fields...)
	return nil
}

var _ shared.EventHandler = (*OperationalSignalHandler)(nil)
