package event

import (
	"github.com/vintrade/backend/internal/domain/allocation"
	"github.com/vintrade/backend/internal/domain/cellar"
	"github.com/vintrade/backend/internal/domain/entitlement"
	"github.com/vintrade/backend/internal/domain/fulfillment"
)

// RegisterAllEvents registers every domain event type with the
// serializer, including the upgrader chains for types whose wire
// schema has changed. The OutboxProcessor needs this to deserialize
// events read back from the outbox table.
func RegisterAllEvents(serializer *EventSerializer) error {
	// Allocation events
	serializer.Register(allocation.EventTypeAllocationActivated, &allocation.AllocationActivatedEvent{})
	serializer.Register(allocation.EventTypeAllocationExhausted, &allocation.AllocationExhaustedEvent{})
	serializer.Register(allocation.EventTypeAllocationReopened, &allocation.AllocationReopenedEvent{})
	serializer.Register(allocation.EventTypeAllocationClosed, &allocation.AllocationClosedEvent{})

	// Entitlement events. VouchersIssued v1 payloads named the sale
	// reference "sale_ref".
	if err := serializer.RegisterVersioned(
		entitlement.EventTypeVouchersIssued,
		entitlement.VouchersIssuedSchemaVersion,
		&entitlement.VouchersIssuedEvent{},
		RenameFieldUpgrader(1, "sale_ref", "sale_reference"),
	); err != nil {
		return err
	}
	serializer.Register(entitlement.EventTypeVoucherLocked, &entitlement.VoucherLockedEvent{})
	serializer.Register(entitlement.EventTypeVoucherUnlocked, &entitlement.VoucherUnlockedEvent{})
	serializer.Register(entitlement.EventTypeVoucherRedeemed, &entitlement.VoucherRedeemedEvent{})
	serializer.Register(entitlement.EventTypeVoucherCancelled, &entitlement.VoucherCancelledEvent{})
	serializer.Register(entitlement.EventTypeVoucherHolderChanged, &entitlement.VoucherHolderChangedEvent{})
	serializer.Register(entitlement.EventTypeVoucherFlagged, &entitlement.VoucherFlaggedEvent{})
	serializer.Register(entitlement.EventTypeCaseEntitlementBroken, &entitlement.CaseEntitlementBrokenEvent{})

	// Cellar events
	serializer.Register(cellar.EventTypeBottleStateChanged, &cellar.BottleStateChangedEvent{})
	serializer.Register(cellar.EventTypePhysicalCaseBroken, &cellar.PhysicalCaseBrokenEvent{})
	serializer.Register(cellar.EventTypeBatchSerialized, &cellar.BatchSerializedEvent{})
	serializer.Register(cellar.EventTypeMovementRecorded, &cellar.MovementRecordedEvent{})
	serializer.Register(cellar.EventTypeExceptionRaised, &cellar.ExceptionRaisedEvent{})

	// Fulfillment events
	serializer.Register(fulfillment.EventTypeLineValidated, &fulfillment.LineValidatedEvent{})
	serializer.Register(fulfillment.EventTypeLineBound, &fulfillment.LineBoundEvent{})
	serializer.Register(fulfillment.EventTypeLineShipped, &fulfillment.LineShippedEvent{})
	serializer.Register(fulfillment.EventTypeLineCancelled, &fulfillment.LineCancelledEvent{})
	serializer.Register(fulfillment.EventTypeOrderExceptionRaised, &fulfillment.OrderExceptionRaisedEvent{})

	return nil
}
