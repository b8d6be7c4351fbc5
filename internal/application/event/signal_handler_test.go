package event

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vintrade/backend/internal/domain/allocation"
	"github.com/vintrade/backend/internal/domain/cellar"
	"github.com/vintrade/backend/internal/domain/entitlement"
	"github.com/vintrade/backend/internal/domain/fulfillment"
	"github.com/vintrade/backend/internal/domain/shared"
)

func observedSignalHandler() (*OperationalSignalHandler, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return NewOperationalSignalHandler(zap.New(core)), logs
}

func TestOperationalSignalHandler_EventTypes(t *testing.T) {
	h := NewOperationalSignalHandler(zap.NewNop())

	types := h.EventTypes()

	assert.ElementsMatch(t, []string{
		"AllocationExhausted", "AllocationReopened",
		"VoucherFlagged", "CaseEntitlementBroken",
		"InventoryExceptionRaised", "ShippingOrderExceptionRaised",
	}, types)
}

func TestOperationalSignalHandler_Handle(t *testing.T) {
	t.Run("logs exhaustion with product context", func(t *testing.T) {
		h, logs := observedSignalHandler()
		e := &allocation.AllocationExhaustedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(
				allocation.EventTypeAllocationExhausted, allocation.AggregateTypeAllocation, uuid.New()),
			ProductRef:    "bottle_sku:margaux-2019-750ml",
			TotalQuantity: 120,
		}

		require.NoError(t, h.Handle(context.Background(), e))

		entries := logs.All()
		require.Len(t, entries, 1)
		assert.Equal(t, "Operational signal", entries[0].Message)
		fields := entries[0].ContextMap()
		assert.Equal(t, "AllocationExhausted", fields["event_type"])
		assert.Equal(t, "bottle_sku:margaux-2019-750ml", fields["product_ref"])
		assert.Equal(t, int64(120), fields["total_quantity"])
	})

	t.Run("logs case break with reason", func(t *testing.T) {
		h, logs := observedSignalHandler()
		customerID := uuid.New()
		e := &entitlement.CaseEntitlementBrokenEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(
				entitlement.EventTypeCaseEntitlementBroken, entitlement.AggregateTypeCaseEntitlement, uuid.New()),
			CustomerID: customerID,
			Reason:     entitlement.BreakReasonPartialRedemption,
		}

		require.NoError(t, h.Handle(context.Background(), e))

		fields := logs.All()[0].ContextMap()
		assert.Equal(t, customerID.String(), fields["customer_id"])
		assert.Equal(t, string(entitlement.BreakReasonPartialRedemption), fields["reason"])
	})

	t.Run("logs inventory exception detail", func(t *testing.T) {
		h, logs := observedSignalHandler()
		e := &cellar.ExceptionRaisedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(
				cellar.EventTypeExceptionRaised, "InventoryException", uuid.New()),
			ExceptionType: cellar.ExceptionShortage,
			Detail:        "two bottles short on receiving",
		}

		require.NoError(t, h.Handle(context.Background(), e))

		fields := logs.All()[0].ContextMap()
		assert.Equal(t, string(cellar.ExceptionShortage), fields["exception_type"])
		assert.Equal(t, "two bottles short on receiving", fields["detail"])
	})

	t.Run("logs shipping order exception with order id", func(t *testing.T) {
		h, logs := observedSignalHandler()
		orderID := uuid.New()
		e := &fulfillment.OrderExceptionRaisedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(
				fulfillment.EventTypeOrderExceptionRaised, "ShippingOrderException", uuid.New()),
			ShippingOrderID: orderID,
			ExceptionType:   fulfillment.OrderExceptionSupplyInsufficient,
			Detail:          "one line unbindable",
		}

		require.NoError(t, h.Handle(context.Background(), e))

		fields := logs.All()[0].ContextMap()
		assert.Equal(t, orderID.String(), fields["shipping_order_id"])
	})
}
