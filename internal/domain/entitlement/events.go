package entitlement

import (
	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeVoucher         = "Voucher"
	AggregateTypeCaseEntitlement = "CaseEntitlement"
)

// Event type constants
const (
	EventTypeVouchersIssued        = "VouchersIssued"
	EventTypeVoucherLocked         = "VoucherLocked"
	EventTypeVoucherUnlocked       = "VoucherUnlocked"
	EventTypeVoucherRedeemed       = "VoucherRedeemed"
	EventTypeVoucherCancelled      = "VoucherCancelled"
	EventTypeVoucherHolderChanged  = "VoucherHolderChanged"
	EventTypeVoucherFlagged        = "VoucherFlagged"
	EventTypeCaseEntitlementBroken = "CaseEntitlementBroken"
)

// VouchersIssuedSchemaVersion is the current wire schema of
// VouchersIssuedEvent. Version 1 payloads carried the sale reference
// under "sale_ref".
const VouchersIssuedSchemaVersion = 2

// VouchersIssuedEvent is raised once per successful (non-replayed) issuance
type VouchersIssuedEvent struct {
	shared.BaseDomainEvent
	SchemaVersion int         `json:"schema_version"`
	AllocationID  uuid.UUID   `json:"allocation_id"`
	CustomerID    uuid.UUID   `json:"customer_id"`
	SaleReference string      `json:"sale_reference"`
	VoucherIDs    []uuid.UUID `json:"voucher_ids"`
}

// NewVouchersIssuedEvent creates a new VouchersIssuedEvent keyed on the
// first voucher of the set
func NewVouchersIssuedEvent(vouchers []*Voucher) *VouchersIssuedEvent {
	ids := make([]uuid.UUID, len(vouchers))
	for i, v := range vouchers {
		ids[i] = v.ID
	}
	first := vouchers[0]
	return &VouchersIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVouchersIssued, AggregateTypeVoucher, first.ID),
		SchemaVersion:   VouchersIssuedSchemaVersion,
		AllocationID:    first.AllocationID,
		CustomerID:      first.CustomerID,
		SaleReference:   first.SaleReference,
		VoucherIDs:      ids,
	}
}

// VoucherLockedEvent is raised when a voucher is held for an in-flight binding
type VoucherLockedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
}

// NewVoucherLockedEvent creates a new VoucherLockedEvent
func NewVoucherLockedEvent(v *Voucher) *VoucherLockedEvent {
	return &VoucherLockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVoucherLocked, AggregateTypeVoucher, v.ID),
		CustomerID:      v.CustomerID,
	}
}

// VoucherUnlockedEvent is raised when a binding releases its voucher
type VoucherUnlockedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
}

// NewVoucherUnlockedEvent creates a new VoucherUnlockedEvent
func NewVoucherUnlockedEvent(v *Voucher) *VoucherUnlockedEvent {
	return &VoucherUnlockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVoucherUnlocked, AggregateTypeVoucher, v.ID),
		CustomerID:      v.CustomerID,
	}
}

// VoucherRedeemedEvent is raised when a voucher reaches its terminal
// redeemed state
type VoucherRedeemedEvent struct {
	shared.BaseDomainEvent
	AllocationID uuid.UUID `json:"allocation_id"`
	CustomerID   uuid.UUID `json:"customer_id"`
}

// NewVoucherRedeemedEvent creates a new VoucherRedeemedEvent
func NewVoucherRedeemedEvent(v *Voucher) *VoucherRedeemedEvent {
	return &VoucherRedeemedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVoucherRedeemed, AggregateTypeVoucher, v.ID),
		AllocationID:    v.AllocationID,
		CustomerID:      v.CustomerID,
	}
}

// VoucherCancelledEvent is raised when a voucher is voided; supply goes
// back to the allocation
type VoucherCancelledEvent struct {
	shared.BaseDomainEvent
	AllocationID uuid.UUID `json:"allocation_id"`
}

// NewVoucherCancelledEvent creates a new VoucherCancelledEvent
func NewVoucherCancelledEvent(v *Voucher) *VoucherCancelledEvent {
	return &VoucherCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVoucherCancelled, AggregateTypeVoucher, v.ID),
		AllocationID:    v.AllocationID,
	}
}

// VoucherHolderChangedEvent is raised on transfer acceptance
type VoucherHolderChangedEvent struct {
	shared.BaseDomainEvent
	FromCustomerID uuid.UUID `json:"from_customer_id"`
	ToCustomerID   uuid.UUID `json:"to_customer_id"`
}

// NewVoucherHolderChangedEvent creates a new VoucherHolderChangedEvent
func NewVoucherHolderChangedEvent(v *Voucher, from uuid.UUID) *VoucherHolderChangedEvent {
	return &VoucherHolderChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVoucherHolderChanged, AggregateTypeVoucher, v.ID),
		FromCustomerID:  from,
		ToCustomerID:    v.CustomerID,
	}
}

// VoucherFlaggedEvent feeds the operator review queue
type VoucherFlaggedEvent struct {
	shared.BaseDomainEvent
	Reason string `json:"reason"`
}

// NewVoucherFlaggedEvent creates a new VoucherFlaggedEvent
func NewVoucherFlaggedEvent(v *Voucher, reason string) *VoucherFlaggedEvent {
	return &VoucherFlaggedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVoucherFlagged, AggregateTypeVoucher, v.ID),
		Reason:          reason,
	}
}

// CaseEntitlementBrokenEvent is raised exactly once, when the case
// first breaks
type CaseEntitlementBrokenEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID   `json:"customer_id"`
	Reason     BreakReason `json:"reason"`
}

// NewCaseEntitlementBrokenEvent creates a new CaseEntitlementBrokenEvent
func NewCaseEntitlementBrokenEvent(c *CaseEntitlement, reason BreakReason) *CaseEntitlementBrokenEvent {
	return &CaseEntitlementBrokenEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCaseEntitlementBroken, AggregateTypeCaseEntitlement, c.ID),
		CustomerID:      c.CustomerID,
		Reason:          reason,
	}
}
