package entitlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vintrade/backend/internal/domain/shared"
)

// LifecycleState represents the voucher lifecycle state
type LifecycleState string

const (
	// StateIssued is a live claim held by a customer
	StateIssued LifecycleState = "issued"
	// StateLocked is a claim held by an in-flight operation (an active
	// shipping-order-line binding) so a second consumer cannot take it
	StateLocked LifecycleState = "locked"
	// StateRedeemed is terminal: the bottle has been consumed or shipped
	StateRedeemed LifecycleState = "redeemed"
	// StateCancelled is terminal: the claim was voided and supply released
	StateCancelled LifecycleState = "cancelled"
)

// IsValid returns true if the state is valid
func (s LifecycleState) IsValid() bool {
	switch s {
	case StateIssued, StateLocked, StateRedeemed, StateCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for redeemed and cancelled
func (s LifecycleState) IsTerminal() bool {
	return s == StateRedeemed || s == StateCancelled
}

// Transition table: issued -> {locked, redeemed, cancelled};
// locked -> {issued, redeemed}; redeemed/cancelled terminal.
// locked -> redeemed is permitted directly: shipping consumes a locked
// voucher without passing back through issued.
var voucherTransitions = map[LifecycleState][]LifecycleState{
	StateIssued: {StateLocked, StateRedeemed, StateCancelled},
	StateLocked: {StateIssued, StateRedeemed},
}

// CanTransition returns true if from -> to is a legal lifecycle step
func CanTransition(from, to LifecycleState) bool {
	for _, next := range voucherTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Voucher is one customer's claim on one bottle drawn from an
// allocation. AllocationID and the copied SKU identity are supply
// lineage and never change after issuance; CustomerID changes only on
// transfer acceptance.
type Voucher struct {
	shared.BaseAggregateRoot
	CustomerID        uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_voucher_sale_ref,priority:2"`
	AllocationID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_voucher_alloc;uniqueIndex:idx_voucher_sale_ref,priority:1"`
	WineVariantID     uuid.UUID        `gorm:"type:uuid;not null"`
	FormatID          uuid.UUID        `gorm:"type:uuid;not null"`
	SellableSKUID     *uuid.UUID       `gorm:"type:uuid;column:sellable_sku_id"`
	CaseEntitlementID *uuid.UUID       `gorm:"type:uuid;index"`
	Quantity          int              `gorm:"not null;default:1"`
	LifecycleState    LifecycleState   `gorm:"type:varchar(20);not null;default:'issued';index"`
	Tradable          bool             `gorm:"not null;default:true"`
	Giftable          bool             `gorm:"not null;default:true"`
	Suspended         bool             `gorm:"not null;default:false"`
	RequiresAttention bool             `gorm:"not null;default:false"`
	AttentionReason   string           `gorm:"type:varchar(255)"`
	SaleReference     string           `gorm:"type:varchar(100);not null;uniqueIndex:idx_voucher_sale_ref,priority:3"`
	SaleOrdinal       int              `gorm:"not null;default:1;uniqueIndex:idx_voucher_sale_ref,priority:4"`
	UnitPrice         *decimal.Decimal `gorm:"type:decimal(18,4)"`
	RedeemedAt        *time.Time       `gorm:"type:timestamp"`
	CancelledAt       *time.Time       `gorm:"type:timestamp"`
}

// TableName returns the table name for GORM
func (Voucher) TableName() string {
	return "vouchers"
}

// VoucherParams carries the issuance inputs copied onto each voucher
type VoucherParams struct {
	CustomerID    uuid.UUID
	AllocationID  uuid.UUID
	WineVariantID uuid.UUID
	FormatID      uuid.UUID
	SellableSKUID *uuid.UUID
	SaleReference string
	// SaleOrdinal is the 1-based position of this voucher within its
	// sale; (allocation, customer, sale_reference, ordinal) is unique so
	// a retried issuance collides row-for-row with the original set.
	SaleOrdinal int
	UnitPrice   *decimal.Decimal
	Tradable    bool
	Giftable    bool
}

// NewVoucher creates a single issued voucher. Quantity is always 1: a
// voucher is the atomic entitlement unit.
func NewVoucher(p VoucherParams) (*Voucher, error) {
	if p.CustomerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID is required")
	}
	if p.AllocationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ALLOCATION", "Allocation ID is required")
	}
	if p.SaleReference == "" {
		return nil, shared.NewDomainError("INVALID_SALE_REFERENCE", "Sale reference is required")
	}
	if p.SaleOrdinal < 1 {
		p.SaleOrdinal = 1
	}

	return &Voucher{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        p.CustomerID,
		AllocationID:      p.AllocationID,
		WineVariantID:     p.WineVariantID,
		FormatID:          p.FormatID,
		SellableSKUID:     p.SellableSKUID,
		Quantity:          1,
		LifecycleState:    StateIssued,
		Tradable:          p.Tradable,
		Giftable:          p.Giftable,
		SaleReference:     p.SaleReference,
		SaleOrdinal:       p.SaleOrdinal,
		UnitPrice:         p.UnitPrice,
	}, nil
}

// transition moves the lifecycle state, rejecting illegal steps with a
// message naming both states.
func (v *Voucher) transition(to LifecycleState) error {
	if !CanTransition(v.LifecycleState, to) {
		return shared.NewDomainErrorf(shared.CodeInvalidStateTransition,
			"Voucher cannot move from %q to %q", v.LifecycleState, to)
	}
	v.LifecycleState = to
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

// IsTransferable returns nil when the voucher may be offered for
// transfer, or the violated rule otherwise.
func (v *Voucher) IsTransferable() error {
	if v.Suspended {
		return shared.NewDomainError(shared.CodeVoucherNotTradable, "Voucher is suspended")
	}
	if !v.Tradable {
		return shared.NewDomainError(shared.CodeVoucherNotTradable, "Voucher is not tradable")
	}
	if v.LifecycleState != StateIssued {
		return shared.NewDomainErrorf(shared.CodeVoucherNotTradable,
			"Voucher in state %q cannot be transferred", v.LifecycleState)
	}
	return nil
}

// Lock reserves the voucher for an in-flight binding operation
func (v *Voucher) Lock() error {
	if err := v.transition(StateLocked); err != nil {
		return err
	}
	v.AddDomainEvent(NewVoucherLockedEvent(v))
	return nil
}

// Unlock returns a locked voucher to issued (binding cancelled, the
// entitlement is preserved)
func (v *Voucher) Unlock() error {
	if v.LifecycleState != StateLocked {
		return shared.NewDomainErrorf(shared.CodeInvalidStateTransition,
			"Voucher cannot be unlocked from %q", v.LifecycleState)
	}
	if err := v.transition(StateIssued); err != nil {
		return err
	}
	v.AddDomainEvent(NewVoucherUnlockedEvent(v))
	return nil
}

// Redeem consumes the voucher. Permitted from issued or locked; supply
// is not released because the bottle has been shipped or consumed.
func (v *Voucher) Redeem() error {
	if err := v.transition(StateRedeemed); err != nil {
		return err
	}
	now := time.Now()
	v.RedeemedAt = &now
	v.AddDomainEvent(NewVoucherRedeemedEvent(v))
	return nil
}

// Cancel voids an issued voucher. The caller must release the reserved
// supply on the allocation.
func (v *Voucher) Cancel() error {
	if v.LifecycleState != StateIssued {
		return shared.NewDomainErrorf(shared.CodeInvalidStateTransition,
			"Voucher can only be cancelled from issued, current state is %q", v.LifecycleState)
	}
	if err := v.transition(StateCancelled); err != nil {
		return err
	}
	now := time.Now()
	v.CancelledAt = &now
	v.AddDomainEvent(NewVoucherCancelledEvent(v))
	return nil
}

// TransferTo moves the voucher to a new holder on transfer acceptance
func (v *Voucher) TransferTo(customerID uuid.UUID) error {
	if customerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer ID is required")
	}
	if v.LifecycleState != StateIssued {
		return shared.NewDomainErrorf(shared.CodeInvalidStateTransition,
			"Voucher in state %q cannot change holder", v.LifecycleState)
	}
	from := v.CustomerID
	v.CustomerID = customerID
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	v.AddDomainEvent(NewVoucherHolderChangedEvent(v, from))
	return nil
}

// FlagForAttention quarantines the voucher from lifecycle operations
// pending manual review. Reads are unaffected.
func (v *Voucher) FlagForAttention(reason string) {
	if v.RequiresAttention {
		return
	}
	v.RequiresAttention = true
	v.AttentionReason = reason
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	v.AddDomainEvent(NewVoucherFlaggedEvent(v, reason))
}

// ClearAttention lifts the quarantine after manual review
func (v *Voucher) ClearAttention() {
	if !v.RequiresAttention {
		return
	}
	v.RequiresAttention = false
	v.AttentionReason = ""
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// AssignToCase links the voucher to the case entitlement it was sold
// under. Set once at issuance.
func (v *Voucher) AssignToCase(caseID uuid.UUID) error {
	if v.CaseEntitlementID != nil {
		return shared.NewDomainError(shared.CodeInvalidStateTransition,
			"Voucher already belongs to a case entitlement")
	}
	v.CaseEntitlementID = &caseID
	return nil
}
