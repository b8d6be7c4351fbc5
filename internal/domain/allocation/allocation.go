package allocation

import (
	"time"

	"github.com/vintrade/backend/internal/domain/shared"
	"github.com/vintrade/backend/internal/domain/shared/valueobject"
)

// SourceType represents where the supply entitlement originates
type SourceType string

const (
	// SourceProducerAllocation is supply allocated by the producer for a vintage
	SourceProducerAllocation SourceType = "producer_allocation"
	// SourceOwnedStock is supply the company already owns outright
	SourceOwnedStock SourceType = "owned_stock"
	// SourcePassiveConsignment is supply held on consignment from a third party
	SourcePassiveConsignment SourceType = "passive_consignment"
	// SourceThirdPartyCustody is supply stored under a custody agreement
	SourceThirdPartyCustody SourceType = "third_party_custody"
)

// IsValid returns true if the source type is valid
func (s SourceType) IsValid() bool {
	switch s {
	case SourceProducerAllocation, SourceOwnedStock, SourcePassiveConsignment, SourceThirdPartyCustody:
		return true
	}
	return false
}

// SupplyForm represents the physical form the supply is held in
type SupplyForm string

const (
	// SupplyBottled is supply already in bottles
	SupplyBottled SupplyForm = "bottled"
	// SupplyLiquid is bulk liquid awaiting bottling
	SupplyLiquid SupplyForm = "liquid"
)

// IsValid returns true if the supply form is valid
func (f SupplyForm) IsValid() bool {
	return f == SupplyBottled || f == SupplyLiquid
}

// Status represents the allocation lifecycle status
type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusExhausted Status = "exhausted"
	StatusClosed    Status = "closed"
)

// IsValid returns true if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusExhausted, StatusClosed:
		return true
	}
	return false
}

// Allocation is a finite pool of supply entitlement for one product.
// It is the source of truth for how much entitlement exists and how
// much remains. SoldQuantity is mutated only by voucher issuance
// (increment) and cancellation (decrement), never by transfer, and only
// through the repository's conditional-update operations so concurrent
// issuance cannot oversell.
type Allocation struct {
	shared.BaseAggregateRoot
	ProductRef            valueobject.ProductReference `gorm:"type:varchar(160);not null;index"`
	SourceType            SourceType                   `gorm:"type:varchar(40);not null"`
	SupplyForm            SupplyForm                   `gorm:"type:varchar(20);not null"`
	TotalQuantity         int64                        `gorm:"not null"`
	SoldQuantity          int64                        `gorm:"not null;default:0"`
	SerializationRequired bool                         `gorm:"not null;default:false"`
	Status                Status                       `gorm:"type:varchar(20);not null;default:'draft';index"`
	ClosedAt              *time.Time                   `gorm:"type:timestamp"`
}

// TableName returns the table name for GORM
func (Allocation) TableName() string {
	return "allocations"
}

// NewAllocation creates a new draft allocation
func NewAllocation(
	productRef valueobject.ProductReference,
	sourceType SourceType,
	supplyForm SupplyForm,
	totalQuantity int64,
	serializationRequired bool,
) (*Allocation, error) {
	if productRef.IsZero() {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product reference is required")
	}
	if !sourceType.IsValid() {
		return nil, shared.NewDomainErrorf("INVALID_SOURCE_TYPE", "Unknown source type %q", sourceType)
	}
	if !supplyForm.IsValid() {
		return nil, shared.NewDomainErrorf("INVALID_SUPPLY_FORM", "Unknown supply form %q", supplyForm)
	}
	if totalQuantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Total quantity must be positive")
	}

	return &Allocation{
		BaseAggregateRoot:     shared.NewBaseAggregateRoot(),
		ProductRef:            productRef,
		SourceType:            sourceType,
		SupplyForm:            supplyForm,
		TotalQuantity:         totalQuantity,
		SoldQuantity:          0,
		SerializationRequired: serializationRequired,
		Status:                StatusDraft,
	}, nil
}

// Remaining returns the unsold quantity
func (a *Allocation) Remaining() int64 {
	return a.TotalQuantity - a.SoldQuantity
}

// IsExhausted returns true when all supply is sold
func (a *Allocation) IsExhausted() bool {
	return a.SoldQuantity == a.TotalQuantity
}

// CanReserve returns true if qty more units could be sold
func (a *Allocation) CanReserve(qty int64) bool {
	return a.Status == StatusActive && qty > 0 && a.SoldQuantity+qty <= a.TotalQuantity
}

// Activate transitions draft -> active, opening the allocation for sale
func (a *Allocation) Activate() error {
	if a.Status != StatusDraft {
		return shared.NewDomainErrorf(shared.CodeInvalidStateTransition,
			"Allocation can only be activated from draft, current status is %q", a.Status)
	}
	a.Status = StatusActive
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	a.AddDomainEvent(NewAllocationActivatedEvent(a))
	return nil
}

// Close terminally closes the allocation once fulfillment has ended.
// Closing is manual and permitted from active or exhausted.
func (a *Allocation) Close() error {
	if a.Status != StatusActive && a.Status != StatusExhausted {
		return shared.NewDomainErrorf(shared.CodeInvalidStateTransition,
			"Allocation can only be closed from active or exhausted, current status is %q", a.Status)
	}
	now := time.Now()
	a.Status = StatusClosed
	a.ClosedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()
	a.AddDomainEvent(NewAllocationClosedEvent(a))
	return nil
}

// Reserve increments sold quantity in memory, enforcing the supply
// bound. Persistence must go through AllocationRepository.ReserveSupply,
// which applies the same rule as a single conditional UPDATE; this
// method exists for the domain invariant and in-memory tests.
func (a *Allocation) Reserve(qty int64) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Reserve quantity must be positive")
	}
	if a.Status != StatusActive {
		return shared.NewDomainErrorf(shared.CodeInvalidStateTransition,
			"Cannot reserve supply on a %q allocation", a.Status)
	}
	if a.SoldQuantity+qty > a.TotalQuantity {
		return shared.NewDomainErrorf(shared.CodeInsufficientSupply,
			"Cannot reserve %d units: %d of %d already sold", qty, a.SoldQuantity, a.TotalQuantity)
	}
	a.SoldQuantity += qty
	if a.IsExhausted() {
		a.Status = StatusExhausted
		a.AddDomainEvent(NewAllocationExhaustedEvent(a))
	}
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Release decrements sold quantity (voucher cancellation) and reopens
// an exhausted allocation.
func (a *Allocation) Release(qty int64) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Release quantity must be positive")
	}
	if a.SoldQuantity-qty < 0 {
		return shared.NewDomainErrorf("INVALID_QUANTITY",
			"Cannot release %d units: only %d sold", qty, a.SoldQuantity)
	}
	wasExhausted := a.Status == StatusExhausted
	a.SoldQuantity -= qty
	if wasExhausted && !a.IsExhausted() {
		a.Status = StatusActive
		a.AddDomainEvent(NewAllocationReopenedEvent(a))
	}
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}
