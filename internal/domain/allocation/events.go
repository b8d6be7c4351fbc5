package allocation

import (
	"github.com/vintrade/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeAllocation = "Allocation"

// Event type constants
const (
	EventTypeAllocationActivated = "AllocationActivated"
	EventTypeAllocationExhausted = "AllocationExhausted"
	EventTypeAllocationReopened  = "AllocationReopened"
	EventTypeAllocationClosed    = "AllocationClosed"
)

// AllocationActivatedEvent is raised when a draft allocation opens for sale
type AllocationActivatedEvent struct {
	shared.BaseDomainEvent
	ProductRef    string `json:"product_ref"`
	TotalQuantity int64  `json:"total_quantity"`
}

// NewAllocationActivatedEvent creates a new AllocationActivatedEvent
func NewAllocationActivatedEvent(a *Allocation) *AllocationActivatedEvent {
	return &AllocationActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAllocationActivated, AggregateTypeAllocation, a.ID),
		ProductRef:      a.ProductRef.String(),
		TotalQuantity:   a.TotalQuantity,
	}
}

// AllocationExhaustedEvent is raised when the last unit of supply is sold.
// Procurement consumes it as a re-order signal.
type AllocationExhaustedEvent struct {
	shared.BaseDomainEvent
	ProductRef    string `json:"product_ref"`
	TotalQuantity int64  `json:"total_quantity"`
}

// NewAllocationExhaustedEvent creates a new AllocationExhaustedEvent
func NewAllocationExhaustedEvent(a *Allocation) *AllocationExhaustedEvent {
	return &AllocationExhaustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAllocationExhausted, AggregateTypeAllocation, a.ID),
		ProductRef:      a.ProductRef.String(),
		TotalQuantity:   a.TotalQuantity,
	}
}

// AllocationReopenedEvent is raised when a cancellation frees supply on
// a previously exhausted allocation
type AllocationReopenedEvent struct {
	shared.BaseDomainEvent
	Remaining int64 `json:"remaining"`
}

// NewAllocationReopenedEvent creates a new AllocationReopenedEvent
func NewAllocationReopenedEvent(a *Allocation) *AllocationReopenedEvent {
	return &AllocationReopenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAllocationReopened, AggregateTypeAllocation, a.ID),
		Remaining:       a.Remaining(),
	}
}

// AllocationClosedEvent is raised when an allocation is manually closed
type AllocationClosedEvent struct {
	shared.BaseDomainEvent
	SoldQuantity int64 `json:"sold_quantity"`
}

// NewAllocationClosedEvent creates a new AllocationClosedEvent
func NewAllocationClosedEvent(a *Allocation) *AllocationClosedEvent {
	return &AllocationClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAllocationClosed, AggregateTypeAllocation, a.ID),
		SoldQuantity:    a.SoldQuantity,
	}
}
