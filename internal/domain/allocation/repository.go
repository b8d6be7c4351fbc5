package allocation

import (
	"context"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
	"github.com/vintrade/backend/internal/domain/shared/valueobject"
)

// Repository defines the interface for allocation persistence.
//
// ReserveSupply and ReleaseSupply are the only writers of SoldQuantity.
// Implementations must execute them as a single conditional UPDATE
// (compare-and-swap on the quantity bound), never as read-then-write:
// the allocation row is the one multi-writer hotspot in the system and
// a read-modify-write pair here is an oversell race.
type Repository interface {
	// FindByID finds an allocation by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Allocation, error)

	// FindByProduct finds allocations for a product reference
	FindByProduct(ctx context.Context, ref valueobject.ProductReference, filter shared.Filter) ([]Allocation, error)

	// FindByStatus finds allocations in a given status
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) ([]Allocation, error)

	// FindAll finds all allocations matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Allocation, error)

	// Save creates or updates an allocation
	Save(ctx context.Context, a *Allocation) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, a *Allocation) error

	// ReserveSupply atomically increments sold_quantity by qty where the
	// bound sold+qty <= total holds, flipping status to exhausted when
	// the bound is reached exactly. Returns the allocation state after
	// the reservation, or an INSUFFICIENT_SUPPLY domain error when no
	// row matched the condition.
	ReserveSupply(ctx context.Context, id uuid.UUID, qty int64) (*Allocation, error)

	// ReleaseSupply atomically decrements sold_quantity by qty (never
	// below zero) and reopens an exhausted allocation to active.
	ReleaseSupply(ctx context.Context, id uuid.UUID, qty int64) (*Allocation, error)

	// Count counts allocations matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ConstraintChecker is the read-only eligibility collaborator. It
// answers whether an allocation's ownership terms permit fulfilment
// into a destination channel and geography; the constraint schema
// itself lives outside this core.
type ConstraintChecker interface {
	// Permits returns whether the allocation allows the destination.
	// When it does not, detail names the violated term for the operator.
	Permits(ctx context.Context, allocationID uuid.UUID, channel, geography string) (permitted bool, detail string, err error)
}
