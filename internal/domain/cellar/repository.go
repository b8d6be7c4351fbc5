package cellar

import (
	"context"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
)

// BottleRepository defines the interface for serialized bottle persistence
type BottleRepository interface {
	// FindByID finds a bottle by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SerializedBottle, error)

	// FindBySerial finds a bottle by its serial number
	FindBySerial(ctx context.Context, serialNumber string) (*SerializedBottle, error)

	// FindByCase finds the bottles inside a physical case
	FindByCase(ctx context.Context, caseID uuid.UUID) ([]SerializedBottle, error)

	// FindByBatch finds the bottles serialized from an inbound batch
	FindByBatch(ctx context.Context, batchID uuid.UUID) ([]SerializedBottle, error)

	// FindAvailableByAllocation finds stored bottles of an allocation
	// that are not inside an intact case, i.e. individually bindable
	FindAvailableByAllocation(ctx context.Context, allocationID uuid.UUID, filter shared.Filter) ([]SerializedBottle, error)

	// CreateBatch inserts a set of bottles. A serial-number conflict
	// surfaces as shared.ErrAlreadyExists.
	CreateBatch(ctx context.Context, bottles []*SerializedBottle) error

	// Save updates a bottle
	Save(ctx context.Context, b *SerializedBottle) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, b *SerializedBottle) error

	// CountByState counts an allocation's bottles in a state
	CountByState(ctx context.Context, allocationID uuid.UUID, state BottleState) (int64, error)
}

// PhysicalCaseRepository defines the interface for physical case persistence
type PhysicalCaseRepository interface {
	// FindByID finds a case by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*PhysicalCase, error)

	// FindIntactByAllocation finds sealed cases of an allocation
	FindIntactByAllocation(ctx context.Context, allocationID uuid.UUID, filter shared.Filter) ([]PhysicalCase, error)

	// CreateBatch inserts cases
	CreateBatch(ctx context.Context, cases []*PhysicalCase) error

	// Save updates a case
	Save(ctx context.Context, c *PhysicalCase) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, c *PhysicalCase) error
}

// InboundBatchRepository defines the interface for inbound batch persistence
type InboundBatchRepository interface {
	// FindByID finds a batch by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InboundBatch, error)

	// FindByAllocation finds batches received against an allocation
	FindByAllocation(ctx context.Context, allocationID uuid.UUID, filter shared.Filter) ([]InboundBatch, error)

	// FindPendingSerialization finds received batches awaiting serialization
	FindPendingSerialization(ctx context.Context, filter shared.Filter) ([]InboundBatch, error)

	// Create inserts a batch
	Create(ctx context.Context, b *InboundBatch) error

	// Save updates a batch
	Save(ctx context.Context, b *InboundBatch) error
}

// MovementRepository defines the interface for the movement ledger.
// The ledger is append-only; there is no update path.
type MovementRepository interface {
	// FindByID finds a movement with its items
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryMovement, error)

	// FindByWMSEventID finds the movement recorded for a WMS event, or
	// shared.ErrNotFound when the event was never processed
	FindByWMSEventID(ctx context.Context, wmsEventID string) (*InventoryMovement, error)

	// FindByBottle lists the movements touching a bottle, newest first
	FindByBottle(ctx context.Context, bottleID uuid.UUID, filter shared.Filter) ([]InventoryMovement, error)

	// FindAll lists movements matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryMovement, error)

	// Create appends a movement and its items atomically. A
	// wms_event_id conflict surfaces as shared.ErrAlreadyExists so
	// replayed events dedupe cleanly.
	Create(ctx context.Context, m *InventoryMovement) error
}

// ExceptionRepository defines the interface for inventory exception persistence
type ExceptionRepository interface {
	// FindByID finds an exception by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryException, error)

	// FindOpen lists open exceptions, oldest first
	FindOpen(ctx context.Context, filter shared.Filter) ([]InventoryException, error)

	// FindByType lists exceptions of a type
	FindByType(ctx context.Context, exceptionType ExceptionType, filter shared.Filter) ([]InventoryException, error)

	// Create inserts an exception
	Create(ctx context.Context, e *InventoryException) error

	// Save updates an exception
	Save(ctx context.Context, e *InventoryException) error

	// CountOpen counts open exceptions
	CountOpen(ctx context.Context) (int64, error)
}
