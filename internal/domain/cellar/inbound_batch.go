package cellar

import (
	"time"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
)

// BatchStatus represents the serialization progress of an inbound batch
type BatchStatus string

const (
	BatchReceived   BatchStatus = "received"
	BatchSerialized BatchStatus = "serialized"
)

// InboundBatch is a physical delivery traced back to an allocation.
// The allocation linkage arrives from procurement and is trusted as-is;
// serialization turns the batch into bottles and cases carrying that
// lineage.
type InboundBatch struct {
	shared.BaseAggregateRoot
	AllocationID     uuid.UUID   `gorm:"type:uuid;not null;index"`
	PurchaseOrderRef string      `gorm:"type:varchar(100)"`
	LocationID       uuid.UUID   `gorm:"type:uuid;not null"`
	ExpectedQuantity int64       `gorm:"not null"`
	SerializedCount  int64       `gorm:"not null;default:0"`
	Status           BatchStatus `gorm:"type:varchar(20);not null;default:'received'"`
	ReceivedAt       time.Time   `gorm:"not null"`
	SerializedAt     *time.Time  `gorm:"type:timestamp"`
}

// TableName returns the table name for GORM
func (InboundBatch) TableName() string {
	return "inbound_batches"
}

// NewInboundBatch records a received delivery for an allocation
func NewInboundBatch(allocationID, locationID uuid.UUID, purchaseOrderRef string, expectedQuantity int64) (*InboundBatch, error) {
	if allocationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ALLOCATION", "Allocation lineage is required")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location is required")
	}
	if expectedQuantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Expected quantity must be positive")
	}

	return &InboundBatch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AllocationID:      allocationID,
		PurchaseOrderRef:  purchaseOrderRef,
		LocationID:        locationID,
		ExpectedQuantity:  expectedQuantity,
		Status:            BatchReceived,
		ReceivedAt:        time.Now(),
	}, nil
}

// MarkSerialized records the serialization outcome. A count mismatch is
// not an error here: the caller raises an exception and serialization
// still completes for the units that exist.
func (b *InboundBatch) MarkSerialized(count int64) error {
	if b.Status == BatchSerialized {
		return shared.NewDomainError(shared.CodeInvalidStateTransition, "Batch is already serialized")
	}
	now := time.Now()
	b.SerializedCount = count
	b.Status = BatchSerialized
	b.SerializedAt = &now
	b.UpdatedAt = now
	b.IncrementVersion()
	return nil
}

// HasShortfall returns true when fewer units were serialized than received
func (b *InboundBatch) HasShortfall() bool {
	return b.Status == BatchSerialized && b.SerializedCount < b.ExpectedQuantity
}
