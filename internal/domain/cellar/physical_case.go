package cellar

import (
	"time"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
)

// CaseIntegrity represents whether a physical case is still sealed
type CaseIntegrity string

const (
	CaseIntact CaseIntegrity = "intact"
	CaseBroken CaseIntegrity = "broken"
)

// PhysicalCase is a sealed case of serialized bottles, lineaged to one
// allocation. Breaking is irreversible and cascades: member bottles
// become individually movable and bindable.
type PhysicalCase struct {
	shared.BaseAggregateRoot
	CaseConfigurationID uuid.UUID     `gorm:"type:uuid;not null"`
	AllocationID        uuid.UUID     `gorm:"type:uuid;not null;index"`
	InboundBatchID      uuid.UUID     `gorm:"type:uuid;not null;index"`
	CurrentLocationID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	IntegrityStatus     CaseIntegrity `gorm:"type:varchar(20);not null;default:'intact'"`
	BrokenAt            *time.Time    `gorm:"type:timestamp"`
	BrokenBy            *uuid.UUID    `gorm:"type:uuid"`
	BrokenReason        string        `gorm:"type:varchar(255)"`

	// Loaded lazily
	Bottles []SerializedBottle `gorm:"foreignKey:CaseID;references:ID"`
}

// TableName returns the table name for GORM
func (PhysicalCase) TableName() string {
	return "physical_cases"
}

// NewPhysicalCase creates an intact case from an inbound batch
func NewPhysicalCase(configurationID, allocationID, inboundBatchID, locationID uuid.UUID) (*PhysicalCase, error) {
	if configurationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONFIGURATION", "Case configuration ID is required")
	}
	if allocationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ALLOCATION", "Allocation lineage is required")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location is required")
	}

	return &PhysicalCase{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		CaseConfigurationID: configurationID,
		AllocationID:        allocationID,
		InboundBatchID:      inboundBatchID,
		CurrentLocationID:   locationID,
		IntegrityStatus:     CaseIntact,
	}, nil
}

// IsIntact returns true while the case is sealed
func (c *PhysicalCase) IsIntact() bool {
	return c.IntegrityStatus == CaseIntact
}

// Break opens the case. Idempotent; the first break wins.
func (c *PhysicalCase) Break(by *uuid.UUID, reason string) {
	if c.IntegrityStatus == CaseBroken {
		return
	}
	now := time.Now()
	c.IntegrityStatus = CaseBroken
	c.BrokenAt = &now
	c.BrokenBy = by
	c.BrokenReason = reason
	c.UpdatedAt = now
	c.IncrementVersion()
	c.AddDomainEvent(NewPhysicalCaseBrokenEvent(c, reason))
}

// MoveTo relocates the whole case
func (c *PhysicalCase) MoveTo(locationID uuid.UUID) error {
	if locationID == uuid.Nil {
		return shared.NewDomainError("INVALID_LOCATION", "Location is required")
	}
	c.CurrentLocationID = locationID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
