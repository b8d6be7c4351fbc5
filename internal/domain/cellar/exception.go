package cellar

import (
	"time"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
)

// ExceptionType classifies an operational anomaly
type ExceptionType string

const (
	ExceptionShortage              ExceptionType = "shortage"
	ExceptionMisSerialization      ExceptionType = "mis_serialization"
	ExceptionBindingFailure        ExceptionType = "binding_failure"
	ExceptionWMSDiscrepancy        ExceptionType = "wms_discrepancy"
	ExceptionSerializationMismatch ExceptionType = "serialization_mismatch"
)

// IsValid returns true if the exception type is valid
func (t ExceptionType) IsValid() bool {
	switch t {
	case ExceptionShortage, ExceptionMisSerialization, ExceptionBindingFailure,
		ExceptionWMSDiscrepancy, ExceptionSerializationMismatch:
		return true
	}
	return false
}

// ExceptionStatus represents the review lifecycle
type ExceptionStatus string

const (
	ExceptionOpen     ExceptionStatus = "open"
	ExceptionResolved ExceptionStatus = "resolved"
)

// InventoryException is an operational anomaly queued for human review.
// Anomalies observed during routine processing are recorded here rather
// than failing the operation that noticed them.
type InventoryException struct {
	shared.BaseAggregateRoot
	ExceptionType ExceptionType   `gorm:"type:varchar(30);not null;index"`
	Status        ExceptionStatus `gorm:"type:varchar(20);not null;default:'open';index"`
	Detail        string          `gorm:"type:text;not null"`
	BottleID      *uuid.UUID      `gorm:"type:uuid;index"`
	CaseID        *uuid.UUID      `gorm:"type:uuid;index"`
	BatchID       *uuid.UUID      `gorm:"type:uuid;index"`
	MovementID    *uuid.UUID      `gorm:"type:uuid"`
	WMSEventID    *string         `gorm:"type:varchar(100)"`
	ResolvedBy    *uuid.UUID      `gorm:"type:uuid"`
	ResolvedAt    *time.Time      `gorm:"type:timestamp"`
	Resolution    string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InventoryException) TableName() string {
	return "inventory_exceptions"
}

// ExceptionRefs carries the optional entity references of an exception
type ExceptionRefs struct {
	BottleID   *uuid.UUID
	CaseID     *uuid.UUID
	BatchID    *uuid.UUID
	MovementID *uuid.UUID
	WMSEventID *string
}

// NewInventoryException opens an exception for operator review
func NewInventoryException(exceptionType ExceptionType, detail string, refs ExceptionRefs) (*InventoryException, error) {
	if !exceptionType.IsValid() {
		return nil, shared.NewDomainErrorf("INVALID_EXCEPTION_TYPE", "Unknown exception type %q", exceptionType)
	}
	if detail == "" {
		return nil, shared.NewDomainError("INVALID_DETAIL", "Exception detail is required")
	}

	e := &InventoryException{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ExceptionType:     exceptionType,
		Status:            ExceptionOpen,
		Detail:            detail,
		BottleID:          refs.BottleID,
		CaseID:            refs.CaseID,
		BatchID:           refs.BatchID,
		MovementID:        refs.MovementID,
		WMSEventID:        refs.WMSEventID,
	}
	e.AddDomainEvent(NewExceptionRaisedEvent(e))
	return e, nil
}

// Resolve closes the exception with a resolution note
func (e *InventoryException) Resolve(by uuid.UUID, resolution string) error {
	if e.Status == ExceptionResolved {
		return shared.NewDomainError(shared.CodeInvalidStateTransition, "Exception is already resolved")
	}
	if resolution == "" {
		return shared.NewDomainError("INVALID_RESOLUTION", "Resolution note is required")
	}
	now := time.Now()
	e.Status = ExceptionResolved
	e.ResolvedBy = &by
	e.ResolvedAt = &now
	e.Resolution = resolution
	e.UpdatedAt = now
	e.IncrementVersion()
	return nil
}

// IsOpen returns true while the exception awaits review
func (e *InventoryException) IsOpen() bool {
	return e.Status == ExceptionOpen
}
