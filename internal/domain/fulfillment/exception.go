package fulfillment

import (
	"time"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
)

// OrderExceptionType classifies a fulfilment failure queued for
// manual resolution
type OrderExceptionType string

const (
	OrderExceptionSupplyInsufficient    OrderExceptionType = "supply_insufficient"
	OrderExceptionVoucherIneligible     OrderExceptionType = "voucher_ineligible"
	OrderExceptionWMSDiscrepancy        OrderExceptionType = "wms_discrepancy"
	OrderExceptionBindingFailed         OrderExceptionType = "binding_failed"
	OrderExceptionCaseIntegrityViolated OrderExceptionType = "case_integrity_violated"
	OrderExceptionOwnershipConstraint   OrderExceptionType = "ownership_constraint"
	OrderExceptionEarlyBindingFailed    OrderExceptionType = "early_binding_failed"
)

// IsValid returns true if the exception type is valid
func (t OrderExceptionType) IsValid() bool {
	switch t {
	case OrderExceptionSupplyInsufficient, OrderExceptionVoucherIneligible,
		OrderExceptionWMSDiscrepancy, OrderExceptionBindingFailed,
		OrderExceptionCaseIntegrityViolated, OrderExceptionOwnershipConstraint,
		OrderExceptionEarlyBindingFailed:
		return true
	}
	return false
}

// ExceptionTypeForCode maps a binder domain error code to the
// exception type recorded for it. Unmapped codes record as a generic
// binding failure.
func ExceptionTypeForCode(code string) OrderExceptionType {
	switch code {
	case shared.CodeInsufficientSupply:
		return OrderExceptionSupplyInsufficient
	case shared.CodeVoucherIneligible:
		return OrderExceptionVoucherIneligible
	case shared.CodeCaseIntegrityViolated:
		return OrderExceptionCaseIntegrityViolated
	case shared.CodeOwnershipConstraint:
		return OrderExceptionOwnershipConstraint
	case shared.CodeAllocationMismatch, shared.CodeBindingConflict:
		return OrderExceptionBindingFailed
	default:
		return OrderExceptionBindingFailed
	}
}

// ExceptionStatus represents the review lifecycle
type ExceptionStatus string

const (
	ExceptionOpen     ExceptionStatus = "open"
	ExceptionResolved ExceptionStatus = "resolved"
)

// ShippingOrderException is a fulfilment failure recorded for manual
// resolution. The line cannot progress while one is open against it.
type ShippingOrderException struct {
	shared.BaseAggregateRoot
	ShippingOrderID uuid.UUID          `gorm:"type:uuid;not null;index"`
	LineID          *uuid.UUID         `gorm:"type:uuid;index"`
	ExceptionType   OrderExceptionType `gorm:"type:varchar(30);not null;index"`
	Status          ExceptionStatus    `gorm:"type:varchar(20);not null;default:'open';index"`
	Detail          string             `gorm:"type:text;not null"`
	WMSEventID      *string            `gorm:"type:varchar(100)"`
	ResolvedBy      *uuid.UUID         `gorm:"type:uuid"`
	ResolvedAt      *time.Time         `gorm:"type:timestamp"`
	Resolution      string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ShippingOrderException) TableName() string {
	return "shipping_order_exceptions"
}

// NewShippingOrderException opens an exception against an order line
func NewShippingOrderException(orderID uuid.UUID, lineID *uuid.UUID, exceptionType OrderExceptionType, detail string, wmsEventID *string) (*ShippingOrderException, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Shipping order ID is required")
	}
	if !exceptionType.IsValid() {
		return nil, shared.NewDomainErrorf("INVALID_EXCEPTION_TYPE", "Unknown exception type %q", exceptionType)
	}
	if detail == "" {
		return nil, shared.NewDomainError("INVALID_DETAIL", "Exception detail is required")
	}

	return &ShippingOrderException{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ShippingOrderID:   orderID,
		LineID:            lineID,
		ExceptionType:     exceptionType,
		Status:            ExceptionOpen,
		Detail:            detail,
		WMSEventID:        wmsEventID,
	}, nil
}

// Resolve closes the exception with a resolution note
func (e *ShippingOrderException) Resolve(by uuid.UUID, resolution string) error {
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
func (e *ShippingOrderException) IsOpen() bool {
	return e.Status == ExceptionOpen
}
