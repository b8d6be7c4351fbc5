package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorf creates a new domain error with a formatted message.
// Rejected state transitions use this to name the exact rule violated
// so an operator can correct the request.
func NewDomainErrorf(code, format string, args ...any) *DomainError {
	return &DomainError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error codes for the allocation/voucher/binding core
const (
	CodeInsufficientSupply     = "INSUFFICIENT_SUPPLY"
	CodeDuplicateSaleReference = "DUPLICATE_SALE_REFERENCE"
	CodeVoucherNotTradable     = "VOUCHER_NOT_TRADABLE"
	CodeTransferAlreadyPending = "TRANSFER_ALREADY_PENDING"
	CodeTransferExpired        = "TRANSFER_EXPIRED"
	CodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
	CodeAllocationMismatch     = "ALLOCATION_MISMATCH"
	CodeCaseIntegrityViolated  = "CASE_INTEGRITY_VIOLATED"
	CodeOwnershipConstraint    = "OWNERSHIP_CONSTRAINT"
	CodeVoucherIneligible      = "VOUCHER_INELIGIBLE"
	CodeBindingConflict        = "BINDING_CONFLICT"
	CodeSerialAlreadyExists    = "SERIAL_ALREADY_EXISTS"
	CodeUnsupportedProductKind = "UNSUPPORTED_PRODUCT_KIND"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientSupply  = NewDomainError(CodeInsufficientSupply, "Allocation has insufficient remaining supply")
)
