package entitlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
)

// TransferStatus represents the status of a voucher transfer
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferAccepted  TransferStatus = "accepted"
	TransferCancelled TransferStatus = "cancelled"
	TransferExpired   TransferStatus = "expired"
)

// DefaultTransferTTL is how long a pending transfer stays acceptable
const DefaultTransferTTL = 7 * 24 * time.Hour

// VoucherTransfer is a pending hand-over of a voucher between
// customers. At most one pending transfer exists per voucher (enforced
// by a partial unique index); expiry is time-driven and evaluated
// lazily at accept time plus a periodic sweep.
type VoucherTransfer struct {
	shared.BaseEntity
	VoucherID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	FromCustomerID uuid.UUID      `gorm:"type:uuid;not null"`
	ToCustomerID   uuid.UUID      `gorm:"type:uuid;not null"`
	Status         TransferStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	InitiatedAt    time.Time      `gorm:"not null"`
	ExpiresAt      time.Time      `gorm:"not null;index"`
	ClosedAt       *time.Time     `gorm:"type:timestamp"`
}

// TableName returns the table name for GORM
func (VoucherTransfer) TableName() string {
	return "voucher_transfers"
}

// NewVoucherTransfer creates a pending transfer for a voucher
func NewVoucherTransfer(voucherID, fromCustomerID, toCustomerID uuid.UUID, ttl time.Duration) (*VoucherTransfer, error) {
	if voucherID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VOUCHER", "Voucher ID is required")
	}
	if toCustomerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Destination customer ID is required")
	}
	if toCustomerID == fromCustomerID {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Cannot transfer a voucher to its current holder")
	}
	if ttl <= 0 {
		ttl = DefaultTransferTTL
	}

	now := time.Now()
	return &VoucherTransfer{
		BaseEntity:     shared.NewBaseEntity(),
		VoucherID:      voucherID,
		FromCustomerID: fromCustomerID,
		ToCustomerID:   toCustomerID,
		Status:         TransferPending,
		InitiatedAt:    now,
		ExpiresAt:      now.Add(ttl),
	}, nil
}

// IsPending returns true while the transfer awaits acceptance
func (t *VoucherTransfer) IsPending() bool {
	return t.Status == TransferPending
}

// IsExpired returns true once the acceptance window has passed
func (t *VoucherTransfer) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// Accept closes the transfer as accepted. The caller moves the voucher
// holder and breaks any intact case entitlement.
func (t *VoucherTransfer) Accept() error {
	if t.Status != TransferPending {
		return shared.NewDomainErrorf(shared.CodeInvalidStateTransition,
			"Transfer in status %q cannot be accepted", t.Status)
	}
	if t.IsExpired() {
		return shared.NewDomainError(shared.CodeTransferExpired,
			"Transfer expired before acceptance")
	}
	now := time.Now()
	t.Status = TransferAccepted
	t.ClosedAt = &now
	t.UpdatedAt = now
	return nil
}

// Cancel withdraws a pending transfer
func (t *VoucherTransfer) Cancel() error {
	if t.Status != TransferPending {
		return shared.NewDomainErrorf(shared.CodeInvalidStateTransition,
			"Transfer in status %q cannot be cancelled", t.Status)
	}
	now := time.Now()
	t.Status = TransferCancelled
	t.ClosedAt = &now
	t.UpdatedAt = now
	return nil
}

// Expire closes an overdue pending transfer. No-op before the deadline.
func (t *VoucherTransfer) Expire() bool {
	if t.Status != TransferPending || !t.IsExpired() {
		return false
	}
	now := time.Now()
	t.Status = TransferExpired
	t.ClosedAt = &now
	t.UpdatedAt = now
	return true
}
