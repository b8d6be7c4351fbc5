package entitlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vintrade/backend/internal/domain/shared"
)

// VoucherRepository defines the interface for voucher persistence
type VoucherRepository interface {
	// FindByID finds a voucher by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Voucher, error)

	// FindByCustomer finds vouchers held by a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Voucher, error)

	// FindByAllocation finds vouchers issued against an allocation
	FindByAllocation(ctx context.Context, allocationID uuid.UUID, filter shared.Filter) ([]Voucher, error)

	// FindBySaleReference finds the voucher set for an idempotency key
	FindBySaleReference(ctx context.Context, allocationID, customerID uuid.UUID, saleReference string) ([]Voucher, error)

	// FindByCaseEntitlement finds the member vouchers of a case
	FindByCaseEntitlement(ctx context.Context, caseEntitlementID uuid.UUID) ([]Voucher, error)

	// CreateSet inserts a voucher set. A unique-constraint conflict on
	// the sale-reference key must surface as shared.ErrAlreadyExists so
	// the caller can fall back to the existing set.
	CreateSet(ctx context.Context, vouchers []*Voucher) error

	// Save updates a voucher
	Save(ctx context.Context, v *Voucher) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, v *Voucher) error

	// CountByAllocation counts non-cancelled vouchers for an allocation
	CountByAllocation(ctx context.Context, allocationID uuid.UUID) (int64, error)
}

// TransferRepository defines the interface for voucher transfer persistence
type TransferRepository interface {
	// FindByID finds a transfer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*VoucherTransfer, error)

	// FindPendingByVoucher returns the pending transfer for a voucher,
	// or shared.ErrNotFound when none exists
	FindPendingByVoucher(ctx context.Context, voucherID uuid.UUID) (*VoucherTransfer, error)

	// FindByVoucher lists all transfers of a voucher
	FindByVoucher(ctx context.Context, voucherID uuid.UUID, filter shared.Filter) ([]VoucherTransfer, error)

	// FindExpiredPending finds pending transfers whose deadline passed
	// before cutoff
	FindExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]VoucherTransfer, error)

	// Create inserts a pending transfer. The partial unique index on
	// (voucher_id) WHERE status='pending' rejects a second pending
	// transfer; implementations surface that as shared.ErrAlreadyExists.
	Create(ctx context.Context, t *VoucherTransfer) error

	// Save updates a transfer
	Save(ctx context.Context, t *VoucherTransfer) error
}

// CaseEntitlementRepository defines the interface for case entitlement persistence
type CaseEntitlementRepository interface {
	// FindByID finds a case entitlement by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CaseEntitlement, error)

	// FindByCustomer finds case entitlements held by a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]CaseEntitlement, error)

	// Create inserts a case entitlement
	Create(ctx context.Context, c *CaseEntitlement) error

	// Save updates a case entitlement
	Save(ctx context.Context, c *CaseEntitlement) error
}
