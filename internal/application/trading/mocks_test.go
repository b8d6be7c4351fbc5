package trading

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vintrade/backend/internal/domain/allocation"
	"github.com/vintrade/backend/internal/domain/entitlement"
	"github.com/vintrade/backend/internal/domain/shared"
	"github.com/vintrade/backend/internal/domain/shared/valueobject"
)

type mockAllocationRepo struct {
	mock.Mock
}

func (m *mockAllocationRepo) FindByID(ctx context.Context, id uuid.UUID) (*allocation.Allocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*allocation.Allocation), args.Error(1)
}

func (m *mockAllocationRepo) FindByProduct(ctx context.Context, ref valueobject.ProductReference, filter shared.Filter) ([]allocation.Allocation, error) {
	args := m.Called(ctx, ref, filter)
	return args.Get(0).([]allocation.Allocation), args.Error(1)
}

func (m *mockAllocationRepo) FindByStatus(ctx context.Context, status allocation.Status, filter shared.Filter) ([]allocation.Allocation, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]allocation.Allocation), args.Error(1)
}

func (m *mockAllocationRepo) FindAll(ctx context.Context, filter shared.Filter) ([]allocation.Allocation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]allocation.Allocation), args.Error(1)
}

func (m *mockAllocationRepo) Save(ctx context.Context, a *allocation.Allocation) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAllocationRepo) SaveWithLock(ctx context.Context, a *allocation.Allocation) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAllocationRepo) ReserveSupply(ctx context.Context, id uuid.UUID, qty int64) (*allocation.Allocation, error) {
	args := m.Called(ctx, id, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*allocation.Allocation), args.Error(1)
}

func (m *mockAllocationRepo) ReleaseSupply(ctx context.Context, id uuid.UUID, qty int64) (*allocation.Allocation, error) {
	args := m.Called(ctx, id, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*allocation.Allocation), args.Error(1)
}

func (m *mockAllocationRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockVoucherRepo struct {
	mock.Mock
}

func (m *mockVoucherRepo) FindByID(ctx context.Context, id uuid.UUID) (*entitlement.Voucher, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entitlement.Voucher), args.Error(1)
}

func (m *mockVoucherRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]entitlement.Voucher, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]entitlement.Voucher), args.Error(1)
}

func (m *mockVoucherRepo) FindByAllocation(ctx context.Context, allocationID uuid.UUID, filter shared.Filter) ([]entitlement.Voucher, error) {
	args := m.Called(ctx, allocationID, filter)
	return args.Get(0).([]entitlement.Voucher), args.Error(1)
}

func (m *mockVoucherRepo) FindBySaleReference(ctx context.Context, allocationID, customerID uuid.UUID, saleReference string) ([]entitlement.Voucher, error) {
	args := m.Called(ctx, allocationID, customerID, saleReference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entitlement.Voucher), args.Error(1)
}

func (m *mockVoucherRepo) FindByCaseEntitlement(ctx context.Context, caseEntitlementID uuid.UUID) ([]entitlement.Voucher, error) {
	args := m.Called(ctx, caseEntitlementID)
	return args.Get(0).([]entitlement.Voucher), args.Error(1)
}

func (m *mockVoucherRepo) CreateSet(ctx context.Context, vouchers []*entitlement.Voucher) error {
	args := m.Called(ctx, vouchers)
	return args.Error(0)
}

func (m *mockVoucherRepo) Save(ctx context.Context, v *entitlement.Voucher) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *mockVoucherRepo) SaveWithLock(ctx context.Context, v *entitlement.Voucher) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *mockVoucherRepo) CountByAllocation(ctx context.Context, allocationID uuid.UUID) (int64, error) {
	args := m.Called(ctx, allocationID)
	return args.Get(0).(int64), args.Error(1)
}

type mockTransferRepo struct {
	mock.Mock
}

func (m *mockTransferRepo) FindByID(ctx context.Context, id uuid.UUID) (*entitlement.VoucherTransfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entitlement.VoucherTransfer), args.Error(1)
}

func (m *mockTransferRepo) FindPendingByVoucher(ctx context.Context, voucherID uuid.UUID) (*entitlement.VoucherTransfer, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entitlement.VoucherTransfer), args.Error(1)
}

func (m *mockTransferRepo) FindByVoucher(ctx context.Context, voucherID uuid.UUID, filter shared.Filter) ([]entitlement.VoucherTransfer, error) {
	args := m.Called(ctx, voucherID, filter)
	return args.Get(0).([]entitlement.VoucherTransfer), args.Error(1)
}

func (m *mockTransferRepo) FindExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]entitlement.VoucherTransfer, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entitlement.VoucherTransfer), args.Error(1)
}

func (m *mockTransferRepo) Create(ctx context.Context, t *entitlement.VoucherTransfer) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTransferRepo) Save(ctx context.Context, t *entitlement.VoucherTransfer) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type mockCaseRepo struct {
	mock.Mock
}

func (m *mockCaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*entitlement.CaseEntitlement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entitlement.CaseEntitlement), args.Error(1)
}

func (m *mockCaseRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]entitlement.CaseEntitlement, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]entitlement.CaseEntitlement), args.Error(1)
}

func (m *mockCaseRepo) Create(ctx context.Context, c *entitlement.CaseEntitlement) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCaseRepo) Save(ctx context.Context, c *entitlement.CaseEntitlement) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// memoryAuditLog collects audit entries in memory for assertions
type memoryAuditLog struct {
	entries []*shared.AuditEntry
}

func (l *memoryAuditLog) Append(ctx context.Context, entries ...*shared.AuditEntry) error {
	l.entries = append(l.entries, entries...)
	return nil
}

func (l *memoryAuditLog) FindByEntity(ctx context.Context, ref shared.AuditRef, filter shared.Filter) ([]shared.AuditEntry, error) {
	var out []shared.AuditEntry
	for _, e := range l.entries {
		if e.EntityType == ref.EntityType && e.EntityID == ref.EntityID {
			out = append(out, *e)
		}
	}
	return out, nil
}
