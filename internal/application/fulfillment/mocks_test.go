package fulfillment

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vintrade/backend/internal/domain/cellar"
	"github.com/vintrade/backend/internal/domain/entitlement"
	"github.com/vintrade/backend/internal/domain/fulfillment"
	"github.com/vintrade/backend/internal/domain/shared"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.ShippingOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.ShippingOrder), args.Error(1)
}

func (m *mockOrderRepo) FindByIDWithLines(ctx context.Context, id uuid.UUID) (*fulfillment.ShippingOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.ShippingOrder), args.Error(1)
}

func (m *mockOrderRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]fulfillment.ShippingOrder, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]fulfillment.ShippingOrder), args.Error(1)
}

func (m *mockOrderRepo) Create(ctx context.Context, o *fulfillment.ShippingOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *mockOrderRepo) Save(ctx context.Context, o *fulfillment.ShippingOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type mockLineRepo struct {
	mock.Mock
}

func (m *mockLineRepo) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.ShippingOrderLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.ShippingOrderLine), args.Error(1)
}

func (m *mockLineRepo) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]fulfillment.ShippingOrderLine, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]fulfillment.ShippingOrderLine), args.Error(1)
}

func (m *mockLineRepo) FindByVoucher(ctx context.Context, voucherID uuid.UUID) (*fulfillment.ShippingOrderLine, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.ShippingOrderLine), args.Error(1)
}

func (m *mockLineRepo) Create(ctx context.Context, l *fulfillment.ShippingOrderLine) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *mockLineRepo) Save(ctx context.Context, l *fulfillment.ShippingOrderLine) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *mockLineRepo) SaveWithLock(ctx context.Context, l *fulfillment.ShippingOrderLine) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

type mockOrderExceptionRepo struct {
	mock.Mock
}

func (m *mockOrderExceptionRepo) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.ShippingOrderException, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fulfillment.ShippingOrderException), args.Error(1)
}

func (m *mockOrderExceptionRepo) FindOpenByOrder(ctx context.Context, orderID uuid.UUID) ([]fulfillment.ShippingOrderException, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]fulfillment.ShippingOrderException), args.Error(1)
}

func (m *mockOrderExceptionRepo) FindOpenByLine(ctx context.Context, lineID uuid.UUID) ([]fulfillment.ShippingOrderException, error) {
	args := m.Called(ctx, lineID)
	return args.Get(0).([]fulfillment.ShippingOrderException), args.Error(1)
}

func (m *mockOrderExceptionRepo) FindOpen(ctx context.Context, filter shared.Filter) ([]fulfillment.ShippingOrderException, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]fulfillment.ShippingOrderException), args.Error(1)
}

func (m *mockOrderExceptionRepo) Create(ctx context.Context, e *fulfillment.ShippingOrderException) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockOrderExceptionRepo) Save(ctx context.Context, e *fulfillment.ShippingOrderException) error {
	args := m.Called(ctx, e)
	return args.Error(0)
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

type mockBottleRepo struct {
	mock.Mock
}

func (m *mockBottleRepo) FindByID(ctx context.Context, id uuid.UUID) (*cellar.SerializedBottle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cellar.SerializedBottle), args.Error(1)
}

func (m *mockBottleRepo) FindBySerial(ctx context.Context, serialNumber string) (*cellar.SerializedBottle, error) {
	args := m.Called(ctx, serialNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cellar.SerializedBottle), args.Error(1)
}

func (m *mockBottleRepo) FindByCase(ctx context.Context, caseID uuid.UUID) ([]cellar.SerializedBottle, error) {
	args := m.Called(ctx, caseID)
	return args.Get(0).([]cellar.SerializedBottle), args.Error(1)
}

func (m *mockBottleRepo) FindByBatch(ctx context.Context, batchID uuid.UUID) ([]cellar.SerializedBottle, error) {
	args := m.Called(ctx, batchID)
	return args.Get(0).([]cellar.SerializedBottle), args.Error(1)
}

func (m *mockBottleRepo) FindAvailableByAllocation(ctx context.Context, allocationID uuid.UUID, filter shared.Filter) ([]cellar.SerializedBottle, error) {
	args := m.Called(ctx, allocationID, filter)
	return args.Get(0).([]cellar.SerializedBottle), args.Error(1)
}

func (m *mockBottleRepo) CreateBatch(ctx context.Context, bottles []*cellar.SerializedBottle) error {
	args := m.Called(ctx, bottles)
	return args.Error(0)
}

func (m *mockBottleRepo) Save(ctx context.Context, b *cellar.SerializedBottle) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBottleRepo) SaveWithLock(ctx context.Context, b *cellar.SerializedBottle) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBottleRepo) CountByState(ctx context.Context, allocationID uuid.UUID, state cellar.BottleState) (int64, error) {
	args := m.Called(ctx, allocationID, state)
	return args.Get(0).(int64), args.Error(1)
}

type mockCaseRepo struct {
	mock.Mock
}

func (m *mockCaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*cellar.PhysicalCase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cellar.PhysicalCase), args.Error(1)
}

func (m *mockCaseRepo) FindIntactByAllocation(ctx context.Context, allocationID uuid.UUID, filter shared.Filter) ([]cellar.PhysicalCase, error) {
	args := m.Called(ctx, allocationID, filter)
	return args.Get(0).([]cellar.PhysicalCase), args.Error(1)
}

func (m *mockCaseRepo) CreateBatch(ctx context.Context, cases []*cellar.PhysicalCase) error {
	args := m.Called(ctx, cases)
	return args.Error(0)
}

func (m *mockCaseRepo) Save(ctx context.Context, c *cellar.PhysicalCase) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCaseRepo) SaveWithLock(ctx context.Context, c *cellar.PhysicalCase) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type mockCaseEntitlementRepo struct {
	mock.Mock
}

func (m *mockCaseEntitlementRepo) FindByID(ctx context.Context, id uuid.UUID) (*entitlement.CaseEntitlement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entitlement.CaseEntitlement), args.Error(1)
}

func (m *mockCaseEntitlementRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]entitlement.CaseEntitlement, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]entitlement.CaseEntitlement), args.Error(1)
}

func (m *mockCaseEntitlementRepo) Create(ctx context.Context, c *entitlement.CaseEntitlement) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCaseEntitlementRepo) Save(ctx context.Context, c *entitlement.CaseEntitlement) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
