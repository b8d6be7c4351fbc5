package cellar

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/vintrade/backend/internal/domain/allocation"
	"github.com/vintrade/backend/internal/domain/cellar"
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

type mockBatchRepo struct {
	mock.Mock
}

func (m *mockBatchRepo) FindByID(ctx context.Context, id uuid.UUID) (*cellar.InboundBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cellar.InboundBatch), args.Error(1)
}

func (m *mockBatchRepo) FindByAllocation(ctx context.Context, allocationID uuid.UUID, filter shared.Filter) ([]cellar.InboundBatch, error) {
	args := m.Called(ctx, allocationID, filter)
	return args.Get(0).([]cellar.InboundBatch), args.Error(1)
}

func (m *mockBatchRepo) FindPendingSerialization(ctx context.Context, filter shared.Filter) ([]cellar.InboundBatch, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]cellar.InboundBatch), args.Error(1)
}

func (m *mockBatchRepo) Create(ctx context.Context, b *cellar.InboundBatch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBatchRepo) Save(ctx context.Context, b *cellar.InboundBatch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

type mockMovementRepo struct {
	mock.Mock
}

func (m *mockMovementRepo) FindByID(ctx context.Context, id uuid.UUID) (*cellar.InventoryMovement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cellar.InventoryMovement), args.Error(1)
}

func (m *mockMovementRepo) FindByWMSEventID(ctx context.Context, wmsEventID string) (*cellar.InventoryMovement, error) {
	args := m.Called(ctx, wmsEventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cellar.InventoryMovement), args.Error(1)
}

func (m *mockMovementRepo) FindByBottle(ctx context.Context, bottleID uuid.UUID, filter shared.Filter) ([]cellar.InventoryMovement, error) {
	args := m.Called(ctx, bottleID, filter)
	return args.Get(0).([]cellar.InventoryMovement), args.Error(1)
}

func (m *mockMovementRepo) FindAll(ctx context.Context, filter shared.Filter) ([]cellar.InventoryMovement, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]cellar.InventoryMovement), args.Error(1)
}

func (m *mockMovementRepo) Create(ctx context.Context, mv *cellar.InventoryMovement) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}

type mockExceptionRepo struct {
	mock.Mock
}

func (m *mockExceptionRepo) FindByID(ctx context.Context, id uuid.UUID) (*cellar.InventoryException, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cellar.InventoryException), args.Error(1)
}

func (m *mockExceptionRepo) FindOpen(ctx context.Context, filter shared.Filter) ([]cellar.InventoryException, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]cellar.InventoryException), args.Error(1)
}

func (m *mockExceptionRepo) FindByType(ctx context.Context, exceptionType cellar.ExceptionType, filter shared.Filter) ([]cellar.InventoryException, error) {
	args := m.Called(ctx, exceptionType, filter)
	return args.Get(0).([]cellar.InventoryException), args.Error(1)
}

func (m *mockExceptionRepo) Create(ctx context.Context, e *cellar.InventoryException) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockExceptionRepo) Save(ctx context.Context, e *cellar.InventoryException) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockExceptionRepo) CountOpen(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockIdempotencyStore struct {
	mock.Mock
}

func (m *mockIdempotencyStore) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, eventID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *mockIdempotencyStore) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *mockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
