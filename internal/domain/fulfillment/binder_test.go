package fulfillment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vintrade/backend/internal/domain/cellar"
	"github.com/vintrade/backend/internal/domain/entitlement"
	"github.com/vintrade/backend/internal/domain/shared"
)

type stubConstraintChecker struct {
	permitted bool
	detail    string
	err       error
}

func (s *stubConstraintChecker) Permits(_ context.Context, _ uuid.UUID, _, _ string) (bool, string, error) {
	return s.permitted, s.detail, s.err
}

type binderFixture struct {
	binder  *LineBinder
	order   *ShippingOrder
	line    *ShippingOrderLine
	voucher *entitlement.Voucher
	bottle  *cellar.SerializedBottle
	allocID uuid.UUID
}

func newBinderFixture(t *testing.T, packaging PackagingPreference, checker *stubConstraintChecker) *binderFixture {
	t.Helper()
	allocID := uuid.New()
	customerID := uuid.New()

	order, err := NewShippingOrder(customerID, "dtc", "FR", packaging)
	require.NoError(t, err)

	voucher, err := entitlement.NewVoucher(entitlement.VoucherParams{
		CustomerID:    customerID,
		AllocationID:  allocID,
		WineVariantID: uuid.New(),
		FormatID:      uuid.New(),
		SaleReference: "SALE-001",
		SaleOrdinal:   1,
		Tradable:      true,
	})
	require.NoError(t, err)

	line, err := NewShippingOrderLine(order.ID, voucher.ID, allocID)
	require.NoError(t, err)

	bottle, err := cellar.NewSerializedBottle("BTL-0001", uuid.New(), uuid.New(),
		allocID, uuid.New(), uuid.New(), cellar.OwnershipOwned)
	require.NoError(t, err)

	if checker == nil {
		checker = &stubConstraintChecker{permitted: true}
	}

	return &binderFixture{
		binder:  NewLineBinder(checker),
		order:   order,
		line:    line,
		voucher: voucher,
		bottle:  bottle,
		allocID: allocID,
	}
}

func (f *binderFixture) validate(t *testing.T) {
	t.Helper()
	require.NoError(t, f.binder.Validate(context.Background(), f.order, f.line, f.voucher))
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func TestBinderValidate(t *testing.T) {
	t.Run("locks voucher and validates line", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		f.validate(t)
		assert.Equal(t, LineValidated, f.line.Status)
		assert.Equal(t, entitlement.StateLocked, f.voucher.LifecycleState)
	})

	t.Run("non issued voucher ineligible", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		require.NoError(t, f.voucher.Lock())
		err := f.binder.Validate(context.Background(), f.order, f.line, f.voucher)
		assert.Equal(t, shared.CodeVoucherIneligible, domainCode(t, err))
	})

	t.Run("suspended voucher ineligible", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		f.voucher.Suspended = true
		err := f.binder.Validate(context.Background(), f.order, f.line, f.voucher)
		assert.Equal(t, shared.CodeVoucherIneligible, domainCode(t, err))
	})

	t.Run("attention flag blocks validation", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		f.voucher.FlagForAttention("duplicate sale suspected")
		err := f.binder.Validate(context.Background(), f.order, f.line, f.voucher)
		assert.Equal(t, shared.CodeVoucherIneligible, domainCode(t, err))
	})

	t.Run("destination outside allocation terms", func(t *testing.T) {
		checker := &stubConstraintChecker{permitted: false, detail: "geography US excluded by producer"}
		f := newBinderFixture(t, PackagingAny, checker)
		err := f.binder.Validate(context.Background(), f.order, f.line, f.voucher)
		assert.Equal(t, shared.CodeOwnershipConstraint, domainCode(t, err))
		assert.Contains(t, err.Error(), "geography US excluded by producer")
		// Nothing mutated on failure
		assert.Equal(t, LinePending, f.line.Status)
		assert.Equal(t, entitlement.StateIssued, f.voucher.LifecycleState)
	})

	t.Run("foreign voucher rejected", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		other := newBinderFixture(t, PackagingAny, nil)
		err := f.binder.Validate(context.Background(), f.order, f.line, other.voucher)
		assert.Equal(t, shared.CodeBindingConflict, domainCode(t, err))
	})
}

func TestBinderLateBind(t *testing.T) {
	t.Run("reserves bottle and picks line", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		f.validate(t)
		operator := uuid.New()
		require.NoError(t, f.binder.LateBind(f.order, f.line, f.bottle, nil, nil, &operator))

		assert.Equal(t, LinePicked, f.line.Status)
		assert.Equal(t, cellar.BottleReserved, f.bottle.State)
		require.NotNil(t, f.line.BoundBottleSerial)
		assert.Equal(t, "BTL-0001", *f.line.BoundBottleSerial)
		assert.NotNil(t, f.line.BindingConfirmedAt)
	})

	t.Run("pending line rejected", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		err := f.binder.LateBind(f.order, f.line, f.bottle, nil, nil, nil)
		assert.Equal(t, shared.CodeInvalidStateTransition, domainCode(t, err))
	})

	t.Run("allocation lineage must match exactly", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		f.validate(t)
		// Same SKU, different allocation
		stray, err := cellar.NewSerializedBottle("BTL-9999", f.bottle.WineVariantID, f.bottle.FormatID,
			uuid.New(), uuid.New(), uuid.New(), cellar.OwnershipOwned)
		require.NoError(t, err)

		bindErr := f.binder.LateBind(f.order, f.line, stray, nil, nil, nil)
		assert.Equal(t, shared.CodeAllocationMismatch, domainCode(t, bindErr))
		assert.Equal(t, LineValidated, f.line.Status)
		assert.Equal(t, cellar.BottleStored, stray.State)
	})

	t.Run("non stored bottle rejected", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		f.validate(t)
		require.NoError(t, f.bottle.Ship())
		assert.Error(t, f.binder.LateBind(f.order, f.line, f.bottle, nil, nil, nil))
	})
}

func caseWithBottles(t *testing.T, allocID uuid.UUID, serials ...string) (*cellar.PhysicalCase, []*cellar.SerializedBottle) {
	t.Helper()
	pc, err := cellar.NewPhysicalCase(uuid.New(), allocID, uuid.New(), uuid.New())
	require.NoError(t, err)
	bottles := make([]*cellar.SerializedBottle, 0, len(serials))
	for _, serial := range serials {
		b, err := cellar.NewSerializedBottle(serial, uuid.New(), uuid.New(),
			allocID, uuid.New(), uuid.New(), cellar.OwnershipOwned)
		require.NoError(t, err)
		b.AssignToCase(pc.ID)
		pc.Bottles = append(pc.Bottles, *b)
		bottles = append(bottles, b)
	}
	return pc, bottles
}

func TestBinderCaseIntegrity(t *testing.T) {
	t.Run("splitting an intact case blocked when order preserves cases", func(t *testing.T) {
		f := newBinderFixture(t, PackagingPreserveCases, nil)
		f.validate(t)
		pc, bottles := caseWithBottles(t, f.allocID, "CS-1", "CS-2", "CS-3")

		err := f.binder.LateBind(f.order, f.line, bottles[0], pc, nil, nil)
		assert.Equal(t, shared.CodeCaseIntegrityViolated, domainCode(t, err))
	})

	t.Run("whole case covered by sibling lines binds", func(t *testing.T) {
		f := newBinderFixture(t, PackagingPreserveCases, nil)
		f.validate(t)
		pc, bottles := caseWithBottles(t, f.allocID, "CS-1", "CS-2")

		sibling, err := NewShippingOrderLine(f.order.ID, uuid.New(), f.allocID)
		require.NoError(t, err)
		require.NoError(t, sibling.markValidated())
		require.NoError(t, sibling.bindBottle("CS-2", nil))

		require.NoError(t, f.binder.LateBind(f.order, f.line, bottles[0], pc, []ShippingOrderLine{*sibling}, nil))
		assert.Equal(t, LinePicked, f.line.Status)
	})

	t.Run("broken case binds freely", func(t *testing.T) {
		f := newBinderFixture(t, PackagingPreserveCases, nil)
		f.validate(t)
		pc, bottles := caseWithBottles(t, f.allocID, "CS-1", "CS-2", "CS-3")
		pc.Break(nil, "partial redemption")

		require.NoError(t, f.binder.LateBind(f.order, f.line, bottles[0], pc, nil, nil))
	})

	t.Run("packaging any ignores case integrity", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		f.validate(t)
		pc, bottles := caseWithBottles(t, f.allocID, "CS-1", "CS-2", "CS-3")

		require.NoError(t, f.binder.LateBind(f.order, f.line, bottles[0], pc, nil, nil))
	})
}

func TestBinderEarlyBind(t *testing.T) {
	t.Run("fills early serial without reserving the bottle", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		require.NoError(t, f.binder.EarlyBind(f.order, f.line, f.bottle, nil, nil, nil))

		require.NotNil(t, f.line.EarlyBindingSerial)
		assert.Equal(t, "BTL-0001", *f.line.EarlyBindingSerial)
		assert.Nil(t, f.line.BoundBottleSerial)
		assert.Equal(t, cellar.BottleStored, f.bottle.State)
		assert.Equal(t, LinePending, f.line.Status)
	})

	t.Run("same lineage check as late binding", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		stray, err := cellar.NewSerializedBottle("BTL-9999", uuid.New(), uuid.New(),
			uuid.New(), uuid.New(), uuid.New(), cellar.OwnershipOwned)
		require.NoError(t, err)
		bindErr := f.binder.EarlyBind(f.order, f.line, stray, nil, nil, nil)
		assert.Equal(t, shared.CodeAllocationMismatch, domainCode(t, bindErr))
	})

	t.Run("rejected once line is picked", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		f.validate(t)
		require.NoError(t, f.binder.LateBind(f.order, f.line, f.bottle, nil, nil, nil))

		other, err := cellar.NewSerializedBottle("BTL-0002", uuid.New(), uuid.New(),
			f.allocID, uuid.New(), uuid.New(), cellar.OwnershipOwned)
		require.NoError(t, err)
		assert.Error(t, f.binder.EarlyBind(f.order, f.line, other, nil, nil, nil))
	})
}

func TestBinderShipConvergence(t *testing.T) {
	t.Run("late bound path", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		f.validate(t)
		require.NoError(t, f.binder.LateBind(f.order, f.line, f.bottle, nil, nil, nil))
		require.NoError(t, f.binder.Ship(f.line, f.voucher, f.bottle))

		assert.Equal(t, LineShipped, f.line.Status)
		assert.Equal(t, cellar.BottleShipped, f.bottle.State)
		assert.Equal(t, entitlement.StateRedeemed, f.voucher.LifecycleState)
	})

	t.Run("early bound path ships from stored", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		require.NoError(t, f.binder.EarlyBind(f.order, f.line, f.bottle, nil, nil, nil))
		f.validate(t)
		require.NoError(t, f.binder.ConfirmPick(f.line))
		require.NoError(t, f.binder.Ship(f.line, f.voucher, f.bottle))

		assert.Equal(t, LineShipped, f.line.Status)
		assert.Equal(t, cellar.BottleShipped, f.bottle.State)
		assert.Equal(t, entitlement.StateRedeemed, f.voucher.LifecycleState)
	})

	t.Run("unbound line cannot ship", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		f.validate(t)
		err := f.binder.Ship(f.line, f.voucher, f.bottle)
		assert.Equal(t, shared.CodeBindingConflict, domainCode(t, err))
	})

	t.Run("wrong bottle cannot ship", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		f.validate(t)
		require.NoError(t, f.binder.LateBind(f.order, f.line, f.bottle, nil, nil, nil))

		other, err := cellar.NewSerializedBottle("BTL-0002", uuid.New(), uuid.New(),
			f.allocID, uuid.New(), uuid.New(), cellar.OwnershipOwned)
		require.NoError(t, err)
		shipErr := f.binder.Ship(f.line, f.voucher, other)
		assert.Equal(t, shared.CodeBindingConflict, domainCode(t, shipErr))
	})
}

func TestBinderCancelLine(t *testing.T) {
	t.Run("picked line releases bottle and voucher", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		f.validate(t)
		require.NoError(t, f.binder.LateBind(f.order, f.line, f.bottle, nil, nil, nil))
		require.NoError(t, f.binder.CancelLine(f.line, f.voucher, f.bottle))

		assert.Equal(t, LineCancelled, f.line.Status)
		assert.Equal(t, cellar.BottleStored, f.bottle.State)
		assert.Equal(t, entitlement.StateIssued, f.voucher.LifecycleState)
		assert.Equal(t, 0, f.line.BindingCount())
	})

	t.Run("pending line cancels without collaborators", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		require.NoError(t, f.binder.CancelLine(f.line, nil, nil))
		assert.Equal(t, LineCancelled, f.line.Status)
	})

	t.Run("shipped line cannot cancel", func(t *testing.T) {
		f := newBinderFixture(t, PackagingAny, nil)
		f.validate(t)
		require.NoError(t, f.binder.LateBind(f.order, f.line, f.bottle, nil, nil, nil))
		require.NoError(t, f.binder.Ship(f.line, f.voucher, f.bottle))
		assert.Error(t, f.binder.CancelLine(f.line, f.voucher, f.bottle))
	})
}
