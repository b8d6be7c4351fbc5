package fulfillment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLine(t *testing.T) *ShippingOrderLine {
	t.Helper()
	l, err := NewShippingOrderLine(uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)
	return l
}

func TestNewShippingOrder(t *testing.T) {
	t.Run("defaults packaging to any", func(t *testing.T) {
		o, err := NewShippingOrder(uuid.New(), "dtc", "FR", "")
		require.NoError(t, err)
		assert.Equal(t, PackagingAny, o.PackagingPreference)
		assert.False(t, o.PreservesCases())
	})

	t.Run("preserve cases", func(t *testing.T) {
		o, err := NewShippingOrder(uuid.New(), "dtc", "FR", PackagingPreserveCases)
		require.NoError(t, err)
		assert.True(t, o.PreservesCases())
	})

	t.Run("unknown packaging rejected", func(t *testing.T) {
		_, err := NewShippingOrder(uuid.New(), "dtc", "FR", PackagingPreference("gift_wrap"))
		assert.Error(t, err)
	})

	t.Run("missing destination rejected", func(t *testing.T) {
		_, err := NewShippingOrder(uuid.New(), "", "FR", PackagingAny)
		assert.Error(t, err)
		_, err = NewShippingOrder(uuid.New(), "dtc", "", PackagingAny)
		assert.Error(t, err)
	})
}

func TestLineTransitions(t *testing.T) {
	cases := []struct {
		from    LineStatus
		to      LineStatus
		allowed bool
	}{
		{LinePending, LineValidated, true},
		{LinePending, LineCancelled, true},
		{LineValidated, LinePicked, true},
		{LineValidated, LineCancelled, true},
		{LinePicked, LineShipped, true},
		{LinePicked, LineCancelled, true},
		{LinePending, LinePicked, false},
		{LinePending, LineShipped, false},
		{LineValidated, LineShipped, false},
		{LineShipped, LineCancelled, false},
		{LineShipped, LinePending, false},
		{LineCancelled, LinePending, false},
	}

	for _, tc := range cases {
		name := string(tc.from) + "_to_" + string(tc.to)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransitionLine(tc.from, tc.to))
		})
	}
}

func TestLineBindingExclusivity(t *testing.T) {
	t.Run("late bind then early bind rejected", func(t *testing.T) {
		l := newTestLine(t)
		require.NoError(t, l.markValidated())
		require.NoError(t, l.bindBottle("BTL-1", nil))
		assert.Error(t, l.bindEarly("BTL-2", nil))
		assert.Equal(t, 1, l.BindingCount())
	})

	t.Run("early bind then late bind rejected", func(t *testing.T) {
		l := newTestLine(t)
		require.NoError(t, l.bindEarly("BTL-1", nil))
		require.NoError(t, l.markValidated())
		assert.Error(t, l.bindBottle("BTL-2", nil))
		assert.Equal(t, 1, l.BindingCount())
	})

	t.Run("double late bind rejected", func(t *testing.T) {
		l := newTestLine(t)
		require.NoError(t, l.markValidated())
		require.NoError(t, l.bindBottle("BTL-1", nil))
		assert.Error(t, l.bindBottle("BTL-2", nil))
	})
}

func TestLineEarlyBinding(t *testing.T) {
	t.Run("allowed while pending", func(t *testing.T) {
		l := newTestLine(t)
		require.NoError(t, l.bindEarly("BTL-1", nil))
		assert.Equal(t, LinePending, l.Status)
		require.NotNil(t, l.EarlyBindingSerial)
		assert.Equal(t, "BTL-1", *l.EarlyBindingSerial)
	})

	t.Run("allowed while validated", func(t *testing.T) {
		l := newTestLine(t)
		require.NoError(t, l.markValidated())
		require.NoError(t, l.bindEarly("BTL-1", nil))
	})

	t.Run("rejected once picked", func(t *testing.T) {
		l := newTestLine(t)
		require.NoError(t, l.markValidated())
		require.NoError(t, l.bindBottle("BTL-1", nil))
		l2 := newTestLine(t)
		require.NoError(t, l2.markValidated())
		require.NoError(t, l2.bindBottle("BTL-2", nil))
		assert.Error(t, l2.bindEarly("BTL-3", nil))
	})
}

func TestLineMarkPicked(t *testing.T) {
	t.Run("early bound line picks on wms event", func(t *testing.T) {
		l := newTestLine(t)
		require.NoError(t, l.bindEarly("BTL-1", nil))
		require.NoError(t, l.markValidated())
		require.NoError(t, l.markPicked())
		assert.Equal(t, LinePicked, l.Status)
	})

	t.Run("unbound line cannot pick without binding", func(t *testing.T) {
		l := newTestLine(t)
		require.NoError(t, l.markValidated())
		assert.Error(t, l.markPicked())
	})
}

func TestLineCancel(t *testing.T) {
	t.Run("cancel clears binding", func(t *testing.T) {
		l := newTestLine(t)
		require.NoError(t, l.markValidated())
		require.NoError(t, l.bindBottle("BTL-1", nil))
		require.NoError(t, l.cancel())
		assert.Equal(t, LineCancelled, l.Status)
		assert.Equal(t, 0, l.BindingCount())
		assert.Nil(t, l.BindingConfirmedAt)
	})

	t.Run("shipped line cannot cancel", func(t *testing.T) {
		l := newTestLine(t)
		require.NoError(t, l.markValidated())
		require.NoError(t, l.bindBottle("BTL-1", nil))
		require.NoError(t, l.markShipped())
		assert.Error(t, l.cancel())
	})
}

func TestLineBoundSerial(t *testing.T) {
	late := newTestLine(t)
	require.NoError(t, late.markValidated())
	require.NoError(t, late.bindBottle("BTL-L", nil))
	require.NotNil(t, late.BoundSerial())
	assert.Equal(t, "BTL-L", *late.BoundSerial())

	early := newTestLine(t)
	require.NoError(t, early.bindEarly("BTL-E", nil))
	require.NotNil(t, early.BoundSerial())
	assert.Equal(t, "BTL-E", *early.BoundSerial())
}
