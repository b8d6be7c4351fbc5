package entitlement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vintrade/backend/internal/domain/shared"
)

func TestNewVoucherTransfer(t *testing.T) {
	t.Run("creates pending transfer with default TTL", func(t *testing.T) {
		tr, err := NewVoucherTransfer(uuid.New(), uuid.New(), uuid.New(), 0)

		require.NoError(t, err)
		assert.Equal(t, TransferPending, tr.Status)
		assert.True(t, tr.IsPending())
		assert.WithinDuration(t, time.Now().Add(DefaultTransferTTL), tr.ExpiresAt, time.Minute)
	})

	t.Run("rejects transfer to current holder", func(t *testing.T) {
		holder := uuid.New()
		_, err := NewVoucherTransfer(uuid.New(), holder, holder, time.Hour)
		require.Error(t, err)
	})
}

func TestVoucherTransfer_Accept(t *testing.T) {
	t.Run("accepts pending transfer", func(t *testing.T) {
		tr, err := NewVoucherTransfer(uuid.New(), uuid.New(), uuid.New(), time.Hour)
		require.NoError(t, err)

		require.NoError(t, tr.Accept())
		assert.Equal(t, TransferAccepted, tr.Status)
		require.NotNil(t, tr.ClosedAt)
	})

	t.Run("rejects expired transfer", func(t *testing.T) {
		tr, err := NewVoucherTransfer(uuid.New(), uuid.New(), uuid.New(), time.Hour)
		require.NoError(t, err)
		tr.ExpiresAt = time.Now().Add(-time.Minute)

		err = tr.Accept()
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeTransferExpired, domainErr.Code)
		assert.Equal(t, TransferPending, tr.Status)
	})

	t.Run("rejects double acceptance", func(t *testing.T) {
		tr, err := NewVoucherTransfer(uuid.New(), uuid.New(), uuid.New(), time.Hour)
		require.NoError(t, err)
		require.NoError(t, tr.Accept())

		require.Error(t, tr.Accept())
	})
}

func TestVoucherTransfer_Expire(t *testing.T) {
	tr, err := NewVoucherTransfer(uuid.New(), uuid.New(), uuid.New(), time.Hour)
	require.NoError(t, err)

	// Not yet due
	assert.False(t, tr.Expire())
	assert.Equal(t, TransferPending, tr.Status)

	tr.ExpiresAt = time.Now().Add(-time.Minute)
	assert.True(t, tr.Expire())
	assert.Equal(t, TransferExpired, tr.Status)

	// Already closed
	assert.False(t, tr.Expire())
}

func TestVoucherTransfer_Cancel(t *testing.T) {
	tr, err := NewVoucherTransfer(uuid.New(), uuid.New(), uuid.New(), time.Hour)
	require.NoError(t, err)

	require.NoError(t, tr.Cancel())
	assert.Equal(t, TransferCancelled, tr.Status)
	require.Error(t, tr.Cancel())
}
