package services_test

import (
	"testing"
	"time"

	"smuth/internal/core/domain/model/kernel"
	"smuth/internal/core/domain/model/order"
	"smuth/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

func newOpenOrder(t *testing.T, ownerID int64) *order.Order {
	t.Helper()
	now := time.Date(2025, 3, 28, 12, 0, 0, 0, time.UTC)
	window, err := kernel.NewPickupWindow(now.Add(time.Hour), now.Add(2*time.Hour))
	require.NoError(t, err)
	fee, err := kernel.NewFee(200)
	require.NoError(t, err)
	o, err := order.NewOrder("Laksa", "Block 3", window, "", fee, ownerID, "alice", now)
	require.NoError(t, err)
	return o
}

func TestClaimPolicy_Authorize(t *testing.T) {
	t.Run("permits a regular claim", func(t *testing.T) {
		policy := services.NewDefaultClaimPolicy()
		o := newOpenOrder(t, 1001)

		require.NoError(t, policy.Authorize(o, 2002, 0))
		require.NoError(t, policy.Authorize(o, 2002, 1))
	})

	t.Run("forbids self claim by default", func(t *testing.T) {
		policy := services.NewDefaultClaimPolicy()
		o := newOpenOrder(t, 1001)

		err := policy.Authorize(o, 1001, 0)

		require.ErrorIs(t, err, services.ErrSelfClaim)
	})

	t.Run("permits self claim when configured", func(t *testing.T) {
		policy := services.ClaimPolicy{AllowSelfClaim: true, MaxActiveClaims: 2}
		o := newOpenOrder(t, 1001)

		require.NoError(t, policy.Authorize(o, 1001, 0))
	})

	t.Run("caps active claims at the configured limit", func(t *testing.T) {
		policy := services.NewDefaultClaimPolicy()
		o := newOpenOrder(t, 1001)

		err := policy.Authorize(o, 2002, services.DefaultMaxActiveClaims)

		require.ErrorIs(t, err, services.ErrTooManyActiveClaims)
	})

	t.Run("zero limit disables the cap", func(t *testing.T) {
		policy := services.ClaimPolicy{MaxActiveClaims: 0}
		o := newOpenOrder(t, 1001)

		require.NoError(t, policy.Authorize(o, 2002, 50))
	})

	t.Run("rejects non claimable order", func(t *testing.T) {
		policy := services.NewDefaultClaimPolicy()
		o := newOpenOrder(t, 1001)
		require.NoError(t, o.Claim(3003, "carol", time.Date(2025, 3, 28, 12, 5, 0, 0, time.UTC)))

		require.Error(t, policy.Authorize(o, 2002, 0))
	})

	t.Run("rejects unconstructed order", func(t *testing.T) {
		policy := services.NewDefaultClaimPolicy()

		require.ErrorIs(t, policy.Authorize(&order.Order{}, 2002, 0), order.ErrOrderIsNotConstructed)
	})
}
