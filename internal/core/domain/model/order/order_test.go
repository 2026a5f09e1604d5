package order_test

import (
	"strings"
	"testing"
	"time"

	"smuth/internal/core/domain/model/kernel"
	"smuth/internal/core/domain/model/order"
	"smuth/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 28, 12, 0, 0, 0, time.UTC)

func testWindow(t *testing.T) kernel.PickupWindow {
	t.Helper()
	window, err := kernel.NewPickupWindow(testNow.Add(time.Hour), testNow.Add(3*time.Hour))
	require.NoError(t, err)
	return window
}

func testFee(t *testing.T) kernel.Fee {
	t.Helper()
	fee, err := kernel.NewFee(200)
	require.NoError(t, err)
	return fee
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder("Laksa", "Block 3", testWindow(t), "none", testFee(t), 1001, "alice", testNow)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates open order with all fields", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, int64(0), o.ID())
		assert.Equal(t, "Laksa", o.Meal())
		assert.Equal(t, "Block 3", o.Location())
		assert.Equal(t, "none", o.Details())
		assert.Equal(t, int64(200), o.Fee().Cents())
		assert.Equal(t, int64(1001), o.OwnerID())
		assert.Equal(t, "alice", o.OwnerHandle())
		assert.Equal(t, order.Open, o.Status())
		assert.Nil(t, o.RunnerID())
		assert.Nil(t, o.RunnerHandle())
		assert.Nil(t, o.ClaimedAt())
		assert.Nil(t, o.ChannelMessageID())
		assert.Equal(t, testNow, o.PlacedAt())
	})

	t.Run("accepts meal of exactly 100 characters", func(t *testing.T) {
		meal := strings.Repeat("a", order.MaxMealLength)

		_, err := order.NewOrder(meal, "Block 3", testWindow(t), "", testFee(t), 1001, "alice", testNow)

		require.NoError(t, err)
	})

	t.Run("rejects meal of 101 characters with actual length in error", func(t *testing.T) {
		meal := strings.Repeat("a", order.MaxMealLength+1)

		_, err := order.NewOrder(meal, "Block 3", testWindow(t), "", testFee(t), 1001, "alice", testNow)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "101")
	})

	t.Run("rejects empty meal and location", func(t *testing.T) {
		_, err := order.NewOrder("", "Block 3", testWindow(t), "", testFee(t), 1001, "alice", testNow)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = order.NewOrder("Laksa", "   ", testWindow(t), "", testFee(t), 1001, "alice", testNow)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects details over 500 characters", func(t *testing.T) {
		details := strings.Repeat("d", order.MaxDetailsLength+1)

		_, err := order.NewOrder("Laksa", "Block 3", testWindow(t), details, testFee(t), 1001, "alice", testNow)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "501")
	})

	t.Run("rejects window starting in the past", func(t *testing.T) {
		window, err := kernel.NewPickupWindow(testNow.Add(-time.Hour), testNow.Add(time.Hour))
		require.NoError(t, err)

		_, err = order.NewOrder("Laksa", "Block 3", window, "", testFee(t), 1001, "alice", testNow)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects unconstructed fee", func(t *testing.T) {
		_, err := order.NewOrder("Laksa", "Block 3", testWindow(t), "", kernel.Fee{}, 1001, "alice", testNow)

		require.Error(t, err)
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		_, err := order.NewOrder("Laksa", "Block 3", testWindow(t), "", testFee(t), 0, "", testNow)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero value order fails validation", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil order fails validation", func(t *testing.T) {
		var o *order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_AssignID(t *testing.T) {
	t.Run("assigns ID once", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.AssignID(42))
		assert.Equal(t, int64(42), o.ID())

		require.ErrorIs(t, o.AssignID(43), order.ErrIDAlreadyAssigned)
		assert.Equal(t, int64(42), o.ID())
	})

	t.Run("rejects non-positive IDs", func(t *testing.T) {
		o := newTestOrder(t)

		require.Error(t, o.AssignID(0))
		require.Error(t, o.AssignID(-1))
	})
}

func TestOrder_Claim(t *testing.T) {
	t.Run("claims an open order", func(t *testing.T) {
		o := newTestOrder(t)
		claimTime := testNow.Add(10 * time.Minute)

		err := o.Claim(2002, "bob", claimTime)

		require.NoError(t, err)
		assert.Equal(t, order.Claimed, o.Status())
		require.NotNil(t, o.RunnerID())
		assert.Equal(t, int64(2002), *o.RunnerID())
		require.NotNil(t, o.RunnerHandle())
		assert.Equal(t, "bob", *o.RunnerHandle())
		require.NotNil(t, o.ClaimedAt())
		assert.Equal(t, claimTime, *o.ClaimedAt())
	})

	t.Run("second claim fails and does not overwrite runner fields", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Claim(2002, "bob", testNow))

		err := o.Claim(3003, "carol", testNow.Add(time.Minute))

		require.Error(t, err)
		assert.Equal(t, int64(2002), *o.RunnerID())
		assert.Equal(t, "bob", *o.RunnerHandle())
		assert.Equal(t, testNow, *o.ClaimedAt())
	})

	t.Run("cannot claim expired order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Expire(testNow.Add(4*time.Hour)))

		require.Error(t, o.Claim(2002, "bob", testNow.Add(4*time.Hour)))
	})

	t.Run("rejects missing runner id", func(t *testing.T) {
		o := newTestOrder(t)

		require.ErrorIs(t, o.Claim(0, "bob", testNow), errs.ErrValueIsRequired)
	})
}

func TestOrder_Unclaim(t *testing.T) {
	t.Run("runner releases claim before the window passes", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Claim(2002, "bob", testNow))

		err := o.Unclaim(2002, testNow.Add(30*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, order.Open, o.Status())
		assert.Nil(t, o.RunnerID())
		assert.Nil(t, o.RunnerHandle())
		assert.Nil(t, o.ClaimedAt())
	})

	t.Run("fails after the pickup window has passed", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Claim(2002, "bob", testNow))

		err := o.Unclaim(2002, testNow.Add(4*time.Hour))

		require.ErrorIs(t, err, order.ErrPickupWindowPassed)
		assert.Equal(t, order.Claimed, o.Status())
		assert.NotNil(t, o.RunnerID())
	})

	t.Run("fails for a different runner", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Claim(2002, "bob", testNow))

		err := o.Unclaim(3003, testNow.Add(time.Minute))

		require.ErrorIs(t, err, order.ErrNotOrderRunner)
		assert.Equal(t, order.Claimed, o.Status())
	})

	t.Run("fails on an open order", func(t *testing.T) {
		o := newTestOrder(t)

		require.Error(t, o.Unclaim(2002, testNow))
	})
}

func TestOrder_Complete(t *testing.T) {
	t.Run("completes a claimed order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Claim(2002, "bob", testNow))

		require.NoError(t, o.Complete())
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("cannot complete an open order", func(t *testing.T) {
		o := newTestOrder(t)

		require.Error(t, o.Complete())
	})

	t.Run("completed is final", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Claim(2002, "bob", testNow))
		require.NoError(t, o.Complete())

		require.Error(t, o.Complete())
		require.Error(t, o.Claim(3003, "carol", testNow))
		require.Error(t, o.Expire(testNow.Add(5*time.Hour)))
	})
}

func TestOrder_Expire(t *testing.T) {
	t.Run("expires an open order after the window passes", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Expire(testNow.Add(4*time.Hour)))
		assert.Equal(t, order.Expired, o.Status())
	})

	t.Run("rejects expiry while the window is open", func(t *testing.T) {
		o := newTestOrder(t)

		require.Error(t, o.Expire(testNow.Add(time.Hour)))
		assert.Equal(t, order.Open, o.Status())
	})

	t.Run("never expires a claimed order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Claim(2002, "bob", testNow))

		require.Error(t, o.Expire(testNow.Add(4*time.Hour)))
		assert.Equal(t, order.Claimed, o.Status())
	})
}

func TestOrder_CanBeDeletedBy(t *testing.T) {
	t.Run("owner can delete an open order", func(t *testing.T) {
		o := newTestOrder(t)

		assert.True(t, o.CanBeDeletedBy(1001))
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		o := newTestOrder(t)

		assert.False(t, o.CanBeDeletedBy(2002))
	})

	t.Run("claimed order cannot be deleted", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Claim(2002, "bob", testNow))

		assert.False(t, o.CanBeDeletedBy(1001))
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores a claimed order", func(t *testing.T) {
		runnerID := int64(2002)
		runnerHandle := "bob"
		claimedAt := testNow.Add(10 * time.Minute)
		messageID := 555

		o, err := order.RestoreOrder(
			7, "Laksa", "Block 3", testWindow(t), "none", testFee(t),
			1001, "alice", &runnerID, &runnerHandle, order.Claimed,
			testNow, &claimedAt, &messageID,
		)

		require.NoError(t, err)
		assert.Equal(t, int64(7), o.ID())
		assert.Equal(t, order.Claimed, o.Status())
		assert.True(t, o.IsRunBy(2002))
		require.NotNil(t, o.ChannelMessageID())
		assert.Equal(t, 555, *o.ChannelMessageID())
	})

	t.Run("rejects runner on an open order", func(t *testing.T) {
		runnerID := int64(2002)
		runnerHandle := "bob"

		_, err := order.RestoreOrder(
			7, "Laksa", "Block 3", testWindow(t), "", testFee(t),
			1001, "alice", &runnerID, &runnerHandle, order.Open,
			testNow, nil, nil,
		)

		require.Error(t, err)
	})

	t.Run("rejects claimed order without runner", func(t *testing.T) {
		_, err := order.RestoreOrder(
			7, "Laksa", "Block 3", testWindow(t), "", testFee(t),
			1001, "alice", nil, nil, order.Claimed,
			testNow, nil, nil,
		)

		require.Error(t, err)
	})

	t.Run("rejects non-positive id", func(t *testing.T) {
		_, err := order.RestoreOrder(
			0, "Laksa", "Block 3", testWindow(t), "", testFee(t),
			1001, "alice", nil, nil, order.Open,
			testNow, nil, nil,
		)

		require.Error(t, err)
	})

	t.Run("restores a historical window without lead validation", func(t *testing.T) {
		window, err := kernel.NewPickupWindow(testNow.Add(-3*time.Hour), testNow.Add(-time.Hour))
		require.NoError(t, err)

		o, restoreErr := order.RestoreOrder(
			7, "Laksa", "Block 3", window, "", testFee(t),
			1001, "alice", nil, nil, order.Expired,
			testNow.Add(-4*time.Hour), nil, nil,
		)

		require.NoError(t, restoreErr)
		assert.Equal(t, order.Expired, o.Status())
	})
}
