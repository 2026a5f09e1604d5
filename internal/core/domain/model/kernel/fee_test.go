package kernel_test

import (
	"testing"

	"smuth/internal/core/domain/model/kernel"
	"smuth/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFee(t *testing.T) {
	t.Run("creates fee from positive cents", func(t *testing.T) {
		fee, err := kernel.NewFee(250)

		require.NoError(t, err)
		require.NoError(t, fee.Validate())
		assert.Equal(t, int64(250), fee.Cents())
		assert.Equal(t, "$2.50", fee.String())
	})

	t.Run("rejects zero and negative amounts", func(t *testing.T) {
		for _, cents := range []int64{0, -1, -500} {
			_, err := kernel.NewFee(cents)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestParseFee(t *testing.T) {
	t.Run("parses valid inputs", func(t *testing.T) {
		testCases := []struct {
			input string
			cents int64
		}{
			{"2.00", 200},
			{"1.50", 150},
			{"2", 200},
			{"2.5", 250},
			{"$3.25", 325},
			{"5.01", 501},
			{"1000", 100_000},
			{"2500.75", 250_075},
		}

		for _, tc := range testCases {
			fee, err := kernel.ParseFee(tc.input)

			require.NoError(t, err, "input %q", tc.input)
			assert.Equal(t, tc.cents, fee.Cents(), "input %q", tc.input)
		}
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		invalid := []string{"", "abc", "1.234", "-2.00", "2,50", "two dollars", "1.5.0"}

		for _, input := range invalid {
			_, err := kernel.ParseFee(input)

			require.Error(t, err, "input %q", input)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "input %q", input)
		}
	})
}

func TestFee_Validate(t *testing.T) {
	t.Run("zero value fee fails validation", func(t *testing.T) {
		var fee kernel.Fee

		err := fee.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestFeeBounds_Check(t *testing.T) {
	t.Run("default bounds accept boundary values", func(t *testing.T) {
		for _, cents := range []int64{100, 200, 500} {
			fee, err := kernel.NewFee(cents)
			require.NoError(t, err)

			require.NoError(t, kernel.DefaultFeeBounds.Check(fee))
		}
	})

	t.Run("default bounds reject out of range values", func(t *testing.T) {
		for _, cents := range []int64{99, 501, 1000} {
			fee, err := kernel.NewFee(cents)
			require.NoError(t, err)

			checkErr := kernel.DefaultFeeBounds.Check(fee)
			require.Error(t, checkErr)
			require.ErrorIs(t, checkErr, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("zero max disables the upper bound", func(t *testing.T) {
		bounds := kernel.FeeBounds{MinCents: 100}

		fee, err := kernel.NewFee(100_00)
		require.NoError(t, err)

		require.NoError(t, bounds.Check(fee))
	})

	t.Run("minimum still enforced without a cap", func(t *testing.T) {
		bounds := kernel.FeeBounds{MinCents: 100}

		fee, err := kernel.NewFee(99)
		require.NoError(t, err)

		checkErr := bounds.Check(fee)
		require.Error(t, checkErr)
		require.ErrorIs(t, checkErr, errs.ErrValueIsOutOfRange)
	})
}
