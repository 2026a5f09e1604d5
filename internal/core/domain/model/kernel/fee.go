package kernel

import (
	"fmt"
	"regexp"
	"strconv"

	"smuth/internal/pkg/errs"
	"smuth/internal/pkg/guard"
)

// ErrFeeIsNotConstructed indicates that a Fee was not created through NewFee
// or ParseFee. This error is returned when validating a zero-value Fee.
var ErrFeeIsNotConstructed = errs.NewValueIsRequiredError(
	"Fee must be created via NewFee or ParseFee",
)

// feePattern accepts plain decimal dollar amounts with at most two decimal
// places, with an optional leading dollar sign: "2", "2.5", "$2.50". The
// dollars group is wide enough that the parser never caps an amount the
// range policy would allow; affordability is FeeBounds' call, not the
// parser's.
var feePattern = regexp.MustCompile(`^\$?(\d{1,7})(?:\.(\d{1,2}))?$`)

// Fee is a value object representing a delivery fee as an exact amount of
// cents. Storing cents as an integer avoids floating-point drift when fees
// are compared against policy bounds or rendered back to users.
//
// The zero value of Fee is invalid and must be constructed via NewFee or
// ParseFee. Fee is immutable and safe for concurrent use.
type Fee struct {
	cents int64

	guard guard.ConstructorGuard
}

// NewFee creates a Fee from an amount of cents. The amount must be positive;
// range policy (minimum and optional maximum) is enforced separately by
// FeeBounds so that the bound values stay configurable.
func NewFee(cents int64) (Fee, error) {
	if cents <= 0 {
		return Fee{}, errs.NewValueIsInvalidErrorWithCause(
			"fee",
			fmt.Errorf("%d cents is not a positive amount", cents),
		)
	}

	return Fee{cents: cents, guard: guard.NewConstructorGuard()}, nil
}

// ParseFee parses a user-entered dollar amount such as "2.00" or "$1.50"
// into a Fee. Anything that is not a plain decimal number with at most two
// decimal places is rejected.
func ParseFee(input string) (Fee, error) {
	m := feePattern.FindStringSubmatch(input)
	if m == nil {
		return Fee{}, errs.NewValueIsInvalidErrorWithCause(
			"fee",
			fmt.Errorf("%q is not a valid dollar amount", input),
		)
	}

	dollars, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Fee{}, errs.NewValueIsInvalidErrorWithCause("fee", err)
	}

	cents := dollars * 100
	if m[2] != "" {
		frac, fracErr := strconv.ParseInt(m[2], 10, 64)
		if fracErr != nil {
			return Fee{}, errs.NewValueIsInvalidErrorWithCause("fee", fracErr)
		}
		if len(m[2]) == 1 {
			frac *= 10
		}
		cents += frac
	}

	return NewFee(cents)
}

// Validate ensures the Fee was created through a constructor.
func (f Fee) Validate() error {
	return f.guard.Validate(ErrFeeIsNotConstructed)
}

// Cents returns the fee amount in cents.
func (f Fee) Cents() int64 {
	return f.cents
}

// IsEqual compares two fees by amount.
func (f Fee) IsEqual(other Fee) bool {
	return f.cents == other.cents
}

// String renders the fee as a dollar amount, e.g. "$2.00".
func (f Fee) String() string {
	return fmt.Sprintf("$%d.%02d", f.cents/100, f.cents%100)
}

// FeeBounds is the configurable fee range policy. Min is always enforced.
// Max is optional: a zero Max disables the upper bound, matching deployments
// that removed the fee cap.
type FeeBounds struct {
	MinCents int64
	MaxCents int64
}

// DefaultFeeBounds is the standing fee policy: at least $1.00 and at most
// $5.00 per delivery.
var DefaultFeeBounds = FeeBounds{MinCents: 100, MaxCents: 500}

// Check validates a fee against the bounds. Returns a ValueIsOutOfRangeError
// describing the permitted range when the fee falls outside it.
func (b FeeBounds) Check(fee Fee) error {
	if err := fee.Validate(); err != nil {
		return err
	}

	if fee.cents < b.MinCents || (b.MaxCents > 0 && fee.cents > b.MaxCents) {
		maxDisplay := "none"
		if b.MaxCents > 0 {
			maxDisplay = Fee{cents: b.MaxCents}.String()
		}
		return errs.NewValueIsOutOfRangeError(
			"fee",
			fee.String(),
			Fee{cents: b.MinCents}.String(),
			maxDisplay,
		)
	}

	return nil
}
