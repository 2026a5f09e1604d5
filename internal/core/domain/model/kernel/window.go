package kernel

import (
	"fmt"
	"time"

	"smuth/internal/pkg/errs"
	"smuth/internal/pkg/guard"
)

// ErrPickupWindowIsNotConstructed indicates that a PickupWindow was not
// created through NewPickupWindow.
var ErrPickupWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"PickupWindow must be created via NewPickupWindow",
)

const (
	// MaxWindowSpan is the longest allowed gap between the earliest and the
	// latest pickup time.
	MaxWindowSpan = 3 * time.Hour

	// MaxWindowLead is how far into the future the earliest pickup time may
	// lie at order creation.
	MaxWindowLead = 7 * 24 * time.Hour
)

// PickupWindow is a value object representing the time range in which a
// runner can pick up an order. It enforces the ordering invariant
// earliest < latest <= earliest + MaxWindowSpan.
//
// The placement-time rule, that the window must start between now and
// now + MaxWindowLead, depends on a clock, so it is checked separately via
// ValidateLead at order creation rather than baked into the constructor.
// Reconstructing historical windows from storage stays possible that way.
//
// PickupWindow is immutable and safe for concurrent use.
type PickupWindow struct {
	earliest time.Time
	latest   time.Time

	guard guard.ConstructorGuard
}

// NewPickupWindow creates a PickupWindow after validating the ordering and
// span invariants.
func NewPickupWindow(earliest, latest time.Time) (PickupWindow, error) {
	if earliest.IsZero() {
		return PickupWindow{}, errs.NewValueIsRequiredError("earliest pickup time")
	}
	if latest.IsZero() {
		return PickupWindow{}, errs.NewValueIsRequiredError("latest pickup time")
	}
	if !earliest.Before(latest) {
		return PickupWindow{}, errs.NewValueIsInvalidErrorWithCause(
			"pickup window",
			fmt.Errorf("latest time %s is not after earliest time %s", latest, earliest),
		)
	}
	if latest.Sub(earliest) > MaxWindowSpan {
		return PickupWindow{}, errs.NewValueIsInvalidErrorWithCause(
			"pickup window",
			fmt.Errorf("window spans %s, which exceeds the %s maximum", latest.Sub(earliest), MaxWindowSpan),
		)
	}

	return PickupWindow{
		earliest: earliest,
		latest:   latest,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the PickupWindow was created through NewPickupWindow.
func (w PickupWindow) Validate() error {
	return w.guard.Validate(ErrPickupWindowIsNotConstructed)
}

// ValidateLead checks the placement-time rule: the window must start no
// earlier than now and no later than now + MaxWindowLead.
func (w PickupWindow) ValidateLead(now time.Time) error {
	if err := w.Validate(); err != nil {
		return err
	}

	if w.earliest.Before(now) || w.earliest.After(now.Add(MaxWindowLead)) {
		return errs.NewValueIsOutOfRangeError(
			"earliest pickup time",
			w.earliest.Format(time.RFC3339),
			now.Format(time.RFC3339),
			now.Add(MaxWindowLead).Format(time.RFC3339),
		)
	}

	return nil
}

// Earliest returns the start of the pickup window.
func (w PickupWindow) Earliest() time.Time {
	return w.earliest
}

// Latest returns the end of the pickup window.
func (w PickupWindow) Latest() time.Time {
	return w.latest
}

// HasPassed reports whether the window has fully elapsed at the given time.
// Orders whose window has passed can no longer be claimed or unclaimed, and
// unclaimed ones are eligible for the expiry sweep.
func (w PickupWindow) HasPassed(now time.Time) bool {
	return w.latest.Before(now)
}

// IsEqual compares two windows by their boundary instants.
func (w PickupWindow) IsEqual(other PickupWindow) bool {
	return w.earliest.Equal(other.earliest) && w.latest.Equal(other.latest)
}
