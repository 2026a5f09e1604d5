package order

import (
	"fmt"

	"smuth/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct marketplace workflow.
//
// State transitions:
//
//	Open ──┬──> Claimed ──> Completed
//	  │    └──<─┘ (unclaim while the window is open)
//	  └──> Expired (sweep, only while unclaimed)
//
// Open orders may also be hard-deleted by their owner; deletion removes the
// row rather than transitioning to a status.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Open is the initial status when an order is first placed.
	// Orders in this status are visible in listings and waiting for a runner.
	Open

	// Claimed indicates a runner has committed to fulfilling the order.
	// Exactly one runner holds a claim at a time.
	Claimed

	// Completed indicates both parties confirmed the delivery.
	// This is a final state with no further transitions allowed.
	Completed

	// Expired indicates the pickup window passed with no runner claiming
	// the order. Terminal for ordinary use.
	Expired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Open:      "Open",
		Claimed:   "Claimed",
		Completed: "Completed",
		Expired:   "Expired",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Open:      "Open",
		Claimed:   "Claimed",
		Completed: "Completed",
		Expired:   "Expired",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Open, Claimed, Completed, Expired.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateClaim checks if the status allows claiming without performing the
// transition. Only Open orders can be claimed: a claimed, completed, or
// expired order must never gain a (new) runner.
func (s Status) ValidateClaim() error {
	if s != Open {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to claim", s.String()),
		)
	}
	return nil
}

// ValidateCanHaveRunner validates the consistency between order status and
// runner assignment.
//
// Business Rules:
//   - Open and Expired orders must not have a runner
//   - Claimed and Completed orders must have a runner
func (s Status) ValidateCanHaveRunner(runner bool) error {
	if runner && s != Claimed && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a runner", s.String()),
		)
	}

	if !runner && (s == Claimed || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no runner", s.String()),
		)
	}

	return nil
}

// Claim transitions the status to Claimed.
//
// Valid transitions:
//   - Open -> Claimed
//
// Anything else fails: Claimed orders cannot be claimed again, and Expired,
// Completed, and Unknown orders cannot be claimed at all.
func (s Status) Claim() (Status, error) {
	if err := s.ValidateClaim(); err != nil {
		return 0, err
	}

	return Claimed, nil
}

// Unclaim transitions the status back to Open.
//
// Valid transitions:
//   - Claimed -> Open
func (s Status) Unclaim() (Status, error) {
	if s != Claimed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to unclaim", s.String()),
		)
	}

	return Open, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Claimed -> Completed
func (s Status) Complete() (Status, error) {
	if s != Claimed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}

// Expire transitions the status to Expired.
//
// Valid transitions:
//   - Open -> Expired
//
// A Claimed order must never expire; the sweep only flips orders that are
// still unclaimed at write time.
func (s Status) Expire() (Status, error) {
	if s != Open {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to expire", s.String()),
		)
	}

	return Expired, nil
}
