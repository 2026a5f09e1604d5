package conversation

import (
	"time"

	"smuth/internal/core/domain/model/kernel"
)

// Draft accumulates the fields of a prospective order during composition,
// or the target of a claim/deletion flow. Drafts live in process memory
// only; a restart discards them, which is accepted.
//
// Fields are valid exactly up to the current Step: a draft at
// AwaitingDetails has meal, location, and both pickup times set, nothing
// after. The engine checks this prerequisite on every turn and resets the
// session if it does not hold.
type Draft struct {
	Step Step

	Meal     string
	Location string
	Earliest time.Time
	Latest   time.Time
	Details  string
	Fee      kernel.Fee

	// ClaimOrderID is the claim-by-identifier target remembered between the
	// first entry and the confirming re-entry.
	ClaimOrderID int64

	// DeleteOrderID is the deletion target awaiting confirmation.
	DeleteOrderID int64
}

// hasFieldsThrough reports whether the fields required before the given step
// are present, guarding against drafts that skipped steps.
func (d Draft) hasFieldsThrough(step Step) bool {
	switch step {
	case AwaitingLocation:
		return d.Meal != ""
	case AwaitingEarliestTime:
		return d.Meal != "" && d.Location != ""
	case AwaitingLatestTime:
		return d.Meal != "" && d.Location != "" && !d.Earliest.IsZero()
	case AwaitingDetails:
		return d.Meal != "" && d.Location != "" && !d.Earliest.IsZero() && !d.Latest.IsZero()
	case AwaitingFee:
		return d.Meal != "" && d.Location != "" && !d.Earliest.IsZero() && !d.Latest.IsZero()
	case AwaitingConfirmation:
		return d.Meal != "" && d.Location != "" && !d.Earliest.IsZero() && !d.Latest.IsZero() &&
			d.Fee.Validate() == nil
	case AwaitingClaimConfirmation:
		return d.ClaimOrderID > 0
	case AwaitingDeletionConfirmation:
		return d.DeleteOrderID > 0
	default:
		return true
	}
}
