// Package conversation implements the per-user finite-state machine that
// collects order fields across chat turns, plus the shorter flows for
// claiming by identifier and deleting an order. The engine validates each
// field as it arrives, re-prompting on failure without advancing, and on the
// terminal step hands the completed draft to the command layer.
package conversation

// Step identifies the state of one user's conversation. Zero value is Idle:
// no flow in progress.
type Step int

const (
	// Idle means no conversation flow is in progress.
	Idle Step = iota

	// Order composition flow, in prompt order.
	AwaitingMeal
	AwaitingLocation
	AwaitingEarliestTime
	AwaitingLatestTime
	AwaitingDetails
	AwaitingFee
	AwaitingConfirmation

	// Claim-by-identifier flow.
	AwaitingOrderID
	AwaitingClaimConfirmation

	// Deletion flow.
	SelectingDeletion
	AwaitingDeletionConfirmation
)

func getStepStrings() map[Step]string {
	return map[Step]string{
		Idle:                         "Idle",
		AwaitingMeal:                 "AwaitingMeal",
		AwaitingLocation:             "AwaitingLocation",
		AwaitingEarliestTime:         "AwaitingEarliestTime",
		AwaitingLatestTime:           "AwaitingLatestTime",
		AwaitingDetails:              "AwaitingDetails",
		AwaitingFee:                  "AwaitingFee",
		AwaitingConfirmation:         "AwaitingConfirmation",
		AwaitingOrderID:              "AwaitingOrderID",
		AwaitingClaimConfirmation:    "AwaitingClaimConfirmation",
		SelectingDeletion:            "SelectingDeletion",
		AwaitingDeletionConfirmation: "AwaitingDeletionConfirmation",
	}
}

// String returns the step name. Implements fmt.Stringer and is safe to call
// on any Step value.
func (s Step) String() string {
	if str, ok := getStepStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
