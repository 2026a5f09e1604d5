package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"smuth/internal/core/domain/model/kernel"
	"smuth/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrIDAlreadyAssigned is returned when AssignID is called on an order
	// that already carries a persistent identifier.
	ErrIDAlreadyAssigned = errors.New("order already has an ID assigned")

	// ErrNotOrderRunner is returned when a user who does not hold the claim
	// attempts to release it.
	ErrNotOrderRunner = errors.New("order is claimed by a different runner")

	// ErrPickupWindowPassed is returned when an operation requires the pickup
	// window to still be open but it has already elapsed.
	ErrPickupWindowPassed = errors.New("pickup window has already passed")
)

// Field length limits for user-entered order content.
const (
	MaxMealLength     = 100
	MaxLocationLength = 100
	MaxDetailsLength  = 500
)

// Order represents a posted meal-pickup request in the marketplace. It is the
// aggregate root that manages the order lifecycle from placement through
// claiming to completion or expiry.
//
// Order follows these invariants:
//   - Meal description and location are non-empty, at most 100 characters each
//   - Details are at most 500 characters (may be empty)
//   - The pickup window satisfies earliest < latest <= earliest + 3h, and at
//     placement time starts within the next seven days
//   - At most one runner holds the claim; runner identity is set exactly when
//     the status is Claimed or Completed
//   - Status transitions follow the state machine defined on Status
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods. Instances are created via NewOrder
// (fresh orders) or RestoreOrder (reconstruction from persistence).
type Order struct {
	// id is the sequential persistent identifier; zero until the order has
	// been stored.
	id int64

	meal     string
	location string
	window   kernel.PickupWindow
	details  string
	fee      kernel.Fee

	ownerID     int64
	ownerHandle string

	// runnerID and runnerHandle identify the claimant; nil while unclaimed.
	runnerID     *int64
	runnerHandle *string

	status Status

	placedAt  time.Time
	claimedAt *time.Time

	// channelMessageID is the opaque handle to the published listing message,
	// used for later edits. Nil until the listing is published.
	channelMessageID *int

	isConstructed bool
}

// NewOrder creates a fresh Order in Open status after validating every field
// invariant. placedAt is the wall-clock placement instant; it doubles as the
// reference point for the pickup-window lead check.
func NewOrder(
	meal string,
	location string,
	window kernel.PickupWindow,
	details string,
	fee kernel.Fee,
	ownerID int64,
	ownerHandle string,
	placedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Open,
		placedAt:      placedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setMeal(meal),
		o.setLocation(location),
		o.setWindow(window, placedAt),
		o.setDetails(details),
		o.setFee(fee),
		o.setOwner(ownerID, ownerHandle),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persisted state. It validates the
// structural invariants but skips placement-time rules (the window lead check)
// so that historical rows load cleanly.
func RestoreOrder(
	id int64,
	meal string,
	location string,
	window kernel.PickupWindow,
	details string,
	fee kernel.Fee,
	ownerID int64,
	ownerHandle string,
	runnerID *int64,
	runnerHandle *string,
	status Status,
	placedAt time.Time,
	claimedAt *time.Time,
	channelMessageID *int,
) (*Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not a positive ID", id))
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveRunner(runnerID != nil); err != nil {
		return nil, err
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}
	if err := fee.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		status:           status,
		placedAt:         placedAt,
		isConstructed:    true,
		runnerID:         runnerID,
		runnerHandle:     runnerHandle,
		claimedAt:        claimedAt,
		channelMessageID: channelMessageID,
	}

	if err := errors.Join(
		o.setMeal(meal),
		o.setLocation(location),
		o.setDetails(details),
		o.setOwner(ownerID, ownerHandle),
	); err != nil {
		return nil, err
	}

	o.id = id
	o.window = window
	o.fee = fee
	return o, nil
}

// Validate ensures the Order instance was properly constructed through one of
// the factory methods. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two persisted orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id != 0 && o.id == other.id
}

// AssignID attaches the store-generated identifier to a freshly inserted
// order. It may be called exactly once.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return ErrIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not a positive ID", id))
	}

	o.id = id
	return nil
}

// ID returns the order's persistent identifier, or zero if not yet stored.
func (o *Order) ID() int64 { return o.id }

// Meal returns the meal description.
func (o *Order) Meal() string { return o.meal }

// Location returns the pickup/delivery location text.
func (o *Order) Location() string { return o.location }

// Window returns the pickup time window.
func (o *Order) Window() kernel.PickupWindow { return o.window }

// Details returns the free-form order details (may be empty).
func (o *Order) Details() string { return o.details }

// Fee returns the offered delivery fee.
func (o *Order) Fee() kernel.Fee { return o.fee }

// OwnerID returns the identity of the user who posted the order.
func (o *Order) OwnerID() int64 { return o.ownerID }

// OwnerHandle returns the chat handle of the owner.
func (o *Order) OwnerHandle() string { return o.ownerHandle }

// RunnerID returns the claimant's identity, or nil while unclaimed.
func (o *Order) RunnerID() *int64 { return o.runnerID }

// RunnerHandle returns the claimant's chat handle, or nil while unclaimed.
func (o *Order) RunnerHandle() *string { return o.runnerHandle }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PlacedAt returns the placement timestamp.
func (o *Order) PlacedAt() time.Time { return o.placedAt }

// ClaimedAt returns when the current claim was taken, or nil while unclaimed.
func (o *Order) ClaimedAt() *time.Time { return o.claimedAt }

// ChannelMessageID returns the opaque reference to the published listing
// message, or nil if the listing has not been published.
func (o *Order) ChannelMessageID() *int { return o.channelMessageID }

// IsOwnedBy reports whether the given user posted this order.
func (o *Order) IsOwnedBy(userID int64) bool {
	return o.ownerID == userID
}

// IsRunBy reports whether the given user currently holds the claim.
func (o *Order) IsRunBy(userID int64) bool {
	return o.runnerID != nil && *o.runnerID == userID
}

// PublishListing records the message reference of the published channel
// listing so transitions can edit it later.
func (o *Order) PublishListing(messageID int) {
	o.channelMessageID = &messageID
}

// Claim assigns the order to a runner and transitions it to Claimed.
//
// Business rules enforced here:
//   - Only Open orders can be claimed (no double claims, no claiming
//     expired or completed orders)
//
// Policy rules such as the self-claim ban and the active-claim limit are the
// responsibility of services.ClaimPolicy, which runs before this method.
func (o *Order) Claim(runnerID int64, runnerHandle string, at time.Time) error {
	if runnerID == 0 {
		return errs.NewValueIsRequiredError("runner id")
	}

	newStatus, err := o.status.Claim()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.runnerID = &runnerID
	o.runnerHandle = &runnerHandle
	o.claimedAt = &at
	return nil
}

// Unclaim releases the claim and returns the order to Open.
//
// Business rules enforced here:
//   - Only the current runner may release the claim
//   - The pickup window must not have passed yet
func (o *Order) Unclaim(runnerID int64, at time.Time) error {
	if o.status == Claimed && !o.IsRunBy(runnerID) {
		return ErrNotOrderRunner
	}

	newStatus, err := o.status.Unclaim()
	if err != nil {
		return err
	}

	if o.window.HasPassed(at) {
		return ErrPickupWindowPassed
	}

	o.status = newStatus
	o.runnerID = nil
	o.runnerHandle = nil
	o.claimedAt = nil
	return nil
}

// Complete marks the order as delivered. Only Claimed orders complete, and
// Completed is final.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Expire marks an unclaimed order whose window has passed as Expired.
// The caller (expiry sweep) supplies the current time; expiring an order
// whose window is still open is rejected.
func (o *Order) Expire(at time.Time) error {
	if !o.window.HasPassed(at) {
		return errs.NewValueIsInvalidErrorWithCause(
			"order",
			fmt.Errorf("pickup window ends %s, which is not before %s", o.window.Latest(), at),
		)
	}

	newStatus, err := o.status.Expire()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// CanBeDeletedBy reports whether the given user may delete this order.
// Deletion is permitted only to the owner and only while the order is Open.
func (o *Order) CanBeDeletedBy(userID int64) bool {
	return o.IsOwnedBy(userID) && o.status == Open
}

func (o *Order) setMeal(meal string) error {
	meal = strings.TrimSpace(meal)
	if meal == "" {
		return errs.NewValueIsRequiredError("meal description")
	}
	if n := len([]rune(meal)); n > MaxMealLength {
		return errs.NewValueIsOutOfRangeError("meal description length", n, 1, MaxMealLength)
	}
	o.meal = meal
	return nil
}

func (o *Order) setLocation(location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return errs.NewValueIsRequiredError("location")
	}
	if n := len([]rune(location)); n > MaxLocationLength {
		return errs.NewValueIsOutOfRangeError("location length", n, 1, MaxLocationLength)
	}
	o.location = location
	return nil
}

func (o *Order) setWindow(window kernel.PickupWindow, placedAt time.Time) error {
	if err := window.ValidateLead(placedAt); err != nil {
		return err
	}
	o.window = window
	return nil
}

func (o *Order) setDetails(details string) error {
	details = strings.TrimSpace(details)
	if n := len([]rune(details)); n > MaxDetailsLength {
		return errs.NewValueIsOutOfRangeError("details length", n, 0, MaxDetailsLength)
	}
	o.details = details
	return nil
}

func (o *Order) setFee(fee kernel.Fee) error {
	if err := fee.Validate(); err != nil {
		return err
	}
	o.fee = fee
	return nil
}

func (o *Order) setOwner(ownerID int64, ownerHandle string) error {
	if ownerID == 0 {
		return errs.NewValueIsRequiredError("owner id")
	}
	o.ownerID = ownerID
	o.ownerHandle = ownerHandle
	return nil
}
