package commands

import (
	"errors"

	"smuth/internal/pkg/guard"
)

var (
	ErrCompleteOrderCommandIsNotConstructed = errors.New(
		"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
	)
	ErrOwnerIDIsRequired = errors.New("owner id is required")
)

// CompleteOrderCommand represents the owner's confirmation that a claimed
// order was delivered. Only the order's owner may confirm completion.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	ownerID int64

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command confirming delivery of the given
// order on behalf of the given owner.
func NewCompleteOrderCommand(orderID, ownerID int64) (CompleteOrderCommand, error) {
	cmd := CompleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if orderID <= 0 {
		return CompleteOrderCommand{}, ErrOrderIDIsRequired
	}
	if ownerID == 0 {
		return CompleteOrderCommand{}, ErrOwnerIDIsRequired
	}

	cmd.orderID = orderID
	cmd.ownerID = ownerID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being completed.
func (c CompleteOrderCommand) OrderID() int64 { return c.orderID }

// OwnerID returns the confirming owner's identity.
func (c CompleteOrderCommand) OwnerID() int64 { return c.ownerID }
