package commands

import (
	"errors"

	"smuth/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand represents the owner's request to withdraw an open
// order before anyone claims it.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	ownerID int64

	guard guard.ConstructorGuard
}

// NewDeleteOrderCommand creates a command to withdraw the given order on
// behalf of the given owner.
func NewDeleteOrderCommand(orderID, ownerID int64) (DeleteOrderCommand, error) {
	cmd := DeleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if orderID <= 0 {
		return DeleteOrderCommand{}, ErrOrderIDIsRequired
	}
	if ownerID == 0 {
		return DeleteOrderCommand{}, ErrOwnerIDIsRequired
	}

	cmd.orderID = orderID
	cmd.ownerID = ownerID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being withdrawn.
func (c DeleteOrderCommand) OrderID() int64 { return c.orderID }

// OwnerID returns the withdrawing owner's identity.
func (c DeleteOrderCommand) OwnerID() int64 { return c.ownerID }
