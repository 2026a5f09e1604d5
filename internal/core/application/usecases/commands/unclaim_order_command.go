package commands

import (
	"errors"

	"smuth/internal/pkg/guard"
)

var ErrUnclaimOrderCommandIsNotConstructed = errors.New(
	"UnclaimOrderCommand must be created via NewUnclaimOrderCommand constructor",
)

// UnclaimOrderCommand represents a runner's request to release their claim on
// an order, returning it to the open pool.
type UnclaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  int64
	runnerID int64

	guard guard.ConstructorGuard
}

// NewUnclaimOrderCommand creates a command to release the given runner's
// claim on the given order.
func NewUnclaimOrderCommand(orderID, runnerID int64) (UnclaimOrderCommand, error) {
	cmd := UnclaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if orderID <= 0 {
		return UnclaimOrderCommand{}, ErrOrderIDIsRequired
	}
	if runnerID == 0 {
		return UnclaimOrderCommand{}, ErrRunnerIsRequired
	}

	cmd.orderID = orderID
	cmd.runnerID = runnerID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UnclaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrUnclaimOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the claimed order.
func (c UnclaimOrderCommand) OrderID() int64 { return c.orderID }

// RunnerID returns the identity of the runner releasing the claim.
func (c UnclaimOrderCommand) RunnerID() int64 { return c.runnerID }
