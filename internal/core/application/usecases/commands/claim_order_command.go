package commands

import (
	"errors"

	"smuth/internal/pkg/guard"
)

var (
	ErrClaimOrderCommandIsNotConstructed = errors.New(
		"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
	)
	ErrOrderIDIsRequired = errors.New("order id is required")
	ErrRunnerIsRequired  = errors.New("runner id is required")
)

// ClaimOrderCommand represents a runner's request to claim an open order.
//
// Example:
//
//	cmd, err := NewClaimOrderCommand(orderID, runnerID, runnerHandle)
//	if err != nil {
//	    return err
//	}
//	claimed, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrOrderNotClaimable) {
//	    // order was already claimed, expired, or never existed
//	}
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      int64
	runnerID     int64
	runnerHandle string

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a command to claim the given order for the
// given runner.
func NewClaimOrderCommand(orderID, runnerID int64, runnerHandle string) (ClaimOrderCommand, error) {
	cmd := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRunner(runnerID, runnerHandle),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrClaimOrderCommandIsNotConstructed if validation fails.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being claimed.
func (c ClaimOrderCommand) OrderID() int64 { return c.orderID }

// RunnerID returns the claiming user's identity.
func (c ClaimOrderCommand) RunnerID() int64 { return c.runnerID }

// RunnerHandle returns the claiming user's chat handle.
func (c ClaimOrderCommand) RunnerHandle() string { return c.runnerHandle }

func (c *ClaimOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return ErrOrderIDIsRequired
	}
	c.orderID = orderID
	return nil
}

func (c *ClaimOrderCommand) setRunner(runnerID int64, runnerHandle string) error {
	if runnerID == 0 {
		return ErrRunnerIsRequired
	}
	c.runnerID = runnerID
	c.runnerHandle = runnerHandle
	return nil
}
