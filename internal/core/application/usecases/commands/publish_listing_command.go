package commands

import (
	"errors"

	"smuth/internal/pkg/guard"
)

var (
	ErrPublishListingCommandIsNotConstructed = errors.New(
		"PublishListingCommand must be created via NewPublishListingCommand constructor",
	)
	ErrMessageIDIsRequired = errors.New("channel message id is required")
)

// PublishListingCommand records the channel message that publicly lists an
// order, so later lifecycle changes can edit the listing in place.
type PublishListingCommand struct { //nolint:recvcheck //using for validation
	orderID   int64
	messageID int

	guard guard.ConstructorGuard
}

// NewPublishListingCommand creates a command binding the given order to the
// given channel message.
func NewPublishListingCommand(orderID int64, messageID int) (PublishListingCommand, error) {
	cmd := PublishListingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if orderID <= 0 {
		return PublishListingCommand{}, ErrOrderIDIsRequired
	}
	if messageID <= 0 {
		return PublishListingCommand{}, ErrMessageIDIsRequired
	}

	cmd.orderID = orderID
	cmd.messageID = messageID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PublishListingCommand) Validate() error {
	return c.guard.Validate(ErrPublishListingCommandIsNotConstructed)
}

// OrderID returns the identifier of the listed order.
func (c PublishListingCommand) OrderID() int64 { return c.orderID }

// MessageID returns the channel message identifier of the listing.
func (c PublishListingCommand) MessageID() int { return c.messageID }
