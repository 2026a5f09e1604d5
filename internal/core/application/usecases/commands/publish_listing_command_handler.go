package commands

import (
	"context"
)

// PublishListingCommandHandler persists the channel message ID of an order's
// public listing. Runs after the placement transaction committed and the
// listing message was actually sent.
type PublishListingCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewPublishListingCommandHandler creates a handler for listing publication.
func NewPublishListingCommandHandler(uowFactory OrderUoWFactory) PublishListingCommandHandler {
	return PublishListingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the listing message ID on the order.
func (h PublishListingCommandHandler) Handle(ctx context.Context, cmd PublishListingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	published, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	published.PublishListing(cmd.MessageID())

	if err = repo.Update(ctx, published); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
