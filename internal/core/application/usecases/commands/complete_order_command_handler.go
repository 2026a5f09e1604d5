package commands

import (
	"context"
	"errors"

	"smuth/internal/core/domain/model/order"
)

// ErrNotOrderOwner is returned when someone other than the order's owner
// attempts an owner-only operation.
var ErrNotOrderOwner = errors.New("only the order owner may perform this operation")

// CompleteOrderCommandHandler marks a claimed order as delivered after the
// owner confirms. The order is locked for the duration of the check so a
// concurrent unclaim cannot slip in between verification and the write.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCompleteOrderCommandHandler creates a handler for completion operations.
func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the completion command. Returns the completed aggregate
// on success, ErrNotOrderOwner when the caller does not own the order, and
// a status validation error when the order is not currently claimed.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	completed, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if !completed.IsOwnedBy(cmd.OwnerID()) {
		return nil, ErrNotOrderOwner
	}

	if err = completed.Complete(); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, completed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return completed, nil
}
