package commands

import (
	"context"
	"errors"

	"smuth/internal/core/domain/model/order"
)

// ErrOrderNotDeletable is returned when an order cannot be withdrawn: it is
// claimed, already expired, or the caller does not own it.
var ErrOrderNotDeletable = errors.New("order can no longer be deleted")

// DeleteOrderCommandHandler withdraws an open order at the owner's request.
// The row lock prevents a runner's in-flight claim from landing on an order
// that is about to disappear.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeleteOrderCommandHandler creates a handler for withdrawal operations.
func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the withdrawal. Returns the deleted aggregate so the
// caller can tear down the public listing message. Claimed or expired orders
// and orders belonging to someone else fail with ErrOrderNotDeletable.
func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) (*order.Order, error) {
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

	deleted, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if !deleted.CanBeDeletedBy(cmd.OwnerID()) {
		return nil, ErrOrderNotDeletable
	}

	if err = repo.Delete(ctx, deleted.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return deleted, nil
}
