package commands

import (
	"context"
	"time"

	"smuth/internal/core/domain/model/order"
)

// UnclaimOrderCommandHandler releases a runner's claim under the same
// row-lock discipline as claiming: lock, re-verify on fresh state, write,
// commit. The aggregate enforces that only the current runner may release
// the claim and only while the pickup window is still open.
type UnclaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewUnclaimOrderCommandHandler creates a handler for unclaim operations.
func NewUnclaimOrderCommandHandler(uowFactory OrderUoWFactory, now func() time.Time) UnclaimOrderCommandHandler {
	if now == nil {
		now = time.Now
	}
	return UnclaimOrderCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle processes the unclaim command. Returns the released aggregate on
// success. Failure modes: errs.ErrObjectNotFound when the order is missing,
// order.ErrNotOrderRunner when the caller does not hold the claim,
// order.ErrPickupWindowPassed when it is too late to release, and a status
// validation error when the order is not claimed at all.
func (h UnclaimOrderCommandHandler) Handle(ctx context.Context, cmd UnclaimOrderCommand) (*order.Order, error) {
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

	released, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = released.Unclaim(cmd.RunnerID(), h.now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, released); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return released, nil
}
