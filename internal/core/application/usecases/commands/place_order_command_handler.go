package commands

import (
	"context"
	"time"

	"smuth/internal/core/domain/model/kernel"
	"smuth/internal/core/domain/model/order"
)

// PlaceOrderCommandHandler handles the business logic for posting new orders.
// It re-validates every field invariant at the store boundary (the
// conversation engine has already validated interactively, but the aggregate
// is the authority), inserts the order in Open status, and returns the
// persisted aggregate carrying its new sequential identifier.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	feeBounds  kernel.FeeBounds
	now        func() time.Time
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// feeBounds carries the configurable fee range policy; now is the clock used
// for the pickup-window lead check.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	feeBounds kernel.FeeBounds,
	now func() time.Time,
) PlaceOrderCommandHandler {
	if now == nil {
		now = time.Now
	}
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		feeBounds:  feeBounds,
		now:        now,
	}
}

// Handle processes the order placement command. On success the returned
// aggregate is in Open status with its store-assigned identifier set.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.feeBounds.Check(cmd.Fee()); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		cmd.Meal(),
		cmd.Location(),
		cmd.Window(),
		cmd.Details(),
		cmd.Fee(),
		cmd.OwnerID(),
		cmd.OwnerHandle(),
		h.now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}
