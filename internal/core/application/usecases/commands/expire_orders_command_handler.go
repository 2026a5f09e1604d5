package commands

import (
	"context"
	"errors"
	"time"

	"smuth/internal/core/domain/model/order"
	"smuth/internal/pkg/errs"
)

// ExpireOrdersCommandHandler sweeps open orders whose pickup window has
// passed and marks them expired in a single transaction. Candidate rows are
// locked while they are read, so a claim racing against the sweep either
// lands before the lock (and the order is skipped) or waits and finds the
// order already expired.
type ExpireOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewExpireOrdersCommandHandler creates a handler for the expiry sweep.
func NewExpireOrdersCommandHandler(uowFactory OrderUoWFactory, now func() time.Time) ExpireOrdersCommandHandler {
	if now == nil {
		now = time.Now
	}
	return ExpireOrdersCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle runs the sweep and returns the orders that were expired so the
// caller can notify owners and refresh public listings. An order that was
// claimed between candidate selection and locking is left untouched.
func (h ExpireOrdersCommandHandler) Handle(ctx context.Context, cmd ExpireOrdersCommand) ([]*order.Order, error) {
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
	now := h.now()

	candidates, err := repo.GetExpirableForUpdate(ctx, now)
	if err != nil {
		return nil, err
	}

	expired := make([]*order.Order, 0, len(candidates))
	for _, candidate := range candidates {
		if err = candidate.Expire(now); err != nil {
			if errors.Is(err, errs.ErrValueIsInvalid) {
				continue
			}
			return nil, err
		}

		if err = repo.Update(ctx, candidate); err != nil {
			return nil, err
		}

		expired = append(expired, candidate)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return expired, nil
}
