package commands

import (
	"context"
	"errors"
	"time"

	"smuth/internal/core/domain/model/order"
	"smuth/internal/core/domain/services"
	"smuth/internal/pkg/errs"
)

// ErrOrderNotClaimable is returned when the order cannot be claimed because
// it is already claimed, expired, or does not exist. The three cases are
// deliberately indistinguishable to the caller: by the time the user reads
// the failure message the situation may have changed again.
var ErrOrderNotClaimable = errors.New("order can no longer be claimed")

// ClaimOrderCommandHandler is the critical section of the whole marketplace.
// It serializes concurrent claim attempts on one order through a row lock:
// the order row is selected FOR UPDATE inside a transaction, the claim
// conditions are re-verified on the freshly read row, and only then is the
// claim written and committed. Of N concurrent claims on the same open order
// exactly one commits; the rest observe the winner's write and fail with
// ErrOrderNotClaimable.
//
// Policy rules (self-claim ban, active-claim limit) are applied after the
// lock is taken, against state read in the same transaction.
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.ClaimPolicy
	now        func() time.Time
}

// NewClaimOrderCommandHandler creates a handler for claim operations.
func NewClaimOrderCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.ClaimPolicy,
	now func() time.Time,
) ClaimOrderCommandHandler {
	if now == nil {
		now = time.Now
	}
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		now:        now,
	}
}

// Handle processes the claim command. Returns the claimed aggregate on
// success; ErrOrderNotClaimable when the order is missing, claimed, or
// expired; services.ErrSelfClaim or services.ErrTooManyActiveClaims on
// policy rejections.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
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

	claimed, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrOrderNotClaimable
	}
	if err != nil {
		return nil, err
	}

	if claimed.Status() != order.Open {
		return nil, ErrOrderNotClaimable
	}

	activeClaims, err := repo.CountActiveClaimsByRunner(ctx, cmd.RunnerID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.Authorize(claimed, cmd.RunnerID(), activeClaims); err != nil {
		return nil, err
	}

	if err = claimed.Claim(cmd.RunnerID(), cmd.RunnerHandle(), h.now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, claimed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return claimed, nil
}
