package commands_test

import (
	"testing"
	"time"

	"smuth/internal/core/application/usecases/commands"
	"smuth/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpireOrdersCommandHandler_Handle_ExpiresPassedOrders(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewExpireOrdersCommand()
	require.NoError(t, err)

	first := placedTestOrder(42)
	second := placedTestOrder(43)

	// sweep runs after both windows ended
	sweepAt := testClock.Add(5 * time.Hour)
	sweepClock := func() time.Time { return sweepAt }

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetExpirableForUpdate", mock.Anything, sweepAt).
			Return([]*order.Order{first, second}, nil).Once(),
		repo.On("Update", mock.Anything, first).Return(nil).Once(),
		repo.On("Update", mock.Anything, second).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewExpireOrdersCommandHandler(factory, sweepClock)
	expired, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, expired, 2)
	require.Equal(t, order.Expired, first.Status())
	require.Equal(t, order.Expired, second.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestExpireOrdersCommandHandler_Handle_NothingToExpire(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewExpireOrdersCommand()
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetExpirableForUpdate", mock.Anything, testClock).
			Return([]*order.Order{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewExpireOrdersCommandHandler(factory, fixedNow)
	expired, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Empty(t, expired)
}

func TestExpireOrdersCommandHandler_Handle_SkipsClaimedCandidate(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewExpireOrdersCommand()
	require.NoError(t, err)

	// claimed between candidate selection and the aggregate transition
	racedClaim := claimedTestOrder(42, 2002)
	stillOpen := placedTestOrder(43)

	sweepAt := testClock.Add(5 * time.Hour)
	sweepClock := func() time.Time { return sweepAt }

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetExpirableForUpdate", mock.Anything, sweepAt).
			Return([]*order.Order{racedClaim, stillOpen}, nil).Once(),
		repo.On("Update", mock.Anything, stillOpen).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewExpireOrdersCommandHandler(factory, sweepClock)
	expired, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	require.Equal(t, order.Claimed, racedClaim.Status())
	require.Equal(t, order.Expired, stillOpen.Status())
	repo.AssertExpectations(t)
}
