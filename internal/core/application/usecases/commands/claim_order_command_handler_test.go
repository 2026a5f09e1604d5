package commands_test

import (
	"errors"
	"testing"

	"smuth/internal/core/application/usecases/commands"
	"smuth/internal/core/domain/model/order"
	"smuth/internal/core/domain/services"
	"smuth/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClaimOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewClaimOrderCommand(42, 2002, "bob")
	require.NoError(t, err)

	open := placedTestOrder(42)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, int64(42)).Return(open, nil).Once(),
		repo.On("CountActiveClaimsByRunner", mock.Anything, int64(2002)).Return(0, nil).Once(),
		repo.On("Update", mock.Anything, open).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClaimOrderCommandHandler(factory, services.NewDefaultClaimPolicy(), fixedNow)
	claimed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.Claimed, claimed.Status())
	require.True(t, claimed.IsRunBy(2002))
	require.Equal(t, testClock, *claimed.ClaimedAt())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestClaimOrderCommandHandler_Handle_OrderMissing(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewClaimOrderCommand(42, 2002, "bob")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, int64(42)).
			Return(nil, errs.NewObjectNotFoundError("order", int64(42))).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClaimOrderCommandHandler(factory, services.NewDefaultClaimPolicy(), fixedNow)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOrderNotClaimable)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestClaimOrderCommandHandler_Handle_AlreadyClaimed(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewClaimOrderCommand(42, 2002, "bob")
	require.NoError(t, err)

	taken := claimedTestOrder(42, 3003)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, int64(42)).Return(taken, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClaimOrderCommandHandler(factory, services.NewDefaultClaimPolicy(), fixedNow)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOrderNotClaimable)

	// the loser must not displace the winner
	require.True(t, taken.IsRunBy(3003))
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestClaimOrderCommandHandler_Handle_SelfClaim(t *testing.T) {
	ctx := t.Context()
	// runner 1001 is the owner of the test order
	cmd, err := commands.NewClaimOrderCommand(42, 1001, "alice")
	require.NoError(t, err)

	open := placedTestOrder(42)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, int64(42)).Return(open, nil).Once(),
		repo.On("CountActiveClaimsByRunner", mock.Anything, int64(1001)).Return(0, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClaimOrderCommandHandler(factory, services.NewDefaultClaimPolicy(), fixedNow)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, services.ErrSelfClaim)
	require.Equal(t, order.Open, open.Status())
}

func TestClaimOrderCommandHandler_Handle_TooManyActiveClaims(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewClaimOrderCommand(42, 2002, "bob")
	require.NoError(t, err)

	open := placedTestOrder(42)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, int64(42)).Return(open, nil).Once(),
		repo.On("CountActiveClaimsByRunner", mock.Anything, int64(2002)).
			Return(services.DefaultMaxActiveClaims, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClaimOrderCommandHandler(factory, services.NewDefaultClaimPolicy(), fixedNow)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, services.ErrTooManyActiveClaims)
	require.Equal(t, order.Open, open.Status())
}

func TestClaimOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewClaimOrderCommand(42, 2002, "bob")
	require.NoError(t, err)

	open := placedTestOrder(42)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, int64(42)).Return(open, nil).Once(),
		repo.On("CountActiveClaimsByRunner", mock.Anything, int64(2002)).Return(0, nil).Once(),
		repo.On("Update", mock.Anything, open).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("serialization failure")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClaimOrderCommandHandler(factory, services.NewDefaultClaimPolicy(), fixedNow)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
}
