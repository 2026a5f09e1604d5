package commands_test

import (
	"context"
	"time"

	"smuth/internal/core/application/usecases/commands"
	"smuth/internal/core/domain/model/kernel"
	"smuth/internal/core/domain/model/order"
	"smuth/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetExpirableForUpdate(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	if o := args.Get(0); o != nil {
		return o.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CountActiveClaimsByRunner(ctx context.Context, runnerID int64) (int, error) {
	args := m.Called(ctx, runnerID)
	return args.Int(0), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// testClock is a fixed instant all handler tests use so window math is
// deterministic.
var testClock = time.Date(2025, time.March, 28, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testClock }

func testWindow() kernel.PickupWindow {
	w, err := kernel.NewPickupWindow(testClock.Add(2*time.Hour), testClock.Add(4*time.Hour))
	if err != nil {
		panic(err)
	}
	return w
}

func testFee() kernel.Fee {
	f, err := kernel.NewFee(200)
	if err != nil {
		panic(err)
	}
	return f
}

func placedTestOrder(id int64) *order.Order {
	o, err := order.NewOrder("Chicken rice", "Block 3 lobby", testWindow(), "", testFee(), 1001, "alice", testClock)
	if err != nil {
		panic(err)
	}
	if id > 0 {
		if err = o.AssignID(id); err != nil {
			panic(err)
		}
	}
	return o
}

func claimedTestOrder(id, runnerID int64) *order.Order {
	o := placedTestOrder(id)
	if err := o.Claim(runnerID, "bob", testClock); err != nil {
		panic(err)
	}
	return o
}
