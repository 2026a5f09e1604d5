package queries_test

import (
	"context"
	"testing"
	"time"

	"smuth/internal/adapters/out/postgres"
	"smuth/internal/adapters/out/postgres/orderrepo"
	"smuth/internal/core/application/usecases/queries"
	"smuth/internal/core/domain/model/kernel"
	"smuth/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type QueryHandlersTestSuite struct {
	suite.Suite
	container  *tcpostgres.PostgresContainer
	db         *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      time.Time
}

func (s *QueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	s.Require().NoError(err)

	s.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
	s.clock = time.Now().UTC().Truncate(time.Second)
}

func (s *QueryHandlersTestSuite) TearDownSuite() {
	if s.container != nil {
		err := s.container.Terminate(context.Background())
		s.Require().NoError(err)
	}
}

func (s *QueryHandlersTestSuite) SetupTest() {
	err := s.db.Exec("TRUNCATE TABLE orders RESTART IDENTITY").Error
	s.Require().NoError(err)
}

func (s *QueryHandlersTestSuite) placeOrder(ownerID int64, ownerHandle string, startIn time.Duration) *order.Order {
	window, err := kernel.NewPickupWindow(s.clock.Add(startIn), s.clock.Add(startIn+time.Hour))
	s.Require().NoError(err)

	fee, err := kernel.NewFee(150)
	s.Require().NoError(err)

	o, err := order.NewOrder("Laksa", "North gate", window, "", fee, ownerID, ownerHandle, s.clock)
	s.Require().NoError(err)

	ctx := context.Background()
	uow := s.uowFactory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.OrderRepository().Add(ctx, o))
	s.Require().NoError(uow.Commit(ctx))
	return o
}

func (s *QueryHandlersTestSuite) saveMutated(o *order.Order) {
	ctx := context.Background()
	uow := s.uowFactory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.OrderRepository().Update(ctx, o))
	s.Require().NoError(uow.Commit(ctx))
}

func (s *QueryHandlersTestSuite) openOrdersQuery(now time.Time) queries.GetOpenOrdersQuery {
	query, err := queries.NewGetOpenOrdersQuery(now)
	s.Require().NoError(err)
	return query
}

func (s *QueryHandlersTestSuite) TestGetOpenOrders_EmptyDatabase() {
	handler := queries.NewGetOpenOrdersQueryHandler(s.db)

	result, err := handler.Handle(context.Background(), s.openOrdersQuery(s.clock))
	s.Require().NoError(err)
	s.NotNil(result)
	s.Empty(result)
}

func (s *QueryHandlersTestSuite) TestGetOpenOrders_ExcludesClaimedAndOrdersByUrgency() {
	later := s.placeOrder(1001, "alice", 3*time.Hour)
	sooner := s.placeOrder(1002, "carol", 1*time.Hour)
	taken := s.placeOrder(1003, "dave", 2*time.Hour)

	s.Require().NoError(taken.Claim(2002, "bob", s.clock))
	s.saveMutated(taken)

	handler := queries.NewGetOpenOrdersQueryHandler(s.db)
	result, err := handler.Handle(context.Background(), s.openOrdersQuery(s.clock))
	s.Require().NoError(err)
	s.Require().Len(result, 2)

	// soonest pickup first
	s.Equal(sooner.ID(), result[0].ID)
	s.Equal(later.ID(), result[1].ID)
	s.Equal("Laksa", result[0].Meal)
	s.Equal(int64(150), result[0].FeeCents)
	s.Equal("carol", result[0].OwnerHandle)
}

func (s *QueryHandlersTestSuite) TestGetOpenOrders_ExcludesPastWindowNotYetSwept() {
	_ = s.placeOrder(1001, "alice", time.Hour)        // window closes at +2h
	fresh := s.placeOrder(1002, "carol", 4*time.Hour) // window closes at +5h

	// Three hours on, the first order's window has closed but the expiry
	// sweep has not flipped it: the row still reads claimed=false,
	// expired=false. The listing must not offer it.
	handler := queries.NewGetOpenOrdersQueryHandler(s.db)
	result, err := handler.Handle(context.Background(), s.openOrdersQuery(s.clock.Add(3*time.Hour)))
	s.Require().NoError(err)
	s.Require().Len(result, 1)
	s.Equal(fresh.ID(), result[0].ID)
}

func (s *QueryHandlersTestSuite) TestGetOpenOrders_InvalidQuery() {
	handler := queries.NewGetOpenOrdersQueryHandler(s.db)

	_, err := handler.Handle(context.Background(), queries.GetOpenOrdersQuery{})
	s.Require().ErrorIs(err, queries.ErrGetOpenOrdersQueryIsNotConstructed)
}

func (s *QueryHandlersTestSuite) TestGetOrdersByOwner_IncludesClaimedExcludesCompleted() {
	open := s.placeOrder(1001, "alice", time.Hour)
	claimed := s.placeOrder(1001, "alice", 2*time.Hour)
	done := s.placeOrder(1001, "alice", 3*time.Hour)
	_ = s.placeOrder(1002, "carol", time.Hour) // someone else's

	s.Require().NoError(claimed.Claim(2002, "bob", s.clock))
	s.saveMutated(claimed)

	s.Require().NoError(done.Claim(2002, "bob", s.clock))
	s.Require().NoError(done.Complete())
	s.saveMutated(done)

	query, err := queries.NewGetOrdersByOwnerQuery(1001)
	s.Require().NoError(err)

	handler := queries.NewGetOrdersByOwnerQueryHandler(s.db)
	result, err := handler.Handle(context.Background(), query)
	s.Require().NoError(err)
	s.Require().Len(result, 2)

	s.Equal(open.ID(), result[0].ID)
	s.Nil(result[0].RunnerHandle)

	s.Equal(claimed.ID(), result[1].ID)
	s.Require().NotNil(result[1].RunnerHandle)
	s.Equal("bob", *result[1].RunnerHandle)
}

func (s *QueryHandlersTestSuite) TestGetOrdersByRunner_OnlyActiveClaims() {
	active := s.placeOrder(1001, "alice", time.Hour)
	finished := s.placeOrder(1002, "carol", 2*time.Hour)
	_ = s.placeOrder(1003, "dave", time.Hour) // unclaimed

	s.Require().NoError(active.Claim(2002, "bob", s.clock))
	s.saveMutated(active)

	s.Require().NoError(finished.Claim(2002, "bob", s.clock))
	s.Require().NoError(finished.Complete())
	s.saveMutated(finished)

	query, err := queries.NewGetOrdersByRunnerQuery(2002)
	s.Require().NoError(err)

	handler := queries.NewGetOrdersByRunnerQueryHandler(s.db)
	result, err := handler.Handle(context.Background(), query)
	s.Require().NoError(err)
	s.Require().Len(result, 1)
	s.Equal(active.ID(), result[0].ID)
	s.Equal(int64(1001), result[0].OwnerID)
	s.Equal("alice", result[0].OwnerHandle)
}

func TestQueryHandlersTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(QueryHandlersTestSuite))
}
