package cmd

import (
	"log/slog"
	"time"

	"smuth/internal/adapters/out/postgres"
	"smuth/internal/core/application/conversation"
	"smuth/internal/core/application/usecases/commands"
	"smuth/internal/core/application/usecases/queries"
	"smuth/internal/core/domain/model/kernel"
	"smuth/internal/core/domain/services"
	"smuth/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// FeeBounds resolves the fee policy: unset config keeps the defaults, a
// negative max disables the upper bound entirely.
func (c *CompositionRoot) FeeBounds() kernel.FeeBounds {
	bounds := kernel.DefaultFeeBounds
	if c.config.FeeMinCents > 0 {
		bounds.MinCents = c.config.FeeMinCents
	}
	switch {
	case c.config.FeeMaxCents > 0:
		bounds.MaxCents = c.config.FeeMaxCents
	case c.config.FeeMaxCents < 0:
		bounds.MaxCents = 0 // no cap
	}
	return bounds
}

// claimPolicy resolves the claim policy the same way: unset keeps the
// defaults, a negative limit lifts it.
func (c *CompositionRoot) claimPolicy() services.ClaimPolicy {
	policy := services.NewDefaultClaimPolicy()
	policy.AllowSelfClaim = c.config.AllowSelfClaim
	switch {
	case c.config.MaxActiveClaims > 0:
		policy.MaxActiveClaims = c.config.MaxActiveClaims
	case c.config.MaxActiveClaims < 0:
		policy.MaxActiveClaims = 0 // unlimited
	}
	return policy
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory(), c.FeeBounds(), nil)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orderUoWFactory(), c.claimPolicy(), nil)
}

func (c *CompositionRoot) CreateUnclaimOrderCommandHandler() commands.UnclaimOrderCommandHandler {
	return commands.NewUnclaimOrderCommandHandler(c.orderUoWFactory(), nil)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreatePublishListingCommandHandler() commands.PublishListingCommandHandler {
	return commands.NewPublishListingCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateExpireOrdersCommandHandler() commands.ExpireOrdersCommandHandler {
	return commands.NewExpireOrdersCommandHandler(c.orderUoWFactory(), nil)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByOwnerQueryHandler() queries.GetOrdersByOwnerQueryHandler {
	return queries.NewGetOrdersByOwnerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByRunnerQueryHandler() queries.GetOrdersByRunnerQueryHandler {
	return queries.NewGetOrdersByRunnerQueryHandler(c.gormDB)
}

// CreateConversationEngine wires every handler into the chat engine.
func (c *CompositionRoot) CreateConversationEngine(messenger ports.Messenger, location *time.Location, logger *slog.Logger) *conversation.Engine {
	return conversation.NewEngine(conversation.Deps{
		Sessions:  conversation.NewInMemorySessionStore(),
		Messenger: messenger,

		PlaceOrder:     c.CreatePlaceOrderCommandHandler(),
		ClaimOrder:     c.CreateClaimOrderCommandHandler(),
		UnclaimOrder:   c.CreateUnclaimOrderCommandHandler(),
		CompleteOrder:  c.CreateCompleteOrderCommandHandler(),
		DeleteOrder:    c.CreateDeleteOrderCommandHandler(),
		PublishListing: c.CreatePublishListingCommandHandler(),

		OpenOrders:     c.CreateGetOpenOrdersQueryHandler(),
		OrdersByOwner:  c.CreateGetOrdersByOwnerQueryHandler(),
		OrdersByRunner: c.CreateGetOrdersByRunnerQueryHandler(),

		FeeBounds: c.FeeBounds(),
		Location:  location,
		Logger:    logger,
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
