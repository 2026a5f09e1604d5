// Package ports defines the contracts between the application core and the
// infrastructure adapters: persistence for the order aggregate and the
// outbound chat messenger. These interfaces enable dependency inversion and
// testability.
package ports

import (
	"context"
	"time"

	"smuth/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// The *ForUpdate methods acquire row locks and are only meaningful inside an
// active UnitOfWork transaction; they are the backbone of the claim engine's
// "exactly one runner" guarantee. Every mutating workflow re-reads the row
// through one of them immediately before writing, inside the same
// transaction, so decisions are never made on stale state.
type OrderRepository interface {
	// Add persists a new order aggregate and assigns its store-generated
	// sequential identifier to the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Delete removes an order row permanently.
	Delete(ctx context.Context, id int64) error

	// Get retrieves an order aggregate by its identifier without locking.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate retrieves an order by identifier while holding a row lock
	// until the surrounding transaction ends. Concurrent claim attempts on
	// the same order serialize on this lock.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// GetExpirableForUpdate retrieves, with row locks, all orders that are
	// unclaimed, not yet expired, and whose pickup window ended before now.
	// An order claimed by a transaction that committed first will not appear
	// in the result.
	GetExpirableForUpdate(ctx context.Context, now time.Time) ([]*order.Order, error)

	// CountActiveClaimsByRunner counts the runner's current claims on orders
	// that are still claimed and not expired. Used by the claim policy.
	CountActiveClaimsByRunner(ctx context.Context, runnerID int64) (int, error)
}
