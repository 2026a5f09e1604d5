// Package queries contains read-only operations for presenting orders.
// Query handlers bypass the domain model and read the store directly,
// returning flat response rows shaped for display.
package queries

import (
	"errors"
	"time"

	"smuth/internal/pkg/guard"
)

var (
	ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
		"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
	)
	ErrNowTimeIsRequired = errors.New("current time is required")
)

// GetOpenOrdersQuery retrieves every order currently waiting for a runner.
// It carries the caller's clock reading because openness is time-dependent:
// an order whose pickup window has already closed is not claimable even if
// the expiry sweep has not flipped it yet.
//
// Example:
//
//	query, err := NewGetOpenOrdersQuery(time.Now())
//	handler := NewGetOpenOrdersQueryHandler(db)
//	open, err := handler.Handle(ctx, query)
type GetOpenOrdersQuery struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery creates a query to retrieve orders open as of now.
func NewGetOpenOrdersQuery(now time.Time) (GetOpenOrdersQuery, error) {
	if now.IsZero() {
		return GetOpenOrdersQuery{}, ErrNowTimeIsRequired
	}

	return GetOpenOrdersQuery{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// Now returns the point in time openness is evaluated at.
func (q GetOpenOrdersQuery) Now() time.Time { return q.now }

// OrderSummary is a flat read-model row describing one order for display.
// Fee is in cents; callers render it as dollars. OwnerID is filled by the
// runner query only, where callers need it to route delivery reports.
type OrderSummary struct {
	ID           int64
	Meal         string
	Location     string
	Earliest     time.Time
	Latest       time.Time
	Details      string
	FeeCents     int64
	OwnerID      int64
	OwnerHandle  string
	RunnerHandle *string
}
