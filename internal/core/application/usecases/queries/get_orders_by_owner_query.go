package queries

import (
	"errors"

	"smuth/internal/pkg/guard"
)

var (
	ErrGetOrdersByOwnerQueryIsNotConstructed = errors.New(
		"GetOrdersByOwnerQuery must be created via NewGetOrdersByOwnerQuery constructor",
	)
	ErrUserIDIsRequired = errors.New("user id is required")
)

// GetOrdersByOwnerQuery retrieves a user's own active orders: everything
// they posted that has not yet completed or expired. Backs the menu where
// owners review, delete, or confirm delivery of their orders.
type GetOrdersByOwnerQuery struct { //nolint:recvcheck //using for validation
	ownerID int64

	guard guard.ConstructorGuard
}

// NewGetOrdersByOwnerQuery creates a query for the given owner's active
// orders.
func NewGetOrdersByOwnerQuery(ownerID int64) (GetOrdersByOwnerQuery, error) {
	if ownerID == 0 {
		return GetOrdersByOwnerQuery{}, ErrUserIDIsRequired
	}

	return GetOrdersByOwnerQuery{
		ownerID: ownerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByOwnerQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByOwnerQueryIsNotConstructed)
}

// OwnerID returns the owner whose orders are requested.
func (q GetOrdersByOwnerQuery) OwnerID() int64 { return q.ownerID }
