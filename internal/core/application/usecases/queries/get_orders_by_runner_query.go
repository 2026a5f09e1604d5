package queries

import (
	"errors"

	"smuth/internal/pkg/guard"
)

var ErrGetOrdersByRunnerQueryIsNotConstructed = errors.New(
	"GetOrdersByRunnerQuery must be created via NewGetOrdersByRunnerQuery constructor",
)

// GetOrdersByRunnerQuery retrieves the orders a runner currently holds
// claims on. Backs the menu where runners release a claim or report
// delivery.
type GetOrdersByRunnerQuery struct { //nolint:recvcheck //using for validation
	runnerID int64

	guard guard.ConstructorGuard
}

// NewGetOrdersByRunnerQuery creates a query for the given runner's active
// claims.
func NewGetOrdersByRunnerQuery(runnerID int64) (GetOrdersByRunnerQuery, error) {
	if runnerID == 0 {
		return GetOrdersByRunnerQuery{}, ErrUserIDIsRequired
	}

	return GetOrdersByRunnerQuery{
		runnerID: runnerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByRunnerQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByRunnerQueryIsNotConstructed)
}

// RunnerID returns the runner whose claims are requested.
func (q GetOrdersByRunnerQuery) RunnerID() int64 { return q.runnerID }
