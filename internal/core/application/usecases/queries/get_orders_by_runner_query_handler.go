package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrdersByRunnerQueryHandler reads the orders a runner currently has
// claimed from the database.
type GetOrdersByRunnerQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByRunnerQueryHandler creates a handler for runner-claim
// queries.
func NewGetOrdersByRunnerQueryHandler(db *gorm.DB) GetOrdersByRunnerQueryHandler {
	return GetOrdersByRunnerQueryHandler{db: db}
}

// Handle returns the runner's active claims sorted by earliest pickup time.
func (h GetOrdersByRunnerQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByRunnerQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]OrderSummary, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			meal,
			location,
			earliest_pickup_time,
			latest_pickup_time,
			details,
			fee_cents,
			owner_id,
			owner_handle,
			runner_handle
		FROM orders
		WHERE runner_id = ? AND claimed AND NOT completed
		ORDER BY earliest_pickup_time, id
	`, query.RunnerID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var summary OrderSummary

		err = rows.Scan(
			&summary.ID,
			&summary.Meal,
			&summary.Location,
			&summary.Earliest,
			&summary.Latest,
			&summary.Details,
			&summary.FeeCents,
			&summary.OwnerID,
			&summary.OwnerHandle,
			&summary.RunnerHandle,
		)
		if err != nil {
			return nil, err
		}

		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
