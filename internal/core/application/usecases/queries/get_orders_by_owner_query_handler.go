package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrdersByOwnerQueryHandler reads a user's own active orders from the
// database, including who (if anyone) has claimed each one.
type GetOrdersByOwnerQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByOwnerQueryHandler creates a handler for owner-order queries.
func NewGetOrdersByOwnerQueryHandler(db *gorm.DB) GetOrdersByOwnerQueryHandler {
	return GetOrdersByOwnerQueryHandler{db: db}
}

// Handle returns the owner's open and claimed orders sorted by placement
// order. Completed and expired orders are history and excluded.
func (h GetOrdersByOwnerQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByOwnerQuery,
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
			owner_handle,
			runner_handle
		FROM orders
		WHERE owner_id = ? AND NOT expired AND NOT completed
		ORDER BY id
	`, query.OwnerID()).Rows()
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
