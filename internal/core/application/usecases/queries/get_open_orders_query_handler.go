package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler reads the open-order listing from the database.
// An order is open when no lifecycle flag is set and its pickup window has
// not closed yet. The window predicate matters between expiry sweeps: a
// past-window row the sweep has not flipped must not be offered as
// claimable.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler for open-order queries.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle returns all open orders sorted by earliest pickup time, soonest
// first, so the listing surfaces the most urgent orders at the top.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
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
			owner_handle
		FROM orders
		WHERE NOT claimed AND NOT expired AND NOT completed
			AND latest_pickup_time > ?
		ORDER BY earliest_pickup_time, id
	`, query.Now()).Rows()
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
