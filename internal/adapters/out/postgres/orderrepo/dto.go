// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between the domain model and the relational schema.
package orderrepo

import (
	"time"

	"smuth/internal/core/domain/model/kernel"
	"smuth/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The lifecycle is stored as three booleans rather than a status column:
// claimed, expired, and completed. An open order has none of them set. The
// domain Status is derived from the flags on load, so the wire schema stays
// trivially queryable (`WHERE NOT claimed AND NOT expired ...`) while the
// domain keeps a proper state machine.
type OrderDTO struct {
	ID int64 `gorm:"primaryKey;autoIncrement"`

	Meal     string `gorm:"size:100;not null"`
	Location string `gorm:"size:100;not null"`
	Details  string `gorm:"size:500"`
	FeeCents int64  `gorm:"not null"`

	EarliestPickupTime time.Time `gorm:"not null"`
	LatestPickupTime   time.Time `gorm:"not null;index"`

	OwnerID     int64 `gorm:"not null;index"`
	OwnerHandle string

	RunnerID     *int64 `gorm:"index"`
	RunnerHandle *string

	Claimed   bool `gorm:"not null;default:false"`
	Expired   bool `gorm:"not null;default:false"`
	Completed bool `gorm:"not null;default:false"`

	PlacedAt  time.Time `gorm:"not null"`
	ClaimedAt *time.Time

	ChannelMessageID *int
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func statusToFlags(s order.Status) (claimed, expired, completed bool) {
	switch s {
	case order.Claimed:
		return true, false, false
	case order.Expired:
		return false, true, false
	case order.Completed:
		return true, false, true
	default:
		return false, false, false
	}
}

func flagsToStatus(claimed, expired, completed bool) order.Status {
	switch {
	case completed:
		return order.Completed
	case expired:
		return order.Expired
	case claimed:
		return order.Claimed
	default:
		return order.Open
	}
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	claimed, expired, completed := statusToFlags(aggregate.Status())

	return OrderDTO{
		ID:                 aggregate.ID(),
		Meal:               aggregate.Meal(),
		Location:           aggregate.Location(),
		Details:            aggregate.Details(),
		FeeCents:           aggregate.Fee().Cents(),
		EarliestPickupTime: aggregate.Window().Earliest(),
		LatestPickupTime:   aggregate.Window().Latest(),
		OwnerID:            aggregate.OwnerID(),
		OwnerHandle:        aggregate.OwnerHandle(),
		RunnerID:           aggregate.RunnerID(),
		RunnerHandle:       aggregate.RunnerHandle(),
		Claimed:            claimed,
		Expired:            expired,
		Completed:          completed,
		PlacedAt:           aggregate.PlacedAt(),
		ClaimedAt:          aggregate.ClaimedAt(),
		ChannelMessageID:   aggregate.ChannelMessageID(),
	}
}

// toDomain converts a database DTO back to an order aggregate using
// RestoreOrder, which validates structural invariants but not
// placement-time rules.
func toDomain(dto OrderDTO) (*order.Order, error) {
	window, err := kernel.NewPickupWindow(dto.EarliestPickupTime, dto.LatestPickupTime)
	if err != nil {
		return nil, err
	}

	fee, err := kernel.NewFee(dto.FeeCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		dto.ID,
		dto.Meal,
		dto.Location,
		window,
		dto.Details,
		fee,
		dto.OwnerID,
		dto.OwnerHandle,
		dto.RunnerID,
		dto.RunnerHandle,
		flagsToStatus(dto.Claimed, dto.Expired, dto.Completed),
		dto.PlacedAt,
		dto.ClaimedAt,
		dto.ChannelMessageID,
	)
}
