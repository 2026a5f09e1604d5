package commands

import (
	"errors"

	"smuth/internal/core/domain/model/kernel"
	"smuth/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrMealIsRequired  = errors.New("meal description is required")
	ErrOwnerIsRequired = errors.New("owner id is required")
)

// PlaceOrderCommand represents a request to post a new meal order assembled
// from a completed conversation draft. Field invariants are fully re-checked
// by the Order aggregate at handling time; the command itself only rejects
// obviously incomplete input.
//
// Example:
//
//	window, _ := kernel.NewPickupWindow(earliest, latest)
//	fee, _ := kernel.ParseFee("2.00")
//	cmd, err := NewPlaceOrderCommand("Laksa", "Block 3", window, "no chilli", fee, userID, userHandle)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	placed, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	meal        string
	location    string
	window      kernel.PickupWindow
	details     string
	fee         kernel.Fee
	ownerID     int64
	ownerHandle string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to post a new order.
func NewPlaceOrderCommand(
	meal string,
	location string,
	window kernel.PickupWindow,
	details string,
	fee kernel.Fee,
	ownerID int64,
	ownerHandle string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMeal(meal),
		cmd.setLocation(location),
		cmd.setWindow(window),
		cmd.setFee(fee),
		cmd.setOwner(ownerID, ownerHandle),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	cmd.details = details
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPlaceOrderCommandIsNotConstructed if validation fails.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// Meal returns the meal description.
func (c PlaceOrderCommand) Meal() string { return c.meal }

// Location returns the pickup/delivery location text.
func (c PlaceOrderCommand) Location() string { return c.location }

// Window returns the requested pickup window.
func (c PlaceOrderCommand) Window() kernel.PickupWindow { return c.window }

// Details returns the free-form order details.
func (c PlaceOrderCommand) Details() string { return c.details }

// Fee returns the offered delivery fee.
func (c PlaceOrderCommand) Fee() kernel.Fee { return c.fee }

// OwnerID returns the posting user's identity.
func (c PlaceOrderCommand) OwnerID() int64 { return c.ownerID }

// OwnerHandle returns the posting user's chat handle.
func (c PlaceOrderCommand) OwnerHandle() string { return c.ownerHandle }

func (c *PlaceOrderCommand) setMeal(meal string) error {
	if meal == "" {
		return ErrMealIsRequired
	}
	c.meal = meal
	return nil
}

func (c *PlaceOrderCommand) setLocation(location string) error {
	if location == "" {
		return errors.New("location is required")
	}
	c.location = location
	return nil
}

func (c *PlaceOrderCommand) setWindow(window kernel.PickupWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}
	c.window = window
	return nil
}

func (c *PlaceOrderCommand) setFee(fee kernel.Fee) error {
	if err := fee.Validate(); err != nil {
		return err
	}
	c.fee = fee
	return nil
}

func (c *PlaceOrderCommand) setOwner(ownerID int64, ownerHandle string) error {
	if ownerID == 0 {
		return ErrOwnerIsRequired
	}
	c.ownerID = ownerID
	c.ownerHandle = ownerHandle
	return nil
}
