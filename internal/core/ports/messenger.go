package ports

import "context"

// ButtonPurpose identifies the logical action a chat button triggers. The
// chat adapter decides how the button is rendered; the core only states what
// it is for.
type ButtonPurpose string

const (
	// ButtonClaimOrder offers to claim the referenced order.
	ButtonClaimOrder ButtonPurpose = "claim_order"

	// ButtonPlaceOrder starts the order composition flow.
	ButtonPlaceOrder ButtonPurpose = "place_order"

	// ButtonConfirm confirms the pending step of the current flow.
	ButtonConfirm ButtonPurpose = "confirm"

	// ButtonCancel abandons the current flow.
	ButtonCancel ButtonPurpose = "cancel"
)

// Button is a display affordance attached to an outbound message. OrderID
// qualifies order-scoped purposes and is zero otherwise.
type Button struct {
	Purpose ButtonPurpose
	OrderID int64
}

// MessageOptions is the options bag for outbound messages. Buttons are laid
// out row by row.
type MessageOptions struct {
	Buttons [][]Button
}

// Messenger is the outbound chat port. The core uses it for prompts,
// notifications, and the shared channel listing; it never knows how messages
// are rendered.
//
// All sends are best effort from the core's perspective: a committed state
// change is never rolled back because a notification failed. Callers log and
// swallow Messenger errors after a successful transition.
type Messenger interface {
	// SendMessage delivers a direct message to a single user.
	SendMessage(ctx context.Context, userID int64, text string, opts MessageOptions) error

	// SendToChannel publishes a message to the shared order channel and
	// returns an opaque reference for later edits.
	SendToChannel(ctx context.Context, text string, opts MessageOptions) (int, error)

	// EditChannelMessage replaces the text and buttons of a previously
	// published channel message.
	EditChannelMessage(ctx context.Context, messageID int, text string, opts MessageOptions) error
}
