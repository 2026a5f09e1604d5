package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"smuth/internal/core/application/usecases/commands"
	"smuth/internal/core/application/usecases/queries"
	"smuth/internal/core/domain/model/kernel"
	"smuth/internal/core/domain/model/order"
	"smuth/internal/core/domain/services"
	"smuth/internal/core/ports"
)

// Query handler contracts, satisfied by the gorm-backed handlers in the
// queries package.
type (
	OpenOrdersQuery interface {
		Handle(ctx context.Context, query queries.GetOpenOrdersQuery) ([]queries.OrderSummary, error)
	}

	OrdersByOwnerQuery interface {
		Handle(ctx context.Context, query queries.GetOrdersByOwnerQuery) ([]queries.OrderSummary, error)
	}

	OrdersByRunnerQuery interface {
		Handle(ctx context.Context, query queries.GetOrdersByRunnerQuery) ([]queries.OrderSummary, error)
	}
)

// Deps bundles everything the engine needs. All fields are required except
// Now, which defaults to time.Now, and Logger, which defaults to
// slog.Default.
type Deps struct {
	Sessions  *InMemorySessionStore
	Messenger ports.Messenger

	PlaceOrder     commands.PlaceOrderCommandHandler
	ClaimOrder     commands.ClaimOrderCommandHandler
	UnclaimOrder   commands.UnclaimOrderCommandHandler
	CompleteOrder  commands.CompleteOrderCommandHandler
	DeleteOrder    commands.DeleteOrderCommandHandler
	PublishListing commands.PublishListingCommandHandler

	OpenOrders     OpenOrdersQuery
	OrdersByOwner  OrdersByOwnerQuery
	OrdersByRunner OrdersByRunnerQuery

	FeeBounds kernel.FeeBounds
	Location  *time.Location
	Now       func() time.Time
	Logger    *slog.Logger
}

// Engine drives each user's conversation: composing an order field by
// field, claiming by identifier, and deleting with confirmation. Every
// inbound event for a user is serialized through the session store, so a
// double-tap cannot interleave two turns of the same flow.
//
// The engine replies through the messenger and reports nothing to its
// caller; transport failures are logged and the flow carries on. Only the
// claim engine's own rejections (claimed, self-claim, limit) change what
// the user sees.
type Engine struct {
	deps Deps
}

// NewEngine creates a conversation engine.
func NewEngine(deps Deps) *Engine {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Location == nil {
		deps.Location = time.Local
	}
	return &Engine{deps: deps}
}

func (e *Engine) send(ctx context.Context, userID int64, text string, opts ports.MessageOptions) {
	if err := e.deps.Messenger.SendMessage(ctx, userID, text, opts); err != nil {
		e.deps.Logger.Error("send message failed", "user_id", userID, "error", err)
	}
}

// StartOrder begins the composition flow, replacing any flow in progress.
func (e *Engine) StartOrder(ctx context.Context, userID int64) {
	release := e.deps.Sessions.Acquire(userID)
	defer release()

	e.deps.Sessions.Set(userID, Draft{Step: AwaitingMeal})
	e.send(ctx, userID, promptMeal, ports.MessageOptions{})
}

// StartClaim begins the claim-by-identifier flow.
func (e *Engine) StartClaim(ctx context.Context, userID int64) {
	release := e.deps.Sessions.Acquire(userID)
	defer release()

	e.deps.Sessions.Set(userID, Draft{Step: AwaitingOrderID})
	e.send(ctx, userID, "Which order number would you like to claim?", ports.MessageOptions{})
}

// StartDeletion begins the deletion flow by listing the user's open orders.
func (e *Engine) StartDeletion(ctx context.Context, userID int64) {
	release := e.deps.Sessions.Acquire(userID)
	defer release()

	query, err := queries.NewGetOrdersByOwnerQuery(userID)
	if err != nil {
		e.deps.Logger.Error("build owner query failed", "user_id", userID, "error", err)
		return
	}

	owned, err := e.deps.OrdersByOwner.Handle(ctx, query)
	if err != nil {
		e.deps.Logger.Error("list owned orders failed", "user_id", userID, "error", err)
		e.send(ctx, userID, "Could not load your orders, try again later.", ports.MessageOptions{})
		return
	}

	// only unclaimed orders may be deleted
	deletable := make([]queries.OrderSummary, 0, len(owned))
	for _, s := range owned {
		if s.RunnerHandle == nil {
			deletable = append(deletable, s)
		}
	}

	if len(deletable) == 0 {
		e.send(ctx, userID, "You have no open orders to delete.", ports.MessageOptions{})
		return
	}

	e.deps.Sessions.Set(userID, Draft{Step: SelectingDeletion})
	e.send(ctx, userID,
		renderSummaryList("Which order number would you like to delete?", deletable, e.deps.Location),
		ports.MessageOptions{})
}

// Cancel aborts whatever flow is in progress.
func (e *Engine) Cancel(ctx context.Context, userID int64) {
	release := e.deps.Sessions.Acquire(userID)
	defer release()

	if _, ok := e.deps.Sessions.Get(userID); !ok {
		e.send(ctx, userID, "Nothing to cancel.", ports.MessageOptions{})
		return
	}

	e.deps.Sessions.Clear(userID)
	e.send(ctx, userID, promptCancelled, ports.MessageOptions{})
}

// HandleText advances the user's flow with one message of input. Users with
// no flow in progress get a pointer to the commands.
func (e *Engine) HandleText(ctx context.Context, userID int64, handle, text string) {
	release := e.deps.Sessions.Acquire(userID)
	defer release()

	draft, ok := e.deps.Sessions.Get(userID)
	if !ok || draft.Step == Idle {
		e.send(ctx, userID, "Use /order to post an order or /claim to claim one.", ports.MessageOptions{})
		return
	}

	// A draft missing fields its step requires indicates a bug or a race in
	// draft cleanup. The session is unrecoverable: reset it.
	if !draft.hasFieldsThrough(draft.Step) {
		e.deps.Logger.Error("session state error", "user_id", userID, "step", draft.Step.String())
		e.deps.Sessions.Clear(userID)
		e.send(ctx, userID, promptRestart, ports.MessageOptions{})
		return
	}

	text = strings.TrimSpace(text)

	switch draft.Step {
	case AwaitingMeal:
		e.stepMeal(ctx, userID, text, draft)
	case AwaitingLocation:
		e.stepLocation(ctx, userID, text, draft)
	case AwaitingEarliestTime:
		e.stepEarliestTime(ctx, userID, text, draft)
	case AwaitingLatestTime:
		e.stepLatestTime(ctx, userID, text, draft)
	case AwaitingDetails:
		e.stepDetails(ctx, userID, text, draft)
	case AwaitingFee:
		e.stepFee(ctx, userID, text, draft)
	case AwaitingConfirmation:
		e.stepConfirmationText(ctx, userID, handle, text, draft)
	case AwaitingOrderID:
		e.stepOrderID(ctx, userID, text, draft)
	case AwaitingClaimConfirmation:
		e.stepClaimConfirmation(ctx, userID, handle, text, draft)
	case SelectingDeletion:
		e.stepSelectDeletion(ctx, userID, text, draft)
	case AwaitingDeletionConfirmation:
		e.stepDeletionConfirmation(ctx, userID, text, draft)
	default:
		e.deps.Logger.Error("unhandled step", "user_id", userID, "step", draft.Step.String())
		e.deps.Sessions.Clear(userID)
		e.send(ctx, userID, promptRestart, ports.MessageOptions{})
	}
}

func (e *Engine) stepMeal(ctx context.Context, userID int64, text string, draft Draft) {
	if text == "" {
		e.send(ctx, userID, "The meal description cannot be empty. "+promptMeal, ports.MessageOptions{})
		return
	}
	if n := len([]rune(text)); n > order.MaxMealLength {
		e.send(ctx, userID,
			fmt.Sprintf("That is %d characters; the meal description can have at most %d. Try again.",
				n, order.MaxMealLength),
			ports.MessageOptions{})
		return
	}

	draft.Meal = text
	draft.Step = AwaitingLocation
	e.deps.Sessions.Set(userID, draft)
	e.send(ctx, userID, promptLocation, ports.MessageOptions{})
}

func (e *Engine) stepLocation(ctx context.Context, userID int64, text string, draft Draft) {
	if text == "" {
		e.send(ctx, userID, "The location cannot be empty. "+promptLocation, ports.MessageOptions{})
		return
	}
	if n := len([]rune(text)); n > order.MaxLocationLength {
		e.send(ctx, userID,
			fmt.Sprintf("That is %d characters; the location can have at most %d. Try again.",
				n, order.MaxLocationLength),
			ports.MessageOptions{})
		return
	}

	draft.Location = text
	draft.Step = AwaitingEarliestTime
	e.deps.Sessions.Set(userID, draft)
	e.send(ctx, userID, promptEarliest, ports.MessageOptions{})
}

func (e *Engine) stepEarliestTime(ctx context.Context, userID int64, text string, draft Draft) {
	parsed, err := ParsePickupTime(text, e.deps.Now(), e.deps.Location)
	if err != nil {
		e.send(ctx, userID, err.Error()+" Try again.", ports.MessageOptions{})
		return
	}

	draft.Earliest = parsed
	draft.Step = AwaitingLatestTime
	e.deps.Sessions.Set(userID, draft)
	e.send(ctx, userID, promptLatest, ports.MessageOptions{})
}

func (e *Engine) stepLatestTime(ctx context.Context, userID int64, text string, draft Draft) {
	parsed, err := ParsePickupTime(text, e.deps.Now(), e.deps.Location)
	if err != nil {
		e.send(ctx, userID, err.Error()+" Try again.", ports.MessageOptions{})
		return
	}

	window, err := kernel.NewPickupWindow(draft.Earliest, parsed)
	if err != nil {
		e.send(ctx, userID,
			fmt.Sprintf("The latest pickup time must be after %s and within %s of it. Try again.",
				FormatPickupTime(draft.Earliest, e.deps.Location), kernel.MaxWindowSpan),
			ports.MessageOptions{})
		return
	}
	if err = window.ValidateLead(e.deps.Now()); err != nil {
		e.send(ctx, userID,
			"The pickup window must start between now and seven days from now. Try again.",
			ports.MessageOptions{})
		return
	}

	draft.Latest = parsed
	draft.Step = AwaitingDetails
	e.deps.Sessions.Set(userID, draft)
	e.send(ctx, userID, promptDetails, ports.MessageOptions{})
}

func (e *Engine) stepDetails(ctx context.Context, userID int64, text string, draft Draft) {
	if strings.EqualFold(text, "none") {
		text = ""
	}
	if n := len([]rune(text)); n > order.MaxDetailsLength {
		e.send(ctx, userID,
			fmt.Sprintf("That is %d characters; details can have at most %d. Try again.",
				n, order.MaxDetailsLength),
			ports.MessageOptions{})
		return
	}

	draft.Details = text
	draft.Step = AwaitingFee
	e.deps.Sessions.Set(userID, draft)
	e.send(ctx, userID, promptFee, ports.MessageOptions{})
}

func (e *Engine) stepFee(ctx context.Context, userID int64, text string, draft Draft) {
	fee, err := kernel.ParseFee(text)
	if err != nil {
		e.send(ctx, userID, `That doesn't look like a fee. Use a dollar amount like "2.00".`, ports.MessageOptions{})
		return
	}
	if err = e.deps.FeeBounds.Check(fee); err != nil {
		e.send(ctx, userID, e.feeBoundsMessage(), ports.MessageOptions{})
		return
	}

	draft.Fee = fee
	draft.Step = AwaitingConfirmation
	e.deps.Sessions.Set(userID, draft)
	e.send(ctx, userID, renderDraftSummary(draft, e.deps.Location), ports.MessageOptions{
		Buttons: [][]ports.Button{{
			{Purpose: ports.ButtonConfirm},
			{Purpose: ports.ButtonCancel},
		}},
	})
}

func (e *Engine) feeBoundsMessage() string {
	lower := formatCents(e.deps.FeeBounds.MinCents)
	if e.deps.FeeBounds.MaxCents > 0 {
		return fmt.Sprintf("The fee must be between %s and %s. Try again.",
			lower, formatCents(e.deps.FeeBounds.MaxCents))
	}
	return fmt.Sprintf("The fee must be at least %s. Try again.", lower)
}

func (e *Engine) stepConfirmationText(ctx context.Context, userID int64, handle, text string, draft Draft) {
	switch strings.ToLower(text) {
	case "yes", "y":
		e.confirmOrderLocked(ctx, userID, handle, draft)
	case "no", "n":
		e.deps.Sessions.Clear(userID)
		e.send(ctx, userID, promptCancelled, ports.MessageOptions{})
	default:
		e.send(ctx, userID, `Use the buttons, or reply "yes" or "no".`, ports.MessageOptions{})
	}
}

// ConfirmOrder resolves the confirmation step from a button press.
func (e *Engine) ConfirmOrder(ctx context.Context, userID int64, handle string, confirmed bool) {
	release := e.deps.Sessions.Acquire(userID)
	defer release()

	draft, ok := e.deps.Sessions.Get(userID)
	if !ok || draft.Step != AwaitingConfirmation || !draft.hasFieldsThrough(AwaitingConfirmation) {
		e.deps.Logger.Error("confirmation without a complete draft", "user_id", userID)
		e.deps.Sessions.Clear(userID)
		e.send(ctx, userID, promptRestart, ports.MessageOptions{})
		return
	}

	if !confirmed {
		e.deps.Sessions.Clear(userID)
		e.send(ctx, userID, promptCancelled, ports.MessageOptions{})
		return
	}

	e.confirmOrderLocked(ctx, userID, handle, draft)
}

// confirmOrderLocked posts the completed draft. Caller holds the user lock.
func (e *Engine) confirmOrderLocked(ctx context.Context, userID int64, handle string, draft Draft) {
	window, err := kernel.NewPickupWindow(draft.Earliest, draft.Latest)
	if err != nil {
		e.deps.Logger.Error("draft window is invalid", "user_id", userID, "error", err)
		e.deps.Sessions.Clear(userID)
		e.send(ctx, userID, promptRestart, ports.MessageOptions{})
		return
	}

	cmd, err := commands.NewPlaceOrderCommand(
		draft.Meal, draft.Location, window, draft.Details, draft.Fee, userID, handle,
	)
	if err != nil {
		e.deps.Logger.Error("draft did not survive command validation", "user_id", userID, "error", err)
		e.deps.Sessions.Clear(userID)
		e.send(ctx, userID, promptRestart, ports.MessageOptions{})
		return
	}

	placed, err := e.deps.PlaceOrder.Handle(ctx, cmd)
	if err != nil {
		e.deps.Logger.Error("place order failed", "user_id", userID, "error", err)
		e.send(ctx, userID, "Could not post your order, try again later.", ports.MessageOptions{})
		return
	}

	e.deps.Sessions.Clear(userID)
	e.send(ctx, userID, fmt.Sprintf("Order #%d posted.", placed.ID()), ports.MessageOptions{})

	e.publishListing(ctx, placed)
}

// publishListing announces a new order in the channel and records the
// message ID for later edits. Failures are logged; the order stands either
// way.
func (e *Engine) publishListing(ctx context.Context, placed *order.Order) {
	messageID, err := e.deps.Messenger.SendToChannel(ctx,
		renderListing(placed, e.deps.Location),
		ports.MessageOptions{
			Buttons: [][]ports.Button{{
				{Purpose: ports.ButtonClaimOrder, OrderID: placed.ID()},
			}},
		})
	if err != nil {
		e.deps.Logger.Error("publish listing failed", "order_id", placed.ID(), "error", err)
		return
	}

	cmd, err := commands.NewPublishListingCommand(placed.ID(), messageID)
	if err != nil {
		e.deps.Logger.Error("build publish command failed", "order_id", placed.ID(), "error", err)
		return
	}

	if err = e.deps.PublishListing.Handle(ctx, cmd); err != nil {
		e.deps.Logger.Error("record listing message failed", "order_id", placed.ID(), "error", err)
	}
}

func (e *Engine) stepOrderID(ctx context.Context, userID int64, text string, draft Draft) {
	orderID, err := strconv.ParseInt(strings.TrimPrefix(text, "#"), 10, 64)
	if err != nil || orderID <= 0 {
		e.send(ctx, userID, "That is not an order number. Try again.", ports.MessageOptions{})
		return
	}

	draft.ClaimOrderID = orderID
	draft.Step = AwaitingClaimConfirmation
	e.deps.Sessions.Set(userID, draft)
	e.send(ctx, userID,
		fmt.Sprintf("Re-enter %d to confirm you want to claim order #%d.", orderID, orderID),
		ports.MessageOptions{})
}

func (e *Engine) stepClaimConfirmation(ctx context.Context, userID int64, handle, text string, draft Draft) {
	orderID, err := strconv.ParseInt(strings.TrimPrefix(text, "#"), 10, 64)
	if err != nil || orderID != draft.ClaimOrderID {
		e.send(ctx, userID,
			fmt.Sprintf("That doesn't match. Re-enter %d to confirm, or /cancel.", draft.ClaimOrderID),
			ports.MessageOptions{})
		return
	}

	e.deps.Sessions.Clear(userID)
	e.claimLocked(ctx, userID, handle, orderID)
}

// ClaimOrder runs the claim path from a listing button press.
func (e *Engine) ClaimOrder(ctx context.Context, userID int64, handle string, orderID int64) {
	release := e.deps.Sessions.Acquire(userID)
	defer release()

	e.claimLocked(ctx, userID, handle, orderID)
}

func (e *Engine) claimLocked(ctx context.Context, userID int64, handle string, orderID int64) {
	cmd, err := commands.NewClaimOrderCommand(orderID, userID, handle)
	if err != nil {
		e.deps.Logger.Error("build claim command failed", "user_id", userID, "error", err)
		return
	}

	claimed, err := e.deps.ClaimOrder.Handle(ctx, cmd)
	switch {
	case err == nil:
	case errors.Is(err, commands.ErrOrderNotClaimable):
		e.send(ctx, userID, fmt.Sprintf("Order #%d can no longer be claimed.", orderID), ports.MessageOptions{})
		return
	case errors.Is(err, services.ErrSelfClaim):
		e.send(ctx, userID, "You can't claim your own order.", ports.MessageOptions{})
		return
	case errors.Is(err, services.ErrTooManyActiveClaims):
		e.send(ctx, userID, "You already have the maximum number of active claims.", ports.MessageOptions{})
		return
	default:
		e.deps.Logger.Error("claim failed", "order_id", orderID, "user_id", userID, "error", err)
		e.send(ctx, userID, "Something went wrong, try again later.", ports.MessageOptions{})
		return
	}

	e.send(ctx, userID,
		fmt.Sprintf("You claimed order #%d: %s at %s for @%s. Fee: %s.",
			claimed.ID(), claimed.Meal(), claimed.Location(), claimed.OwnerHandle(), claimed.Fee()),
		ports.MessageOptions{})
	e.send(ctx, claimed.OwnerID(),
		fmt.Sprintf("Your order #%d was claimed by @%s.", claimed.ID(), handle),
		ports.MessageOptions{})
	e.editListing(ctx, claimed)
}

// UnclaimOrder releases the user's claim, notifying the owner and reopening
// the public listing.
func (e *Engine) UnclaimOrder(ctx context.Context, userID int64, orderID int64) {
	release := e.deps.Sessions.Acquire(userID)
	defer release()

	cmd, err := commands.NewUnclaimOrderCommand(orderID, userID)
	if err != nil {
		e.deps.Logger.Error("build unclaim command failed", "user_id", userID, "error", err)
		return
	}

	released, err := e.deps.UnclaimOrder.Handle(ctx, cmd)
	switch {
	case err == nil:
	case errors.Is(err, order.ErrPickupWindowPassed):
		e.send(ctx, userID,
			fmt.Sprintf("The pickup window for order #%d has passed; the claim can no longer be released.", orderID),
			ports.MessageOptions{})
		return
	case errors.Is(err, order.ErrNotOrderRunner):
		e.send(ctx, userID, fmt.Sprintf("You don't hold the claim on order #%d.", orderID), ports.MessageOptions{})
		return
	default:
		e.deps.Logger.Error("unclaim failed", "order_id", orderID, "user_id", userID, "error", err)
		e.send(ctx, userID, "Something went wrong, try again later.", ports.MessageOptions{})
		return
	}

	e.send(ctx, userID, fmt.Sprintf("You released order #%d.", released.ID()), ports.MessageOptions{})
	e.send(ctx, released.OwnerID(),
		fmt.Sprintf("The runner released your order #%d; it is open again.", released.ID()),
		ports.MessageOptions{})
	e.editListing(ctx, released)
}

// CompleteOrder handles a delivery confirmation. Completion takes both
// parties: the runner's confirmation only reports the drop-off to the owner,
// and the owner's confirmation closes the order.
func (e *Engine) CompleteOrder(ctx context.Context, userID int64, orderID int64) {
	release := e.deps.Sessions.Acquire(userID)
	defer release()

	cmd, err := commands.NewCompleteOrderCommand(orderID, userID)
	if err != nil {
		e.deps.Logger.Error("build complete command failed", "user_id", userID, "error", err)
		return
	}

	completed, err := e.deps.CompleteOrder.Handle(ctx, cmd)
	switch {
	case err == nil:
	case errors.Is(err, commands.ErrNotOrderOwner):
		e.reportDelivery(ctx, userID, orderID)
		return
	default:
		e.deps.Logger.Error("complete failed", "order_id", orderID, "user_id", userID, "error", err)
		e.send(ctx, userID, fmt.Sprintf("Could not complete order #%d.", orderID), ports.MessageOptions{})
		return
	}

	e.send(ctx, userID, fmt.Sprintf("Order #%d marked as delivered.", completed.ID()), ports.MessageOptions{})
	if runnerID := completed.RunnerID(); runnerID != nil {
		e.send(ctx, *runnerID,
			fmt.Sprintf("@%s confirmed delivery of order #%d. Thanks for running it!",
				completed.OwnerHandle(), completed.ID()),
			ports.MessageOptions{})
	}
	e.editListing(ctx, completed)
}

// reportDelivery is the runner half of completion: verify the caller holds
// the claim, then ask the owner to confirm.
func (e *Engine) reportDelivery(ctx context.Context, userID int64, orderID int64) {
	query, err := queries.NewGetOrdersByRunnerQuery(userID)
	if err != nil {
		e.deps.Logger.Error("build runner query failed", "user_id", userID, "error", err)
		return
	}

	claims, err := e.deps.OrdersByRunner.Handle(ctx, query)
	if err != nil {
		e.deps.Logger.Error("list claims failed", "user_id", userID, "error", err)
		e.send(ctx, userID, "Something went wrong, try again later.", ports.MessageOptions{})
		return
	}

	for _, s := range claims {
		if s.ID != orderID {
			continue
		}

		runner := "your runner"
		if s.RunnerHandle != nil {
			runner = "@" + *s.RunnerHandle
		}
		e.send(ctx, s.OwnerID,
			fmt.Sprintf("%s says order #%d (%s) has been delivered. Confirm with /done %d.",
				runner, s.ID, s.Meal, s.ID),
			ports.MessageOptions{})
		e.send(ctx, userID,
			fmt.Sprintf("Got it. The owner of order #%d has been asked to confirm delivery.", orderID),
			ports.MessageOptions{})
		return
	}

	e.send(ctx, userID,
		fmt.Sprintf("Only the owner or runner of order #%d can confirm delivery.", orderID),
		ports.MessageOptions{})
}

func (e *Engine) stepSelectDeletion(ctx context.Context, userID int64, text string, draft Draft) {
	orderID, err := strconv.ParseInt(strings.TrimPrefix(text, "#"), 10, 64)
	if err != nil || orderID <= 0 {
		e.send(ctx, userID, "That is not an order number. Try again.", ports.MessageOptions{})
		return
	}

	draft.DeleteOrderID = orderID
	draft.Step = AwaitingDeletionConfirmation
	e.deps.Sessions.Set(userID, draft)
	e.send(ctx, userID,
		fmt.Sprintf(`Reply "yes" to delete order #%d.`, orderID),
		ports.MessageOptions{})
}

func (e *Engine) stepDeletionConfirmation(ctx context.Context, userID int64, text string, draft Draft) {
	if !strings.EqualFold(text, "yes") && !strings.EqualFold(text, "y") {
		e.deps.Sessions.Clear(userID)
		e.send(ctx, userID, promptCancelled, ports.MessageOptions{})
		return
	}

	e.deps.Sessions.Clear(userID)

	cmd, err := commands.NewDeleteOrderCommand(draft.DeleteOrderID, userID)
	if err != nil {
		e.deps.Logger.Error("build delete command failed", "user_id", userID, "error", err)
		return
	}

	deleted, err := e.deps.DeleteOrder.Handle(ctx, cmd)
	switch {
	case err == nil:
	case errors.Is(err, commands.ErrOrderNotDeletable):
		e.send(ctx, userID,
			fmt.Sprintf("Order #%d can no longer be deleted.", draft.DeleteOrderID),
			ports.MessageOptions{})
		return
	default:
		e.deps.Logger.Error("delete failed", "order_id", draft.DeleteOrderID, "user_id", userID, "error", err)
		e.send(ctx, userID, "Something went wrong, try again later.", ports.MessageOptions{})
		return
	}

	e.send(ctx, userID, fmt.Sprintf("Order #%d deleted.", deleted.ID()), ports.MessageOptions{})

	if messageID := deleted.ChannelMessageID(); messageID != nil {
		err = e.deps.Messenger.EditChannelMessage(ctx, *messageID,
			fmt.Sprintf("Order #%d was withdrawn.", deleted.ID()), ports.MessageOptions{})
		if err != nil {
			e.deps.Logger.Error("edit listing failed", "order_id", deleted.ID(), "error", err)
		}
	}
}

// ListOpenOrders sends the user the current open-order listing.
func (e *Engine) ListOpenOrders(ctx context.Context, userID int64) {
	query, err := queries.NewGetOpenOrdersQuery(e.deps.Now())
	if err != nil {
		e.deps.Logger.Error("build open orders query failed", "user_id", userID, "error", err)
		return
	}

	open, err := e.deps.OpenOrders.Handle(ctx, query)
	if err != nil {
		e.deps.Logger.Error("list open orders failed", "user_id", userID, "error", err)
		e.send(ctx, userID, "Could not load open orders, try again later.", ports.MessageOptions{})
		return
	}

	if len(open) == 0 {
		e.send(ctx, userID, "No open orders right now.", ports.MessageOptions{})
		return
	}

	buttons := make([][]ports.Button, 0, len(open))
	for _, s := range open {
		buttons = append(buttons, []ports.Button{
			{Purpose: ports.ButtonClaimOrder, OrderID: s.ID},
		})
	}

	e.send(ctx, userID,
		renderSummaryList("Open orders:", open, e.deps.Location),
		ports.MessageOptions{Buttons: buttons})
}

// ListMyOrders sends the user their own active orders.
func (e *Engine) ListMyOrders(ctx context.Context, userID int64) {
	query, err := queries.NewGetOrdersByOwnerQuery(userID)
	if err != nil {
		e.deps.Logger.Error("build owner query failed", "user_id", userID, "error", err)
		return
	}

	owned, err := e.deps.OrdersByOwner.Handle(ctx, query)
	if err != nil {
		e.deps.Logger.Error("list owned orders failed", "user_id", userID, "error", err)
		e.send(ctx, userID, "Could not load your orders, try again later.", ports.MessageOptions{})
		return
	}

	if len(owned) == 0 {
		e.send(ctx, userID, "You have no active orders.", ports.MessageOptions{})
		return
	}

	lines := make([]string, 0, len(owned)+1)
	lines = append(lines, "Your orders:")
	for _, s := range owned {
		line := renderSummaryLine(s, e.deps.Location)
		if s.RunnerHandle != nil {
			line += fmt.Sprintf(" (claimed by @%s)", *s.RunnerHandle)
		}
		lines = append(lines, line)
	}
	e.send(ctx, userID, strings.Join(lines, "\n"), ports.MessageOptions{})
}

// ListMyClaims sends the runner their active claims.
func (e *Engine) ListMyClaims(ctx context.Context, userID int64) {
	query, err := queries.NewGetOrdersByRunnerQuery(userID)
	if err != nil {
		e.deps.Logger.Error("build runner query failed", "user_id", userID, "error", err)
		return
	}

	claims, err := e.deps.OrdersByRunner.Handle(ctx, query)
	if err != nil {
		e.deps.Logger.Error("list claims failed", "user_id", userID, "error", err)
		e.send(ctx, userID, "Could not load your claims, try again later.", ports.MessageOptions{})
		return
	}

	if len(claims) == 0 {
		e.send(ctx, userID, "You have no active claims.", ports.MessageOptions{})
		return
	}

	e.send(ctx, userID,
		renderSummaryList("Your claims:", claims, e.deps.Location),
		ports.MessageOptions{})
}

// NotifyExpired tells each owner their order expired unclaimed and
// updates the channel listings. Called by the expiry sweep after commit.
func (e *Engine) NotifyExpired(ctx context.Context, expired []*order.Order) {
	for _, o := range expired {
		e.send(ctx, o.OwnerID(),
			fmt.Sprintf("Order #%d (%s) expired without being claimed.", o.ID(), o.Meal()),
			ports.MessageOptions{})
		e.editListing(ctx, o)
	}
}

func (e *Engine) editListing(ctx context.Context, o *order.Order) {
	messageID := o.ChannelMessageID()
	if messageID == nil {
		return
	}

	opts := ports.MessageOptions{}
	if o.Status() == order.Open {
		opts.Buttons = [][]ports.Button{{
			{Purpose: ports.ButtonClaimOrder, OrderID: o.ID()},
		}}
	}

	if err := e.deps.Messenger.EditChannelMessage(ctx, *messageID, renderListing(o, e.deps.Location), opts); err != nil {
		e.deps.Logger.Error("edit listing failed", "order_id", o.ID(), "error", err)
	}
}
