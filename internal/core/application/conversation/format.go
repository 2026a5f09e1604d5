package conversation

import (
	"fmt"
	"strings"
	"time"

	"smuth/internal/core/application/usecases/queries"
	"smuth/internal/core/domain/model/order"
)

// Prompt texts for the composition flow, one per step.
const (
	promptMeal      = "What meal would you like delivered?"
	promptLocation  = "Where should it be delivered?"
	promptEarliest  = `What is the earliest pickup time? Use the format "03-28 4:10pm".`
	promptLatest    = `What is the latest pickup time? Use the format "03-28 4:10pm".`
	promptDetails   = `Any extra details? Reply "none" if there are none.`
	promptFee       = "What delivery fee are you offering? For example: 2.00"
	promptRestart   = "Something went wrong with your session. Please start over."
	promptCancelled = "Cancelled."
)

func renderDraftSummary(d Draft, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("Here is your order:\n")
	fmt.Fprintf(&b, "Meal: %s\n", d.Meal)
	fmt.Fprintf(&b, "Location: %s\n", d.Location)
	fmt.Fprintf(&b, "Pickup: %s to %s\n", FormatPickupTime(d.Earliest, loc), FormatPickupTime(d.Latest, loc))
	if d.Details != "" {
		fmt.Fprintf(&b, "Details: %s\n", d.Details)
	}
	fmt.Fprintf(&b, "Fee: %s\n", d.Fee)
	b.WriteString("Post it?")
	return b.String()
}

// renderListing builds the public channel message for an order. The same
// message is edited in place as the order moves through its lifecycle.
func renderListing(o *order.Order, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d from @%s\n", o.ID(), o.OwnerHandle())
	fmt.Fprintf(&b, "Meal: %s\n", o.Meal())
	fmt.Fprintf(&b, "Location: %s\n", o.Location())
	fmt.Fprintf(&b, "Pickup: %s to %s\n",
		FormatPickupTime(o.Window().Earliest(), loc), FormatPickupTime(o.Window().Latest(), loc))
	if o.Details() != "" {
		fmt.Fprintf(&b, "Details: %s\n", o.Details())
	}
	fmt.Fprintf(&b, "Fee: %s", o.Fee())

	switch o.Status() {
	case order.Claimed:
		if h := o.RunnerHandle(); h != nil {
			fmt.Fprintf(&b, "\n\nClaimed by @%s", *h)
		}
	case order.Completed:
		b.WriteString("\n\nDelivered.")
	case order.Expired:
		b.WriteString("\n\nExpired.")
	default:
	}

	return b.String()
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// renderSummaryLine is the one-line form used in list replies.
func renderSummaryLine(s queries.OrderSummary, loc *time.Location) string {
	return fmt.Sprintf("#%d %s at %s, pickup %s to %s, fee %s",
		s.ID, s.Meal, s.Location,
		FormatPickupTime(s.Earliest, loc), FormatPickupTime(s.Latest, loc),
		formatCents(s.FeeCents))
}

func renderSummaryList(header string, summaries []queries.OrderSummary, loc *time.Location) string {
	lines := make([]string, 0, len(summaries)+1)
	lines = append(lines, header)
	for _, s := range summaries {
		lines = append(lines, renderSummaryLine(s, loc))
	}
	return strings.Join(lines, "\n")
}
