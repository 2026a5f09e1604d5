package telegram

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"smuth/internal/core/ports"
)

// sender is the slice of the telegram API the messenger needs. Satisfied by
// *tgbotapi.BotAPI.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Messenger implements ports.Messenger over the telegram Bot API. Direct
// messages go to the user's private chat (telegram user ID doubles as the
// private chat ID); listings go to the configured channel.
type Messenger struct {
	api       sender
	channelID int64
}

// NewMessenger creates a telegram-backed messenger posting listings to the
// given channel.
func NewMessenger(api sender, channelID int64) *Messenger {
	return &Messenger{api: api, channelID: channelID}
}

// SendMessage delivers a direct message to a user.
func (m *Messenger) SendMessage(_ context.Context, userID int64, text string, opts ports.MessageOptions) error {
	msg := tgbotapi.NewMessage(userID, text)
	if markup, ok := buildKeyboard(opts); ok {
		msg.ReplyMarkup = markup
	}

	_, err := m.api.Send(msg)
	return err
}

// SendToChannel publishes a message to the order channel and returns the
// telegram message ID for later edits.
func (m *Messenger) SendToChannel(_ context.Context, text string, opts ports.MessageOptions) (int, error) {
	msg := tgbotapi.NewMessage(m.channelID, text)
	if markup, ok := buildKeyboard(opts); ok {
		msg.ReplyMarkup = markup
	}

	sent, err := m.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// EditChannelMessage replaces the text and buttons of a published listing.
func (m *Messenger) EditChannelMessage(_ context.Context, messageID int, text string, opts ports.MessageOptions) error {
	edit := tgbotapi.NewEditMessageText(m.channelID, messageID, text)
	if markup, ok := buildKeyboard(opts); ok {
		edit.ReplyMarkup = &markup
	}

	_, err := m.api.Send(edit)
	return err
}

// Callback data constants shared between keyboard building and update
// routing.
const (
	callbackConfirm    = "confirm"
	callbackCancel     = "cancel"
	callbackPlaceOrder = "order"
	callbackClaim      = "claim:" // followed by the order ID
)

func buildKeyboard(opts ports.MessageOptions) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(opts.Buttons) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(opts.Buttons))
	for _, row := range opts.Buttons {
		btns := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			btns = append(btns, renderButton(b))
		}
		rows = append(rows, btns)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

func renderButton(b ports.Button) tgbotapi.InlineKeyboardButton {
	switch b.Purpose {
	case ports.ButtonClaimOrder:
		return tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("Claim #%d", b.OrderID),
			callbackClaim+strconv.FormatInt(b.OrderID, 10),
		)
	case ports.ButtonPlaceOrder:
		return tgbotapi.NewInlineKeyboardButtonData("Post an order", callbackPlaceOrder)
	case ports.ButtonConfirm:
		return tgbotapi.NewInlineKeyboardButtonData("Confirm", callbackConfirm)
	case ports.ButtonCancel:
		return tgbotapi.NewInlineKeyboardButtonData("Cancel", callbackCancel)
	default:
		return tgbotapi.NewInlineKeyboardButtonData(string(b.Purpose), string(b.Purpose))
	}
}
