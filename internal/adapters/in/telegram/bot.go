package telegram

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"smuth/internal/core/application/conversation"
)

const helpText = `I connect people who want food with people already heading out.

/order - post a food order for someone to pick up
/claim - claim an open order (or tap its Claim button)
/myorders - orders you posted
/myclaims - orders you are picking up
/unclaim <id> - give a claim back
/done <id> - confirm a delivery
/delete - withdraw one of your open orders
/cancel - abandon whatever you were doing`

// Bot polls telegram for updates and routes them into the conversation
// engine. One goroutine per update; the engine serializes per user.
type Bot struct {
	api    *tgbotapi.BotAPI
	engine *conversation.Engine
	logger *slog.Logger
}

func NewBot(api *tgbotapi.BotAPI, engine *conversation.Engine, logger *slog.Logger) *Bot {
	return &Bot{
		api:    api,
		engine: engine,
		logger: logger.With("component", "telegram_bot"),
	}
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("telegram bot started", "bot", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("telegram bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	logger := b.logger.With("update_id", uuid.NewString())

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while handling update", "panic", r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, logger, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, logger, update.Message)
	case update.Message != nil && update.Message.Chat.IsPrivate():
		b.engine.HandleText(ctx, update.Message.From.ID, update.Message.From.UserName, update.Message.Text)
	}
}

func (b *Bot) handleCommand(ctx context.Context, logger *slog.Logger, msg *tgbotapi.Message) {
	userID := msg.From.ID
	handle := msg.From.UserName
	logger.Info("command received", "command", msg.Command(), "user_id", userID)

	switch msg.Command() {
	case "start", "help":
		b.reply(logger, userID, helpText)
	case "order":
		b.engine.StartOrder(ctx, userID)
	case "claim":
		if id, ok := parseID(msg.CommandArguments()); ok {
			b.engine.ClaimOrder(ctx, userID, handle, id)
			return
		}
		b.engine.StartClaim(ctx, userID)
	case "myorders":
		b.engine.ListMyOrders(ctx, userID)
	case "myclaims":
		b.engine.ListMyClaims(ctx, userID)
	case "unclaim":
		id, ok := parseID(msg.CommandArguments())
		if !ok {
			b.reply(logger, userID, "Usage: /unclaim <order id>")
			return
		}
		b.engine.UnclaimOrder(ctx, userID, id)
	case "done":
		id, ok := parseID(msg.CommandArguments())
		if !ok {
			b.reply(logger, userID, "Usage: /done <order id>")
			return
		}
		b.engine.CompleteOrder(ctx, userID, id)
	case "delete":
		b.engine.StartDeletion(ctx, userID)
	case "cancel":
		b.engine.Cancel(ctx, userID)
	default:
		b.reply(logger, userID, "I don't know that command. Try /help.")
	}
}

func (b *Bot) handleCallback(ctx context.Context, logger *slog.Logger, cb *tgbotapi.CallbackQuery) {
	// Acknowledge first so the client stops its spinner even if handling
	// takes a while.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		logger.Warn("failed to answer callback query", "error", err)
	}

	userID := cb.From.ID
	handle := cb.From.UserName
	data := cb.Data
	logger.Info("callback received", "data", data, "user_id", userID)

	switch {
	case strings.HasPrefix(data, callbackClaim):
		id, ok := parseID(strings.TrimPrefix(data, callbackClaim))
		if !ok {
			logger.Warn("malformed claim callback", "data", data)
			return
		}
		b.engine.ClaimOrder(ctx, userID, handle, id)
	case data == callbackConfirm:
		b.engine.ConfirmOrder(ctx, userID, handle, true)
	case data == callbackCancel:
		b.engine.ConfirmOrder(ctx, userID, handle, false)
	case data == callbackPlaceOrder:
		b.engine.StartOrder(ctx, userID)
	default:
		logger.Warn("unknown callback data", "data", data)
	}
}

func (b *Bot) reply(logger *slog.Logger, chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		logger.Warn("failed to send reply", "chat_id", chatID, "error", err)
	}
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
