package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"smuth/internal/core/application/usecases/commands"
	"smuth/internal/core/domain/model/order"
)

// ExpiryNotifier is told about orders the sweep expired so owners can be
// messaged and channel listings updated. Satisfied by conversation.Engine.
type ExpiryNotifier interface {
	NotifyExpired(ctx context.Context, expired []*order.Order)
}

// OrderExpiryJob periodically expires open orders whose pickup window has
// closed. Runs every five minutes; each run is a single transaction in the
// command handler, so a crash mid-sweep loses nothing.
type OrderExpiryJob struct {
	handler  commands.ExpireOrdersCommandHandler
	notifier ExpiryNotifier
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderExpiryJob creates the expiry sweep job.
func NewOrderExpiryJob(
	handler commands.ExpireOrdersCommandHandler,
	notifier ExpiryNotifier,
	logger *slog.Logger,
) *OrderExpiryJob {
	return &OrderExpiryJob{
		handler:  handler,
		notifier: notifier,
		cron:     cron.New(),
		logger:   logger.With("component", "order_expiry_job"),
	}
}

// Start begins the expiry sweep, running every five minutes.
func (j *OrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc("@every 5m", func() {
		ctx := context.Background()

		cmd, err := commands.NewExpireOrdersCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build expire command", "error", err)
			return
		}

		expired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order expiry sweep failed", "error", err)
			return
		}

		if len(expired) == 0 {
			return
		}

		j.logger.InfoContext(ctx, "Expired overdue orders", "count", len(expired))
		j.notifier.NotifyExpired(ctx, expired)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiry job started (running every 5 minutes)")
	return nil
}

// Stop stops the expiry sweep.
func (j *OrderExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order expiry job stopped")
}
