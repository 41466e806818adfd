package telegram

import (
	"context"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Bot wraps the Telegram bot API
type Bot struct {
	api    *tgbotapi.BotAPI
	logger *logrus.Logger
	router *Router
}

// NewBot creates a new Telegram bot instance
func NewBot(token string, logger *logrus.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	logger.Infof("Authorized on account %s", api.Self.UserName)

	return &Bot{
		api:    api,
		logger: logger,
		router: NewRouter(logger),
	}, nil
}

// Router returns the router updates are dispatched to.
func (b *Bot) Router() *Router {
	return b.router
}

// SetWebhook sets up webhook for the bot
func (b *Bot) SetWebhook(webhookURL string) error {
	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return fmt.Errorf("failed to create webhook: %w", err)
	}

	_, err = b.api.Request(wh)
	if err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	b.logger.Infof("Webhook set to %s", webhookURL)
	return nil
}

// Start starts the bot with long polling
func (b *Bot) Start(ctx context.Context) error {
	// Delete webhook if exists and use polling
	_, err := b.api.Request(tgbotapi.DeleteWebhookConfig{})
	if err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Bot started with long polling")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Stopping bot...")
			b.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

// WebhookHandler returns the HTTP handler receiving webhook updates. Updates
// are processed with ctx, not with the request context.
func (b *Bot) WebhookHandler(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		update, err := b.api.HandleUpdate(r)
		if err != nil {
			b.logger.WithError(err).Warn("Invalid webhook update")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		go b.handleUpdate(ctx, *update)
	}
}

// handleUpdate processes incoming updates
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	dispatch(ctx, b.api, b.router, b.logger, update)
}

func dispatch(ctx context.Context, bot Messenger, router *Router, logger *logrus.Logger, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("Panic in update handler: %v", r)
		}
	}()

	if update.Message != nil {
		router.HandleMessage(ctx, bot, update.Message)
	} else if update.CallbackQuery != nil {
		router.HandleCallbackQuery(ctx, bot, update.CallbackQuery)
	}
}
