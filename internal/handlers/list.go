package handlers

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/BozorlikBot/internal/service"
	"github.com/Kerhoff/BozorlikBot/internal/telegram"
)

// ---------------------------------------------------------------------------
// ListHandler – /list
// ---------------------------------------------------------------------------

// ListHandler shows the current list with its progress. The reply becomes the
// new list message.
type ListHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewListHandler creates a new ListHandler.
func NewListHandler(svc *service.Service, logger *logrus.Logger) *ListHandler {
	return &ListHandler{svc: svc, logger: logger}
}

// Handle processes the /list command.
func (h *ListHandler) Handle(_ context.Context, bot telegram.Messenger, message *tgbotapi.Message, _ []string) error {
	userID := message.From.ID

	snap, err := h.svc.CurrentList(userID)
	if errors.Is(err, service.ErrNoList) {
		_, err = reply(bot, message, noListText, nil)
		return err
	}
	if err != nil {
		return err
	}

	deleteMessage(bot, h.logger, message.Chat.ID, snap.ListMessageID)

	sent, err := reply(bot, message, currentListText(snap), listKeyboard())
	if err != nil {
		return err
	}
	h.svc.SetListMessage(userID, sent.MessageID)

	return nil
}

// ---------------------------------------------------------------------------
// ClearHandler – /clear
// ---------------------------------------------------------------------------

// ClearHandler drops the user's list and offers to start a new one.
type ClearHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewClearHandler creates a new ClearHandler.
func NewClearHandler(svc *service.Service, logger *logrus.Logger) *ClearHandler {
	return &ClearHandler{svc: svc, logger: logger}
}

// Handle processes the /clear command.
func (h *ClearHandler) Handle(_ context.Context, bot telegram.Messenger, message *tgbotapi.Message, _ []string) error {
	deleteMessage(bot, h.logger, message.Chat.ID, h.svc.Clear(message.From.ID))

	_, err := reply(bot, message, clearedText, newListKeyboard())
	return err
}

// ---------------------------------------------------------------------------
// StatusHandler – /status
// ---------------------------------------------------------------------------

// StatusHandler draws a progress bar of the current list.
type StatusHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(svc *service.Service, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{svc: svc, logger: logger}
}

// Handle processes the /status command.
func (h *StatusHandler) Handle(_ context.Context, bot telegram.Messenger, message *tgbotapi.Message, _ []string) error {
	snap, err := h.svc.CurrentList(message.From.ID)
	if errors.Is(err, service.ErrNoList) {
		_, err = reply(bot, message, noListText, nil)
		return err
	}
	if err != nil {
		return err
	}

	_, err = reply(bot, message, statusText(snap.Progress), nil)
	return err
}
