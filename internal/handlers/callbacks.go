package handlers

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/BozorlikBot/internal/service"
	"github.com/Kerhoff/BozorlikBot/internal/telegram"
)

func answer(bot telegram.Messenger, query *tgbotapi.CallbackQuery, text string) error {
	if _, err := bot.Request(tgbotapi.NewCallback(query.ID, text)); err != nil {
		return fmt.Errorf("failed to answer callback: %w", err)
	}
	return nil
}

// EditListCallback turns on edit mode for the next message.
type EditListCallback struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewEditListCallback creates a new EditListCallback.
func NewEditListCallback(svc *service.Service, logger *logrus.Logger) *EditListCallback {
	return &EditListCallback{svc: svc, logger: logger}
}

// HandleCallback processes the edit_list button.
func (h *EditListCallback) HandleCallback(_ context.Context, bot telegram.Messenger, query *tgbotapi.CallbackQuery) error {
	list, err := h.svc.StartEditing(query.From.ID)
	if errors.Is(err, service.ErrNoList) {
		return answer(bot, query, noEditListText)
	}
	if err != nil {
		return err
	}

	if err := answer(bot, query, ""); err != nil {
		return err
	}
	h.logger.WithField("user_id", query.From.ID).Info("Edit mode enabled")

	return send(bot, telegram.CallbackChatID(query), editModeText(list), nil)
}

// ClearListCallback drops the list from its keyboard.
type ClearListCallback struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewClearListCallback creates a new ClearListCallback.
func NewClearListCallback(svc *service.Service, logger *logrus.Logger) *ClearListCallback {
	return &ClearListCallback{svc: svc, logger: logger}
}

// HandleCallback processes the clear_list button.
func (h *ClearListCallback) HandleCallback(_ context.Context, bot telegram.Messenger, query *tgbotapi.CallbackQuery) error {
	chatID := telegram.CallbackChatID(query)
	deleteMessage(bot, h.logger, chatID, h.svc.Clear(query.From.ID))

	if err := answer(bot, query, clearedNoticeText); err != nil {
		return err
	}
	return send(bot, chatID, clearedText, newListKeyboard())
}

// NewListCallback prompts for a new list.
type NewListCallback struct {
	logger *logrus.Logger
}

// NewNewListCallback creates a new NewListCallback.
func NewNewListCallback(logger *logrus.Logger) *NewListCallback {
	return &NewListCallback{logger: logger}
}

// HandleCallback processes the new_list button.
func (h *NewListCallback) HandleCallback(_ context.Context, bot telegram.Messenger, query *tgbotapi.CallbackQuery) error {
	if err := answer(bot, query, ""); err != nil {
		return err
	}
	return send(bot, telegram.CallbackChatID(query), newListText, nil)
}
