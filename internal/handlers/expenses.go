package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/BozorlikBot/internal/service"
	"github.com/Kerhoff/BozorlikBot/internal/telegram"
)

// ExpensesHandler handles /expenses: the last archived lists of the user.
type ExpensesHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewExpensesHandler creates a new ExpensesHandler.
func NewExpensesHandler(svc *service.Service, logger *logrus.Logger) *ExpensesHandler {
	return &ExpensesHandler{svc: svc, logger: logger}
}

// Handle processes the /expenses command.
func (h *ExpensesHandler) Handle(ctx context.Context, bot telegram.Messenger, message *tgbotapi.Message, _ []string) error {
	records := h.svc.Expenses(ctx, message.From.ID, expensesShown)
	if len(records) == 0 {
		_, err := reply(bot, message, noExpensesText, nil)
		return err
	}

	_, err := reply(bot, message, expensesText(records), nil)
	return err
}

// TotalHandler handles /total: the lifetime spend of the user.
type TotalHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewTotalHandler creates a new TotalHandler.
func NewTotalHandler(svc *service.Service, logger *logrus.Logger) *TotalHandler {
	return &TotalHandler{svc: svc, logger: logger}
}

// Handle processes the /total command.
func (h *TotalHandler) Handle(ctx context.Context, bot telegram.Messenger, message *tgbotapi.Message, _ []string) error {
	total := h.svc.TotalExpenses(ctx, message.From.ID)
	if total <= 0 {
		_, err := reply(bot, message, noTotalText, nil)
		return err
	}

	_, err := reply(bot, message, totalText(total), nil)
	return err
}
