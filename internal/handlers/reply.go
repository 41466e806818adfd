package handlers

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/BozorlikBot/internal/telegram"
)

// reply answers message with plain text. markup may be nil.
func reply(bot telegram.Messenger, message *tgbotapi.Message, text string, markup any) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	sent, err := bot.Send(msg)
	if err != nil {
		return tgbotapi.Message{}, fmt.Errorf("failed to send reply: %w", err)
	}
	return sent, nil
}

func send(bot telegram.Messenger, chatID int64, text string, markup any) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// deleteMessage removes an old list message. Failures are logged only: the
// message may be too old or already deleted by the user.
func deleteMessage(bot telegram.Messenger, logger *logrus.Logger, chatID int64, messageID int) {
	if messageID == 0 {
		return
	}
	if _, err := bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		logger.WithFields(logrus.Fields{
			"chat_id":    chatID,
			"message_id": messageID,
			"error":      err,
		}).Warn("Failed to delete list message")
	}
}
