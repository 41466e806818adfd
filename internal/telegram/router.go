package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	errorText          = "❌ Произошла ошибка при обработке сообщения. Попробуй еще раз."
	unknownCommandText = "❓ Неизвестная команда. Используй /help, чтобы увидеть список команд."
)

// Messenger is the part of the Bot API used by handlers. *tgbotapi.BotAPI implements it.
type Messenger interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// CommandHandler defines the interface for command handlers
type CommandHandler interface {
	Handle(ctx context.Context, bot Messenger, message *tgbotapi.Message, args []string) error
}

// MessageHandler handles plain text or voice messages.
type MessageHandler interface {
	HandleMessage(ctx context.Context, bot Messenger, message *tgbotapi.Message) error
}

// CallbackHandler handles presses of an inline keyboard button.
type CallbackHandler interface {
	HandleCallback(ctx context.Context, bot Messenger, query *tgbotapi.CallbackQuery) error
}

// Router handles message routing and command parsing
type Router struct {
	logger    *logrus.Logger
	handlers  map[string]CommandHandler
	callbacks map[string]CallbackHandler
	text      MessageHandler
	voice     MessageHandler
}

// NewRouter creates a new message router
func NewRouter(logger *logrus.Logger) *Router {
	return &Router{
		logger:    logger,
		handlers:  make(map[string]CommandHandler),
		callbacks: make(map[string]CallbackHandler),
	}
}

// RegisterCommand registers a command handler
func (r *Router) RegisterCommand(command string, handler CommandHandler) {
	r.handlers[command] = handler
	r.logger.Debugf("Registered command: %s", command)
}

// RegisterCallback registers the handler for buttons carrying data.
func (r *Router) RegisterCallback(data string, handler CallbackHandler) {
	r.callbacks[data] = handler
	r.logger.Debugf("Registered callback: %s", data)
}

// HandleText sets the handler for text messages that are not commands.
func (r *Router) HandleText(handler MessageHandler) {
	r.text = handler
}

// HandleVoice sets the handler for voice messages.
func (r *Router) HandleVoice(handler MessageHandler) {
	r.voice = handler
}

// HandleMessage handles incoming messages
func (r *Router) HandleMessage(ctx context.Context, bot Messenger, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}

	r.logger.WithFields(logrus.Fields{
		"chat_id":    message.Chat.ID,
		"user_id":    message.From.ID,
		"username":   message.From.UserName,
		"message_id": message.MessageID,
		"voice":      message.Voice != nil,
	}).Info("Received message")

	switch {
	case message.Voice != nil:
		r.dispatch(ctx, bot, message, "voice", r.voice)
	case message.IsCommand():
		r.handleCommand(ctx, bot, message)
	case message.Text != "":
		r.dispatch(ctx, bot, message, "text", r.text)
	}
}

func (r *Router) handleCommand(ctx context.Context, bot Messenger, message *tgbotapi.Message) {
	command := message.Command()
	args := strings.Fields(message.CommandArguments())

	handler, exists := r.handlers[command]
	if !exists {
		r.logger.WithFields(logrus.Fields{
			"command": command,
			"chat_id": message.Chat.ID,
			"user_id": message.From.ID,
		}).Warn("Unknown command")

		bot.Send(tgbotapi.NewMessage(message.Chat.ID, unknownCommandText))
		return
	}

	if err := handler.Handle(ctx, bot, message, args); err != nil {
		r.logger.WithFields(logrus.Fields{
			"command": command,
			"chat_id": message.Chat.ID,
			"user_id": message.From.ID,
			"error":   err,
		}).Error("Command handler failed")

		bot.Send(tgbotapi.NewMessage(message.Chat.ID, errorText))
	}
}

func (r *Router) dispatch(ctx context.Context, bot Messenger, message *tgbotapi.Message, kind string, handler MessageHandler) {
	if handler == nil {
		return
	}
	if err := handler.HandleMessage(ctx, bot, message); err != nil {
		r.logger.WithFields(logrus.Fields{
			"kind":    kind,
			"chat_id": message.Chat.ID,
			"user_id": message.From.ID,
			"error":   err,
		}).Error("Message handler failed")

		bot.Send(tgbotapi.NewMessage(message.Chat.ID, errorText))
	}
}

// HandleCallbackQuery handles callback queries from inline keyboards
func (r *Router) HandleCallbackQuery(ctx context.Context, bot Messenger, query *tgbotapi.CallbackQuery) {
	r.logger.WithFields(logrus.Fields{
		"callback_id": query.ID,
		"user_id":     query.From.ID,
		"data":        query.Data,
	}).Info("Received callback query")

	handler, exists := r.callbacks[query.Data]
	if !exists {
		r.logger.WithField("data", query.Data).Warn("Unknown callback")
		bot.Request(tgbotapi.NewCallback(query.ID, ""))
		return
	}

	if err := handler.HandleCallback(ctx, bot, query); err != nil {
		r.logger.WithFields(logrus.Fields{
			"data":    query.Data,
			"user_id": query.From.ID,
			"error":   err,
		}).Error("Callback handler failed")

		bot.Send(tgbotapi.NewMessage(CallbackChatID(query), errorText))
	}
}

// CallbackChatID returns the chat the pressed button belongs to.
func CallbackChatID(query *tgbotapi.CallbackQuery) int64 {
	if query.Message != nil && query.Message.Chat != nil {
		return query.Message.Chat.ID
	}
	return query.From.ID
}
