package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/BozorlikBot/internal/service"
	"github.com/Kerhoff/BozorlikBot/internal/telegram"
)

// ---------------------------------------------------------------------------
// TextHandler – free text
// ---------------------------------------------------------------------------

// TextHandler runs plain text messages through the conversation: new lists,
// purchase reports and list edits.
type TextHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewTextHandler creates a new TextHandler.
func NewTextHandler(svc *service.Service, logger *logrus.Logger) *TextHandler {
	return &TextHandler{svc: svc, logger: logger}
}

// HandleMessage processes a text message.
func (h *TextHandler) HandleMessage(ctx context.Context, bot telegram.Messenger, message *tgbotapi.Message) error {
	res, err := h.svc.ProcessText(ctx, message.From.ID, message.Text)
	if err != nil {
		return replyError(bot, h.logger, message, err)
	}
	return respond(h.svc, bot, h.logger, message, res, false)
}

// ---------------------------------------------------------------------------
// VoiceHandler – voice notes
// ---------------------------------------------------------------------------

const voiceDownloadTimeout = 30 * time.Second

// VoiceHandler downloads a voice note, transcribes it and handles the
// transcript like a text message.
type VoiceHandler struct {
	svc    *service.Service
	client *http.Client
	logger *logrus.Logger
}

// NewVoiceHandler creates a new VoiceHandler. A nil client uses a client with
// a download timeout.
func NewVoiceHandler(svc *service.Service, client *http.Client, logger *logrus.Logger) *VoiceHandler {
	if client == nil {
		client = &http.Client{Timeout: voiceDownloadTimeout}
	}
	return &VoiceHandler{svc: svc, client: client, logger: logger}
}

// HandleMessage processes a voice message.
func (h *VoiceHandler) HandleMessage(ctx context.Context, bot telegram.Messenger, message *tgbotapi.Message) error {
	url, err := bot.GetFileDirectURL(message.Voice.FileID)
	if err != nil {
		return fmt.Errorf("get voice file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build voice download request: %w", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("download voice file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download voice file: unexpected status %d", resp.StatusCode)
	}

	res, err := h.svc.ProcessVoice(ctx, message.From.ID, path.Base(req.URL.Path), resp.Body)
	if err != nil {
		return replyError(bot, h.logger, message, err)
	}

	h.logger.WithFields(logrus.Fields{
		"user_id":  message.From.ID,
		"duration": message.Voice.Duration,
		"action":   res.Action.String(),
	}).Info("Voice message processed")

	return respond(h.svc, bot, h.logger, message, res, true)
}

// ---------------------------------------------------------------------------
// Shared rendering of conversation results
// ---------------------------------------------------------------------------

// replyError answers the errors the user can act on. Anything else is returned
// to the router.
func replyError(bot telegram.Messenger, logger *logrus.Logger, message *tgbotapi.Message, err error) error {
	var text string
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		text = emptyMessageText
	case errors.Is(err, service.ErrClassification):
		text = classificationFailedText
	case errors.Is(err, service.ErrTranscription):
		text = transcriptionFailedText
	default:
		return err
	}

	logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
		"error":   err,
	}).Error("Failed to process message")

	_, sendErr := reply(bot, message, text, nil)
	return sendErr
}

func respond(svc *service.Service, bot telegram.Messenger, logger *logrus.Logger, message *tgbotapi.Message, res *service.Result, voice bool) error {
	chatID := message.Chat.ID

	switch res.Action {
	case service.ActionReply:
		_, err := reply(bot, message, res.Text, nil)
		return err

	case service.ActionEditNotUnderstood:
		text := editNotUnderstoodText
		if voice {
			text = editNotUnderstoodVoiceText
		}
		_, err := reply(bot, message, text, nil)
		return err

	case service.ActionPurchasesNotRecognized:
		text := purchasesNotRecognizedText
		if voice {
			text = purchasesNotRecognizedVoiceText
		}
		_, err := reply(bot, message, text, nil)
		return err

	case service.ActionListCompleted:
		deleteMessage(bot, logger, chatID, res.PreviousMessageID)
		_, err := reply(bot, message, listCompletedText(res), nil)
		return err
	}

	var text string
	switch res.Action {
	case service.ActionListCreated:
		text = listCreatedText(res.List)
	case service.ActionListEdited:
		text = listEditedText(res.List)
	case service.ActionPurchasesRecorded:
		text = purchasesRecordedText(res)
	default:
		return fmt.Errorf("unexpected conversation result %s", res.Action)
	}

	deleteMessage(bot, logger, chatID, res.PreviousMessageID)
	sent, err := reply(bot, message, text, listKeyboard())
	if err != nil {
		return err
	}
	svc.SetListMessage(message.From.ID, sent.MessageID)
	return nil
}
