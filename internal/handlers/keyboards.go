package handlers

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Callback data of the inline buttons.
const (
	CallbackEditList  = "edit_list"
	CallbackClearList = "clear_list"
	CallbackNewList   = "new_list"
)

func listKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Редактировать", CallbackEditList),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Очистить", CallbackClearList),
		),
	)
}

func newListKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Написать новый список", CallbackNewList),
		),
	)
}
