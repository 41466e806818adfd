package handlers

import (
	"fmt"
	"strings"

	"github.com/Kerhoff/BozorlikBot/internal/models"
	"github.com/Kerhoff/BozorlikBot/internal/service"
	"github.com/Kerhoff/BozorlikBot/internal/shoplist"
)

const (
	usageText = "Привет! 😊 Я помогу тебе составить список базара и отслеживать расходы. " +
		"Отправь текст или голосовое сообщение с тем, что нужно купить.\n\n" +
		"Команды:\n" +
		"/list - показать текущий список\n" +
		"/clear - очистить список\n" +
		"/status - показать прогресс покупок\n" +
		"/expenses - показать историю расходов\n" +
		"/total - общие расходы за все время"

	noListText        = "📝 У тебя еще нет списка покупок. Напиши что нужно купить!"
	noEditListText    = "У тебя нет списка для редактирования"
	clearedText       = "🗑 Список покупок очищен! Хотите написать новый?"
	clearedNoticeText = "Список очищен"
	newListText       = "📝 Отлично! Напиши или запиши голосовое сообщение с тем, что нужно купить:"
	noExpensesText    = "📊 У тебя еще нет истории расходов."
	noTotalText       = "📊 У тебя еще нет записей о расходах."

	editNotUnderstoodText = "❌ Не понял, что нужно изменить. Попробуй еще раз:\n\n" +
		"• 'добавь молоко 1 литр'\n• 'удали картошку'\n• 'замени яблоки на груши'"
	editNotUnderstoodVoiceText = "❌ Не понял, что нужно изменить. Попробуй сказать четче:\n\n" +
		"• 'добавь молоко один литр'\n• 'удали картошку'\n• 'замени яблоки на груши'"
	purchasesNotRecognizedText = "🤔 Не смог определить какие товары ты купил. " +
		"Попробуй назвать их точнее, например: 'купил молоко за 12.000 сум и хлеб за 5 тысяч'"
	purchasesNotRecognizedVoiceText = "🤔 Не смог определить какие товары ты купил. Попробуй назвать их точнее."

	classificationFailedText = "❌ Не удалось обработать сообщение. Попробуй еще раз."
	transcriptionFailedText  = "❌ Не удалось распознать голосовое сообщение. Попробуй еще раз."
	emptyMessageText         = "🤔 Не расслышал, что нужно купить. Попробуй еще раз."

	// expensesShown is how many records /expenses lists.
	expensesShown = 5
	// expenseItemsShown is how many items of each record /expenses lists.
	expenseItemsShown = 3
)

func sum(amount int64) string {
	return shoplist.FormatSum(amount) + " сум"
}

func listCreatedText(list models.ShoppingList) string {
	return fmt.Sprintf("📋 Создал список покупок (%d товаров):\n\n%s", list.Len(), shoplist.Format(list))
}

func listEditedText(list models.ShoppingList) string {
	return fmt.Sprintf("✅ Список обновлен! (%d товаров):\n\n%s", list.Len(), shoplist.Format(list))
}

func purchasesRecordedText(res *service.Result) string {
	p := res.Progress
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Обновил список! Отметил купленное:\n\n%s\n\n📊 Прогресс: %d%% (%d/%d товаров)",
		shoplist.Format(res.List), p.Percentage, p.Purchased, p.Total)
	if res.AddedCost > 0 {
		fmt.Fprintf(&b, "\n💰 Добавлено расходов: %s", sum(res.AddedCost))
		fmt.Fprintf(&b, "\n💰 Всего потрачено: %s", sum(p.TotalCost))
	}
	return b.String()
}

func listCompletedText(res *service.Result) string {
	return fmt.Sprintf("🎉 Отлично! Все %d товаров куплены! Список завершен!\n\n%s\n\n💰 Общая стоимость покупки: %s",
		res.Progress.Total, shoplist.Format(res.List), sum(res.Progress.TotalCost))
}

func currentListText(snap *service.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛒 Твой текущий список:\n\n%s", shoplist.Format(snap.List))
	if snap.Progress.Percentage > 0 {
		fmt.Fprintf(&b, "\n\n📊 Прогресс: %d%% (%d товаров куплено)", snap.Progress.Percentage, snap.Progress.Purchased)
		if snap.Progress.TotalCost > 0 {
			fmt.Fprintf(&b, "\n💰 Потрачено: %s", sum(snap.Progress.TotalCost))
		}
	}
	return b.String()
}

func editModeText(list models.ShoppingList) string {
	return "✏️ Режим редактирования включен. Отправь текст или голосовое сообщение с изменениями:\n\n" +
		"• 'добавь [продукт] [количество]' - добавить продукт\n" +
		"• 'удали [продукт]' - удалить продукт\n" +
		"• 'замени [старый продукт] на [новый продукт]' - заменить продукт\n\n" +
		"Текущий список:\n" + shoplist.Format(list)
}

// progressBar draws ten segments, one per full ten percent.
func progressBar(percentage int) string {
	filled := min(max(percentage/10, 0), 10)
	return strings.Repeat("🟩", filled) + strings.Repeat("⬜", 10-filled)
}

func statusText(p shoplist.Progress) string {
	var b strings.Builder
	if p.Complete() {
		fmt.Fprintf(&b, "🎉 Поздравляю! Все %d товаров куплены! Список завершен!", p.Total)
		if p.TotalCost > 0 {
			fmt.Fprintf(&b, "\n💰 Общая стоимость: %s", sum(p.TotalCost))
		}
		return b.String()
	}

	fmt.Fprintf(&b, "📊 Прогресс покупок:\n\n%s %d%%\n\n✅ Куплено: %d/%d товаров",
		progressBar(p.Percentage), p.Percentage, p.Purchased, p.Total)
	if p.TotalCost > 0 {
		fmt.Fprintf(&b, "\n💰 Потрачено: %s", sum(p.TotalCost))
	}
	return b.String()
}

func expensesText(records []*models.PurchaseRecord) string {
	var b strings.Builder
	b.WriteString("📊 История твоих покупок:\n\n")
	for i, r := range records {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.Date)
		fmt.Fprintf(&b, "   💰 Общая сумма: %s\n", sum(r.TotalCost))
		for j, item := range r.Items {
			if j == expenseItemsShown {
				break
			}
			fmt.Fprintf(&b, "   • %s - %s\n", item.Product, sum(item.Price))
		}
		if extra := len(r.Items) - expenseItemsShown; extra > 0 {
			fmt.Fprintf(&b, "   ... и еще %d товаров\n", extra)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func totalText(total int64) string {
	return "💰 Твои общие расходы за все время: " + sum(total)
}
