package shoplist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/BozorlikBot/internal/models"
)

func vegetables(items ...models.Item) models.Section {
	return models.Section{Category: models.CategoryVegetables, Items: items}
}

func TestParse_CanonicalList(t *testing.T) {
	list := Parse("🥕 Овощи:\n• Лук — 1 кг\n• Морковь —")

	require.Len(t, list.Sections, 1)
	assert.Equal(t, vegetables(
		models.Item{Name: "Лук", Quantity: "1 кг"},
		models.Item{Name: "Морковь", Quantity: ""},
	), list.Sections[0])
}

func TestParse_SeparatorsAndBullets(t *testing.T) {
	text := `🍎 Фрукты:
- Яблоки - 2 кг
• Бананы
• Груши — 1-2 шт`

	list := Parse(text)
	require.Len(t, list.Sections, 1)
	assert.Equal(t, []models.Item{
		{Name: "Яблоки", Quantity: "2 кг"},
		{Name: "Бананы"},
		{Name: "Груши", Quantity: "1-2 шт"},
	}, list.Sections[0].Items)
}

func TestParse_ItemsBeforeHeaderAreDiscarded(t *testing.T) {
	text := "• Хлеб — 1\n\n📦 Бакалея:\n• Рис — 1 кг"

	list := Parse(text)
	require.Len(t, list.Sections, 1)
	assert.Equal(t, models.CategoryGrocery, list.Sections[0].Category)
	assert.Equal(t, "Рис", list.Sections[0].Items[0].Name)
}

func TestParse_KeepsCategoryOrder(t *testing.T) {
	text := "🧴 Химия:\n• Мыло — 2\n\n🥕 Овощи:\n• Лук — 1 кг"

	list := Parse(text)
	require.Len(t, list.Sections, 2)
	assert.Equal(t, models.CategoryHousehold, list.Sections[0].Category)
	assert.Equal(t, models.CategoryVegetables, list.Sections[1].Category)
}

func TestParse_CheckedLines(t *testing.T) {
	text := "🥛 Молочные продукты:\n✅ Молоко — 1 л - 12.000 сум\n✅ Сыр — 200 г\n• Кефир —"

	list := Parse(text)
	require.Len(t, list.Sections, 1)
	assert.Equal(t, []models.Item{
		{Name: "Молоко", Quantity: "1 л", Purchased: true, Price: 12000},
		{Name: "Сыр", Quantity: "200 г", Purchased: true},
		{Name: "Кефир"},
	}, list.Sections[0].Items)
}

func TestParse_EmptyAndUnstructured(t *testing.T) {
	assert.True(t, Parse("").IsEmpty())
	assert.True(t, Parse("Привет! Что нужно купить сегодня?").IsEmpty())

	// a header without items is not kept
	list := Parse("🥕 Овощи:\n\n🍎 Фрукты:\n• Киви — 3")
	require.Len(t, list.Sections, 1)
	assert.Equal(t, models.CategoryFruits, list.Sections[0].Category)
}

func TestParse_RepeatedHeaderStartsOver(t *testing.T) {
	text := "🥕 Овощи:\n• Лук — 1 кг\n🍎 Фрукты:\n• Киви — 3\n🥕 Овощи:\n• Морковь — 2 кг"

	list := Parse(text)
	require.Len(t, list.Sections, 2)
	assert.Equal(t, vegetables(models.Item{Name: "Морковь", Quantity: "2 кг"}), list.Sections[0])
}

func TestParse_HeaderWithoutColonIsNotAHeader(t *testing.T) {
	list := Parse("🥕 Овощи\n• Лук — 1 кг")
	assert.True(t, list.IsEmpty())
}
