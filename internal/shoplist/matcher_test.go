package shoplist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/BozorlikBot/internal/models"
)

func TestMarkPurchased_Scenario(t *testing.T) {
	list := Parse("🥕 Овощи:\n• Лук — 1 кг\n• Морковь —")

	updated, added := MarkPurchased(list, []models.PurchaseMatch{{Name: "лук", Price: 15000}})

	assert.Equal(t, int64(15000), added)
	require.Len(t, updated.Sections, 1)
	assert.Equal(t, []models.Item{
		{Name: "Лук", Quantity: "1 кг", Purchased: true, Price: 15000},
		{Name: "Морковь"},
	}, updated.Sections[0].Items)

	// the input list is untouched
	assert.False(t, list.Sections[0].Items[0].Purchased)
}

func TestMarkPurchased_SubstringEitherDirection(t *testing.T) {
	list := models.ShoppingList{Sections: []models.Section{
		{Category: models.CategoryVegetables, Items: []models.Item{
			models.NewItem("Огурцы", "1 кг"),
			models.NewItem("Лукошко", ""),
			models.NewItem("Зеленый лук", ""),
		}},
	}}

	updated, added := MarkPurchased(list, []models.PurchaseMatch{
		{Name: "огурцы свежие", Price: 10000},
		{Name: "ЛУК", Price: 3000},
	})

	items := updated.Sections[0].Items
	assert.True(t, items[0].Purchased)
	assert.Equal(t, int64(10000), items[0].Price)
	// one purchase may match several items
	assert.True(t, items[1].Purchased)
	assert.True(t, items[2].Purchased)
	assert.Equal(t, int64(16000), added)
}

func TestMarkPurchased_FirstEntryWinsAndPurchasedItemsKept(t *testing.T) {
	list := models.ShoppingList{Sections: []models.Section{
		{Category: models.CategoryDairy, Items: []models.Item{
			models.NewPurchasedItem("Молоко", "1 л", 9000),
			models.NewItem("Молоко топленое", ""),
		}},
	}}

	updated, added := MarkPurchased(list, []models.PurchaseMatch{
		{Name: "молоко", Price: 11000},
		{Name: "молоко топленое", Price: 14000},
	})

	items := updated.Sections[0].Items
	assert.Equal(t, int64(9000), items[0].Price)
	assert.Equal(t, int64(11000), items[1].Price)
	assert.Equal(t, int64(11000), added)
}

func TestMarkPurchased_DuplicateNamesKeepLastPrice(t *testing.T) {
	list := Parse("📦 Бакалея:\n• Рис — 1 кг")

	updated, added := MarkPurchased(list, []models.PurchaseMatch{
		{Name: "рис", Price: 1000},
		{Name: "Рис", Price: 2000},
	})

	assert.Equal(t, int64(2000), updated.Sections[0].Items[0].Price)
	assert.Equal(t, int64(2000), added)
}

func TestMarkPurchased_NoMatchAndBlankNames(t *testing.T) {
	list := Parse("🥕 Овощи:\n• Лук — 1 кг")

	updated, added := MarkPurchased(list, []models.PurchaseMatch{{Name: "  ", Price: 500}, {Name: "хлеб", Price: 4000}})
	assert.Equal(t, int64(0), added)
	assert.Equal(t, list, updated)

	updated, added = MarkPurchased(list, nil)
	assert.Equal(t, int64(0), added)
	assert.Equal(t, list, updated)
}

func TestMarkPurchased_NeverDecreasesProgress(t *testing.T) {
	list := sampleList()
	before := CalculateProgress(list)

	batches := [][]models.PurchaseMatch{
		{{Name: "лук", Price: 5000}},
		{{Name: "молоко", Price: 1}},
		{},
		{{Name: "кока-кола", Price: 8000}, {Name: "морковь", Price: 0}},
	}

	for _, batch := range batches {
		var added int64
		list, added = MarkPurchased(list, batch)
		after := CalculateProgress(list)
		assert.GreaterOrEqual(t, after.Purchased, before.Purchased)
		assert.GreaterOrEqual(t, after.TotalCost, before.TotalCost)
		assert.Equal(t, before.TotalCost+added, after.TotalCost)
		before = after
	}
	assert.True(t, before.Complete())
}
