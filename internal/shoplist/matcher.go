package shoplist

import (
	"strings"

	"github.com/Kerhoff/BozorlikBot/internal/models"
)

type purchaseEntry struct {
	name  string
	price int64
}

// MarkPurchased marks every unpurchased item matched by one of purchases and
// returns the updated list together with the cost added by this call.
//
// A purchase matches an item when either lowercased name contains the other.
// For each item the first matching purchase wins; one purchase may match
// several items. Purchases with the same name collapse into one entry that
// keeps the first position and the last price.
func MarkPurchased(list models.ShoppingList, purchases []models.PurchaseMatch) (models.ShoppingList, int64) {
	out := list.Clone()
	entries := collapsePurchases(purchases)
	if len(entries) == 0 {
		return out, 0
	}

	var added int64
	for si := range out.Sections {
		items := out.Sections[si].Items
		for ii := range items {
			if items[ii].Purchased {
				continue
			}
			name := strings.ToLower(items[ii].Name)
			for _, e := range entries {
				if strings.Contains(name, e.name) || strings.Contains(e.name, name) {
					items[ii].MarkPurchased(e.price)
					added += items[ii].Price
					break
				}
			}
		}
	}

	return out, added
}

func collapsePurchases(purchases []models.PurchaseMatch) []purchaseEntry {
	index := make(map[string]int, len(purchases))
	entries := make([]purchaseEntry, 0, len(purchases))
	for _, p := range purchases {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		if name == "" {
			continue
		}
		if i, ok := index[name]; ok {
			entries[i].price = p.Price
			continue
		}
		index[name] = len(entries)
		entries = append(entries, purchaseEntry{name: name, price: p.Price})
	}
	return entries
}
