package models

import "strings"

// Item is a single product line of a shopping list.
type Item struct {
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	Purchased bool   `json:"purchased"`
	Price     int64  `json:"price"`
}

// NewItem returns an unpurchased item.
func NewItem(name, quantity string) Item {
	return Item{Name: name, Quantity: quantity}
}

// NewPurchasedItem returns a purchased item. Negative prices are stored as zero.
func NewPurchasedItem(name, quantity string, price int64) Item {
	item := NewItem(name, quantity)
	item.MarkPurchased(price)
	return item
}

// MarkPurchased flags the item as bought for the given price.
func (i *Item) MarkPurchased(price int64) {
	if price < 0 {
		price = 0
	}
	i.Purchased = true
	i.Price = price
}

// Section holds the items of one category in display order.
type Section struct {
	Category Category `json:"category"`
	Items    []Item   `json:"items"`
}

// ShoppingList maps categories to their items. Section order is the order in
// which categories first appeared.
type ShoppingList struct {
	Sections []Section `json:"sections"`
}

// Clone returns a deep copy of the list.
func (l ShoppingList) Clone() ShoppingList {
	out := ShoppingList{Sections: make([]Section, 0, len(l.Sections))}
	for _, s := range l.Sections {
		items := make([]Item, len(s.Items))
		copy(items, s.Items)
		out.Sections = append(out.Sections, Section{Category: s.Category, Items: items})
	}
	return out
}

// Section returns the section for c, or nil when the list has none.
func (l *ShoppingList) Section(c Category) *Section {
	for i := range l.Sections {
		if l.Sections[i].Category == c {
			return &l.Sections[i]
		}
	}
	return nil
}

// EnsureSection returns the section for c, appending an empty one if needed.
func (l *ShoppingList) EnsureSection(c Category) *Section {
	if s := l.Section(c); s != nil {
		return s
	}
	l.Sections = append(l.Sections, Section{Category: c})
	return &l.Sections[len(l.Sections)-1]
}

// Append adds item at the end of category c.
func (l *ShoppingList) Append(c Category, item Item) {
	s := l.EnsureSection(c)
	s.Items = append(s.Items, item)
}

// Prune drops categories that have no items.
func (l *ShoppingList) Prune() {
	kept := l.Sections[:0]
	for _, s := range l.Sections {
		if len(s.Items) > 0 {
			kept = append(kept, s)
		}
	}
	l.Sections = kept
}

// Len returns the number of items across all categories.
func (l ShoppingList) Len() int {
	n := 0
	for _, s := range l.Sections {
		n += len(s.Items)
	}
	return n
}

// IsEmpty reports whether the list has no items.
func (l ShoppingList) IsEmpty() bool {
	return l.Len() == 0
}

// ProductNames returns every item name lowercased, in display order.
func (l ShoppingList) ProductNames() []string {
	names := make([]string, 0, l.Len())
	for _, s := range l.Sections {
		for _, item := range s.Items {
			names = append(names, strings.ToLower(item.Name))
		}
	}
	return names
}
