package models

import (
	"fmt"
	"strings"
)

// Category is one of the fixed grocery categories a list item can belong to.
type Category int

const (
	CategoryVegetables Category = iota
	CategoryFruits
	CategoryDairy
	CategoryMeatFish
	CategoryGrocery
	CategoryDrinks
	CategoryHousehold
	CategoryOther
)

// CategoryMisc receives items added through edits.
const CategoryMisc = CategoryOther

// HeaderMatch describes how a free-form header line is recognised as a category
// when it lacks the canonical emoji. Lines must always end with a colon.
type HeaderMatch struct {
	Keywords []string
	// Anywhere allows the keyword at any position, otherwise the line must start with it.
	Anywhere bool
}

type categoryInfo struct {
	emoji string
	name  string
	match HeaderMatch
}

var catalog = [...]categoryInfo{
	CategoryVegetables: {"🥕", "Овощи", HeaderMatch{Keywords: []string{"овощи"}}},
	CategoryFruits:     {"🍎", "Фрукты", HeaderMatch{Keywords: []string{"фрукты"}}},
	CategoryDairy:      {"🥛", "Молочные продукты", HeaderMatch{Keywords: []string{"молочные", "молоко"}, Anywhere: true}},
	CategoryMeatFish:   {"🍖", "Мясо и рыба", HeaderMatch{Keywords: []string{"мясо", "рыба"}, Anywhere: true}},
	CategoryGrocery:    {"📦", "Бакалея", HeaderMatch{Keywords: []string{"бакалея"}}},
	CategoryDrinks:     {"🥤", "Напитки", HeaderMatch{Keywords: []string{"напитки"}}},
	CategoryHousehold:  {"🧴", "Химия", HeaderMatch{Keywords: []string{"химия"}}},
	CategoryOther:      {"📝", "Другое", HeaderMatch{Keywords: []string{"другое"}}},
}

// Categories returns the catalog in display order.
func Categories() []Category {
	out := make([]Category, len(catalog))
	for i := range catalog {
		out[i] = Category(i)
	}
	return out
}

// Valid reports whether c is part of the catalog.
func (c Category) Valid() bool {
	return c >= 0 && int(c) < len(catalog)
}

// Emoji returns the category marker, e.g. "🥕".
func (c Category) Emoji() string {
	if !c.Valid() {
		return ""
	}
	return catalog[c].emoji
}

// Name returns the category name without the emoji.
func (c Category) Name() string {
	if !c.Valid() {
		return ""
	}
	return catalog[c].name
}

// Label returns the display label, e.g. "🥕 Овощи".
func (c Category) Label() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return catalog[c].emoji + " " + catalog[c].name
}

func (c Category) String() string {
	return c.Label()
}

// HeaderMatch returns the keyword rule used to repair headers written without an emoji.
func (c Category) HeaderMatch() HeaderMatch {
	if !c.Valid() {
		return HeaderMatch{}
	}
	return catalog[c].match
}

// MarshalText encodes the category as its label.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.Label()), nil
}

// UnmarshalText accepts a label, a bare name or an emoji.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, ok := ParseCategory(string(text))
	if !ok {
		return fmt.Errorf("unknown category %q", string(text))
	}
	*c = parsed
	return nil
}

// ParseCategory looks up a category by label, name or emoji.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ":"))
	for i, info := range catalog {
		if s == info.emoji+" "+info.name || strings.EqualFold(s, info.name) || s == info.emoji {
			return Category(i), true
		}
	}
	return 0, false
}

// CategoryInText returns the first catalog category whose emoji occurs in s.
func CategoryInText(s string) (Category, bool) {
	for i, info := range catalog {
		if strings.Contains(s, info.emoji) {
			return Category(i), true
		}
	}
	return 0, false
}
