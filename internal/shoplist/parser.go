package shoplist

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Kerhoff/BozorlikBot/internal/models"
)

// Line markers of the canonical list format.
const (
	Bullet     = "•"
	Checked    = "✅"
	LegacyDash = "-"
	LongDash   = "—"
)

var priceSuffixRegex = regexp.MustCompile(`^(.*?)\s*-\s*([\d.]+)\s*сум$`)

// Parse converts list text into a ShoppingList.
//
// Header lines contain a category emoji and end with a colon. Item lines start
// with a bullet (or a legacy dash) and are only accepted after a header. Lines
// marked as checked restore the purchased flag and the price. Text without any
// recognisable structure yields an empty list.
func Parse(text string) models.ShoppingList {
	var (
		list    models.ShoppingList
		current models.Category
		inside  bool
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if c, ok := headerCategory(line); ok {
			// a repeated header starts that category over
			list.EnsureSection(c).Items = nil
			current, inside = c, true
			continue
		}

		if !inside {
			continue
		}

		if item, ok := parseItemLine(line); ok {
			list.Append(current, item)
		}
	}

	list.Prune()
	return list
}

func headerCategory(line string) (models.Category, bool) {
	if !strings.HasSuffix(line, ":") {
		return 0, false
	}
	return models.CategoryInText(line)
}

func parseItemLine(line string) (models.Item, bool) {
	switch {
	case strings.HasPrefix(line, Bullet):
		name, qty := splitItem(strings.TrimPrefix(line, Bullet))
		return models.NewItem(name, qty), name != ""

	case strings.HasPrefix(line, LegacyDash):
		name, qty := splitItem(strings.TrimPrefix(line, LegacyDash))
		return models.NewItem(name, qty), name != ""

	case strings.HasPrefix(line, Checked):
		payload := strings.TrimSpace(strings.TrimPrefix(line, Checked))
		var price int64
		if m := priceSuffixRegex.FindStringSubmatch(payload); m != nil {
			if p, err := strconv.ParseInt(strings.ReplaceAll(m[2], ".", ""), 10, 64); err == nil {
				payload, price = m[1], p
			}
		}
		name, qty := splitItem(payload)
		return models.NewPurchasedItem(name, qty, price), name != ""
	}

	return models.Item{}, false
}

// splitItem splits an item payload into name and quantity, preferring the long
// dash and falling back to a plain hyphen.
func splitItem(payload string) (name, quantity string) {
	payload = strings.TrimSpace(payload)
	if before, after, ok := strings.Cut(payload, LongDash); ok {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}
	if before, after, ok := strings.Cut(payload, LegacyDash); ok {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}
	return payload, ""
}
