package shoplist

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Kerhoff/BozorlikBot/internal/models"
)

// Format renders list in the canonical text form accepted by Parse.
func Format(list models.ShoppingList) string {
	var lines []string
	for _, s := range list.Sections {
		if len(s.Items) == 0 {
			continue
		}
		lines = append(lines, s.Category.Label()+":")
		for _, item := range s.Items {
			lines = append(lines, FormatItem(item))
		}
		lines = append(lines, "")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// FormatItem renders a single item line.
func FormatItem(item models.Item) string {
	body := strings.TrimRight(item.Name+" "+LongDash+" "+item.Quantity, " ")
	switch {
	case item.Purchased && item.Price > 0:
		return Checked + " " + body + " - " + FormatSum(item.Price) + " сум"
	case item.Purchased:
		return Checked + " " + body
	default:
		return Bullet + " " + body
	}
}

// FormatSum groups thousands with dots: 15000 -> "15.000".
func FormatSum(amount int64) string {
	return strings.ReplaceAll(humanize.Comma(amount), ",", ".")
}
