package shoplist

import (
	"strings"
	"unicode"
)

var purchaseStems = []string{
	"купил", "купила", "купили",
	"приобрел", "приобрела", "приобрели",
	"взял", "взяла", "взяли",
	"куплено", "приобретено",
	"сум",
}

// IsPurchaseMessage reports whether text reads like a purchase report, e.g.
// "купил молоко за 12.000 сум".
func IsPurchaseMessage(text string) bool {
	lower := strings.ToLower(text)
	for _, stem := range purchaseStems {
		if strings.Contains(lower, stem) {
			return true
		}
	}
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if w == "за" {
			return true
		}
	}
	return false
}
