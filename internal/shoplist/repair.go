package shoplist

import (
	"strings"

	"github.com/Kerhoff/BozorlikBot/internal/models"
)

// Repair normalises free-form list text before parsing: headers written
// without the emoji are rewritten to the canonical "<emoji> <Name>:" form and
// dash bullets become the canonical bullet. Repair is idempotent.
func Repair(text string) string {
	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if c, ok := repairHeader(line); ok {
			line = c.Label() + ":"
		} else if strings.HasPrefix(line, LegacyDash) {
			line = Bullet + strings.TrimPrefix(line, LegacyDash)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func repairHeader(line string) (models.Category, bool) {
	if !strings.HasSuffix(line, ":") {
		return 0, false
	}
	lower := strings.ToLower(line)
	for _, c := range models.Categories() {
		m := c.HeaderMatch()
		for _, kw := range m.Keywords {
			if strings.HasPrefix(lower, kw) || (m.Anywhere && strings.Contains(lower, kw)) {
				return c, true
			}
		}
	}
	return 0, false
}

// LooksLikeList reports whether classifier output contains a shopping list
// rather than a greeting or refusal.
func LooksLikeList(text string) bool {
	for _, c := range models.Categories() {
		if strings.Contains(text, c.Emoji()) {
			return true
		}
	}
	lower := strings.ToLower(text)
	for _, c := range models.Categories() {
		if strings.Contains(lower, c.HeaderMatch().Keywords[0]+":") {
			return true
		}
	}
	return false
}
