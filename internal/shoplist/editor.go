package shoplist

import (
	"strings"

	"github.com/Kerhoff/BozorlikBot/internal/models"
)

// ApplyEdits applies changes in order and returns the resulting list with
// empty categories removed. Names are compared case-insensitively. Added items
// go to the miscellaneous category; replaced items keep their purchase state.
func ApplyEdits(list models.ShoppingList, changes []models.Change) models.ShoppingList {
	out := list.Clone()

	for _, ch := range changes {
		old := strings.ToLower(strings.TrimSpace(ch.OldProduct))
		name := strings.TrimSpace(ch.NewProduct)
		qty := strings.TrimSpace(ch.Quantity)

		switch ch.Action {
		case models.ChangeRemove:
			for si := range out.Sections {
				kept := out.Sections[si].Items[:0]
				for _, item := range out.Sections[si].Items {
					if strings.ToLower(item.Name) != old {
						kept = append(kept, item)
					}
				}
				out.Sections[si].Items = kept
			}

		case models.ChangeAdd:
			if name == "" {
				continue
			}
			out.Append(models.CategoryMisc, models.NewItem(name, qty))

		case models.ChangeReplace:
			if name == "" {
				continue
			}
			for si := range out.Sections {
				items := out.Sections[si].Items
				for ii := range items {
					if strings.ToLower(items[ii].Name) == old {
						items[ii].Name = name
						items[ii].Quantity = qty
					}
				}
			}
		}
	}

	out.Prune()
	return out
}
