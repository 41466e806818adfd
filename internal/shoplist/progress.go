package shoplist

import "github.com/Kerhoff/BozorlikBot/internal/models"

// Progress summarises how much of a list has been bought.
type Progress struct {
	Percentage int   `json:"percentage"`
	Purchased  int   `json:"purchased"`
	Total      int   `json:"total"`
	TotalCost  int64 `json:"total_cost"`
}

// Complete reports whether every item of a non-empty list is bought.
func (p Progress) Complete() bool {
	return p.Total > 0 && p.Percentage == 100
}

// CalculateProgress computes progress for list. An empty list has zero progress.
func CalculateProgress(list models.ShoppingList) Progress {
	var p Progress
	for _, s := range list.Sections {
		for _, item := range s.Items {
			p.Total++
			if item.Purchased {
				p.Purchased++
				p.TotalCost += item.Price
			}
		}
	}
	if p.Total == 0 {
		return Progress{}
	}
	p.Percentage = 100 * p.Purchased / p.Total
	return p
}
