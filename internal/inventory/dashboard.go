package inventory

import (
	"slices"

	"github.com/erazemk/shouna/internal/model"
)

// TopCategoriesLimit caps the category ranking on the dashboard.
const TopCategoriesLimit = 5

// CategoryTotal is the summed quantity of one category.
type CategoryTotal struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

// LocationCount is the number of distinct items stored in one location.
type LocationCount struct {
	LocationID string `json:"location_id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Count      int    `json:"count"`
}

// Summary is the dashboard's view of the catalog.
type Summary struct {
	TotalQuantity int             `json:"total_quantity"`
	LocationCount int             `json:"location_count"`
	CategoryCount int             `json:"category_count"`
	TopCategories []CategoryTotal `json:"top_categories"`
	PerLocation   []LocationCount `json:"per_location"`
}

// Summarize computes the dashboard figures. Categories are ranked by summed
// quantity; ties keep the order in which the category first appears in
// items. Every location is listed, including empty ones.
func Summarize(items []model.Item, locations []model.Location) Summary {
	s := Summary{
		LocationCount: len(locations),
		TopCategories: []CategoryTotal{},
		PerLocation:   make([]LocationCount, 0, len(locations)),
	}

	index := make(map[string]int)
	var totals []CategoryTotal
	perLocation := make(map[string]int)
	for _, item := range items {
		s.TotalQuantity += item.Quantity
		perLocation[item.LocationID]++

		i, ok := index[item.Category]
		if !ok {
			i = len(totals)
			index[item.Category] = i
			totals = append(totals, CategoryTotal{Category: item.Category})
		}
		totals[i].Quantity += item.Quantity
	}
	s.CategoryCount = len(totals)

	slices.SortStableFunc(totals, func(a, b CategoryTotal) int {
		return b.Quantity - a.Quantity
	})
	if len(totals) > TopCategoriesLimit {
		totals = totals[:TopCategoriesLimit]
	}
	s.TopCategories = append(s.TopCategories, totals...)

	for _, loc := range locations {
		s.PerLocation = append(s.PerLocation, LocationCount{
			LocationID: loc.ID,
			Name:       loc.Name,
			Icon:       loc.Icon,
			Count:      perLocation[loc.ID],
		})
	}
	return s
}

// Share returns quantity as a percentage of the largest category total,
// for sizing the dashboard bars.
func (s Summary) Share(quantity int) int {
	if len(s.TopCategories) == 0 || s.TopCategories[0].Quantity <= 0 {
		return 0
	}
	return quantity * 100 / s.TopCategories[0].Quantity
}
