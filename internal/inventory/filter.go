package inventory

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/erazemk/shouna/internal/model"
)

// Filter returns the items in locationID (any location when empty) whose
// name, category or one of whose tags contains query, compared
// case-insensitively. Relative order is preserved.
func Filter(items []model.Item, locationID, query string) []model.Item {
	fold := cases.Fold()
	q := fold.String(query)

	out := make([]model.Item, 0, len(items))
	for _, item := range items {
		if locationID != "" && item.LocationID != locationID {
			continue
		}
		if q != "" && !matches(fold, item, q) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matches(fold cases.Caser, item model.Item, q string) bool {
	if strings.Contains(fold.String(item.Name), q) {
		return true
	}
	if strings.Contains(fold.String(item.Category), q) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(fold.String(tag), q) {
			return true
		}
	}
	return false
}
