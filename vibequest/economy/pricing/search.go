package pricing

import (
	"github.com/sahilm/fuzzy"

	"github.com/vibequest/vibequest/vibequest/database/models"
)

// SearchItems ranks the price records against a name query. Exact item-ID
// matches win outright; otherwise fuzzy match on display names.
func SearchItems(items []*models.ItemPrice, query string) []*models.ItemPrice {
	if query == "" {
		return items
	}

	for _, item := range items {
		if item.ItemID == query {
			return []*models.ItemPrice{item}
		}
	}

	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}

	matches := fuzzy.Find(query, names)
	results := make([]*models.ItemPrice, 0, len(matches))
	for _, match := range matches {
		results = append(results, items[match.Index])
	}
	return results
}
