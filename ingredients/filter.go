package ingredients

import (
	"net/url"
	"strings"

	"foodgram/models"
)

// RankByName filters the catalogue by a search query with two-tier
// relevance: names starting with the query come first, in their original
// order, followed by names merely containing it, again in original order.
// The catalogue is stored lower-cased, so the query is lowered too.
func RankByName(items []models.Ingredient, query string) []models.Ingredient {
	if query == "" {
		return items
	}
	if strings.HasPrefix(query, "%") {
		if unescaped, err := url.QueryUnescape(query); err == nil {
			query = unescaped
		}
	}
	query = strings.ToLower(query)

	ranked := make([]models.Ingredient, 0, len(items))
	seen := make(map[int]bool, len(items))
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Name), query) {
			ranked = append(ranked, item)
			seen[item.ID] = true
		}
	}
	for _, item := range items {
		if !seen[item.ID] && strings.Contains(strings.ToLower(item.Name), query) {
			ranked = append(ranked, item)
		}
	}
	return ranked
}
