package ingredients

import (
	"testing"

	"foodgram/models"

	"github.com/stretchr/testify/assert"
)

func catalogue(names ...string) []models.Ingredient {
	items := make([]models.Ingredient, 0, len(names))
	for i, name := range names {
		items = append(items, models.Ingredient{ID: i + 1, Name: name})
	}
	return items
}

func names(items []models.Ingredient) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestRankByNamePrefixBeforeSubstring(t *testing.T) {
	items := catalogue("молоко", "сметана", "мороженое", "сухое молоко")
	got := RankByName(items, "мо")
	assert.Equal(t, []string{"молоко", "мороженое", "сухое молоко"}, names(got))
}

func TestRankByNameCaseInsensitive(t *testing.T) {
	items := catalogue("Milk", "buttermilk", "flour")
	got := RankByName(items, "MIL")
	assert.Equal(t, []string{"Milk", "buttermilk"}, names(got))
}

func TestRankByNameEmptyQueryReturnsAll(t *testing.T) {
	items := catalogue("salt", "sugar")
	assert.Equal(t, items, RankByName(items, ""))
}

func TestRankByNameNoMatch(t *testing.T) {
	items := catalogue("salt", "sugar")
	assert.Empty(t, RankByName(items, "pepper"))
}

func TestRankByNameUnescapesPercentEncodedQuery(t *testing.T) {
	items := catalogue("молоко", "сахар")
	got := RankByName(items, "%D0%BC%D0%BE")
	assert.Equal(t, []string{"молоко"}, names(got))
}
