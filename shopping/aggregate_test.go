package shopping

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestAggregateSumsByName(t *testing.T) {
	items := []Item{
		{Name: "salt", Unit: "g", Amount: 5},
		{Name: "flour", Unit: "g", Amount: 200},
		{Name: "salt", Unit: "g", Amount: 10},
	}
	got := Aggregate(items)
	require.Len(t, got, 2)
	assert.Equal(t, Item{Name: "salt", Unit: "g", Amount: 15}, got[0])
	assert.Equal(t, Item{Name: "flour", Unit: "g", Amount: 200}, got[1])
}

func TestAggregateKeepsFirstEncounterOrder(t *testing.T) {
	items := []Item{
		{Name: "milk", Unit: "ml", Amount: 100},
		{Name: "egg", Unit: "pc", Amount: 2},
		{Name: "milk", Unit: "ml", Amount: 50},
		{Name: "sugar", Unit: "g", Amount: 30},
	}
	got := Aggregate(items)
	names := make([]string, 0, len(got))
	for _, item := range got {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"milk", "egg", "sugar"}, names)
}

func TestAggregateMergesAcrossUnits(t *testing.T) {
	// Same name under different units collapses into the first unit seen.
	items := []Item{
		{Name: "milk", Unit: "ml", Amount: 100},
		{Name: "milk", Unit: "l", Amount: 1},
	}
	got := Aggregate(items)
	require.Len(t, got, 1)
	assert.Equal(t, Item{Name: "milk", Unit: "ml", Amount: 101}, got[0])
}

func TestRender(t *testing.T) {
	items := []Item{
		{Name: "salt", Unit: "g", Amount: 15},
		{Name: "milk", Unit: "ml", Amount: 100},
	}
	at := time.Date(2024, 3, 7, 9, 5, 0, 0, time.UTC)
	got := Render("Anna", items, at)

	want := "Shopping list for Anna:\n\n" +
		"salt: 15g\n" +
		"milk: 100ml\n" +
		"\nGenerated 07/03/2024 09:05.\n\nMade in Foodgram 2022 (c)\n"
	assert.Equal(t, want, got)
}

func TestCartStatus(t *testing.T) {
	code, _ := cartStatus(nil, 3)
	assert.Equal(t, http.StatusOK, code)

	code, msg := cartStatus(nil, 0)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Shopping list is empty", msg)

	code, msg = cartStatus(mongo.ErrNoDocuments, 0)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Shopping list is empty", msg)

	code, msg = cartStatus(errors.New("connection reset"), 0)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to load shopping cart", msg)
}

func TestRenderEmptyList(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := Render("Anna", nil, at)
	assert.Contains(t, got, "Shopping list for Anna:")
	assert.Contains(t, got, "Generated 01/01/2024 00:00.")
}
