package shopping

import (
	"fmt"
	"strings"
	"time"
)

// Item is one (ingredient, unit, amount) triple flattened out of a
// recipe's ingredient rows.
type Item struct {
	Name   string
	Unit   string
	Amount int
}

// Aggregate groups items by ingredient name, summing amounts, and keeps
// the order in which each name was first encountered. Grouping is by name
// only: two entries sharing a name but differing in unit merge under the
// first unit seen. That matches the shipped behavior and changing it is a
// product decision, not a refactor.
func Aggregate(items []Item) []Item {
	index := make(map[string]int, len(items))
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.Name]; ok {
			out[i].Amount += item.Amount
			continue
		}
		index[item.Name] = len(out)
		out = append(out, item)
	}
	return out
}

// Render produces the flat text report: a header naming the user, one
// line per distinct ingredient, and a generation-timestamp trailer.
func Render(firstName string, items []Item, generatedAt time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Shopping list for %s:\n\n", firstName)
	for _, item := range items {
		fmt.Fprintf(&b, "%s: %d%s\n", item.Name, item.Amount, item.Unit)
	}
	fmt.Fprintf(&b, "\nGenerated %s.\n\nMade in Foodgram 2022 (c)\n",
		generatedAt.Format("02/01/2006 15:04"))
	return b.String()
}
