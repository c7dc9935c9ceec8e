package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/foodgram/backend/database"
)

// Download metadata for the rendered shopping list.
const (
	ShoppingListFilename    = "shop_list.txt"
	ShoppingListContentType = "text/plain; charset=utf-8"
)

// RenderShoppingList formats aggregated ingredient totals as a line-oriented
// plain-text document, one line per ingredient, in the order produced by the
// aggregation query. An empty cart renders an empty document.
func RenderShoppingList(totals []database.IngredientTotal) string {
	var b strings.Builder
	for _, t := range totals {
		fmt.Fprintf(&b, "%s (%s) - %d\n", capitalize(t.Name), t.MeasurementUnit, t.Total)
	}
	return b.String()
}

// capitalize upper-cases the first rune only, leaving the rest untouched.
func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
