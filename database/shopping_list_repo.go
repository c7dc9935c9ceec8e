package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShoppingListRepo aggregates ingredient quantities across every recipe in a
// user's shopping cart.
type ShoppingListRepo struct {
	db *gorm.DB
}

func NewShoppingListRepo(db *gorm.DB) *ShoppingListRepo {
	return &ShoppingListRepo{db}
}

// IngredientTotal is one aggregated shopping-list entry.
type IngredientTotal struct {
	IngredientID    uuid.UUID `json:"ingredientId"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurementUnit"`
	Total           int       `json:"total"`
}

// Aggregate sums ingredient amounts across all recipes in the user's cart.
// Grouping is by ingredient identity: two catalogue entries with the same
// name stay separate lines. The cart's unique (user, recipe) index means no
// recipe is counted twice. Output is ordered by name, then id as a tiebreak,
// so the result is deterministic for a fixed cart.
func (r *ShoppingListRepo) Aggregate(userID uuid.UUID) ([]IngredientTotal, error) {
	var totals []IngredientTotal
	err := r.db.
		Table("ingredient_amounts").
		Select("ingredients.id AS ingredient_id, " +
			"ingredients.name AS name, " +
			"ingredients.measurement_unit AS measurement_unit, " +
			"SUM(ingredient_amounts.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = ingredient_amounts.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = ingredient_amounts.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.id, ingredients.name, ingredients.measurement_unit").
		Order("lower(ingredients.name), ingredients.id").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	if totals == nil {
		totals = []IngredientTotal{}
	}
	return totals, nil
}
