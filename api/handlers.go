package api

import (
	"github.com/foodgram/backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database) *routeHandlers {
	return &routeHandlers{
		recipeHandler: newRecipeHandler(
			database.RecipeRepo(),
			database.RelationRepo(),
			database.ShoppingListRepo(),
			database.UserRepo(),
		),
		tagHandler:        newTagHandler(database.TagRepo(), database.UserRepo()),
		ingredientHandler: newIngredientHandler(database.IngredientRepo(), database.UserRepo()),
		userHandler:       newUserHandler(database.UserRepo(), database.RecipeRepo(), database.RelationRepo()),
	}
}
