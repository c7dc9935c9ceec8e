package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every endpoint. Reads are public; identity, when the
// Authorization header carries one, annotates responses. Mutations require
// an authenticated caller.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.identify)

		// Public reads and registration
		r.Get("/recipes", handlers.recipeHandler.listRecipes())
		r.Get("/recipes/{recipeID}", handlers.recipeHandler.getRecipe())
		r.Get("/tags", handlers.tagHandler.listTags())
		r.Get("/tags/{tagID}", handlers.tagHandler.getTag())
		r.Get("/ingredients", handlers.ingredientHandler.listIngredients())
		r.Get("/ingredients/{ingredientID}", handlers.ingredientHandler.getIngredient())
		r.Post("/users", handlers.userHandler.createUser())
		r.Get("/users/{userID}", handlers.userHandler.getUser())

		// Authenticated operations
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.requireAuth)

			r.Post("/recipes", handlers.recipeHandler.createRecipe())
			r.Patch("/recipes/{recipeID}", handlers.recipeHandler.updateRecipe())
			r.Delete("/recipes/{recipeID}", handlers.recipeHandler.deleteRecipe())

			r.Get("/recipes/download_shopping_cart", handlers.recipeHandler.downloadShoppingCart())

			r.Post("/recipes/{recipeID}/favorite", handlers.recipeHandler.addFavorite())
			r.Delete("/recipes/{recipeID}/favorite", handlers.recipeHandler.removeFavorite())
			r.Post("/recipes/{recipeID}/shopping_cart", handlers.recipeHandler.addToCart())
			r.Delete("/recipes/{recipeID}/shopping_cart", handlers.recipeHandler.removeFromCart())

			r.Get("/users/subscriptions", handlers.userHandler.listSubscriptions())
			r.Post("/users/{userID}/subscribe", handlers.userHandler.subscribe())
			r.Delete("/users/{userID}/subscribe", handlers.userHandler.unsubscribe())

			// Catalogue administration
			r.Post("/tags", handlers.tagHandler.createTag())
			r.Post("/ingredients/import", handlers.ingredientHandler.importIngredients())
		})
	})
}
