package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/foodgram/backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	recipeHandler     recipeHandler
	tagHandler        tagHandler
	ingredientHandler ingredientHandler
	userHandler       userHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

// userResponse is the public representation of an account.
type userResponse struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	IsSubscribed bool      `json:"isSubscribed"`
}

func newUserResponse(user models.User, isSubscribed bool) userResponse {
	return userResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

// recipeSummary is the short recipe shape returned by the favorite and
// shopping-cart endpoints.
type recipeSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cookingTime"`
}

func newRecipeSummary(recipe models.Recipe) recipeSummary {
	return recipeSummary{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

// recipeIngredientResponse is one ingredient attachment on a recipe.
type recipeIngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurementUnit"`
	Amount          int       `json:"amount"`
}

// recipeResponse is the full recipe representation.
type recipeResponse struct {
	ID               uuid.UUID                  `json:"id"`
	Author           userResponse               `json:"author"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cookingTime"`
	Created          time.Time                  `json:"created"`
	Tags             []models.Tag               `json:"tags"`
	Ingredients      []recipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"isFavorited"`
	IsInShoppingCart bool                       `json:"isInShoppingCart"`
}

// viewerRelations carries the acting user's relation sets so list responses
// can be annotated without one query per row.
type viewerRelations struct {
	favorites map[uuid.UUID]struct{}
	cart      map[uuid.UUID]struct{}
	following map[uuid.UUID]struct{}
}

func (v viewerRelations) favorited(recipeID uuid.UUID) bool {
	_, ok := v.favorites[recipeID]
	return ok
}

func (v viewerRelations) inCart(recipeID uuid.UUID) bool {
	_, ok := v.cart[recipeID]
	return ok
}

func (v viewerRelations) follows(authorID uuid.UUID) bool {
	_, ok := v.following[authorID]
	return ok
}

func newRecipeResponse(recipe models.Recipe, relations viewerRelations) recipeResponse {
	ingredients := make([]recipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, attachment := range recipe.Ingredients {
		ingredients = append(ingredients, recipeIngredientResponse{
			ID:              attachment.IngredientID,
			Name:            attachment.Ingredient.Name,
			MeasurementUnit: attachment.Ingredient.MeasurementUnit,
			Amount:          attachment.Amount,
		})
	}
	tags := recipe.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	return recipeResponse{
		ID:               recipe.ID,
		Author:           newUserResponse(recipe.Author, relations.follows(recipe.AuthorID)),
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		Created:          recipe.Created,
		Tags:             tags,
		Ingredients:      ingredients,
		IsFavorited:      relations.favorited(recipe.ID),
		IsInShoppingCart: relations.inCart(recipe.ID),
	}
}

// subscriptionResponse pairs a followed author with their recipes.
type subscriptionResponse struct {
	Author  userResponse    `json:"author"`
	Recipes []recipeSummary `json:"recipes"`
}
