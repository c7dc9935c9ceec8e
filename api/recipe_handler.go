package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/foodgram/backend/database"
	"github.com/foodgram/backend/errs"
	"github.com/foodgram/backend/models"
	"github.com/foodgram/backend/services"
)

type recipeHandler struct {
	responder        Responder
	logger           zerolog.Logger
	recipeRepo       *database.RecipeRepo
	relationRepo     *database.RelationRepo
	shoppingListRepo *database.ShoppingListRepo
	userRepo         *database.UserRepo
}

func newRecipeHandler(
	recipeRepo *database.RecipeRepo,
	relationRepo *database.RelationRepo,
	shoppingListRepo *database.ShoppingListRepo,
	userRepo *database.UserRepo,
) recipeHandler {
	logger := log.With().Str("handlerName", "recipeHandler").Logger()

	return recipeHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		recipeRepo:       recipeRepo,
		relationRepo:     relationRepo,
		shoppingListRepo: shoppingListRepo,
		userRepo:         userRepo,
	}
}

type recipeIngredientRequest struct {
	ID     uuid.UUID `json:"id" validate:"required"`
	Amount int       `json:"amount" validate:"required,min=1,max=100000"`
}

type createRecipeRequest struct {
	Name        string                    `json:"name" validate:"required,max=200"`
	Image       string                    `json:"image"`
	Text        string                    `json:"text" validate:"required"`
	CookingTime int                       `json:"cookingTime" validate:"required,min=1"`
	Ingredients []recipeIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
	Tags        []uuid.UUID               `json:"tags"`
}

// updateRecipeRequest carries the full replacement state; the ingredient and
// tag sets are swapped wholesale, never merged.
type updateRecipeRequest struct {
	Name        string                    `json:"name" validate:"required,max=200"`
	Image       string                    `json:"image"`
	Text        string                    `json:"text" validate:"required"`
	CookingTime int                       `json:"cookingTime" validate:"required,min=1"`
	Ingredients []recipeIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
	Tags        []uuid.UUID               `json:"tags"`
}

// viewerRelationSets loads the acting user's favorite, cart and follow sets
// in one pass. An anonymous viewer gets empty sets.
func (h recipeHandler) viewerRelationSets(r *http.Request) (viewerRelations, error) {
	relations := viewerRelations{}
	userID, err := ctxGetUserID(r.Context())
	if err != nil {
		return relations, nil
	}
	if relations.favorites, err = h.relationRepo.FavoriteRecipeIDs(userID); err != nil {
		return relations, err
	}
	if relations.cart, err = h.relationRepo.CartRecipeIDs(userID); err != nil {
		return relations, err
	}
	if relations.following, err = h.relationRepo.FollowedAuthorIDs(userID); err != nil {
		return relations, err
	}
	return relations, nil
}

// listRecipes returns recipes newest first. `is_favorited=1` and
// `is_in_shopping_cart=1` narrow the listing to the caller's favorites or
// cart and therefore require an authenticated caller.
func (h recipeHandler) listRecipes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter database.RecipeFilter

		query := r.URL.Query()
		if query.Get("is_favorited") == "1" || query.Get("is_in_shopping_cart") == "1" {
			userID, err := ctxGetUserID(r.Context())
			if err != nil {
				h.responder.WriteError(w, errs.NewUnauthorizedError("relation filters require authentication"))
				return
			}
			if query.Get("is_favorited") == "1" {
				filter.FavoritedBy = &userID
			}
			if query.Get("is_in_shopping_cart") == "1" {
				filter.InCartOf = &userID
			}
		}
		if authorStr := query.Get("author"); authorStr != "" {
			authorID, err := uuid.Parse(authorStr)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid author"))
				return
			}
			filter.AuthorID = &authorID
		}

		recipes, err := h.recipeRepo.FindAll(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipes", err))
			return
		}

		relations, err := h.viewerRelationSets(r)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "relations", err))
			return
		}

		response := make([]recipeResponse, 0, len(recipes))
		for _, recipe := range recipes {
			response = append(response, newRecipeResponse(*recipe, relations))
		}

		h.responder.WriteJSON(w, response)
	}
}

// getRecipe returns one recipe with its full representation
func (h recipeHandler) getRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID, err := parseIDParam(r, "recipeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recipe, err := h.recipeRepo.FindByID(recipeID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipe", err))
			return
		}

		relations, err := h.viewerRelationSets(r)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "relations", err))
			return
		}

		h.responder.WriteJSON(w, newRecipeResponse(*recipe, relations))
	}
}

// createRecipe publishes a new recipe owned by the caller
func (h recipeHandler) createRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var request createRecipeRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode recipe request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if err := validateStruct(request); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recipe := models.Recipe{
			AuthorID:    userID,
			Name:        request.Name,
			Image:       request.Image,
			Text:        request.Text,
			CookingTime: request.CookingTime,
		}

		if err := h.recipeRepo.Add(&recipe, toSelections(request.Ingredients), request.Tags); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "recipe", err))
			return
		}

		created, err := h.recipeRepo.FindByID(recipe.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "recipe", err))
			return
		}

		relations, err := h.viewerRelationSets(r)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "relations", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newRecipeResponse(*created, relations))
	}
}

// updateRecipe replaces the recipe's fields, ingredient set and tag set.
// Only the author or an admin may mutate a recipe.
func (h recipeHandler) updateRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recipeID, err := parseIDParam(r, "recipeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.recipeRepo.FindByID(recipeID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipe", err))
			return
		}

		if err := h.requireMutationRights(*existing, userID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var request updateRecipeRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode recipe request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if err := validateStruct(request); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recipe := models.Recipe{
			ID:          recipeID,
			Name:        request.Name,
			Image:       request.Image,
			Text:        request.Text,
			CookingTime: request.CookingTime,
		}

		if err := h.recipeRepo.Update(&recipe, toSelections(request.Ingredients), request.Tags); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "recipe", err))
			return
		}

		updated, err := h.recipeRepo.FindByID(recipeID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated", "recipe", err))
			return
		}

		relations, err := h.viewerRelationSets(r)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "relations", err))
			return
		}

		h.responder.WriteJSON(w, newRecipeResponse(*updated, relations))
	}
}

// deleteRecipe removes a recipe. Only the author or an admin may delete it.
func (h recipeHandler) deleteRecipe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recipeID, err := parseIDParam(r, "recipeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.recipeRepo.FindByID(recipeID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipe", err))
			return
		}

		if err := h.requireMutationRights(*existing, userID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.recipeRepo.Delete(recipeID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "recipe", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// addFavorite bookmarks a recipe for the caller
func (h recipeHandler) addFavorite() http.HandlerFunc {
	return h.addRelation("favorite", h.relationRepo.AddFavorite)
}

// removeFavorite removes the caller's bookmark
func (h recipeHandler) removeFavorite() http.HandlerFunc {
	return h.removeRelation("favorite", h.relationRepo.RemoveFavorite)
}

// addToCart puts a recipe into the caller's shopping cart
func (h recipeHandler) addToCart() http.HandlerFunc {
	return h.addRelation("shopping cart entry", h.relationRepo.AddToCart)
}

// removeFromCart takes a recipe out of the caller's shopping cart
func (h recipeHandler) removeFromCart() http.HandlerFunc {
	return h.removeRelation("shopping cart entry", h.relationRepo.RemoveFromCart)
}

// addRelation is the shared POST flow for favorites and cart entries: the
// recipe must exist, the guard enforces at-most-once, and the response is
// the recipe summary with a 201.
func (h recipeHandler) addRelation(entity string, add func(userID, recipeID uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recipeID, err := parseIDParam(r, "recipeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recipe, err := h.recipeRepo.FindByID(recipeID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipe", err))
			return
		}

		if err := add(userID, recipeID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", entity, err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newRecipeSummary(*recipe))
	}
}

// removeRelation is the shared DELETE flow: missing relations report not
// found, success is an empty 204.
func (h recipeHandler) removeRelation(entity string, remove func(userID, recipeID uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recipeID, err := parseIDParam(r, "recipeID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := remove(userID, recipeID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", entity, err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// downloadShoppingCart aggregates the caller's cart and streams the result
// as a plain-text attachment.
func (h recipeHandler) downloadShoppingCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		totals, err := h.shoppingListRepo.Aggregate(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate", "shopping cart", err))
			return
		}

		document := services.RenderShoppingList(totals)

		w.Header().Set("Content-Type", services.ShoppingListContentType)
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", services.ShoppingListFilename))
		if _, err := w.Write([]byte(document)); err != nil {
			h.logger.Error().Err(err).Msg("error writing shopping list response")
		}
	}
}

// requireMutationRights allows the author and admins through.
func (h recipeHandler) requireMutationRights(recipe models.Recipe, userID uuid.UUID) error {
	if recipe.AuthorID == userID {
		return nil
	}
	user, err := h.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return nil
	}
	return errs.NewForbiddenError("only the author or an admin may modify a recipe")
}

func toSelections(items []recipeIngredientRequest) []database.IngredientSelection {
	selections := make([]database.IngredientSelection, 0, len(items))
	for _, item := range items {
		selections = append(selections, database.IngredientSelection{
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}
	return selections
}

// parseIDParam reads a uuid path parameter
func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}
