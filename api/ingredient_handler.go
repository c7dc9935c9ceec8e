package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/foodgram/backend/database"
	"github.com/foodgram/backend/errs"
	"github.com/foodgram/backend/models"
)

type ingredientHandler struct {
	responder      Responder
	logger         zerolog.Logger
	ingredientRepo *database.IngredientRepo
	userRepo       *database.UserRepo
}

func newIngredientHandler(ingredientRepo *database.IngredientRepo, userRepo *database.UserRepo) ingredientHandler {
	logger := log.With().Str("handlerName", "ingredientHandler").Logger()

	return ingredientHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		ingredientRepo: ingredientRepo,
		userRepo:       userRepo,
	}
}

// listIngredients returns the catalogue, optionally narrowed by a
// case-insensitive name prefix.
func (h ingredientHandler) listIngredients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ingredients, err := h.ingredientRepo.FindAll(r.URL.Query().Get("name"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "ingredients", err))
			return
		}
		h.responder.WriteJSON(w, ingredients)
	}
}

func (h ingredientHandler) getIngredient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ingredientID, err := parseIDParam(r, "ingredientID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		ingredient, err := h.ingredientRepo.FindByID(ingredientID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "ingredient", err))
			return
		}

		h.responder.WriteJSON(w, ingredient)
	}
}

type ingredientImportRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	MeasurementUnit string `json:"measurementUnit" validate:"required,max=15"`
}

// importIngredients bulk-seeds the catalogue. Admin only.
func (h ingredientHandler) importIngredients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r, h.userRepo); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var request []ingredientImportRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode ingredient import body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if len(request) == 0 {
			h.responder.WriteError(w, errs.NewBadRequestError("empty ingredient list"))
			return
		}
		for _, entry := range request {
			if err := validateStruct(entry); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		ingredients := make([]*models.Ingredient, 0, len(request))
		for _, entry := range request {
			ingredients = append(ingredients, &models.Ingredient{
				Name:            entry.Name,
				MeasurementUnit: entry.MeasurementUnit,
			})
		}

		if err := h.ingredientRepo.AddBatch(ingredients); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("import", "ingredients", err))
			return
		}

		h.logger.Info().Int("count", len(ingredients)).Msg("Imported ingredients")

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]any{
			"status":   "success",
			"imported": len(ingredients),
		})
	}
}
