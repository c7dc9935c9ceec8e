package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodgram/backend/database"
	"github.com/foodgram/backend/errs"
	"github.com/foodgram/backend/models"
)

type userHandler struct {
	responder    Responder
	logger       zerolog.Logger
	userRepo     *database.UserRepo
	recipeRepo   *database.RecipeRepo
	relationRepo *database.RelationRepo
}

func newUserHandler(
	userRepo *database.UserRepo,
	recipeRepo *database.RecipeRepo,
	relationRepo *database.RelationRepo,
) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		userRepo:     userRepo,
		recipeRepo:   recipeRepo,
		relationRepo: relationRepo,
	}
}

type createUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"firstName" validate:"required,max=150"`
	LastName  string `json:"lastName" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8,max=150"`
}

// createUser registers a new account. Token issuance is handled by the
// surrounding auth subsystem, so the response carries no credentials.
func (h userHandler) createUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode user request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if err := validateStruct(request); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		// "me" is reserved for profile routes in the surrounding API layer
		if request.Username == "me" {
			h.responder.WriteError(w, errs.NewValidationError("username", "this username is unavailable"))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to hash password"))
			return
		}

		user := models.User{
			Username:     request.Username,
			Email:        request.Email,
			FirstName:    request.FirstName,
			LastName:     request.LastName,
			PasswordHash: string(hash),
			Role:         models.RoleUser,
		}

		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newUserResponse(user, false))
	}
}

// getUser returns one account's public representation
func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetID, err := parseIDParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByID(targetID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		isSubscribed := false
		if viewerID, err := ctxGetUserID(r.Context()); err == nil {
			isSubscribed, err = h.relationRepo.IsFollowing(viewerID, targetID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "follow", err))
				return
			}
		}

		h.responder.WriteJSON(w, newUserResponse(*user, isSubscribed))
	}
}

// subscribe follows the target user and returns the subscription summary
func (h userHandler) subscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		authorID, err := parseIDParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		author, err := h.userRepo.FindByID(authorID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		if err := h.relationRepo.Follow(userID, authorID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "follow", err))
			return
		}

		summary, err := h.subscriptionSummary(*author)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "recipes", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, summary)
	}
}

// unsubscribe removes the follow relation
func (h userHandler) unsubscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		authorID, err := parseIDParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.relationRepo.Unfollow(userID, authorID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "follow", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// listSubscriptions returns every author the caller follows, each with
// their recipes.
func (h userHandler) listSubscriptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		follows, err := h.relationRepo.Subscriptions(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "subscriptions", err))
			return
		}

		response := make([]subscriptionResponse, 0, len(follows))
		for _, follow := range follows {
			summary, err := h.subscriptionSummary(follow.Author)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "recipes", err))
				return
			}
			response = append(response, summary)
		}

		h.responder.WriteJSON(w, response)
	}
}

func (h userHandler) subscriptionSummary(author models.User) (subscriptionResponse, error) {
	recipes, err := h.recipeRepo.FindAll(database.RecipeFilter{AuthorID: &author.ID})
	if err != nil {
		return subscriptionResponse{}, err
	}
	summaries := make([]recipeSummary, 0, len(recipes))
	for _, recipe := range recipes {
		summaries = append(summaries, newRecipeSummary(*recipe))
	}
	return subscriptionResponse{
		Author:  newUserResponse(author, true),
		Recipes: summaries,
	}, nil
}
