package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/foodgram/backend/database"
	"github.com/foodgram/backend/errs"
	"github.com/foodgram/backend/models"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tagRepo   *database.TagRepo
	userRepo  *database.UserRepo
}

func newTagHandler(tagRepo *database.TagRepo, userRepo *database.UserRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tagRepo:   tagRepo,
		userRepo:  userRepo,
	}
}

func (h tagHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tags", err))
			return
		}
		h.responder.WriteJSON(w, tags)
	}
}

func (h tagHandler) getTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := parseIDParam(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag, err := h.tagRepo.FindByID(tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tag", err))
			return
		}

		h.responder.WriteJSON(w, tag)
	}
}

type createTagRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
	Slug  string `json:"slug" validate:"required,max=200"`
}

// createTag adds a tag to the catalogue. Admin only.
func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r, h.userRepo); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var request createTagRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode tag request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if err := validateStruct(request); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag := models.Tag{
			Name:  request.Name,
			Color: request.Color,
			Slug:  request.Slug,
		}

		if err := h.tagRepo.Add(&tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "tag", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, tag)
	}
}

// requireAdmin resolves the caller and rejects non-admins.
func requireAdmin(r *http.Request, userRepo *database.UserRepo) error {
	userID, err := ctxGetUserID(r.Context())
	if err != nil {
		return err
	}
	return requireAdminByID(userID, userRepo)
}

func requireAdminByID(userID uuid.UUID, userRepo *database.UserRepo) error {
	user, err := userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return errs.NewForbiddenError("admin role required")
	}
	return nil
}
