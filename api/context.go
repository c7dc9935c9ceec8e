package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/foodgram/backend/errs"
)

type keyType string

const userIDKey keyType = "userID"

// ctxWithUserID adds the authenticated user's id to the context
func ctxWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ctxGetUserID retrieves the authenticated user's id from the context.
// Handlers pass the id down to the repositories explicitly; nothing below
// this layer reads request state.
func ctxGetUserID(ctx context.Context) (uuid.UUID, error) {
	ctxValue := ctx.Value(userIDKey)
	if ctxValue == nil {
		return uuid.Nil, errs.NewUnauthorizedError("authentication required")
	}
	userID, ok := ctxValue.(uuid.UUID)
	if !ok {
		return uuid.Nil, errs.NewUnauthorizedError("authentication required")
	}
	return userID, nil
}

// ctxHasUserID reports whether a request carries an authenticated identity.
func ctxHasUserID(ctx context.Context) bool {
	_, err := ctxGetUserID(ctx)
	return err == nil
}
