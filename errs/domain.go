package errs

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/foodgram/backend/models"
)

// Domain sentinels for the relationship guard and recipe validation.
var (
	ErrDuplicateRelation = errors.New("relation already exists")
	ErrSelfFollow        = errors.New("self-follow is not allowed")
	ErrInvalidQuantity   = errors.New("ingredient amount out of range")
)

// NewDuplicateRelation reports an attempt to create a favorite, cart entry or
// follow that already exists for the acting user.
func NewDuplicateRelation(relation string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s %w", relation, ErrDuplicateRelation),
	}
}

// NewSelfFollow reports an attempt by a user to follow themselves.
func NewSelfFollow() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrSelfFollow,
	}
}

// NewInvalidQuantity reports an ingredient amount outside the accepted range.
func NewInvalidQuantity(amount int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidQuantity,
		Field:      "amount",
		Details: fmt.Sprintf("amount must be between %d and %d, got %d",
			models.MinIngredientAmount, models.MaxIngredientAmount, amount),
	}
}

func IsDuplicateRelation(err error) bool {
	return errors.Is(err, ErrDuplicateRelation)
}

func IsSelfFollow(err error) bool {
	return errors.Is(err, ErrSelfFollow)
}

func IsInvalidQuantity(err error) bool {
	return errors.Is(err, ErrInvalidQuantity)
}
