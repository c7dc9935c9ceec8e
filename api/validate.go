package api

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/foodgram/backend/errs"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the payload through the validator and converts the
// first failure into a field-level validation error.
func validateStruct(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return errs.NewBadRequestError("invalid request payload")
	}
	first := validationErrs[0]
	return errs.NewValidationError(
		first.Field(),
		fmt.Sprintf("failed on the '%s' rule", first.Tag()),
	)
}
