package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	appErrors "github.com/voltkart/storefront/internal/errors"
	"github.com/voltkart/storefront/internal/utils"
	"github.com/voltkart/storefront/internal/utils/response"
)

// decodeAndValidate parses a JSON body into dest and runs struct validation,
// writing the 400 envelope itself on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dest any, validate *validator.Validate) bool {

	if err := utils.DecodeJSONBody(r, dest); err != nil {
		response.Error(w, appErrors.BadRequestError(err.Error()))
		return false
	}

	if err := utils.ValidateStruct(validate, dest); err != nil {
		response.Error(w, appErrors.ValidationError("Invalid input data").WithError(err))
		return false
	}

	return true
}
