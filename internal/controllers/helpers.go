package controllers

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/AryanKumar02/HomeIQ-sub000/internal/dtos"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/middleware"
	"github.com/AryanKumar02/HomeIQ-sub000/internal/utils"
)

// managerIDFromContext pulls the authenticated property manager ID the
// auth middleware placed on the request. Responds 401 and returns
// false when absent or malformed.
func managerIDFromContext(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ctxUserID := r.Context().Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"No userID in context", nil,
		)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(ctxUserID.(string))
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"Malformed userID in context", nil, err,
		)
		return uuid.Nil, false
	}
	return id, true
}

// formatValidationErrors converts validator errors into a
// user-friendly format.
func formatValidationErrors(errs validator.ValidationErrors) []dtos.ValidationErrorDetail {
	var details []dtos.ValidationErrorDetail
	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field '%s' is required", err.Field())
		case "email":
			message = fmt.Sprintf("Field '%s' must be a valid email address", err.Field())
		case "gt":
			message = fmt.Sprintf("Field '%s' must be greater than %s", err.Field(), err.Param())
		case "gte":
			message = fmt.Sprintf("Field '%s' must be at least %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("Field '%s' must be one of [%s]", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field '%s' exceeds the maximum length of %s", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("Field '%s' failed validation on '%s'", err.Field(), err.Tag())
		}
		details = append(details, dtos.ValidationErrorDetail{
			Field:   err.Field(),
			Message: message,
			Code:    err.Tag(),
		})
	}
	return details
}

// respondValidationError renders either structured field details or a
// generic validation failure.
func respondValidationError(w http.ResponseWriter, err error) {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation,
			"Validation failed", formatValidationErrors(validationErrs),
		)
		return
	}
	utils.RespondErrorWithCode(
		w, http.StatusBadRequest, utils.ErrCodeValidation,
		"Invalid request data", nil, err,
	)
}

// pathUUID parses a {id}-style route variable. Responds 400 and
// returns false on a malformed value.
func pathUUID(w http.ResponseWriter, raw string, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			fmt.Sprintf("Invalid %s", name), nil, err,
		)
		return uuid.Nil, false
	}
	return id, true
}
