package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"gastor/internal/common"

	"github.com/go-playground/validator/v10"
)

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithValidationError(w http.ResponseWriter, fields map[string]string) {
	respondWithJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": fields,
	})
}

// respondWithServiceError maps the service error taxonomy onto status codes.
// Anything unrecognized is a 500 whose detail stays in the logs.
func (s *Server) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		respondWithError(w, http.StatusUnauthorized, "could not validate credentials")
	case errors.Is(err, common.ErrorNotFound):
		respondWithError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorInvalidCategory):
		respondWithError(w, http.StatusNotFound, "category does not exist or belongs to another user")
	case errors.Is(err, common.ErrorCategoryInUse):
		respondWithError(w, http.StatusBadRequest, "category has transactions and cannot be deleted")
	case errors.Is(err, common.ErrorEmailTaken):
		respondWithError(w, http.StatusBadRequest, "email already registered")
	default:
		s.logger.Error(r.Context(), "request failed", "error", err.Error())
		respondWithError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeValid decodes the JSON body into dst and validates it. On failure it
// writes the error response and returns false.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return false
	}

	if err := s.validator.Struct(dst); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			respondWithValidationError(w, errs.Translate(s.translator))
		} else {
			respondWithError(w, http.StatusBadRequest, "invalid request payload")
		}
		return false
	}

	return true
}
