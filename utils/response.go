package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"foodgram/validators"
)

type M map[string]interface{}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// RespondWithValidationError maps a validation failure to a 400 with the
// offending field attributed in the body.
func RespondWithValidationError(w http.ResponseWriter, err error) {
	var fe *validators.FieldError
	if errors.As(err, &fe) {
		RespondWithJSON(w, http.StatusBadRequest, M{"errors": M{fe.Field: fe.Detail}})
		return
	}
	RespondWithError(w, http.StatusBadRequest, err.Error())
}
