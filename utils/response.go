package utils

import (
	"encoding/json"
	"net/http"

	"posada/apperr"
)

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"message": msg})
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithAppError maps a manager error onto its HTTP status; errors
// without a kind surface as 500.
func RespondWithAppError(w http.ResponseWriter, err error) {
	if kind, ok := apperr.KindOf(err); ok {
		RespondWithError(w, kind.HTTPStatus(), err.Error())
		return
	}
	RespondWithError(w, http.StatusInternalServerError, "Error interno del servidor.")
}

type M map[string]interface{}
