package http

import (
	"encoding/json"
	"net/http"

	"github.com/verdantgoods/storefront/pkg/apperr"
	"github.com/verdantgoods/storefront/pkg/logger"
)

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondErr maps a domain error to its transport status. Internal
// errors surface a generic message; the detail goes to the log.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context()).Err(err).Str("path", r.URL.Path).Msg("Request failed")
	}
	respondJSON(w, status, map[string]string{"error": apperr.Message(err)})
}
