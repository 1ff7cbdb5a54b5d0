package handlers

import (
	"encoding/json"
	"net/http"
)

// staticCacheControl is sent on responses built from the loaded dataset,
// which only changes on reload
const staticCacheControl = "public, max-age=300"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeCachedJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Cache-Control", staticCacheControl)
	writeJSON(w, http.StatusOK, v)
}

func writeError(w http.ResponseWriter, status int, msg string, details map[string]interface{}) {
	writeJSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// langParam returns "en" or "fr" from the lang query parameter
func langParam(r *http.Request) string {
	if r.URL.Query().Get("lang") == "en" {
		return "en"
	}
	return "fr"
}
