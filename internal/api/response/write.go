package response

import (
	"encoding/json"
	"net/http"
)

// envelope is the success wrapper for all API payloads
type envelope struct {
	Data any `json:"data"`
}

// JSON writes a JSON response with the payload wrapped in a data envelope
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Data: data})
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
