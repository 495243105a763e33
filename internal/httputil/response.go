// Package httputil holds the JSON response envelope shared by all handlers.
package httputil

import (
	"encoding/json"
	"net/http"
)

// Error codes carried in the "code" field of error responses. Clients switch
// on these rather than on HTTP status numbers.
const (
	CodeValidationFailed  = "validation_failed"
	CodeDuplicateEmail    = "duplicate_email"
	CodePersistenceFailed = "persistence_failed"
)

// ErrorResponse is the envelope for every non-2xx response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RespondWithError writes a short error message with a machine-readable code.
func RespondWithError(w http.ResponseWriter, status int, code, message string) {
	RespondWithJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// RespondWithFieldErrors writes a validation failure with per-field messages.
func RespondWithFieldErrors(w http.ResponseWriter, status int, message string, fields map[string]string) {
	RespondWithJSON(w, status, ErrorResponse{
		Error:  message,
		Code:   CodeValidationFailed,
		Fields: fields,
	})
}

// RespondWithJSON writes a JSON response
func RespondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}
