// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// FieldReporter is implemented by errors that carry per-field messages.
// RespondError includes those messages in the response body under "fields".
type FieldReporter interface {
	error
	Fields() map[string]string
}

// ErrorResponse is the JSON body written by RespondError.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// RespondJSON writes data as JSON with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs err and writes it as a JSON error body with the given status code.
// Server errors are logged at error level, client errors at warn.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "status", status, "error", err)
	} else {
		logger.Warn("request rejected", "status", status, "error", err)
	}

	body := ErrorResponse{Error: err.Error()}

	var fr FieldReporter
	if errors.As(err, &fr) {
		body.Fields = fr.Fields()
	}

	RespondJSON(w, status, body)
}
