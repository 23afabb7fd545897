package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/garnizeh/jobly/internal/apperr"
)

type errorBody struct {
	Message string   `json:"message"`
	Status  int      `json:"status"`
	Errors  []string `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError is the single place where errors become HTTP responses.
// Internal errors are logged and their details are not sent to the client.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := apperr.Status(err)
	body := errorBody{Status: status}

	var ae *apperr.Error
	switch {
	case status == http.StatusInternalServerError:
		logger.Error("request failed", slog.Any("err", err))
		body.Message = http.StatusText(status)
	case errors.As(err, &ae):
		body.Message = ae.Message
		body.Errors = ae.Details
	default:
		body.Message = err.Error()
	}

	writeJSON(w, status, errorResponse{Error: body})
}
