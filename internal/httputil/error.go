package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/teensteam/namecup/internal/bracket"
	"github.com/teensteam/namecup/internal/service"
)

// fail logs the failure at level and writes body with status. A nil err is
// left out of the log line.
func fail(w http.ResponseWriter, status int, level slog.Level, msg, body string, err error) {
	attrs := []any{slog.Int("status", status), slog.String("message", msg)}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	slog.Log(context.Background(), level, "request failed", attrs...)
	http.Error(w, body, status)
}

// InternalServerError hides err from the client.
func InternalServerError(w http.ResponseWriter, msg string, err error) {
	fail(w, http.StatusInternalServerError, slog.LevelError, msg, http.StatusText(http.StatusInternalServerError), err)
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	fail(w, http.StatusBadRequest, slog.LevelWarn, msg, msg, err)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	fail(w, http.StatusNotFound, slog.LevelWarn, msg, msg, err)
}

// IsUserError reports whether err is something the player caused and can fix,
// as opposed to a failure of the server.
func IsUserError(err error) bool {
	return service.IsValidation(err) ||
		errors.Is(err, bracket.ErrPrecondition) ||
		errors.Is(err, bracket.ErrInvalidInput) ||
		errors.Is(err, service.ErrNoTournament) ||
		errors.Is(err, service.ErrCandidateNotFound)
}

// Fail writes the status matching a service error.
func Fail(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrNoTournament), errors.Is(err, service.ErrCandidateNotFound):
		NotFound(w, err.Error(), err)
	case IsUserError(err):
		BadRequest(w, err.Error(), err)
	default:
		InternalServerError(w, msg, err)
	}
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
