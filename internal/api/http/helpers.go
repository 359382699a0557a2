package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/courseloom/quiz-engine/internal/quiz"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeErr maps the service error taxonomy onto HTTP statuses with a
// machine-readable code. Unknown errors become an opaque 500.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errBody{"not_found", err.Error()})
	case errors.Is(err, quiz.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errBody{"forbidden", err.Error()})
	case errors.Is(err, quiz.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errBody{"validation_error", err.Error()})
	case errors.Is(err, quiz.ErrAttemptLimitExceeded):
		writeJSON(w, http.StatusConflict, errBody{"attempt_limit_exceeded", err.Error()})
	case errors.Is(err, quiz.ErrTimeLimitExceeded):
		writeJSON(w, http.StatusConflict, errBody{"time_limit_exceeded", err.Error()})
	case errors.Is(err, quiz.ErrInvalidState):
		writeJSON(w, http.StatusConflict, errBody{"invalid_state", err.Error()})
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errBody{"internal", "internal error"})
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
