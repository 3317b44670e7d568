package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"duk-quiz-service/internal/domain"
	"github.com/rs/zerolog/log"
)

type errorPayload struct {
	Message string `json:"error"`
	Kind    string `json:"kind"`
}

// errorKind maps domain failures onto an HTTP status and a stable kind string.
func errorKind(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrTimeLimitExceeded):
		return http.StatusConflict, "time_limit_exceeded"
	case errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict, "version_conflict"
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, domain.ErrInvalidQuestion):
		return http.StatusBadRequest, "invalid_question"
	case errors.Is(err, domain.ErrTeamNotFound):
		return http.StatusNotFound, "team_not_found"
	case errors.Is(err, domain.ErrGeneration):
		return http.StatusBadGateway, "generation_failed"
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusInternalServerError, "persistence_failed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, kind := errorKind(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("kind", kind).Msg("request failed")
	}
	writeJSON(w, status, errorPayload{Message: err.Error(), Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}
