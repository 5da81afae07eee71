package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/bookmark-keeper-api/internal/usecase"
)

// errorResponse is the JSON body returned for every failed request.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// respondValidationError returns a 400 with per-field violation messages.
func respondValidationError(w http.ResponseWriter, fields map[string]string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{
		Error:  "invalid request body",
		Fields: fields,
	})
}

// respondError maps a domain error to its HTTP status. This is the single
// place where the error taxonomy meets the wire; anything unmapped is a 500
// and gets logged.
func respondError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	status, message := statusFromError(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
		message = "something went wrong"
	}

	respondJSON(w, status, errorResponse{Error: message})
}

func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrEmailTaken):
		return http.StatusForbidden, "Credentials taken"
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusForbidden, "Credential incorrect"
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return http.StatusUnauthorized, "invalid refresh token"
	case errors.Is(err, usecase.ErrAccessDenied):
		return http.StatusForbidden, "Access to the resource denied"
	case errors.Is(err, usecase.ErrBookmarkNotFound):
		return http.StatusNotFound, "bookmark not found"
	case errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, usecase.ErrResetTokenNotFound),
		errors.Is(err, usecase.ErrResetTokenAlreadyUsed),
		errors.Is(err, usecase.ErrResetTokenExpired),
		errors.Is(err, usecase.ErrInvalidResetToken):
		return http.StatusUnauthorized, "invalid or expired password reset token"
	default:
		return http.StatusInternalServerError, ""
	}
}
