package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/bookmark-keeper-api/internal/middleware"
	"github.com/vasapolrittideah/bookmark-keeper-api/internal/payload"
	"github.com/vasapolrittideah/bookmark-keeper-api/internal/usecase"
	"github.com/vasapolrittideah/bookmark-keeper-api/shared/validator"
)

// AuthHandler serves the /auth endpoints.
type AuthHandler struct {
	authUsecase          usecase.AuthUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	validator            *validator.Validator
	logger               *zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	passwordResetUsecase usecase.PasswordResetUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase:          authUsecase,
		passwordResetUsecase: passwordResetUsecase,
		validator:            validator,
		logger:               logger,
	}
}

// SignUp handles POST /auth/signup.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req payload.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidationError(w, map[string]string{"body": "malformed JSON"})
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		respondValidationError(w, fields)
		return
	}

	tokens, err := h.authUsecase.SignUp(r.Context(), usecase.SignUpParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, tokens)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidationError(w, map[string]string{"body": "malformed JSON"})
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		respondValidationError(w, fields)
		return
	}

	tokens, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, tokens)
}

// Logout handles POST /auth/logout. The access token guard has already run.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	if err := h.authUsecase.Logout(r.Context(), claims.UserID()); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, nil)
}

// Refresh handles POST /auth/refresh. The refresh token guard has already
// verified signature and expiry; the usecase matches the raw token against
// the stored hash.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	refreshToken := middleware.RefreshTokenFromContext(r.Context())

	tokens, err := h.authUsecase.Refresh(r.Context(), claims.UserID(), refreshToken)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, tokens)
}

// RequestPasswordReset handles POST /auth/password-reset/request. It always
// answers 200 for well-formed requests so callers cannot probe which
// addresses have accounts.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req payload.RequestPasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidationError(w, map[string]string{"body": "malformed JSON"})
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		respondValidationError(w, fields)
		return
	}

	if err := h.passwordResetUsecase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, nil)
}

// ResetPassword handles POST /auth/password-reset/confirm.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidationError(w, map[string]string{"body": "malformed JSON"})
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		respondValidationError(w, fields)
		return
	}

	if err := h.passwordResetUsecase.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, nil)
}
