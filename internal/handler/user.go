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

// UserHandler serves the /users endpoints.
type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.Validator
	logger      *zerolog.Logger
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(
	userUsecase usecase.UserUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
		logger:      logger,
	}
}

// GetMe handles GET /users/me.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	user, err := h.userUsecase.GetUser(r.Context(), claims.UserID())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.NewUserResponse(user))
}

// UpdateUser handles PATCH /users.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	var req payload.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidationError(w, map[string]string{"body": "malformed JSON"})
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		respondValidationError(w, fields)
		return
	}

	user, err := h.userUsecase.UpdateUser(r.Context(), claims.UserID(), usecase.UpdateUserParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.NewUserResponse(user))
}
