package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/bookmark-keeper-api/internal/middleware"
	"github.com/vasapolrittideah/bookmark-keeper-api/internal/payload"
	"github.com/vasapolrittideah/bookmark-keeper-api/internal/usecase"
	"github.com/vasapolrittideah/bookmark-keeper-api/shared/validator"
)

// BookmarkHandler serves the /bookmarks endpoints.
type BookmarkHandler struct {
	bookmarkUsecase usecase.BookmarkUsecase
	validator       *validator.Validator
	logger          *zerolog.Logger
}

// NewBookmarkHandler creates a new BookmarkHandler instance.
func NewBookmarkHandler(
	bookmarkUsecase usecase.BookmarkUsecase,
	validator *validator.Validator,
	logger *zerolog.Logger,
) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkUsecase: bookmarkUsecase,
		validator:       validator,
		logger:          logger,
	}
}

// ListBookmarks handles GET /bookmarks.
func (h *BookmarkHandler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	bookmarks, err := h.bookmarkUsecase.ListBookmarks(r.Context(), claims.UserID())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.NewBookmarkListResponse(bookmarks))
}

// GetBookmark handles GET /bookmarks/{bookmarkID}.
func (h *BookmarkHandler) GetBookmark(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	bookmarkID := chi.URLParam(r, "bookmarkID")

	bookmark, err := h.bookmarkUsecase.GetBookmark(r.Context(), claims.UserID(), bookmarkID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.NewBookmarkResponse(bookmark))
}

// CreateBookmark handles POST /bookmarks.
func (h *BookmarkHandler) CreateBookmark(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())

	var req payload.CreateBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidationError(w, map[string]string{"body": "malformed JSON"})
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		respondValidationError(w, fields)
		return
	}

	bookmark, err := h.bookmarkUsecase.CreateBookmark(r.Context(), claims.UserID(), usecase.CreateBookmarkParams{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, payload.NewBookmarkResponse(bookmark))
}

// UpdateBookmark handles PATCH /bookmarks/{bookmarkID}.
func (h *BookmarkHandler) UpdateBookmark(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	bookmarkID := chi.URLParam(r, "bookmarkID")

	var req payload.UpdateBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidationError(w, map[string]string{"body": "malformed JSON"})
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		respondValidationError(w, fields)
		return
	}

	bookmark, err := h.bookmarkUsecase.UpdateBookmark(
		r.Context(),
		claims.UserID(),
		bookmarkID,
		usecase.UpdateBookmarkParams{
			Title:       req.Title,
			Description: req.Description,
			Link:        req.Link,
		},
	)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, payload.NewBookmarkResponse(bookmark))
}

// DeleteBookmark handles DELETE /bookmarks/{bookmarkID}.
func (h *BookmarkHandler) DeleteBookmark(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	bookmarkID := chi.URLParam(r, "bookmarkID")

	if err := h.bookmarkUsecase.DeleteBookmark(r.Context(), claims.UserID(), bookmarkID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
