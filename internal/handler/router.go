package handler

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/bookmark-keeper-api/internal/middleware"
	"github.com/vasapolrittideah/bookmark-keeper-api/internal/usecase"
)

// NewRouter wires every endpoint, guard and middleware into a chi router.
func NewRouter(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	bookmarkHandler *BookmarkHandler,
	tokenUsecase usecase.TokenUsecase,
	logger *zerolog.Logger,
) chi.Router {
	requireAccessToken := middleware.RequireAccessToken(tokenUsecase)
	requireRefreshToken := middleware.RequireRefreshToken(tokenUsecase)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(requireAccessToken)
			r.Post("/logout", authHandler.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireRefreshToken)
			r.Post("/refresh", authHandler.Refresh)
		})

		r.Route("/password-reset", func(r chi.Router) {
			r.Post("/request", authHandler.RequestPasswordReset)
			r.Post("/confirm", authHandler.ResetPassword)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(requireAccessToken)
		r.Get("/me", userHandler.GetMe)
		r.Patch("/", userHandler.UpdateUser)
	})

	r.Route("/bookmarks", func(r chi.Router) {
		r.Use(requireAccessToken)
		r.Get("/", bookmarkHandler.ListBookmarks)
		r.Post("/", bookmarkHandler.CreateBookmark)

		r.Route("/{bookmarkID}", func(r chi.Router) {
			r.Get("/", bookmarkHandler.GetBookmark)
			r.Patch("/", bookmarkHandler.UpdateBookmark)
			r.Delete("/", bookmarkHandler.DeleteBookmark)
		})
	})

	return r
}
