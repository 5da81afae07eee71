package usecase

import (
	"time"

	"github.com/vasapolrittideah/bookmark-keeper-api/internal/config"
	"github.com/vasapolrittideah/bookmark-keeper-api/internal/repository"
	"github.com/vasapolrittideah/bookmark-keeper-api/shared/auth"
)

func newTestConfig() *config.Config {
	return &config.Config{
		AppPasswordResetURL: "http://localhost:3000/password-reset",
		Token: config.TokenConfig{
			Issuer:                      "bookmark-keeper-api",
			AccessTokenSecret:           "access-secret",
			RefreshTokenSecret:          "refresh-secret",
			PasswordResetTokenSecret:    "reset-secret",
			AccessTokenExpiresIn:        15 * time.Minute,
			RefreshTokenExpiresIn:       168 * time.Hour,
			PasswordResetTokenExpiresIn: time.Hour,
		},
	}
}

type fixture struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	bookmarkRepo repository.BookmarkRepository
	tokenRepo    repository.PasswordResetTokenRepository
	jwtAuth      auth.JWTAuthenticator
	tokens       TokenUsecase
	auth         AuthUsecase
	users        UserUsecase
	bookmarks    BookmarkUsecase
}

func newFixture() *fixture {
	cfg := newTestConfig()
	userRepo := repository.NewUserMemoryRepository()
	bookmarkRepo := repository.NewBookmarkMemoryRepository()
	tokenRepo := repository.NewPasswordResetTokenMemoryRepository()
	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)
	tokens := NewTokenUsecase(userRepo, jwtAuth, cfg)

	return &fixture{
		cfg:          cfg,
		userRepo:     userRepo,
		bookmarkRepo: bookmarkRepo,
		tokenRepo:    tokenRepo,
		jwtAuth:      jwtAuth,
		tokens:       tokens,
		auth:         NewAuthUsecase(userRepo, tokens),
		users:        NewUserUsecase(userRepo),
		bookmarks:    NewBookmarkUsecase(bookmarkRepo),
	}
}

var johnSignUp = SignUpParams{
	FirstName: "John",
	LastName:  "Doe",
	Email:     "john@gmail.com",
	Password:  "Password1",
}
