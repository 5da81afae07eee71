package usecase

import (
	"context"
	"errors"

	"github.com/vasapolrittideah/bookmark-keeper-api/internal/model"
	"github.com/vasapolrittideah/bookmark-keeper-api/internal/repository"
	"github.com/vasapolrittideah/bookmark-keeper-api/pkg/types"
	"github.com/vasapolrittideah/bookmark-keeper-api/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	SignUp(ctx context.Context, params SignUpParams) (*types.Tokens, error)
	Login(ctx context.Context, params LoginParams) (*types.Tokens, error)
	Logout(ctx context.Context, userID string) error
	Refresh(ctx context.Context, userID, refreshToken string) (*types.Tokens, error)
}

// SignUpParams defines the parameters for user registration.
type SignUpParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

var (
	// ErrEmailTaken is returned when the signup or profile-edit email
	// collides with an existing account.
	ErrEmailTaken = errors.New("credentials taken")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("credential incorrect")

	// ErrInvalidRefreshToken is returned when the presented refresh token
	// does not match the stored hash or the user is logged out.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

type authUsecase struct {
	userRepo     repository.UserRepository
	tokenUsecase TokenUsecase
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(userRepo repository.UserRepository, tokenUsecase TokenUsecase) AuthUsecase {
	return &authUsecase{
		userRepo:     userRepo,
		tokenUsecase: tokenUsecase,
	}
}

func (u *authUsecase) SignUp(ctx context.Context, params SignUpParams) (*types.Tokens, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}

		return nil, err
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*types.Tokens, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user)
}

// Logout clears the stored refresh token hash. It succeeds even when the
// user is already logged out.
func (u *authUsecase) Logout(ctx context.Context, userID string) error {
	return u.userRepo.UpdateRefreshTokenHash(ctx, userID, nil)
}

// Refresh exchanges a verified refresh token for a fresh pair. The caller is
// responsible for signature and expiry checks; this only matches the token
// against the stored hash so that rotation invalidates every older token.
func (u *authUsecase) Refresh(ctx context.Context, userID, refreshToken string) (*types.Tokens, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}

		return nil, err
	}

	if user.RefreshTokenHash == nil {
		return nil, ErrInvalidRefreshToken
	}

	if ok, err := security.VerifyPassword(refreshToken, *user.RefreshTokenHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidRefreshToken
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) issueTokens(ctx context.Context, user *model.User) (*types.Tokens, error) {
	tokens, err := u.tokenUsecase.GenerateTokenPair(ctx, user.ID.Hex(), user.Email)
	if err != nil {
		return nil, err
	}

	if err := u.tokenUsecase.RotateRefreshToken(ctx, user.ID.Hex(), tokens.RefreshToken); err != nil {
		return nil, err
	}

	return tokens, nil
}
