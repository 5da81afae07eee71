package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vasapolrittideah/bookmark-keeper-api/internal/config"
	"github.com/vasapolrittideah/bookmark-keeper-api/internal/repository"
	"github.com/vasapolrittideah/bookmark-keeper-api/pkg/types"
	"github.com/vasapolrittideah/bookmark-keeper-api/shared/auth"
	"github.com/vasapolrittideah/bookmark-keeper-api/shared/security"
)

// TokenUsecase issues and verifies access/refresh token pairs and keeps the
// stored refresh token hash in sync with the most recently issued pair.
type TokenUsecase interface {
	// GenerateTokenPair issues a short-lived access token and a long-lived
	// refresh token for the user, each signed with its own secret.
	GenerateTokenPair(ctx context.Context, userID, email string) (*types.Tokens, error)

	// RotateRefreshToken hashes the given refresh token and overwrites the
	// user's stored hash, invalidating every previously issued refresh token.
	RotateRefreshToken(ctx context.Context, userID, refreshToken string) error

	// VerifyAccessToken checks signature and expiry against the access secret.
	VerifyAccessToken(tokenString string) (*types.AuthClaims, error)

	// VerifyRefreshToken checks signature and expiry against the refresh secret.
	VerifyRefreshToken(tokenString string) (*types.AuthClaims, error)
}

type tokenUsecase struct {
	userRepo repository.UserRepository
	jwtAuth  auth.JWTAuthenticator
	cfg      *config.Config
}

// NewTokenUsecase creates a new instance of TokenUsecase.
func NewTokenUsecase(
	userRepo repository.UserRepository,
	jwtAuth auth.JWTAuthenticator,
	cfg *config.Config,
) TokenUsecase {
	return &tokenUsecase{
		userRepo: userRepo,
		jwtAuth:  jwtAuth,
		cfg:      cfg,
	}
}

func (u *tokenUsecase) GenerateTokenPair(_ context.Context, userID, email string) (*types.Tokens, error) {
	accessToken, err := u.generateToken(
		userID,
		email,
		u.cfg.Token.AccessTokenSecret,
		u.cfg.Token.AccessTokenExpiresIn,
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.generateToken(
		userID,
		email,
		u.cfg.Token.RefreshTokenSecret,
		u.cfg.Token.RefreshTokenExpiresIn,
	)
	if err != nil {
		return nil, err
	}

	return &types.Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (u *tokenUsecase) RotateRefreshToken(ctx context.Context, userID, refreshToken string) error {
	hash, err := security.HashPassword(refreshToken)
	if err != nil {
		return err
	}

	return u.userRepo.UpdateRefreshTokenHash(ctx, userID, &hash)
}

func (u *tokenUsecase) VerifyAccessToken(tokenString string) (*types.AuthClaims, error) {
	return u.verifyToken(tokenString, u.cfg.Token.AccessTokenSecret)
}

func (u *tokenUsecase) VerifyRefreshToken(tokenString string) (*types.AuthClaims, error) {
	return u.verifyToken(tokenString, u.cfg.Token.RefreshTokenSecret)
}

func (u *tokenUsecase) verifyToken(tokenString, secret string) (*types.AuthClaims, error) {
	claims := &types.AuthClaims{}
	if _, err := u.jwtAuth.ValidateTokenWithClaims(tokenString, secret, claims); err != nil {
		return nil, err
	}

	return claims, nil
}

func (u *tokenUsecase) generateToken(userID, email, secret string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := types.AuthClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			// A unique ID keeps two tokens minted within the same second
			// from serializing identically.
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    u.cfg.Token.Issuer,
			Audience:  jwt.ClaimStrings{u.cfg.Token.Issuer},
		},
	}

	token, err := u.jwtAuth.GenerateToken(claims, secret)
	if err != nil {
		return "", err
	}

	return token, nil
}
