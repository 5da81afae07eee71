package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vasapolrittideah/bookmark-keeper-api/internal/config"
	"github.com/vasapolrittideah/bookmark-keeper-api/internal/model"
	"github.com/vasapolrittideah/bookmark-keeper-api/internal/repository"
	"github.com/vasapolrittideah/bookmark-keeper-api/pkg/types"
	"github.com/vasapolrittideah/bookmark-keeper-api/shared/auth"
	"github.com/vasapolrittideah/bookmark-keeper-api/shared/mailer"
	"github.com/vasapolrittideah/bookmark-keeper-api/shared/security"
)

// PasswordResetUsecase defines the business logic for password reset token operations.
type PasswordResetUsecase interface {
	// RequestPasswordReset initiates the password reset process for a given email.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword resets the user's password using the provided signed
	// reset token and new password.
	ResetPassword(ctx context.Context, tokenString, newPassword string) error
}

var (
	ErrResetTokenNotFound    = errors.New("password reset token not found")
	ErrResetTokenAlreadyUsed = errors.New("password reset token has already been used")
	ErrResetTokenExpired     = errors.New("password reset token has expired")
	ErrInvalidResetToken     = errors.New("invalid password reset token")
)

type passwordResetUsecase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.PasswordResetTokenRepository
	jwtAuth   auth.JWTAuthenticator
	mailer    mailer.Sender
	cfg       *config.Config
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	jwtAuth auth.JWTAuthenticator,
	mailer mailer.Sender,
	cfg *config.Config,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtAuth:   jwtAuth,
		mailer:    mailer,
		cfg:       cfg,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// To prevent email enumeration, do not reveal that the email does not exist.
			return nil
		}

		return err
	}

	// Invalidate any existing unused tokens for this user
	if err := u.tokenRepo.InvalidateUserTokens(ctx, user.ID.Hex()); err != nil {
		return err
	}

	tokenStr, jti, err := u.generatePasswordResetToken(user.ID.Hex(), user.Email)
	if err != nil {
		return err
	}

	resetToken := &model.PasswordResetToken{
		JTI:       jti,
		UserID:    user.ID,
		Email:     user.Email,
		Used:      false,
		ExpiresAt: time.Now().Add(u.cfg.Token.PasswordResetTokenExpiresIn),
	}

	if _, err := u.tokenRepo.CreateToken(ctx, resetToken); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s?token=%s", u.cfg.AppPasswordResetURL, tokenStr)
	htmlBody := fmt.Sprintf(`
		<p>Hi,</p>
		<p>We received a request to reset the password for your account.</p>
		<p>If you made this request, please click the link below to create a new password:</p>

		<p><a href="%s">%s</a></p>

		<p>This link will expire in %s for your security.</p>
		<p>If you did not request a password reset, you can safely ignore this email.</p>

		<p>Thank you,</p>
		<p>Bookmark Keeper Team</p>
	`, resetLink, resetLink, u.cfg.Token.PasswordResetTokenExpiresIn)

	return u.mailer.SendHTML([]string{user.Email}, "Password Reset Request", htmlBody)
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	claims := &types.PasswordResetClaims{}
	if _, err := u.jwtAuth.ValidateTokenWithClaims(
		tokenString,
		u.cfg.Token.PasswordResetTokenSecret,
		claims,
	); err != nil {
		return ErrInvalidResetToken
	}

	resetToken, err := u.tokenRepo.GetTokenByJTI(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrResetTokenNotFound
		}

		return err
	}

	if resetToken.Used {
		return ErrResetTokenAlreadyUsed
	}

	if time.Now().After(resetToken.ExpiresAt) {
		return ErrResetTokenExpired
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	userID := resetToken.UserID.Hex()
	if _, err := u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		return err
	}

	// Resetting the password logs the user out everywhere.
	if err := u.userRepo.UpdateRefreshTokenHash(ctx, userID, nil); err != nil {
		return err
	}

	return u.tokenRepo.MarkTokenAsUsed(ctx, claims.ID)
}

// generatePasswordResetToken creates a password reset JWT token with a unique JTI.
func (u *passwordResetUsecase) generatePasswordResetToken(userID, email string) (string, string, error) {
	jti := uuid.NewString()

	now := time.Now()
	claims := types.PasswordResetClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   userID,
			Issuer:    u.cfg.Token.Issuer,
			Audience:  jwt.ClaimStrings{u.cfg.Token.Issuer},
			ExpiresAt: jwt.NewNumericDate(now.Add(u.cfg.Token.PasswordResetTokenExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	tokenStr, err := u.jwtAuth.GenerateToken(claims, u.cfg.Token.PasswordResetTokenSecret)
	if err != nil {
		return "", "", err
	}

	return tokenStr, jti, nil
}
