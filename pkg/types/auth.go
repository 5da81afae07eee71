package types

import "github.com/golang-jwt/jwt/v5"

// Tokens is an access and refresh token pair returned by signup, login and
// refresh.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthClaims are the claims carried by both access and refresh tokens. The
// authenticated user ID travels in the registered Subject claim.
type AuthClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID returns the user ID stored in the Subject claim.
func (c *AuthClaims) UserID() string {
	return c.Subject
}

// PasswordResetClaims are the claims carried by a password reset token. The
// registered ID claim holds the JTI matched against the reset token store.
type PasswordResetClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
