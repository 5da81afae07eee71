package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vasapolrittideah/bookmark-keeper-api/internal/usecase"
	"github.com/vasapolrittideah/bookmark-keeper-api/pkg/types"
)

type contextKey struct{ name string }

var (
	claimsKey       = contextKey{"auth claims"}
	refreshTokenKey = contextKey{"refresh token"}
)

// RequireAccessToken verifies the bearer access token and stores its claims
// in the request context. Requests without a valid token get a 401.
func RequireAccessToken(tokenUsecase usecase.TokenUsecase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				http.Error(w, "missing or malformed authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := tokenUsecase.VerifyAccessToken(tokenString)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRefreshToken verifies the bearer refresh token and stores both its
// claims and the raw token in the request context; the refresh flow needs
// the raw token to match it against the stored hash.
func RequireRefreshToken(tokenUsecase usecase.TokenUsecase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r)
			if !ok {
				http.Error(w, "missing or malformed authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := tokenUsecase.VerifyRefreshToken(tokenString)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = context.WithValue(ctx, refreshTokenKey, tokenString)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified token claims stored by one of the
// guards, or nil when the request did not pass through a guard.
func ClaimsFromContext(ctx context.Context) *types.AuthClaims {
	claims, _ := ctx.Value(claimsKey).(*types.AuthClaims)
	return claims
}

// RefreshTokenFromContext returns the raw refresh token stored by
// RequireRefreshToken.
func RefreshTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(refreshTokenKey).(string)
	return token
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	return strings.TrimSpace(parts[1]), true
}
