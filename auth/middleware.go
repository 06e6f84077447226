package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/iamfelixjp/jobbers-app/apperror"
	"github.com/iamfelixjp/jobbers-app/config"
)

// contextKey is a private type for context keys to avoid collisions with
// other packages.
type contextKey string

// claimsContextKey is the key under which verified token claims are stored in
// the request context.
const claimsContextKey contextKey = "auth_claims"

// JWTMiddleware verifies the Bearer token on every request and attaches the
// decoded claims to the request context. Verification is stateless: each
// request is checked independently against the signing key.
func JWTMiddleware(cfg *config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("authentication invalid", nil))
				return
			}

			// Expected format: "Bearer {token}".
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				WriteError(w, r, apperror.NewAuthError("authentication invalid", nil))
				return
			}

			claims, err := ParseToken(parts[1], cfg.JWTSecret)
			if err != nil {
				WriteError(w, r, apperror.NewAuthError("authentication invalid", err))
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the verified token claims set by JWTMiddleware.
func UserFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}

// ContextWithClaims returns a child context carrying the given claims.
// Handlers use this in tests to simulate an authenticated request.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}
