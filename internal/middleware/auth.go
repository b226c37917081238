package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hongminglow/invoice-dashboard/internal/auth"
	"github.com/hongminglow/invoice-dashboard/internal/http/respond"
)

type claimsKey struct{}

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(raw string) (auth.Claims, error)
}

// RequireToken rejects requests without a valid "Authorization: Bearer" token.
func RequireToken(tokens TokenVerifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			respond.Error(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := tokens.Verify(strings.TrimSpace(raw))
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFrom returns the claims attached by RequireToken.
func ClaimsFrom(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(auth.Claims)
	return claims, ok
}
