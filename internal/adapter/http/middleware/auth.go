package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/iho/gowallet/internal/infrastructure/auth"
)

// ContextKey is the type for context keys.
type ContextKey string

const (
	// AccountRefContextKey holds the authenticated account reference.
	AccountRefContextKey ContextKey = "account_ref"
)

// AuthMiddleware verifies the Bearer token and places the account
// reference from its claims into the request context.
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), AccountRefContextKey, claims.AccountRef)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAccountRef extracts the authenticated account reference from the
// context.
func GetAccountRef(ctx context.Context) (string, bool) {
	ref, ok := ctx.Value(AccountRefContextKey).(string)
	return ref, ok && ref != ""
}
