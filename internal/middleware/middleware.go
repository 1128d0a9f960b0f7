package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bkaya/campus-market/internal/auth"
	"github.com/bkaya/campus-market/internal/config"
	"github.com/gorilla/mux"
)

type contextKey int

const identityKey contextKey = iota

// AuthMiddleware verifies the bearer token on every request it wraps and
// attaches the decoded identity to the request context. Verification failure
// ends the request with 401 before any handler runs.
func AuthMiddleware(cfg *config.Config) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				unauthorized(w, "invalid authorization header")
				return
			}

			ident, err := auth.ParseToken(tokenString, []byte(cfg.JWTSecret))
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Identity returns the verified identity attached by AuthMiddleware.
func Identity(ctx context.Context) (auth.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(auth.Identity)
	return ident, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
