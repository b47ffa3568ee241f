package middleware

import (
	"net/http"
	"strings"

	"skylane/concourse/internal/auth"
)

// AuthMiddleware validates the bearer token and stores claims on the
// request context. Routes behind it can assume GetUserClaims != nil.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "Missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := auth.ParseToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
