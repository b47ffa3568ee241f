package middleware

import (
	"net/http"

	"skylane/concourse/internal/auth"
	"skylane/concourse/internal/constants"
)

func IsStaffMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())

			if claims != nil && (claims.Role == constants.RoleAirlineStaff || claims.Role == constants.RoleAdmin) {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "Forbidden. Need airline staff perms", http.StatusForbidden)
		})
	}
}
