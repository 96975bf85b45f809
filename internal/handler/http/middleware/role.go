package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

// RequireSelfOrRole lets any of roles through, and everyone else only when
// the URL parameter param equals their own user ID.
func RequireSelfOrRole(param string, roles ...jwt.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := jwt.ClaimsFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			if claims.UserID != chi.URLParam(r, param) {
				response.HandleError(w, jwt.ErrAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
