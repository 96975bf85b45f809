package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/worktime-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a verified access token.
// It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := jwt.ClaimsFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if claims.Type != jwt.TokenTypeAccess {
			response.HandleError(w, jwt.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
