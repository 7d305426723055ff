// internal/middleware/auth.go
package middleware

import (
	"errors"
	"net/http"

	"github.com/baharkarakas/store-ratings/internal/api/httpx"
	"github.com/baharkarakas/store-ratings/internal/auth"
	"github.com/baharkarakas/store-ratings/internal/models"
)

type AuthMiddleware struct {
	TM *auth.TokenManager
}

func NewAuthMiddleware(tm *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{TM: tm}
}

// Require admits requests whose bearer token carries one of roles, or any
// valid token when roles is empty. The identity is stored in the context.
func (m *AuthMiddleware) Require(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := m.TM.Authorize(r.Header.Get("Authorization"), roles...)
			switch {
			case errors.Is(err, auth.ErrForbidden):
				httpx.WriteError(w, http.StatusForbidden, "forbidden", "insufficient role", nil)
				return
			case err != nil:
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), id)))
		})
	}
}
