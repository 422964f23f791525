package middlewares

import (
	"context"
	"flexera-service/internal/pkg/constvars"
	"flexera-service/internal/pkg/exceptions"
	"flexera-service/internal/pkg/utils"
	"net/http"
	"strings"
)

// Authentication validates the bearer token and stores the caller identity
// in the request context.
func (m *Middlewares) Authentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		claims, err := utils.ParseUserJWT(tokenString, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, constvars.CONTEXT_USER_ID_KEY, claims.UserID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_USER_ROLE_KEY, claims.Role)
		ctx = context.WithValue(ctx, constvars.CONTEXT_USER_CLAIMS_KEY, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route to callers carrying the given role. It must run
// after Authentication.
func (m *Middlewares) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callerRole, _ := r.Context().Value(constvars.CONTEXT_USER_ROLE_KEY).(string)
			if callerRole != role {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleNotAllowed(nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
