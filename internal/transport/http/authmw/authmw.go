// Package authmw authenticates requests and carries the resolved actor in
// the request context.
package authmw

import (
	"context"
	"net/http"
	"strings"

	"github.com/fooddash/marketplace/internal/service/auth"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/fooddash/marketplace/internal/transport/http/respond"
)

type contextKey struct{}

var actorKey contextKey

type errorResponse struct {
	Detail string `json:"detail"`
}

// NewAuthMiddleware resolves the Bearer token to an actor or rejects the
// request with 401.
func NewAuthMiddleware(provider auth.Provider) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				respond.JSON(w, http.StatusUnauthorized, errorResponse{Detail: "missing bearer token"})

				return
			}

			actor, err := provider.ActorFromToken(r.Context(), token)
			if err != nil {
				respond.JSON(w, http.StatusUnauthorized, errorResponse{Detail: "invalid token"})

				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
		})
	}
}

// ActorFromContext returns the actor stored by the middleware. The second
// return is false on routes that never passed through authentication.
func ActorFromContext(ctx context.Context) (user.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(user.Actor)

	return actor, ok
}
