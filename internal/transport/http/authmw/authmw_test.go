package authmw

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fooddash/marketplace/internal/service/auth"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	actors map[string]user.Actor
}

func (p *fakeProvider) ActorFromToken(_ context.Context, token string) (user.Actor, error) {
	actor, ok := p.actors[token]
	if !ok {
		return user.Actor{}, auth.ErrInvalidToken
	}

	return actor, nil
}

func newHandler(t *testing.T) (http.Handler, *user.Actor) {
	t.Helper()

	var captured user.Actor
	provider := &fakeProvider{actors: map[string]user.Actor{
		"good-token": {UserID: 1, Role: user.RoleBuyer, BuyerID: 1},
	}}

	mw := NewAuthMiddleware(provider)
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		require.True(t, ok)
		captured = actor
		w.WriteHeader(http.StatusOK)
	}))

	return handler, &captured
}

func TestAuthMiddleware(t *testing.T) {
	handler, captured := newHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), captured.UserID)
	assert.Equal(t, user.RoleBuyer, captured.Role)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	handler, _ := newHandler(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"unknown token", "Bearer bad-token"},
		{"empty token", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "detail")
		})
	}
}

func TestActorFromContextMissing(t *testing.T) {
	_, ok := ActorFromContext(context.Background())
	assert.False(t, ok)
}
