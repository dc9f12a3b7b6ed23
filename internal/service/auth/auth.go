// Package auth keeps authentication opaque to the rest of the system.
// Credential hashing and token issuance live outside this service; the
// only capability the core needs is resolving a presented token to an
// actor.
package auth

import (
	"context"
	"errors"

	"github.com/fooddash/marketplace/internal/dal/interfaces/iuserrepo"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/spf13/viper"
)

// ErrInvalidToken is returned for tokens the provider does not recognize.
var ErrInvalidToken = errors.New("invalid token")

// Provider resolves a bearer token to an authenticated actor.
type Provider interface {
	ActorFromToken(ctx context.Context, token string) (user.Actor, error)
}

// TokenProvider maps statically configured API tokens onto user accounts
// and resolves their role profiles through the user repository. It stands
// in for the external identity provider.
type TokenProvider struct {
	userRepo iuserrepo.IUserRepository
	tokens   map[string]int64
}

// MustNewTokenProvider loads the auth.tokens table from configuration.
func MustNewTokenProvider(userRepo iuserrepo.IUserRepository) *TokenProvider {
	raw := viper.GetStringMapString("auth.tokens")
	tokens := make(map[string]int64, len(raw))
	for token, userID := range raw {
		id := viper.GetInt64("auth.tokens." + token)
		if id == 0 {
			panic("invalid user id for auth token: " + userID)
		}
		tokens[token] = id
	}

	return &TokenProvider{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// ActorFromToken resolves a token to an actor with profile ids populated.
func (p *TokenProvider) ActorFromToken(ctx context.Context, token string) (user.Actor, error) {
	userID, ok := p.tokens[token]
	if !ok {
		return user.Actor{}, ErrInvalidToken
	}

	return p.userRepo.GetActor(ctx, userID)
}
