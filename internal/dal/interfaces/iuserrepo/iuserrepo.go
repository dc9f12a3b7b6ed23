package iuserrepo

import (
	"context"

	"github.com/fooddash/marketplace/internal/service/models/user"
)

// IUserRepository defines account storage operations.
type IUserRepository interface {
	// GetByID returns the user row or an apperror.NotFound
	GetByID(ctx context.Context, id int64) (*user.User, error)

	// GetActor resolves a user id to an actor with its role-specific
	// profile id populated
	GetActor(ctx context.Context, userID int64) (user.Actor, error)
}
