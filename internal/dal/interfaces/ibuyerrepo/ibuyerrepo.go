package ibuyerrepo

import (
	"context"

	"github.com/fooddash/marketplace/internal/service/models/user"
)

// IBuyerRepository defines buyer profile storage operations.
type IBuyerRepository interface {
	// GetByUserID returns the buyer profile or an apperror.NotFound
	GetByUserID(ctx context.Context, userID int64) (*user.BuyerProfile, error)

	// IncrementStats adds one order and spentDelta whole currency units
	// to the buyer's running counters
	IncrementStats(ctx context.Context, userID int64, spentDelta int64) error
}
