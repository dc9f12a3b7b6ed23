package ifoodrepo

import (
	"context"

	"github.com/fooddash/marketplace/internal/service/models/food"
)

// IFoodRepository defines catalog storage operations.
type IFoodRepository interface {
	// GetByID returns the food row or an apperror.NotFound
	GetByID(ctx context.Context, id int64) (*food.Food, error)

	// Insert persists a new food and returns it with generated fields
	Insert(ctx context.Context, f food.Food) (*food.Food, error)

	// Update persists edits of a food owned by sellerID
	Update(ctx context.Context, f food.Food) (*food.Food, error)

	// Delete removes a food owned by sellerID
	Delete(ctx context.Context, id, sellerID int64) error

	// ReserveStock atomically decrements stock_quantity by quantity,
	// conditioned on stock_quantity >= quantity. Returns false when the
	// condition fails, so concurrent orders can never oversell.
	ReserveStock(ctx context.Context, foodID int64, quantity int) (bool, error)

	// Query returns foods matching the filter
	Query(ctx context.Context, filter *food.QueryFoodsModel) ([]food.Food, error)

	// Count returns the number of foods matching the filter, ignoring pagination
	Count(ctx context.Context, filter *food.QueryFoodsModel) (int64, error)
}
