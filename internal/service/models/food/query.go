package food

import (
	"github.com/fooddash/marketplace/internal/service/models/money"
)

// QueryFoodsModel represents filter parameters for browsing the catalog.
type QueryFoodsModel struct {
	SellerID    int64
	Search      string
	IsAvailable *bool
	MinPrice    *money.Amount
	MaxPrice    *money.Amount
	SortBy      string
	SortOrder   string
	Limit       int
	Offset      int
}
