package food

import (
	"time"

	"github.com/fooddash/marketplace/internal/service/models/money"
)

// Food represents a catalog item owned by a seller. StockQuantity is never
// negative; it is decremented only by successful order creation.
type Food struct {
	ID            int64        `json:"id"`
	SellerID      int64        `json:"sellerId"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Price         money.Amount `json:"price"`
	ImageURL      string       `json:"imageUrl,omitempty"`
	IsAvailable   bool         `json:"isAvailable"`
	StockQuantity int          `json:"stockQuantity"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
