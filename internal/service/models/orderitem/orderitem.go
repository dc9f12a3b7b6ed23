package orderitem

import (
	"time"

	"github.com/fooddash/marketplace/internal/service/models/money"
)

// OrderItem is a point-in-time snapshot of a cart line. UnitPrice and
// FoodName are copied from the food at order time and do not follow later
// catalog edits.
type OrderItem struct {
	ID        int64        `json:"id"`
	OrderID   int64        `json:"orderId"`
	FoodID    int64        `json:"foodId"`
	FoodName  string       `json:"foodName"`
	Quantity  int          `json:"quantity"`
	UnitPrice money.Amount `json:"unitPrice"`
	Subtotal  money.Amount `json:"subtotal"`
	CreatedAt time.Time    `json:"createdAt"`
}
