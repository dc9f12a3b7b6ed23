package iorderitemrepo

import (
	"context"

	"github.com/fooddash/marketplace/internal/service/models/orderitem"
)

// IOrderItemRepository defines order item storage operations. Items are
// created atomically with their parent order and immutable afterward.
type IOrderItemRepository interface {
	// BulkInsert persists the item snapshots of one order
	BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error)

	// QueryByOrderIDs returns all items belonging to the given orders
	QueryByOrderIDs(ctx context.Context, orderIDs []int64) ([]orderitem.OrderItem, error)
}
