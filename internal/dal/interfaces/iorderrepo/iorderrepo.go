package iorderrepo

import (
	"context"
	"time"

	"github.com/fooddash/marketplace/internal/service/models/order"
)

// IOrderRepository defines order storage operations.
type IOrderRepository interface {
	// Insert persists a new order and returns it with generated fields
	Insert(ctx context.Context, o order.Order) (*order.Order, error)

	// GetByID returns the order row or an apperror.NotFound
	GetByID(ctx context.Context, id int64) (*order.Order, error)

	// UpdateStatus persists a status transition, stamping deliveredAt
	// when non-nil
	UpdateStatus(ctx context.Context, id int64, status order.Status, deliveredAt *time.Time) (*order.Order, error)

	// Query returns orders matching the filter
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)

	// Count returns the number of orders matching the filter, ignoring pagination
	Count(ctx context.Context, filter *order.QueryOrdersModel) (int64, error)
}
