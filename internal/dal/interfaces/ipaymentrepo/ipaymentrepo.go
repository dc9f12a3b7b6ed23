package ipaymentrepo

import (
	"context"
	"time"

	"github.com/fooddash/marketplace/internal/service/models/payment"
)

// IPaymentRepository defines payment storage operations. At most one
// payment exists per order, backed by a uniqueness constraint on order_id.
type IPaymentRepository interface {
	// Insert persists a new payment; a duplicate order id surfaces as
	// an apperror.Conflict
	Insert(ctx context.Context, p payment.Payment) (*payment.Payment, error)

	// GetByID returns the payment row or an apperror.NotFound
	GetByID(ctx context.Context, id int64) (*payment.Payment, error)

	// GetByOrderID returns the order's payment or an apperror.NotFound
	GetByOrderID(ctx context.Context, orderID int64) (*payment.Payment, error)

	// UpdateStatus persists a status transition with optional transaction
	// id and paid_at stamp
	UpdateStatus(ctx context.Context, id int64, status payment.Status, transactionID string, paidAt *time.Time) (*payment.Payment, error)

	// Query returns payments matching the filter
	Query(ctx context.Context, filter *payment.QueryPaymentsModel) ([]payment.Payment, error)

	// Count returns the number of payments matching the filter, ignoring pagination
	Count(ctx context.Context, filter *payment.QueryPaymentsModel) (int64, error)
}
