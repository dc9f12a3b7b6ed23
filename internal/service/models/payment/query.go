package payment

import (
	"time"

	"github.com/fooddash/marketplace/internal/service/models/money"
)

// QueryPaymentsModel represents filter parameters for querying payments.
type QueryPaymentsModel struct {
	OrderID       int64
	BuyerID       int64
	Method        Method
	Status        Status
	PaymentNumber string
	MinAmount     *money.Amount
	MaxAmount     *money.Amount
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
	Limit         int
	Offset        int
}
