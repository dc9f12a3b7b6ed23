package order

import (
	"time"

	"github.com/fooddash/marketplace/internal/service/models/money"
)

// QueryOrdersModel represents filter parameters for querying orders.
// Exactly one of BuyerID/SellerID/DriverID is set by role scoping.
type QueryOrdersModel struct {
	BuyerID     int64
	SellerID    int64
	DriverID    int64
	Status      Status
	OrderNumber string
	MinAmount   *money.Amount
	MaxAmount   *money.Amount
	StartDate   *time.Time
	EndDate     *time.Time
	SortBy      string
	SortOrder   string
	Limit       int
	Offset      int
}
