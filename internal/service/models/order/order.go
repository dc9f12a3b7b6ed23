package order

import (
	"time"

	"github.com/fooddash/marketplace/internal/service/models/money"
	"github.com/fooddash/marketplace/internal/service/models/orderitem"
)

// Order represents a placed order in the system. TotalAmount is computed
// once at creation (subtotal + delivery fee) and never recomputed.
type Order struct {
	ID              int64                 `json:"id"`
	BuyerID         int64                 `json:"buyerId"`
	SellerID        int64                 `json:"sellerId"`
	DriverID        *int64                `json:"driverId,omitempty"`
	OrderNumber     string                `json:"orderNumber"`
	Status          Status                `json:"status"`
	Subtotal        money.Amount          `json:"subtotal"`
	DeliveryFee     money.Amount          `json:"deliveryFee"`
	TotalAmount     money.Amount          `json:"totalAmount"`
	DeliveryAddress string                `json:"deliveryAddress"`
	DeliveryPhone   string                `json:"deliveryPhone"`
	DeliveryNotes   string                `json:"deliveryNotes,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
	DeliveredAt     *time.Time            `json:"deliveredAt,omitempty"`
	Items           []orderitem.OrderItem `json:"items"`
}

// CartLine is one (food id, quantity) pair submitted in an order request.
type CartLine struct {
	FoodID   int64 `json:"foodId"`
	Quantity int   `json:"quantity"`
}

// CreateOrderModel carries the validated input of order placement.
type CreateOrderModel struct {
	SellerID        int64
	Items           []CartLine
	DeliveryAddress string
	DeliveryPhone   string
	DeliveryNotes   string
	DeliveryFee     money.Amount
}
