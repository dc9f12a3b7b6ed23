package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fooddash/marketplace/internal/service/models/money"
	"github.com/fooddash/marketplace/internal/service/models/order"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/fooddash/marketplace/internal/transport/http/authmw"
	"github.com/fooddash/marketplace/internal/transport/http/respond"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, actor user.Actor, model order.CreateOrderModel) (*order.Order, error)
}

// itemInCreateOrderRequest represents a cart line in a create order request.
type itemInCreateOrderRequest struct {
	FoodID   int64 `json:"foodId"   validate:"gt=0"`
	Quantity int   `json:"quantity" validate:"gt=0"`
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	SellerID        int64                      `json:"sellerId"        validate:"gt=0"`
	Items           []itemInCreateOrderRequest `json:"items"           validate:"required,min=1,dive"`
	DeliveryAddress string                     `json:"deliveryAddress" validate:"required"`
	DeliveryPhone   string                     `json:"deliveryPhone"   validate:"required"`
	DeliveryNotes   string                     `json:"deliveryNotes"`
	DeliveryFee     money.Amount               `json:"deliveryFee"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts createOrderRequest to order.CreateOrderModel.
func (r *createOrderRequest) toModel() order.CreateOrderModel {
	items := make([]order.CartLine, len(r.Items))
	for i, item := range r.Items {
		items[i] = order.CartLine{
			FoodID:   item.FoodID,
			Quantity: item.Quantity,
		}
	}

	return order.CreateOrderModel{
		SellerID:        r.SellerID,
		Items:           items,
		DeliveryAddress: r.DeliveryAddress,
		DeliveryPhone:   r.DeliveryPhone,
		DeliveryNotes:   r.DeliveryNotes,
		DeliveryFee:     r.DeliveryFee,
	}
}

// CreateOrder handles the place order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	actor, _ := authmw.ActorFromContext(r.Context())

	orderReq := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&orderReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if err := orderReq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create order", "error", err)

		return
	}

	placed, err := service.PlaceOrder(r.Context(), actor, orderReq.toModel())
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error placing order", "error", err)

		return
	}

	respond.JSON(w, http.StatusCreated, placed)
}
