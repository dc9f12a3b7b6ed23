package createpayment

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fooddash/marketplace/internal/service/models/payment"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/fooddash/marketplace/internal/transport/http/authmw"
	"github.com/fooddash/marketplace/internal/transport/http/respond"
	"github.com/go-playground/validator/v10"
)

type service interface {
	CreatePayment(ctx context.Context, actor user.Actor, model payment.CreatePaymentModel) (*payment.Payment, error)
}

// createPaymentRequest represents a create payment request. The amount is
// intentionally absent: it always comes from the order.
type createPaymentRequest struct {
	OrderID       int64  `json:"orderId"       validate:"gt=0"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
	TransactionID string `json:"transactionId"`
	PaymentNotes  string `json:"paymentNotes"`
}

// Validate validates the create payment request.
func (r *createPaymentRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts createPaymentRequest to payment.CreatePaymentModel.
func (r *createPaymentRequest) toModel() (*payment.CreatePaymentModel, error) {
	method, err := payment.ParseMethod(r.PaymentMethod)
	if err != nil {
		return nil, err
	}

	return &payment.CreatePaymentModel{
		OrderID:       r.OrderID,
		Method:        method,
		TransactionID: r.TransactionID,
		PaymentNotes:  r.PaymentNotes,
	}, nil
}

// CreatePayment handles the create payment request.
func CreatePayment(w http.ResponseWriter, r *http.Request, service service) {
	actor, _ := authmw.ActorFromContext(r.Context())

	paymentReq := createPaymentRequest{}
	if err := json.NewDecoder(r.Body).Decode(&paymentReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create payment", "error", err)

		return
	}

	if err := paymentReq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create payment", "error", err)

		return
	}

	model, err := paymentReq.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	created, err := service.CreatePayment(r.Context(), actor, *model)
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error creating payment", "order_id", paymentReq.OrderID, "error", err)

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}
