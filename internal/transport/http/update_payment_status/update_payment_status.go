package updatepaymentstatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fooddash/marketplace/internal/service/models/payment"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/fooddash/marketplace/internal/transport/http/authmw"
	"github.com/fooddash/marketplace/internal/transport/http/respond"
	"github.com/go-chi/chi/v5"
)

type service interface {
	UpdateStatus(
		ctx context.Context,
		actor user.Actor,
		paymentID int64,
		target payment.Status,
		transactionID string,
	) (*payment.Payment, error)
}

// updatePaymentStatusRequest represents an update payment status request.
type updatePaymentStatusRequest struct {
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
}

// UpdatePaymentStatus handles the payment status transition request.
func UpdatePaymentStatus(w http.ResponseWriter, r *http.Request, service service) {
	actor, _ := authmw.ActorFromContext(r.Context())

	paymentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid payment id", http.StatusBadRequest)

		return
	}

	statusReq := updatePaymentStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&statusReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update payment status", "error", err)

		return
	}

	target, err := payment.ParseStatus(statusReq.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	updated, err := service.UpdateStatus(r.Context(), actor, paymentID, target, statusReq.TransactionID)
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error updating payment status", "payment_id", paymentID, "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}
