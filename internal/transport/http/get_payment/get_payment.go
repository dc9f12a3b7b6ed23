package getpayment

import (
	"context"
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
	GetPayment(ctx context.Context, actor user.Actor, paymentID int64) (*payment.Payment, error)
}

// GetPayment handles the get payment request.
func GetPayment(w http.ResponseWriter, r *http.Request, service service) {
	actor, _ := authmw.ActorFromContext(r.Context())

	paymentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid payment id", http.StatusBadRequest)

		return
	}

	p, err := service.GetPayment(r.Context(), actor, paymentID)
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error getting payment", "payment_id", paymentID, "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, p)
}
