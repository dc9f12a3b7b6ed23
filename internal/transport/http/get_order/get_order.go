package getorder

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fooddash/marketplace/internal/service/models/order"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/fooddash/marketplace/internal/transport/http/authmw"
	"github.com/fooddash/marketplace/internal/transport/http/respond"
	"github.com/go-chi/chi/v5"
)

type service interface {
	GetOrder(ctx context.Context, actor user.Actor, orderID int64) (*order.Order, error)
}

// GetOrder handles the get order request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	actor, _ := authmw.ActorFromContext(r.Context())

	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	o, err := service.GetOrder(r.Context(), actor, orderID)
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error getting order", "order_id", orderID, "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, o)
}
