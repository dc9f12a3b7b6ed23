package updateorderstatus

import (
	"context"
	"encoding/json"
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
	UpdateStatus(ctx context.Context, actor user.Actor, orderID int64, target order.Status) (*order.Order, error)
}

// updateOrderStatusRequest represents an update order status request.
type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles the order status transition request.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, service service) {
	actor, _ := authmw.ActorFromContext(r.Context())

	orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	statusReq := updateOrderStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&statusReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update order status", "error", err)

		return
	}

	target, err := order.ParseStatus(statusReq.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	updated, err := service.UpdateStatus(r.Context(), actor, orderID, target)
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error updating order status", "order_id", orderID, "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}
