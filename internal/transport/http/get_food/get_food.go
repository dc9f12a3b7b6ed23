package getfood

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fooddash/marketplace/internal/service/models/food"
	"github.com/fooddash/marketplace/internal/transport/http/respond"
	"github.com/go-chi/chi/v5"
)

type service interface {
	GetFood(ctx context.Context, foodID int64) (*food.Food, error)
}

// GetFood handles the get food request.
func GetFood(w http.ResponseWriter, r *http.Request, service service) {
	foodID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid food id", http.StatusBadRequest)

		return
	}

	f, err := service.GetFood(r.Context(), foodID)
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error getting food", "food_id", foodID, "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, f)
}
