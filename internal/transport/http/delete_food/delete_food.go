package deletefood

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/fooddash/marketplace/internal/transport/http/authmw"
	"github.com/fooddash/marketplace/internal/transport/http/respond"
	"github.com/go-chi/chi/v5"
)

type service interface {
	DeleteFood(ctx context.Context, actor user.Actor, foodID int64) error
}

// DeleteFood handles the delete food request.
func DeleteFood(w http.ResponseWriter, r *http.Request, service service) {
	actor, _ := authmw.ActorFromContext(r.Context())

	foodID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid food id", http.StatusBadRequest)

		return
	}

	if err := service.DeleteFood(r.Context(), actor, foodID); err != nil {
		respond.Error(w, err)
		slog.Error("Error deleting food", "food_id", foodID, "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
