package updatefood

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fooddash/marketplace/internal/service/models/food"
	"github.com/fooddash/marketplace/internal/service/models/money"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/fooddash/marketplace/internal/transport/http/authmw"
	"github.com/fooddash/marketplace/internal/transport/http/respond"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type service interface {
	UpdateFood(ctx context.Context, actor user.Actor, f food.Food) (*food.Food, error)
}

// updateFoodRequest represents an update food request.
type updateFoodRequest struct {
	Name          string       `json:"name" validate:"required"`
	Description   string       `json:"description"`
	Price         money.Amount `json:"price"`
	ImageURL      string       `json:"imageUrl"`
	IsAvailable   bool         `json:"isAvailable"`
	StockQuantity int          `json:"stockQuantity" validate:"gte=0"`
}

// Validate validates the update food request.
func (r *updateFoodRequest) Validate() error {
	return validator.New().Struct(r)
}

// UpdateFood handles the update food request.
func UpdateFood(w http.ResponseWriter, r *http.Request, service service) {
	actor, _ := authmw.ActorFromContext(r.Context())

	foodID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid food id", http.StatusBadRequest)

		return
	}

	foodReq := updateFoodRequest{}
	if err := json.NewDecoder(r.Body).Decode(&foodReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update food", "error", err)

		return
	}

	if err := foodReq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for update food", "error", err)

		return
	}

	updated, err := service.UpdateFood(r.Context(), actor, food.Food{
		ID:            foodID,
		Name:          foodReq.Name,
		Description:   foodReq.Description,
		Price:         foodReq.Price,
		ImageURL:      foodReq.ImageURL,
		IsAvailable:   foodReq.IsAvailable,
		StockQuantity: foodReq.StockQuantity,
	})
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error updating food", "food_id", foodID, "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}
