package createfood

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fooddash/marketplace/internal/service/models/food"
	"github.com/fooddash/marketplace/internal/service/models/money"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/fooddash/marketplace/internal/transport/http/authmw"
	"github.com/fooddash/marketplace/internal/transport/http/respond"
	"github.com/go-playground/validator/v10"
)

type service interface {
	CreateFood(ctx context.Context, actor user.Actor, f food.Food) (*food.Food, error)
}

// createFoodRequest represents a create food request.
type createFoodRequest struct {
	Name          string       `json:"name" validate:"required"`
	Description   string       `json:"description"`
	Price         money.Amount `json:"price"`
	ImageURL      string       `json:"imageUrl"`
	IsAvailable   bool         `json:"isAvailable"`
	StockQuantity int          `json:"stockQuantity" validate:"gte=0"`
}

// Validate validates the create food request.
func (r *createFoodRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts createFoodRequest to food.Food.
func (r *createFoodRequest) toModel() food.Food {
	return food.Food{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		ImageURL:      r.ImageURL,
		IsAvailable:   r.IsAvailable,
		StockQuantity: r.StockQuantity,
	}
}

// CreateFood handles the create food request.
func CreateFood(w http.ResponseWriter, r *http.Request, service service) {
	actor, _ := authmw.ActorFromContext(r.Context())

	foodReq := createFoodRequest{}
	if err := json.NewDecoder(r.Body).Decode(&foodReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create food", "error", err)

		return
	}

	if err := foodReq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create food", "error", err)

		return
	}

	created, err := service.CreateFood(r.Context(), actor, foodReq.toModel())
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error creating food", "error", err)

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}
