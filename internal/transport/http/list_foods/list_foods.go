package listfoods

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fooddash/marketplace/internal/service/models/food"
	"github.com/fooddash/marketplace/internal/transport/http/respond"
	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"
)

type service interface {
	GetFoods(ctx context.Context, filter *food.QueryFoodsModel) ([]food.Food, int64, error)
}

type queryFoodsRequest struct {
	SellerID    int64    `schema:"sellerId,omitempty"`
	Search      string   `schema:"search,omitempty"`
	IsAvailable *bool    `schema:"isAvailable,omitempty"`
	MinPrice    *float64 `schema:"minPrice,omitempty"`
	MaxPrice    *float64 `schema:"maxPrice,omitempty"`
	SortBy      string   `schema:"sortBy,omitempty"`
	SortOrder   string   `schema:"sortOrder,omitempty"`
	Limit       int      `schema:"limit,omitempty"`
	Offset      int      `schema:"offset,omitempty"`
}

func (q *queryFoodsRequest) toModel() *food.QueryFoodsModel {
	filter := &food.QueryFoodsModel{
		SellerID:    q.SellerID,
		Search:      q.Search,
		IsAvailable: q.IsAvailable,
		SortBy:      q.SortBy,
		SortOrder:   q.SortOrder,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}

	if q.MinPrice != nil {
		v := decimal.NewFromFloat(*q.MinPrice)
		filter.MinPrice = &v
	}
	if q.MaxPrice != nil {
		v := decimal.NewFromFloat(*q.MaxPrice)
		filter.MaxPrice = &v
	}

	return filter
}

type listFoodsResponse struct {
	Foods  []food.Food `json:"foods"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// ListFoods handles the public catalog browse request.
func ListFoods(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	query := &queryFoodsRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	filter := query.toModel()

	foods, total, err := service.GetFoods(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error getting foods", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, listFoodsResponse{
		Foods:  foods,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}
