package listorders

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fooddash/marketplace/internal/service/models/order"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/fooddash/marketplace/internal/transport/http/authmw"
	"github.com/fooddash/marketplace/internal/transport/http/respond"
	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"
)

type service interface {
	GetOrders(ctx context.Context, actor user.Actor, filter *order.QueryOrdersModel) ([]order.Order, int64, error)
}

type queryOrdersRequest struct {
	Status      string   `schema:"status,omitempty"`
	OrderNumber string   `schema:"orderNumber,omitempty"`
	MinAmount   *float64 `schema:"minAmount,omitempty"`
	MaxAmount   *float64 `schema:"maxAmount,omitempty"`
	StartDate   string   `schema:"startDate,omitempty"`
	EndDate     string   `schema:"endDate,omitempty"`
	SortBy      string   `schema:"sortBy,omitempty"`
	SortOrder   string   `schema:"sortOrder,omitempty"`
	Limit       int      `schema:"limit,omitempty"`
	Offset      int      `schema:"offset,omitempty"`
}

func (q *queryOrdersRequest) toModel() (*order.QueryOrdersModel, error) {
	filter := &order.QueryOrdersModel{
		OrderNumber: q.OrderNumber,
		SortBy:      q.SortBy,
		SortOrder:   q.SortOrder,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}

	if q.Status != "" {
		status, err := order.ParseStatus(q.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}
	if q.MinAmount != nil {
		v := decimal.NewFromFloat(*q.MinAmount)
		filter.MinAmount = &v
	}
	if q.MaxAmount != nil {
		v := decimal.NewFromFloat(*q.MaxAmount)
		filter.MaxAmount = &v
	}
	if q.StartDate != "" {
		t, err := time.Parse(time.RFC3339, q.StartDate)
		if err != nil {
			return nil, err
		}
		filter.StartDate = &t
	}
	if q.EndDate != "" {
		t, err := time.Parse(time.RFC3339, q.EndDate)
		if err != nil {
			return nil, err
		}
		filter.EndDate = &t
	}

	return filter, nil
}

type listOrdersResponse struct {
	Orders []order.Order `json:"orders"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// ListOrders handles the list orders request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	actor, _ := authmw.ActorFromContext(r.Context())

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	query := &queryOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	filter, err := query.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing order filters", "error", err)

		return
	}

	orders, total, err := service.GetOrders(r.Context(), actor, filter)
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error getting orders", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, listOrdersResponse{
		Orders: orders,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}
