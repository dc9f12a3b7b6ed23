package listpayments

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fooddash/marketplace/internal/service/models/payment"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/fooddash/marketplace/internal/transport/http/authmw"
	"github.com/fooddash/marketplace/internal/transport/http/respond"
	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"
)

type service interface {
	GetPayments(ctx context.Context, actor user.Actor, filter *payment.QueryPaymentsModel) ([]payment.Payment, int64, error)
}

type queryPaymentsRequest struct {
	OrderID       int64    `schema:"orderId,omitempty"`
	Method        string   `schema:"paymentMethod,omitempty"`
	Status        string   `schema:"status,omitempty"`
	PaymentNumber string   `schema:"paymentNumber,omitempty"`
	MinAmount     *float64 `schema:"minAmount,omitempty"`
	MaxAmount     *float64 `schema:"maxAmount,omitempty"`
	StartDate     string   `schema:"startDate,omitempty"`
	EndDate       string   `schema:"endDate,omitempty"`
	SortBy        string   `schema:"sortBy,omitempty"`
	SortOrder     string   `schema:"sortOrder,omitempty"`
	Limit         int      `schema:"limit,omitempty"`
	Offset        int      `schema:"offset,omitempty"`
}

func (q *queryPaymentsRequest) toModel() (*payment.QueryPaymentsModel, error) {
	filter := &payment.QueryPaymentsModel{
		OrderID:       q.OrderID,
		PaymentNumber: q.PaymentNumber,
		SortBy:        q.SortBy,
		SortOrder:     q.SortOrder,
		Limit:         q.Limit,
		Offset:        q.Offset,
	}

	if q.Method != "" {
		method, err := payment.ParseMethod(q.Method)
		if err != nil {
			return nil, err
		}
		filter.Method = method
	}
	if q.Status != "" {
		status, err := payment.ParseStatus(q.Status)
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

type listPaymentsResponse struct {
	Payments []payment.Payment `json:"payments"`
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// ListPayments handles the list payments request.
func ListPayments(w http.ResponseWriter, r *http.Request, service service) {
	actor, _ := authmw.ActorFromContext(r.Context())

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	query := &queryPaymentsRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	filter, err := query.toModel()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing payment filters", "error", err)

		return
	}

	payments, total, err := service.GetPayments(r.Context(), actor, filter)
	if err != nil {
		respond.Error(w, err)
		slog.Error("Error getting payments", "error", err)

		return
	}

	respond.JSON(w, http.StatusOK, listPaymentsResponse{
		Payments: payments,
		Total:    total,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	})
}
