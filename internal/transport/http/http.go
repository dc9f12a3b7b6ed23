package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/fooddash/marketplace/internal/service/auth"
	"github.com/fooddash/marketplace/internal/service/models/food"
	"github.com/fooddash/marketplace/internal/service/models/order"
	"github.com/fooddash/marketplace/internal/service/models/payment"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/fooddash/marketplace/internal/transport/http/authmw"
	createfood "github.com/fooddash/marketplace/internal/transport/http/create_food"
	createorder "github.com/fooddash/marketplace/internal/transport/http/create_order"
	createpayment "github.com/fooddash/marketplace/internal/transport/http/create_payment"
	deletefood "github.com/fooddash/marketplace/internal/transport/http/delete_food"
	getfood "github.com/fooddash/marketplace/internal/transport/http/get_food"
	getorder "github.com/fooddash/marketplace/internal/transport/http/get_order"
	getpayment "github.com/fooddash/marketplace/internal/transport/http/get_payment"
	listfoods "github.com/fooddash/marketplace/internal/transport/http/list_foods"
	listorders "github.com/fooddash/marketplace/internal/transport/http/list_orders"
	listpayments "github.com/fooddash/marketplace/internal/transport/http/list_payments"
	updatefood "github.com/fooddash/marketplace/internal/transport/http/update_food"
	updateorderstatus "github.com/fooddash/marketplace/internal/transport/http/update_order_status"
	updatepaymentstatus "github.com/fooddash/marketplace/internal/transport/http/update_payment_status"
	"github.com/fooddash/marketplace/pkg/http/middleware/trace"
	"github.com/fooddash/marketplace/pkg/idempotency"
	"github.com/fooddash/marketplace/pkg/logger"
	"github.com/fooddash/marketplace/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type orderService interface {
	PlaceOrder(ctx context.Context, actor user.Actor, model order.CreateOrderModel) (*order.Order, error)
	UpdateStatus(ctx context.Context, actor user.Actor, orderID int64, target order.Status) (*order.Order, error)
	GetOrders(ctx context.Context, actor user.Actor, filter *order.QueryOrdersModel) ([]order.Order, int64, error)
	GetOrder(ctx context.Context, actor user.Actor, orderID int64) (*order.Order, error)
}

type paymentService interface {
	CreatePayment(ctx context.Context, actor user.Actor, model payment.CreatePaymentModel) (*payment.Payment, error)
	UpdateStatus(
		ctx context.Context,
		actor user.Actor,
		paymentID int64,
		target payment.Status,
		transactionID string,
	) (*payment.Payment, error)
	GetPayments(ctx context.Context, actor user.Actor, filter *payment.QueryPaymentsModel) ([]payment.Payment, int64, error)
	GetPayment(ctx context.Context, actor user.Actor, paymentID int64) (*payment.Payment, error)
}

type catalogService interface {
	CreateFood(ctx context.Context, actor user.Actor, f food.Food) (*food.Food, error)
	UpdateFood(ctx context.Context, actor user.Actor, f food.Food) (*food.Food, error)
	DeleteFood(ctx context.Context, actor user.Actor, foodID int64) error
	GetFoods(ctx context.Context, filter *food.QueryFoodsModel) ([]food.Food, int64, error)
	GetFood(ctx context.Context, foodID int64) (*food.Food, error)
}

type HTTPTransport struct {
	server       *http.Server
	router       *chi.Mux
	orderSvc     orderService
	paymentSvc   paymentService
	catalogSvc   catalogService
	authProvider auth.Provider
	idemStore    *idempotency.Store
}

func NewHTTPTransport(
	orderSvc orderService,
	paymentSvc paymentService,
	catalogSvc catalogService,
	authProvider auth.Provider,
	idemStore *idempotency.Store,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:       server,
		router:       router,
		orderSvc:     orderSvc,
		paymentSvc:   paymentSvc,
		catalogSvc:   catalogSvc,
		authProvider: authProvider,
		idemStore:    idemStore,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport. Catalog reads
// are public; everything else requires a bearer token.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h.router.Handle("/metrics", metrics.Handler())

	h.router.Route("/api", func(r chi.Router) {
		r.Get("/foods", h.listFoods)
		r.Get("/foods/{id}", h.getFood)

		r.Group(func(r chi.Router) {
			r.Use(authmw.NewAuthMiddleware(h.authProvider))
			if h.idemStore != nil {
				r.Use(idempotency.NewIdempotencyMiddleware(h.idemStore))
			}

			r.Post("/orders", h.createOrder)
			r.Get("/orders", h.listOrders)
			r.Get("/orders/{id}", h.getOrder)
			r.Patch("/orders/{id}/status", h.updateOrderStatus)

			r.Post("/payments", h.createPayment)
			r.Get("/payments", h.listPayments)
			r.Get("/payments/{id}", h.getPayment)
			r.Patch("/payments/{id}/status", h.updatePaymentStatus)

			r.Post("/foods", h.createFood)
			r.Put("/foods/{id}", h.updateFood)
			r.Delete("/foods/{id}", h.deleteFood)
		})
	})
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orderSvc)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	updateorderstatus.UpdateOrderStatus(w, r, h.orderSvc)
}

func (h *HTTPTransport) createPayment(w http.ResponseWriter, r *http.Request) {
	createpayment.CreatePayment(w, r, h.paymentSvc)
}

func (h *HTTPTransport) listPayments(w http.ResponseWriter, r *http.Request) {
	listpayments.ListPayments(w, r, h.paymentSvc)
}

func (h *HTTPTransport) getPayment(w http.ResponseWriter, r *http.Request) {
	getpayment.GetPayment(w, r, h.paymentSvc)
}

func (h *HTTPTransport) updatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	updatepaymentstatus.UpdatePaymentStatus(w, r, h.paymentSvc)
}

func (h *HTTPTransport) createFood(w http.ResponseWriter, r *http.Request) {
	createfood.CreateFood(w, r, h.catalogSvc)
}

func (h *HTTPTransport) updateFood(w http.ResponseWriter, r *http.Request) {
	updatefood.UpdateFood(w, r, h.catalogSvc)
}

func (h *HTTPTransport) deleteFood(w http.ResponseWriter, r *http.Request) {
	deletefood.DeleteFood(w, r, h.catalogSvc)
}

func (h *HTTPTransport) listFoods(w http.ResponseWriter, r *http.Request) {
	listfoods.ListFoods(w, r, h.catalogSvc)
}

func (h *HTTPTransport) getFood(w http.ResponseWriter, r *http.Request) {
	getfood.GetFood(w, r, h.catalogSvc)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	serverMetrics := metrics.NewServerMetrics("api")
	router.Use(serverMetrics.NewMetricsMiddleware())

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
