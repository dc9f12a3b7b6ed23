package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fooddash/marketplace/internal/dal/postgres"
	"github.com/fooddash/marketplace/internal/dal/rabbitmq"
	"github.com/fooddash/marketplace/internal/dal/redisdb"
	outboxrepo "github.com/fooddash/marketplace/internal/dal/repositories/outbox/postgres"
	userrepo "github.com/fooddash/marketplace/internal/dal/repositories/user/postgres"
	"github.com/fooddash/marketplace/internal/otel"
	"github.com/fooddash/marketplace/internal/service/auth"
	"github.com/fooddash/marketplace/internal/service/notify"
	"github.com/fooddash/marketplace/internal/service/services/catalogsvc"
	"github.com/fooddash/marketplace/internal/service/services/ordersvc"
	"github.com/fooddash/marketplace/internal/service/services/paymentsvc"
	httptransport "github.com/fooddash/marketplace/internal/transport/http"
	outboxworker "github.com/fooddash/marketplace/internal/worker/outbox"
	"github.com/fooddash/marketplace/pkg/idempotency"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application with all of its dependencies wired.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()

	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()
	redisClient := redisdb.MustNewClient()

	outboxRepo := outboxrepo.NewOutboxRepository(postgresClient.Pool())
	userRepo := userrepo.NewPostgresUserRepository(postgresClient.Pool())

	notifier := notify.MustNewAMQPNotifier(rabbitClient, outboxRepo)
	authProvider := auth.MustNewTokenProvider(userRepo)

	idemTTLSeconds := viper.GetInt("redis.idempotency_ttl_seconds")
	if idemTTLSeconds == 0 {
		idemTTLSeconds = 86400
	}
	idemStore := idempotency.NewStore(redisClient, time.Duration(idemTTLSeconds)*time.Second)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithNotifier(notifier),
	)
	paymentSvc := paymentsvc.MustNewPaymentService(
		paymentsvc.WithPostgresClient(postgresClient),
		paymentsvc.WithNotifier(notifier),
	)
	catalogSvc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithPostgresClient(postgresClient),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, paymentSvc, catalogSvc, authProvider, idemStore)
	transport.RegisterRoutes()

	return &App{
		transport:      transport,
		outboxWorker:   outboxworker.NewWorker(outboxRepo, rabbitClient),
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		otelController: otelController,
	}
}

// Run starts the application and blocks until an interrupt signal arrives,
// then shuts everything down in dependency order.
func (a *App) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting HTTP server")

		if err := a.transport.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		a.outboxWorker.Start(gctx)

		return nil
	})

	<-gctx.Done()
	slog.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := g.Wait(); err != nil {
		slog.Error("Background task error", "error", err)
	}

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
