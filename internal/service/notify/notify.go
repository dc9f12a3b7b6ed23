package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/fooddash/marketplace/internal/dal/interfaces/ioutboxrepo"
	"github.com/fooddash/marketplace/internal/dal/rabbitmq"
	"github.com/fooddash/marketplace/internal/service/models/money"
	"github.com/fooddash/marketplace/internal/service/models/notification"
	"github.com/fooddash/marketplace/internal/service/models/order"
	"github.com/fooddash/marketplace/internal/service/models/outbox"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

// Notifier is the outbound notification capability. Calls are best-effort:
// the owning operation has already committed when a notification is sent,
// so failures are logged and never surfaced.
type Notifier interface {
	OrderConfirmation(ctx context.Context, email, recipient, orderNumber string, totalAmount money.Amount) error
	OrderStatusUpdate(ctx context.Context, email, recipient, orderNumber string, status order.Status) error
	PaymentReceipt(ctx context.Context, email, recipient, paymentNumber, orderNumber string, amount money.Amount) error
}

// AMQPNotifier publishes notification payloads to a RabbitMQ queue. When a
// publish fails the message lands in the outbox table and the outbox
// worker retries it.
type AMQPNotifier struct {
	rabbitClient *rabbitmq.Client
	outboxRepo   ioutboxrepo.IOutboxRepository
	queueName    string
	maxRetries   int
}

// MustNewAMQPNotifier declares the notifications queue and returns the
// notifier.
func MustNewAMQPNotifier(
	rabbitClient *rabbitmq.Client,
	outboxRepo ioutboxrepo.IOutboxRepository,
) *AMQPNotifier {
	queueName := viper.GetString("rabbitmq.notifications.queue")
	if queueName == "" {
		queueName = "notifications"
	}

	maxRetries := viper.GetInt("rabbitmq.outbox.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	if _, err := rabbitClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    queueName,
		Durable: true,
	}); err != nil {
		panic(fmt.Sprintf("Failed to declare notifications queue: %v", err))
	}

	return &AMQPNotifier{
		rabbitClient: rabbitClient,
		outboxRepo:   outboxRepo,
		queueName:    queueName,
		maxRetries:   maxRetries,
	}
}

// OrderConfirmation notifies the buyer that their order was placed.
func (n *AMQPNotifier) OrderConfirmation(
	ctx context.Context,
	email, recipient, orderNumber string,
	totalAmount money.Amount,
) error {
	return n.publish(ctx, notification.Message{
		Kind:          notification.KindOrderConfirmation,
		Email:         email,
		RecipientName: recipient,
		OrderNumber:   orderNumber,
		TotalAmount:   totalAmount.String(),
		CreatedAt:     time.Now(),
	})
}

// OrderStatusUpdate notifies the buyer of an order status change.
func (n *AMQPNotifier) OrderStatusUpdate(
	ctx context.Context,
	email, recipient, orderNumber string,
	status order.Status,
) error {
	return n.publish(ctx, notification.Message{
		Kind:          notification.KindOrderStatusUpdate,
		Email:         email,
		RecipientName: recipient,
		OrderNumber:   orderNumber,
		Status:        status.String(),
		CreatedAt:     time.Now(),
	})
}

// PaymentReceipt notifies the buyer that their payment completed.
func (n *AMQPNotifier) PaymentReceipt(
	ctx context.Context,
	email, recipient, paymentNumber, orderNumber string,
	amount money.Amount,
) error {
	return n.publish(ctx, notification.Message{
		Kind:          notification.KindPaymentReceipt,
		Email:         email,
		RecipientName: recipient,
		OrderNumber:   orderNumber,
		PaymentNumber: paymentNumber,
		TotalAmount:   amount.String(),
		CreatedAt:     time.Now(),
	})
}

func (n *AMQPNotifier) publish(ctx context.Context, msg notification.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	err = n.rabbitClient.Channel().Publish(
		"",
		n.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
	if err == nil {
		return nil
	}

	slog.Warn("Failed to publish notification, storing in outbox",
		"kind", msg.Kind,
		"order_number", msg.OrderNumber,
		"error", err,
	)

	now := time.Now()
	if err := n.outboxRepo.Insert(ctx, outbox.Message{
		QueueName:   n.queueName,
		RoutingKey:  n.queueName,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  n.maxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}); err != nil {
		return fmt.Errorf("failed to store notification in outbox: %w", err)
	}

	return nil
}
