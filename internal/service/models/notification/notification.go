package notification

import (
	"time"
)

// Kind discriminates notification payloads on the queue.
type Kind string

const (
	KindOrderConfirmation Kind = "order_confirmation"
	KindOrderStatusUpdate Kind = "order_status_update"
	KindPaymentReceipt    Kind = "payment_receipt"
)

// Message is the JSON payload published to the notifications queue.
// Delivery is best-effort and unordered relative to later status changes.
type Message struct {
	Kind          Kind      `json:"kind"`
	Email         string    `json:"email"`
	RecipientName string    `json:"recipientName,omitempty"`
	OrderNumber   string    `json:"orderNumber"`
	PaymentNumber string    `json:"paymentNumber,omitempty"`
	Status        string    `json:"status,omitempty"`
	TotalAmount   string    `json:"totalAmount,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
