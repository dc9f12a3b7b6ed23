package payment

import (
	"database/sql/driver"
	"errors"
	"time"

	"github.com/fooddash/marketplace/internal/service/models/money"
)

// Method is the means of settlement.
type Method string

const (
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
	MethodEWallet      Method = "e_wallet"
	MethodCreditCard   Method = "credit_card"
)

var (
	ErrInvalidMethod = errors.New("invalid payment method")
	ErrInvalidStatus = errors.New("invalid payment status")
)

func (m Method) String() string {
	return string(m)
}

func (m Method) Value() (driver.Value, error) {
	return m.String(), nil
}

func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodCash, MethodBankTransfer, MethodEWallet, MethodCreditCard:
		return Method(s), nil
	default:
		return "", ErrInvalidMethod
	}
}

// Status is the settlement state of a payment.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusRefunded   Status = "refunded"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// Terminal reports whether no further transitions may leave s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusRefunded
}

// CanTransition reports whether a payment in s may move to target.
// Terminal states are frozen; the rest stays lenient.
func (s Status) CanTransition(target Status) bool {
	return !s.Terminal()
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusRefunded:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Payment settles exactly one order. Amount is copied verbatim from the
// order's total at creation and never re-derived.
type Payment struct {
	ID            int64        `json:"id"`
	OrderID       int64        `json:"orderId"`
	PaymentNumber string       `json:"paymentNumber"`
	Method        Method       `json:"paymentMethod"`
	Amount        money.Amount `json:"amount"`
	Status        Status       `json:"status"`
	TransactionID string       `json:"transactionId,omitempty"`
	PaymentNotes  string       `json:"paymentNotes,omitempty"`
	PaidAt        *time.Time   `json:"paidAt,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// CreatePaymentModel carries the validated input of payment creation.
type CreatePaymentModel struct {
	OrderID       int64
	Method        Method
	TransactionID string
	PaymentNotes  string
}
