package paymentsvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/fooddash/marketplace/internal/dal/interfaces/iorderrepo"
	"github.com/fooddash/marketplace/internal/dal/interfaces/ipaymentrepo"
	"github.com/fooddash/marketplace/internal/dal/interfaces/iuserrepo"
	"github.com/fooddash/marketplace/internal/dal/postgres"
	userrepo "github.com/fooddash/marketplace/internal/dal/repositories/user/postgres"
	"github.com/fooddash/marketplace/internal/dal/uow"
	"github.com/fooddash/marketplace/internal/service/models/apperror"
	"github.com/fooddash/marketplace/internal/service/models/order"
	"github.com/fooddash/marketplace/internal/service/models/payment"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/fooddash/marketplace/internal/service/notify"
	"github.com/fooddash/marketplace/internal/service/policy"
	"github.com/fooddash/marketplace/internal/service/refnum"
)

// PaymentService owns payment records and their lifecycle, including the
// confirmation cascade back onto the paid order.
type PaymentService struct {
	pgClient *postgres.Client
	userRepo iuserrepo.IUserRepository
	notifier notify.Notifier
	newUOW   func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	PaymentRepository() ipaymentrepo.IPaymentRepository
}

// option is a function that configures the PaymentService.
type option func(*PaymentService)

// MustNewPaymentService creates a new PaymentService.
func MustNewPaymentService(opts ...option) *PaymentService {
	s := &PaymentService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}
	if s.userRepo == nil && s.pgClient != nil {
		s.userRepo = userrepo.NewPostgresUserRepository(s.pgClient.Pool())
	}

	return s
}

// WithPostgresClient sets the Postgres client for the PaymentService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *PaymentService) {
		s.pgClient = pgClient
	}
}

// WithNotifier sets the notifier for the PaymentService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(notifier notify.Notifier) option {
	return func(s *PaymentService) {
		s.notifier = notifier
	}
}

// CreatePayment opens a PENDING payment for an order. The amount is taken
// from the order's stored total, never from the request, and at most one
// payment may exist per order.
func (s *PaymentService) CreatePayment(
	ctx context.Context,
	actor user.Actor,
	model payment.CreatePaymentModel,
) (*payment.Payment, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer work.Rollback(ctx)

	o, err := work.OrderRepository().GetByID(ctx, model.OrderID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanCreatePayment(actor, o); err != nil {
		return nil, err
	}

	_, err = work.PaymentRepository().GetByOrderID(ctx, o.ID)
	if err == nil {
		return nil, apperror.Conflict("payment already exists for order %s", o.OrderNumber)
	}
	if apperror.KindOf(err) != apperror.KindNotFound {
		return nil, err
	}

	inserted, err := work.PaymentRepository().Insert(ctx, payment.Payment{
		OrderID:       o.ID,
		PaymentNumber: refnum.Generate("PAY"),
		Method:        model.Method,
		Amount:        o.TotalAmount,
		Status:        payment.StatusPending,
		TransactionID: model.TransactionID,
		PaymentNotes:  model.PaymentNotes,
	})
	if err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return inserted, nil
}

// UpdateStatus persists a payment status transition. COMPLETED stamps the
// settlement time, promotes a still-PENDING order to CONFIRMED in the same
// transaction, and sends the buyer a receipt. Terminal payments reject
// further changes.
func (s *PaymentService) UpdateStatus(
	ctx context.Context,
	actor user.Actor,
	paymentID int64,
	target payment.Status,
	transactionID string,
) (*payment.Payment, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer work.Rollback(ctx)

	p, err := work.PaymentRepository().GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	o, err := work.OrderRepository().GetByID(ctx, p.OrderID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanUpdatePayment(actor, o); err != nil {
		return nil, err
	}
	if !p.Status.CanTransition(target) {
		return nil, apperror.Invalid("payment %s is %s and cannot change status", p.PaymentNumber, p.Status)
	}

	var paidAt *time.Time
	if target == payment.StatusCompleted {
		now := time.Now()
		paidAt = &now
	}

	updated, err := work.PaymentRepository().UpdateStatus(ctx, paymentID, target, transactionID, paidAt)
	if err != nil {
		return nil, err
	}

	// Settlement confirms the order, but only from PENDING: a seller who
	// already moved the order along keeps their progress.
	if target == payment.StatusCompleted && o.Status == order.StatusPending {
		if _, err := work.OrderRepository().UpdateStatus(ctx, o.ID, order.StatusConfirmed, nil); err != nil {
			return nil, err
		}
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	if target == payment.StatusCompleted {
		go s.sendReceipt(context.WithoutCancel(ctx), *updated, *o)
	}

	return updated, nil
}

// GetPayments retrieves payments. Buyers are scoped to payments on their
// own orders.
func (s *PaymentService) GetPayments(
	ctx context.Context,
	actor user.Actor,
	filter *payment.QueryPaymentsModel,
) ([]payment.Payment, int64, error) {
	if actor.Role == user.RoleBuyer {
		filter.BuyerID = actor.UserID
	}

	work := s.newUOW()

	payments, err := work.PaymentRepository().Query(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := work.PaymentRepository().Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// GetPayment retrieves one payment, enforcing view access through the
// underlying order.
func (s *PaymentService) GetPayment(ctx context.Context, actor user.Actor, paymentID int64) (*payment.Payment, error) {
	work := s.newUOW()

	p, err := work.PaymentRepository().GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	o, err := work.OrderRepository().GetByID(ctx, p.OrderID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanViewPayment(actor, o); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *PaymentService) sendReceipt(ctx context.Context, p payment.Payment, o order.Order) {
	if s.notifier == nil || s.userRepo == nil {
		return
	}

	buyer, err := s.userRepo.GetByID(ctx, o.BuyerID)
	if err != nil {
		slog.Error("Failed to load buyer for payment receipt", "payment_number", p.PaymentNumber, "error", err)

		return
	}

	if err := s.notifier.PaymentReceipt(ctx, buyer.Email, buyer.FullName, p.PaymentNumber, o.OrderNumber, p.Amount); err != nil {
		slog.Error("Failed to send payment receipt", "payment_number", p.PaymentNumber, "error", err)
	}
}
