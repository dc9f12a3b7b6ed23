package paymentsvc

import (
	"context"
	"testing"
	"time"

	"github.com/fooddash/marketplace/internal/dal/interfaces/iorderrepo"
	"github.com/fooddash/marketplace/internal/dal/interfaces/ipaymentrepo"
	"github.com/fooddash/marketplace/internal/service/models/apperror"
	"github.com/fooddash/marketplace/internal/service/models/money"
	"github.com/fooddash/marketplace/internal/service/models/order"
	"github.com/fooddash/marketplace/internal/service/models/payment"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	orders map[int64]order.Order
}

func (r *fakeOrderRepo) Insert(_ context.Context, o order.Order) (*order.Order, error) {
	r.orders[o.ID] = o

	return &o, nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, apperror.NotFound("order with id %d not found", id)
	}

	return &o, nil
}

func (r *fakeOrderRepo) UpdateStatus(
	_ context.Context,
	id int64,
	status order.Status,
	deliveredAt *time.Time,
) (*order.Order, error) {
	o := r.orders[id]
	o.Status = status
	if deliveredAt != nil {
		o.DeliveredAt = deliveredAt
	}
	r.orders[id] = o

	return &o, nil
}

func (r *fakeOrderRepo) Query(context.Context, *order.QueryOrdersModel) ([]order.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) Count(context.Context, *order.QueryOrdersModel) (int64, error) {
	return 0, nil
}

type fakePaymentRepo struct {
	payments map[int64]payment.Payment
	nextID   int64
	filter   *payment.QueryPaymentsModel
}

func (r *fakePaymentRepo) Insert(_ context.Context, p payment.Payment) (*payment.Payment, error) {
	for _, existing := range r.payments {
		if existing.OrderID == p.OrderID {
			return nil, apperror.Conflict("payment already exists for order %d", p.OrderID)
		}
	}
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.payments[p.ID] = p

	return &p, nil
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id int64) (*payment.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, apperror.NotFound("payment with id %d not found", id)
	}

	return &p, nil
}

func (r *fakePaymentRepo) GetByOrderID(_ context.Context, orderID int64) (*payment.Payment, error) {
	for _, p := range r.payments {
		if p.OrderID == orderID {
			return &p, nil
		}
	}

	return nil, apperror.NotFound("payment for order %d not found", orderID)
}

func (r *fakePaymentRepo) UpdateStatus(
	_ context.Context,
	id int64,
	status payment.Status,
	transactionID string,
	paidAt *time.Time,
) (*payment.Payment, error) {
	p := r.payments[id]
	p.Status = status
	if transactionID != "" {
		p.TransactionID = transactionID
	}
	if paidAt != nil {
		p.PaidAt = paidAt
	}
	r.payments[id] = p

	return &p, nil
}

func (r *fakePaymentRepo) Query(_ context.Context, filter *payment.QueryPaymentsModel) ([]payment.Payment, error) {
	r.filter = filter

	return nil, nil
}

func (r *fakePaymentRepo) Count(context.Context, *payment.QueryPaymentsModel) (int64, error) {
	return 0, nil
}

type fakeUOW struct {
	orders   *fakeOrderRepo
	payments *fakePaymentRepo

	committed  bool
	rolledBack bool
}

func (u *fakeUOW) Begin(context.Context) error { return nil }
func (u *fakeUOW) Commit(context.Context) error {
	u.committed = true

	return nil
}

func (u *fakeUOW) Rollback(context.Context) error {
	if !u.committed {
		u.rolledBack = true
	}

	return nil
}

func (u *fakeUOW) OrderRepository() iorderrepo.IOrderRepository       { return u.orders }
func (u *fakeUOW) PaymentRepository() ipaymentrepo.IPaymentRepository { return u.payments }

func newFixture() (*PaymentService, *fakeUOW) {
	work := &fakeUOW{
		orders: &fakeOrderRepo{orders: map[int64]order.Order{
			1: {
				ID: 1, BuyerID: 1, SellerID: 2, OrderNumber: "ORD-20250827-AAAA1111",
				Status: order.StatusPending, TotalAmount: money.FromInt(165000),
			},
		}},
		payments: &fakePaymentRepo{payments: map[int64]payment.Payment{}},
	}

	svc := &PaymentService{
		newUOW: func() unitOfWork { return work },
	}

	return svc, work
}

func buyerActor() user.Actor {
	return user.Actor{UserID: 1, Role: user.RoleBuyer, BuyerID: 1}
}

func sellerActor() user.Actor {
	return user.Actor{UserID: 2, Role: user.RoleSeller, SellerID: 2}
}

func TestCreatePayment(t *testing.T) {
	svc, work := newFixture()

	created, err := svc.CreatePayment(context.Background(), buyerActor(), payment.CreatePaymentModel{
		OrderID: 1,
		Method:  payment.MethodEWallet,
	})
	require.NoError(t, err)

	assert.True(t, work.committed)
	assert.Equal(t, payment.StatusPending, created.Status)
	assert.Regexp(t, `^PAY-\d{8}-[0-9A-F]{8}$`, created.PaymentNumber)

	// The amount comes from the order, never from the request.
	assert.True(t, created.Amount.Equal(money.FromInt(165000)), created.Amount.String())
}

func TestCreatePaymentDuplicate(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.CreatePayment(context.Background(), buyerActor(), payment.CreatePaymentModel{
		OrderID: 1, Method: payment.MethodCash,
	})
	require.NoError(t, err)

	_, err = svc.CreatePayment(context.Background(), buyerActor(), payment.CreatePaymentModel{
		OrderID: 1, Method: payment.MethodCash,
	})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestCreatePaymentAuthorization(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.CreatePayment(context.Background(), sellerActor(), payment.CreatePaymentModel{
		OrderID: 1, Method: payment.MethodCash,
	})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	otherBuyer := user.Actor{UserID: 9, Role: user.RoleBuyer, BuyerID: 9}
	_, err = svc.CreatePayment(context.Background(), otherBuyer, payment.CreatePaymentModel{
		OrderID: 1, Method: payment.MethodCash,
	})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestCreatePaymentUnknownOrder(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.CreatePayment(context.Background(), buyerActor(), payment.CreatePaymentModel{
		OrderID: 99, Method: payment.MethodCash,
	})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestUpdateStatusCompletedConfirmsOrder(t *testing.T) {
	svc, work := newFixture()

	created, err := svc.CreatePayment(context.Background(), buyerActor(), payment.CreatePaymentModel{
		OrderID: 1, Method: payment.MethodBankTransfer,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), sellerActor(), created.ID,
		payment.StatusCompleted, "TXN-123")
	require.NoError(t, err)

	assert.Equal(t, payment.StatusCompleted, updated.Status)
	assert.Equal(t, "TXN-123", updated.TransactionID)
	require.NotNil(t, updated.PaidAt)
	assert.WithinDuration(t, time.Now(), *updated.PaidAt, time.Minute)

	// Settlement promotes the pending order in the same transaction.
	assert.Equal(t, order.StatusConfirmed, work.orders.orders[1].Status)
}

func TestUpdateStatusNoCascadeFromProgressedOrder(t *testing.T) {
	svc, work := newFixture()
	o := work.orders.orders[1]
	o.Status = order.StatusPreparing
	work.orders.orders[1] = o

	created, err := svc.CreatePayment(context.Background(), buyerActor(), payment.CreatePaymentModel{
		OrderID: 1, Method: payment.MethodCash,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), sellerActor(), created.ID,
		payment.StatusCompleted, "")
	require.NoError(t, err)

	assert.Equal(t, order.StatusPreparing, work.orders.orders[1].Status)
}

func TestUpdateStatusNonCompletedNoCascade(t *testing.T) {
	svc, work := newFixture()

	created, err := svc.CreatePayment(context.Background(), buyerActor(), payment.CreatePaymentModel{
		OrderID: 1, Method: payment.MethodCash,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), sellerActor(), created.ID,
		payment.StatusProcessing, "")
	require.NoError(t, err)

	assert.Equal(t, payment.StatusProcessing, updated.Status)
	assert.Nil(t, updated.PaidAt)
	assert.Equal(t, order.StatusPending, work.orders.orders[1].Status)
}

func TestUpdateStatusTerminalPayment(t *testing.T) {
	svc, _ := newFixture()

	created, err := svc.CreatePayment(context.Background(), buyerActor(), payment.CreatePaymentModel{
		OrderID: 1, Method: payment.MethodCash,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), sellerActor(), created.ID,
		payment.StatusFailed, "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), sellerActor(), created.ID,
		payment.StatusCompleted, "")
	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))
}

func TestUpdateStatusSellerOnly(t *testing.T) {
	svc, _ := newFixture()

	created, err := svc.CreatePayment(context.Background(), buyerActor(), payment.CreatePaymentModel{
		OrderID: 1, Method: payment.MethodCash,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), buyerActor(), created.ID,
		payment.StatusCompleted, "")
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	foreignSeller := user.Actor{UserID: 5, Role: user.RoleSeller, SellerID: 9}
	_, err = svc.UpdateStatus(context.Background(), foreignSeller, created.ID,
		payment.StatusCompleted, "")
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestGetPaymentsBuyerScoping(t *testing.T) {
	svc, work := newFixture()

	_, _, err := svc.GetPayments(context.Background(), buyerActor(), &payment.QueryPaymentsModel{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), work.payments.filter.BuyerID)

	_, _, err = svc.GetPayments(context.Background(), sellerActor(), &payment.QueryPaymentsModel{})
	require.NoError(t, err)
	assert.Zero(t, work.payments.filter.BuyerID)
}

func TestGetPaymentAccess(t *testing.T) {
	svc, _ := newFixture()

	created, err := svc.CreatePayment(context.Background(), buyerActor(), payment.CreatePaymentModel{
		OrderID: 1, Method: payment.MethodCash,
	})
	require.NoError(t, err)

	got, err := svc.GetPayment(context.Background(), buyerActor(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	otherBuyer := user.Actor{UserID: 9, Role: user.RoleBuyer, BuyerID: 9}
	_, err = svc.GetPayment(context.Background(), otherBuyer, created.ID)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}
