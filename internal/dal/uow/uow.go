package uow

import (
	"context"

	"github.com/fooddash/marketplace/internal/dal/interfaces/ibuyerrepo"
	"github.com/fooddash/marketplace/internal/dal/interfaces/ifoodrepo"
	"github.com/fooddash/marketplace/internal/dal/interfaces/iorderitemrepo"
	"github.com/fooddash/marketplace/internal/dal/interfaces/iorderrepo"
	"github.com/fooddash/marketplace/internal/dal/interfaces/ipaymentrepo"
	"github.com/fooddash/marketplace/internal/dal/postgres"
	buyerrepo "github.com/fooddash/marketplace/internal/dal/repositories/buyer/postgres"
	foodrepo "github.com/fooddash/marketplace/internal/dal/repositories/food/postgres"
	orderrepo "github.com/fooddash/marketplace/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/fooddash/marketplace/internal/dal/repositories/orderitem/postgres"
	paymentrepo "github.com/fooddash/marketplace/internal/dal/repositories/payment/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UnitOfWork hands out repositories bound to one shared connection. Before
// Begin they run on the pool; after Begin they share a single transaction,
// so every read and write of an operation commits or rolls back together.
type UnitOfWork struct {
	pool *pgxpool.Pool
	tx   pgx.Tx

	foodRepo      ifoodrepo.IFoodRepository
	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	paymentRepo   ipaymentrepo.IPaymentRepository
	buyerRepo     ibuyerrepo.IBuyerRepository
}

// NewUnitOfWork creates a unit of work running on the pool.
func NewUnitOfWork(client *postgres.Client) *UnitOfWork {
	u := &UnitOfWork{pool: client.Pool()}
	u.bind(client.Pool())

	return u
}

func (u *UnitOfWork) bind(conn postgres.Conn) {
	u.foodRepo = foodrepo.NewPostgresFoodRepository(conn)
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(conn)
	u.paymentRepo = paymentrepo.NewPostgresPaymentRepository(conn)
	u.buyerRepo = buyerrepo.NewPostgresBuyerRepository(conn)
}

// Begin opens a transaction and rebinds the repositories onto it.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

// Commit commits the transaction, if one was begun.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback rolls the transaction back. Safe to defer after Commit: pgx
// reports ErrTxClosed, which is swallowed here.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(ctx)
	if err == nil || err == pgx.ErrTxClosed {
		return nil
	}

	return err
}

func (u *UnitOfWork) FoodRepository() ifoodrepo.IFoodRepository {
	return u.foodRepo
}

func (u *UnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *UnitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *UnitOfWork) PaymentRepository() ipaymentrepo.IPaymentRepository {
	return u.paymentRepo
}

func (u *UnitOfWork) BuyerRepository() ibuyerrepo.IBuyerRepository {
	return u.buyerRepo
}
