package ordersvc

import (
	"context"
	"testing"
	"time"

	"github.com/fooddash/marketplace/internal/dal/interfaces/ibuyerrepo"
	"github.com/fooddash/marketplace/internal/dal/interfaces/ifoodrepo"
	"github.com/fooddash/marketplace/internal/dal/interfaces/iorderitemrepo"
	"github.com/fooddash/marketplace/internal/dal/interfaces/iorderrepo"
	"github.com/fooddash/marketplace/internal/service/models/apperror"
	"github.com/fooddash/marketplace/internal/service/models/food"
	"github.com/fooddash/marketplace/internal/service/models/money"
	"github.com/fooddash/marketplace/internal/service/models/order"
	"github.com/fooddash/marketplace/internal/service/models/orderitem"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFoodRepo struct {
	foods       map[int64]food.Food
	failReserve bool
}

func (r *fakeFoodRepo) GetByID(_ context.Context, id int64) (*food.Food, error) {
	f, ok := r.foods[id]
	if !ok {
		return nil, apperror.NotFound("food with id %d not found", id)
	}

	return &f, nil
}

func (r *fakeFoodRepo) Insert(_ context.Context, f food.Food) (*food.Food, error) { return &f, nil }
func (r *fakeFoodRepo) Update(_ context.Context, f food.Food) (*food.Food, error) { return &f, nil }
func (r *fakeFoodRepo) Delete(context.Context, int64, int64) error                { return nil }

func (r *fakeFoodRepo) ReserveStock(_ context.Context, foodID int64, quantity int) (bool, error) {
	if r.failReserve {
		return false, nil
	}
	f := r.foods[foodID]
	if f.StockQuantity < quantity {
		return false, nil
	}
	f.StockQuantity -= quantity
	r.foods[foodID] = f

	return true, nil
}

func (r *fakeFoodRepo) Query(context.Context, *food.QueryFoodsModel) ([]food.Food, error) {
	return nil, nil
}

func (r *fakeFoodRepo) Count(context.Context, *food.QueryFoodsModel) (int64, error) { return 0, nil }

type fakeOrderRepo struct {
	orders map[int64]order.Order
	nextID int64
	filter *order.QueryOrdersModel
}

func (r *fakeOrderRepo) Insert(_ context.Context, o order.Order) (*order.Order, error) {
	r.nextID++
	o.ID = r.nextID
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
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
	o, ok := r.orders[id]
	if !ok {
		return nil, apperror.NotFound("order with id %d not found", id)
	}
	o.Status = status
	if deliveredAt != nil {
		o.DeliveredAt = deliveredAt
	}
	r.orders[id] = o

	return &o, nil
}

func (r *fakeOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	r.filter = filter

	return nil, nil
}

func (r *fakeOrderRepo) Count(context.Context, *order.QueryOrdersModel) (int64, error) {
	return 0, nil
}

type fakeOrderItemRepo struct {
	items []orderitem.OrderItem
}

func (r *fakeOrderItemRepo) BulkInsert(_ context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	for i := range items {
		items[i].ID = int64(len(r.items) + i + 1)
	}
	r.items = append(r.items, items...)

	return items, nil
}

func (r *fakeOrderItemRepo) QueryByOrderIDs(_ context.Context, orderIDs []int64) ([]orderitem.OrderItem, error) {
	var out []orderitem.OrderItem
	for _, item := range r.items {
		for _, id := range orderIDs {
			if item.OrderID == id {
				out = append(out, item)
			}
		}
	}

	return out, nil
}

type fakeBuyerRepo struct {
	increments int
	lastDelta  int64
}

func (r *fakeBuyerRepo) GetByUserID(context.Context, int64) (*user.BuyerProfile, error) {
	return &user.BuyerProfile{}, nil
}

func (r *fakeBuyerRepo) IncrementStats(_ context.Context, _ int64, spentDelta int64) error {
	r.increments++
	r.lastDelta = spentDelta

	return nil
}

type fakeUOW struct {
	foods  *fakeFoodRepo
	orders *fakeOrderRepo
	items  *fakeOrderItemRepo
	buyers *fakeBuyerRepo

	began      bool
	committed  bool
	rolledBack bool
}

func (u *fakeUOW) Begin(context.Context) error { u.began = true; return nil }
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

func (u *fakeUOW) FoodRepository() ifoodrepo.IFoodRepository               { return u.foods }
func (u *fakeUOW) OrderRepository() iorderrepo.IOrderRepository           { return u.orders }
func (u *fakeUOW) OrderItemRepository() iorderitemrepo.IOrderItemRepository { return u.items }
func (u *fakeUOW) BuyerRepository() ibuyerrepo.IBuyerRepository           { return u.buyers }

func newFixture() (*OrderService, *fakeUOW) {
	work := &fakeUOW{
		foods: &fakeFoodRepo{foods: map[int64]food.Food{
			10: {ID: 10, SellerID: 1, Name: "Nasi Goreng", Price: money.FromInt(45000), IsAvailable: true, StockQuantity: 10},
			11: {ID: 11, SellerID: 1, Name: "Sate Ayam", Price: money.FromInt(55000), IsAvailable: true, StockQuantity: 5},
			12: {ID: 12, SellerID: 1, Name: "Es Teh", Price: money.FromInt(8000), IsAvailable: false, StockQuantity: 100},
			20: {ID: 20, SellerID: 2, Name: "Bakso", Price: money.FromInt(30000), IsAvailable: true, StockQuantity: 10},
		}},
		orders: &fakeOrderRepo{orders: map[int64]order.Order{}},
		items:  &fakeOrderItemRepo{},
		buyers: &fakeBuyerRepo{},
	}

	svc := &OrderService{
		newUOW: func() unitOfWork { return work },
	}

	return svc, work
}

func buyerActor() user.Actor {
	return user.Actor{UserID: 1, Role: user.RoleBuyer, BuyerID: 1}
}

func validModel() order.CreateOrderModel {
	return order.CreateOrderModel{
		SellerID: 1,
		Items: []order.CartLine{
			{FoodID: 10, Quantity: 2},
			{FoodID: 11, Quantity: 1},
		},
		DeliveryAddress: "Jl. Sudirman 1",
		DeliveryPhone:   "+628123456789",
		DeliveryFee:     money.FromInt(20000),
	}
}

func TestPlaceOrder(t *testing.T) {
	svc, work := newFixture()

	placed, err := svc.PlaceOrder(context.Background(), buyerActor(), validModel())
	require.NoError(t, err)

	assert.True(t, work.committed)
	assert.False(t, work.rolledBack)

	assert.Equal(t, order.StatusPending, placed.Status)
	assert.Equal(t, int64(1), placed.BuyerID)
	assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{8}$`, placed.OrderNumber)

	// 2 * 45000 + 1 * 55000 = 145000; + 20000 delivery = 165000.
	assert.True(t, placed.Subtotal.Equal(money.FromInt(145000)), placed.Subtotal.String())
	assert.True(t, placed.TotalAmount.Equal(money.FromInt(165000)), placed.TotalAmount.String())

	require.Len(t, placed.Items, 2)
	assert.Equal(t, "Nasi Goreng", placed.Items[0].FoodName)
	assert.True(t, placed.Items[0].UnitPrice.Equal(money.FromInt(45000)))
	assert.True(t, placed.Items[0].Subtotal.Equal(money.FromInt(90000)))
	assert.Equal(t, placed.ID, placed.Items[0].OrderID)

	// Stock reserved.
	assert.Equal(t, 8, work.foods.foods[10].StockQuantity)
	assert.Equal(t, 4, work.foods.foods[11].StockQuantity)

	// Buyer counters bumped by the whole-unit total.
	assert.Equal(t, 1, work.buyers.increments)
	assert.Equal(t, int64(165000), work.buyers.lastDelta)
}

func TestPlaceOrderExactDecimalTotals(t *testing.T) {
	svc, work := newFixture()
	work.foods.foods[10] = food.Food{
		ID: 10, SellerID: 1, Name: "Kopi", IsAvailable: true, StockQuantity: 10,
		Price: decimal.RequireFromString("0.10"),
	}

	model := validModel()
	model.Items = []order.CartLine{{FoodID: 10, Quantity: 3}}
	model.DeliveryFee = decimal.RequireFromString("0.45")

	placed, err := svc.PlaceOrder(context.Background(), buyerActor(), model)
	require.NoError(t, err)

	assert.True(t, placed.Subtotal.Equal(decimal.RequireFromString("0.30")), placed.Subtotal.String())
	assert.True(t, placed.TotalAmount.Equal(decimal.RequireFromString("0.75")), placed.TotalAmount.String())

	// Fractions are discarded from the spend counter, not rounded.
	assert.Equal(t, int64(0), work.buyers.lastDelta)
}

func TestPlaceOrderValidation(t *testing.T) {
	svc, work := newFixture()

	model := validModel()
	model.Items = nil
	_, err := svc.PlaceOrder(context.Background(), buyerActor(), model)
	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))

	model = validModel()
	model.Items[0].Quantity = 0
	_, err = svc.PlaceOrder(context.Background(), buyerActor(), model)
	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))

	model = validModel()
	model.DeliveryFee = money.FromInt(-1)
	_, err = svc.PlaceOrder(context.Background(), buyerActor(), model)
	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))

	model = validModel()
	model.DeliveryAddress = ""
	_, err = svc.PlaceOrder(context.Background(), buyerActor(), model)
	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))

	// Validation failures never open a transaction.
	assert.False(t, work.began)
}

func TestPlaceOrderOnlyBuyers(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.PlaceOrder(context.Background(),
		user.Actor{UserID: 2, Role: user.RoleSeller, SellerID: 1}, validModel())
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestPlaceOrderUnknownFood(t *testing.T) {
	svc, work := newFixture()

	model := validModel()
	model.Items = []order.CartLine{{FoodID: 999, Quantity: 1}}

	_, err := svc.PlaceOrder(context.Background(), buyerActor(), model)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.True(t, work.rolledBack)
	assert.Empty(t, work.orders.orders)
}

func TestPlaceOrderUnavailableFood(t *testing.T) {
	svc, work := newFixture()

	model := validModel()
	model.Items = []order.CartLine{{FoodID: 12, Quantity: 1}}

	_, err := svc.PlaceOrder(context.Background(), buyerActor(), model)
	assert.Equal(t, apperror.KindUnavailable, apperror.KindOf(err))
	assert.True(t, work.rolledBack)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	svc, work := newFixture()

	model := validModel()
	model.Items = []order.CartLine{{FoodID: 11, Quantity: 6}}

	_, err := svc.PlaceOrder(context.Background(), buyerActor(), model)
	assert.Equal(t, apperror.KindInsufficientStock, apperror.KindOf(err))
	assert.True(t, work.rolledBack)
	assert.Equal(t, 0, work.buyers.increments)
}

func TestPlaceOrderReserveRace(t *testing.T) {
	svc, work := newFixture()
	// Stock check passes but the conditional decrement loses the race.
	work.foods.failReserve = true

	_, err := svc.PlaceOrder(context.Background(), buyerActor(), validModel())
	assert.Equal(t, apperror.KindInsufficientStock, apperror.KindOf(err))
	assert.False(t, work.committed)
	assert.True(t, work.rolledBack)
}

func TestPlaceOrderCrossSellerCart(t *testing.T) {
	svc, _ := newFixture()

	model := validModel()
	model.Items = append(model.Items, order.CartLine{FoodID: 20, Quantity: 1})

	_, err := svc.PlaceOrder(context.Background(), buyerActor(), model)
	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))
}

func TestUpdateStatus(t *testing.T) {
	svc, work := newFixture()
	sellerActor := user.Actor{UserID: 2, Role: user.RoleSeller, SellerID: 1}

	placed, err := svc.PlaceOrder(context.Background(), buyerActor(), validModel())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), sellerActor, placed.ID, order.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPreparing, updated.Status)
	assert.Nil(t, updated.DeliveredAt)
	assert.Len(t, updated.Items, 2)

	updated, err = svc.UpdateStatus(context.Background(), sellerActor, placed.ID, order.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, order.StatusDelivered, updated.Status)
	require.NotNil(t, updated.DeliveredAt)
	assert.WithinDuration(t, time.Now(), *updated.DeliveredAt, time.Minute)

	// Delivered is terminal.
	_, err = svc.UpdateStatus(context.Background(), sellerActor, placed.ID, order.StatusPending)
	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))

	assert.False(t, work.rolledBack)
}

func TestUpdateStatusBuyerCancel(t *testing.T) {
	svc, _ := newFixture()

	placed, err := svc.PlaceOrder(context.Background(), buyerActor(), validModel())
	require.NoError(t, err)

	// Buyers may cancel their own order but not confirm it.
	_, err = svc.UpdateStatus(context.Background(), buyerActor(), placed.ID, order.StatusConfirmed)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	updated, err := svc.UpdateStatus(context.Background(), buyerActor(), placed.ID, order.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, updated.Status)
}

func TestUpdateStatusForeignSeller(t *testing.T) {
	svc, _ := newFixture()

	placed, err := svc.PlaceOrder(context.Background(), buyerActor(), validModel())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(),
		user.Actor{UserID: 3, Role: user.RoleSeller, SellerID: 2}, placed.ID, order.StatusPreparing)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestGetOrdersScoping(t *testing.T) {
	svc, work := newFixture()

	_, _, err := svc.GetOrders(context.Background(), buyerActor(), &order.QueryOrdersModel{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), work.orders.filter.BuyerID)

	_, _, err = svc.GetOrders(context.Background(),
		user.Actor{UserID: 2, Role: user.RoleSeller, SellerID: 7}, &order.QueryOrdersModel{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), work.orders.filter.SellerID)

	_, _, err = svc.GetOrders(context.Background(),
		user.Actor{UserID: 3, Role: user.RoleDriver, DriverID: 9}, &order.QueryOrdersModel{})
	require.NoError(t, err)
	assert.Equal(t, int64(9), work.orders.filter.DriverID)
}

func TestGetOrderAccess(t *testing.T) {
	svc, _ := newFixture()

	placed, err := svc.PlaceOrder(context.Background(), buyerActor(), validModel())
	require.NoError(t, err)

	got, err := svc.GetOrder(context.Background(), buyerActor(), placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)
	assert.Len(t, got.Items, 2)

	otherBuyer := user.Actor{UserID: 42, Role: user.RoleBuyer, BuyerID: 42}
	_, err = svc.GetOrder(context.Background(), otherBuyer, placed.ID)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}
