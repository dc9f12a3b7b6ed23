package ordersvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/fooddash/marketplace/internal/dal/interfaces/ibuyerrepo"
	"github.com/fooddash/marketplace/internal/dal/interfaces/ifoodrepo"
	"github.com/fooddash/marketplace/internal/dal/interfaces/iorderitemrepo"
	"github.com/fooddash/marketplace/internal/dal/interfaces/iorderrepo"
	"github.com/fooddash/marketplace/internal/dal/interfaces/iuserrepo"
	"github.com/fooddash/marketplace/internal/dal/postgres"
	userrepo "github.com/fooddash/marketplace/internal/dal/repositories/user/postgres"
	"github.com/fooddash/marketplace/internal/dal/uow"
	"github.com/fooddash/marketplace/internal/service/models/apperror"
	"github.com/fooddash/marketplace/internal/service/models/money"
	"github.com/fooddash/marketplace/internal/service/models/order"
	"github.com/fooddash/marketplace/internal/service/models/orderitem"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/fooddash/marketplace/internal/service/notify"
	"github.com/fooddash/marketplace/internal/service/policy"
	"github.com/fooddash/marketplace/internal/service/refnum"
)

// OrderService owns order placement and the status lifecycle.
type OrderService struct {
	pgClient *postgres.Client
	userRepo iuserrepo.IUserRepository
	notifier notify.Notifier
	newUOW   func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	FoodRepository() ifoodrepo.IFoodRepository
	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	BuyerRepository() ibuyerrepo.IBuyerRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
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

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithNotifier sets the notifier for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(notifier notify.Notifier) option {
	return func(s *OrderService) {
		s.notifier = notifier
	}
}

func validateCreateOrder(model order.CreateOrderModel) error {
	if model.SellerID == 0 {
		return apperror.Invalid("seller id is required")
	}
	if len(model.Items) == 0 {
		return apperror.Invalid("order must contain at least one item")
	}
	for _, line := range model.Items {
		if line.Quantity <= 0 {
			return apperror.Invalid("quantity for food %d must be positive", line.FoodID)
		}
	}
	if model.DeliveryFee.IsNegative() {
		return apperror.Invalid("delivery fee must not be negative")
	}
	if model.DeliveryAddress == "" {
		return apperror.Invalid("delivery address is required")
	}
	if model.DeliveryPhone == "" {
		return apperror.Invalid("delivery phone is required")
	}

	return nil
}

// PlaceOrder validates the cart against live stock, reserves the stock,
// computes totals, and persists the order with its item snapshots — all in
// one transaction. Any failure rolls the whole placement back.
func (s *OrderService) PlaceOrder(
	ctx context.Context,
	actor user.Actor,
	model order.CreateOrderModel,
) (*order.Order, error) {
	if err := policy.RequireRole(actor, user.RoleBuyer); err != nil {
		return nil, err
	}
	if err := validateCreateOrder(model); err != nil {
		return nil, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer work.Rollback(ctx)

	subtotal := money.Zero()
	items := make([]orderitem.OrderItem, 0, len(model.Items))

	for _, line := range model.Items {
		f, err := work.FoodRepository().GetByID(ctx, line.FoodID)
		if err != nil {
			return nil, err
		}
		if f.SellerID != model.SellerID {
			return nil, apperror.Invalid("food %s does not belong to the order's seller", f.Name)
		}
		if !f.IsAvailable {
			return nil, apperror.Unavailable("food %s is not available", f.Name)
		}
		if f.StockQuantity < line.Quantity {
			return nil, apperror.InsufficientStock("insufficient stock for %s", f.Name)
		}

		itemSubtotal := money.Line(f.Price, line.Quantity)
		subtotal = subtotal.Add(itemSubtotal)

		// Price and name are snapshotted here; later catalog edits must
		// not alter historical orders.
		items = append(items, orderitem.OrderItem{
			FoodID:    f.ID,
			FoodName:  f.Name,
			Quantity:  line.Quantity,
			UnitPrice: f.Price,
			Subtotal:  itemSubtotal,
		})
	}

	totalAmount := subtotal.Add(model.DeliveryFee)

	inserted, err := work.OrderRepository().Insert(ctx, order.Order{
		BuyerID:         actor.UserID,
		SellerID:        model.SellerID,
		OrderNumber:     refnum.Generate("ORD"),
		Status:          order.StatusPending,
		Subtotal:        subtotal,
		DeliveryFee:     model.DeliveryFee,
		TotalAmount:     totalAmount,
		DeliveryAddress: model.DeliveryAddress,
		DeliveryPhone:   model.DeliveryPhone,
		DeliveryNotes:   model.DeliveryNotes,
	})
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = inserted.ID
	}
	insertedItems, err := work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return nil, err
	}

	// The conditional decrement is the real oversell guard: the stock
	// check above only produces a friendlier error message.
	for _, line := range model.Items {
		reserved, err := work.FoodRepository().ReserveStock(ctx, line.FoodID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if !reserved {
			return nil, apperror.InsufficientStock("insufficient stock for food %d", line.FoodID)
		}
	}

	if err := work.BuyerRepository().IncrementStats(ctx, actor.UserID, money.TruncInt(totalAmount)); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	inserted.Items = insertedItems

	go s.sendOrderConfirmation(context.WithoutCancel(ctx), *inserted)

	return inserted, nil
}

// UpdateStatus persists a role-gated status transition. DELIVERED stamps
// the delivery completion time; terminal orders reject further changes.
func (s *OrderService) UpdateStatus(
	ctx context.Context,
	actor user.Actor,
	orderID int64,
	target order.Status,
) (*order.Order, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer work.Rollback(ctx)

	o, err := work.OrderRepository().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanUpdateOrderStatus(actor, o, target); err != nil {
		return nil, err
	}
	if !o.Status.CanTransition(target) {
		return nil, apperror.Invalid("order %s is %s and cannot change status", o.OrderNumber, o.Status)
	}

	var deliveredAt *time.Time
	if target == order.StatusDelivered {
		now := time.Now()
		deliveredAt = &now
	}

	updated, err := work.OrderRepository().UpdateStatus(ctx, orderID, target, deliveredAt)
	if err != nil {
		return nil, err
	}

	items, err := work.OrderItemRepository().QueryByOrderIDs(ctx, []int64{orderID})
	if err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	updated.Items = items

	go s.sendStatusUpdate(context.WithoutCancel(ctx), *updated)

	return updated, nil
}

// GetOrders retrieves orders with their items, scoped to the caller:
// buyers see their own orders, sellers their store's, drivers their
// assigned deliveries.
func (s *OrderService) GetOrders(
	ctx context.Context,
	actor user.Actor,
	filter *order.QueryOrdersModel,
) ([]order.Order, int64, error) {
	switch actor.Role {
	case user.RoleBuyer:
		filter.BuyerID = actor.UserID
	case user.RoleSeller:
		filter.SellerID = actor.SellerID
	case user.RoleDriver:
		filter.DriverID = actor.DriverID
	}

	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := work.OrderRepository().Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if len(orders) == 0 {
		return []order.Order{}, total, nil
	}

	orderIDs := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}
	items, err := work.OrderItemRepository().QueryByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, 0, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].Items = append(orders[i].Items, item)
			}
		}
	}

	return orders, total, nil
}

// GetOrder retrieves one order with its items, enforcing view access.
func (s *OrderService) GetOrder(ctx context.Context, actor user.Actor, orderID int64) (*order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanViewOrder(actor, o); err != nil {
		return nil, err
	}

	items, err := work.OrderItemRepository().QueryByOrderIDs(ctx, []int64{orderID})
	if err != nil {
		return nil, err
	}
	o.Items = items

	return o, nil
}

func (s *OrderService) sendOrderConfirmation(ctx context.Context, o order.Order) {
	if s.notifier == nil || s.userRepo == nil {
		return
	}

	buyer, err := s.userRepo.GetByID(ctx, o.BuyerID)
	if err != nil {
		slog.Error("Failed to load buyer for order confirmation", "order_number", o.OrderNumber, "error", err)

		return
	}

	if err := s.notifier.OrderConfirmation(ctx, buyer.Email, buyer.FullName, o.OrderNumber, o.TotalAmount); err != nil {
		slog.Error("Failed to send order confirmation", "order_number", o.OrderNumber, "error", err)
	}
}

func (s *OrderService) sendStatusUpdate(ctx context.Context, o order.Order) {
	if s.notifier == nil || s.userRepo == nil {
		return
	}

	buyer, err := s.userRepo.GetByID(ctx, o.BuyerID)
	if err != nil {
		slog.Error("Failed to load buyer for status update", "order_number", o.OrderNumber, "error", err)

		return
	}

	if err := s.notifier.OrderStatusUpdate(ctx, buyer.Email, buyer.FullName, o.OrderNumber, o.Status); err != nil {
		slog.Error("Failed to send status update", "order_number", o.OrderNumber, "error", err)
	}
}
