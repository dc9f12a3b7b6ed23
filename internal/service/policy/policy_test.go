package policy

import (
	"testing"

	"github.com/fooddash/marketplace/internal/service/models/apperror"
	"github.com/fooddash/marketplace/internal/service/models/food"
	"github.com/fooddash/marketplace/internal/service/models/order"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/stretchr/testify/assert"
)

func buyer(userID int64) user.Actor {
	return user.Actor{UserID: userID, Role: user.RoleBuyer, BuyerID: userID}
}

func seller(sellerID int64) user.Actor {
	return user.Actor{UserID: 100 + sellerID, Role: user.RoleSeller, SellerID: sellerID}
}

func driver(driverID int64) user.Actor {
	return user.Actor{UserID: 200 + driverID, Role: user.RoleDriver, DriverID: driverID}
}

func TestCanViewOrder(t *testing.T) {
	driverID := int64(5)
	o := &order.Order{BuyerID: 1, SellerID: 2, DriverID: &driverID}

	assert.NoError(t, CanViewOrder(buyer(1), o))
	assert.NoError(t, CanViewOrder(seller(2), o))
	assert.NoError(t, CanViewOrder(driver(5), o))

	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(CanViewOrder(buyer(9), o)))
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(CanViewOrder(seller(9), o)))
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(CanViewOrder(driver(9), o)))

	unassigned := &order.Order{BuyerID: 1, SellerID: 2}
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(CanViewOrder(driver(5), unassigned)))
}

func TestCanUpdateOrderStatus(t *testing.T) {
	o := &order.Order{BuyerID: 1, SellerID: 2}

	// Sellers may set any status on their own store's orders.
	assert.NoError(t, CanUpdateOrderStatus(seller(2), o, order.StatusPreparing))
	assert.NoError(t, CanUpdateOrderStatus(seller(2), o, order.StatusCancelled))
	assert.Equal(t, apperror.KindForbidden,
		apperror.KindOf(CanUpdateOrderStatus(seller(9), o, order.StatusPreparing)))

	// Buyers may only cancel, and only their own orders.
	assert.NoError(t, CanUpdateOrderStatus(buyer(1), o, order.StatusCancelled))
	assert.Equal(t, apperror.KindForbidden,
		apperror.KindOf(CanUpdateOrderStatus(buyer(1), o, order.StatusConfirmed)))
	assert.Equal(t, apperror.KindForbidden,
		apperror.KindOf(CanUpdateOrderStatus(buyer(9), o, order.StatusCancelled)))

	// Drivers never update statuses.
	assert.Equal(t, apperror.KindForbidden,
		apperror.KindOf(CanUpdateOrderStatus(driver(5), o, order.StatusDelivered)))
}

func TestPaymentPolicies(t *testing.T) {
	o := &order.Order{BuyerID: 1, SellerID: 2}

	assert.NoError(t, CanCreatePayment(buyer(1), o))
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(CanCreatePayment(buyer(9), o)))
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(CanCreatePayment(seller(2), o)))

	assert.NoError(t, CanUpdatePayment(seller(2), o))
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(CanUpdatePayment(seller(9), o)))
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(CanUpdatePayment(buyer(1), o)))

	assert.NoError(t, CanViewPayment(buyer(1), o))
	assert.NoError(t, CanViewPayment(seller(2), o))
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(CanViewPayment(driver(5), o)))
}

func TestCanEditFood(t *testing.T) {
	f := &food.Food{SellerID: 2}

	assert.NoError(t, CanEditFood(seller(2), f))
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(CanEditFood(seller(9), f)))
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(CanEditFood(buyer(1), f)))
}

func TestRequireRole(t *testing.T) {
	assert.NoError(t, RequireRole(buyer(1), user.RoleBuyer))
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(RequireRole(driver(5), user.RoleBuyer)))
}
