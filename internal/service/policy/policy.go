// Package policy holds the single authorization predicate per
// (actor role, resource, action) triple, so role checks are not repeated
// inline across handlers and services.
package policy

import (
	"github.com/fooddash/marketplace/internal/service/models/apperror"
	"github.com/fooddash/marketplace/internal/service/models/food"
	"github.com/fooddash/marketplace/internal/service/models/order"
	"github.com/fooddash/marketplace/internal/service/models/user"
)

// CanViewOrder allows the order's buyer, the owning seller, and the
// assigned driver.
func CanViewOrder(actor user.Actor, o *order.Order) error {
	switch actor.Role {
	case user.RoleBuyer:
		if o.BuyerID != actor.UserID {
			return apperror.Forbidden("not authorized to access this order")
		}
	case user.RoleSeller:
		if o.SellerID != actor.SellerID {
			return apperror.Forbidden("not authorized to access this order")
		}
	case user.RoleDriver:
		if o.DriverID == nil || *o.DriverID != actor.DriverID {
			return apperror.Forbidden("not authorized to access this order")
		}
	}

	return nil
}

// CanUpdateOrderStatus gates status transitions by role: sellers may set
// any status on orders of their own store, buyers may only cancel their
// own orders, drivers have no status-update rights.
func CanUpdateOrderStatus(actor user.Actor, o *order.Order, target order.Status) error {
	switch actor.Role {
	case user.RoleSeller:
		if o.SellerID != actor.SellerID {
			return apperror.Forbidden("not authorized to update this order")
		}
	case user.RoleBuyer:
		if o.BuyerID != actor.UserID {
			return apperror.Forbidden("not authorized to update this order")
		}
		if target != order.StatusCancelled {
			return apperror.Forbidden("buyers can only cancel orders")
		}
	default:
		return apperror.Forbidden("drivers cannot update order status")
	}

	return nil
}

// CanCreatePayment allows only the buyer who owns the order.
func CanCreatePayment(actor user.Actor, o *order.Order) error {
	if actor.Role != user.RoleBuyer || o.BuyerID != actor.UserID {
		return apperror.Forbidden("not authorized to create payment for this order")
	}

	return nil
}

// CanUpdatePayment allows only the seller who owns the paid order: the
// merchant acts as the trusted settlement confirmer.
func CanUpdatePayment(actor user.Actor, o *order.Order) error {
	if actor.Role != user.RoleSeller || o.SellerID != actor.SellerID {
		return apperror.Forbidden("not authorized to update this payment")
	}

	return nil
}

// CanViewPayment allows the order's buyer and the owning seller.
func CanViewPayment(actor user.Actor, o *order.Order) error {
	switch actor.Role {
	case user.RoleBuyer:
		if o.BuyerID != actor.UserID {
			return apperror.Forbidden("not authorized to access this payment")
		}
	case user.RoleSeller:
		if o.SellerID != actor.SellerID {
			return apperror.Forbidden("not authorized to access this payment")
		}
	default:
		return apperror.Forbidden("not authorized to access this payment")
	}

	return nil
}

// CanEditFood allows only the seller who owns the catalog item.
func CanEditFood(actor user.Actor, f *food.Food) error {
	if actor.Role != user.RoleSeller || f.SellerID != actor.SellerID {
		return apperror.Forbidden("not authorized to edit this food")
	}

	return nil
}

// RequireRole rejects actors whose role differs from want.
func RequireRole(actor user.Actor, want user.Role) error {
	if actor.Role != want {
		return apperror.Forbidden("only %ss can access this endpoint", want)
	}

	return nil
}
