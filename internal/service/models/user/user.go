package user

import (
	"errors"
	"time"
)

// Role is the capability a user holds in the marketplace.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleDriver Role = "driver"
)

var ErrInvalidRole = errors.New("invalid role")

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleBuyer, RoleSeller, RoleDriver:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

// User represents an account in the system.
type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        Role      `json:"role"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Actor is a resolved authenticated identity. Profile ids are populated
// only for the matching role.
type Actor struct {
	UserID   int64
	Role     Role
	SellerID int64
	BuyerID  int64
	DriverID int64
}

// BuyerProfile carries the buyer's aggregate counters. The counters are
// incremented once per successful order and never decremented, even when an
// order is later cancelled.
type BuyerProfile struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Address     string    `json:"address"`
	TotalOrders int64     `json:"totalOrders"`
	TotalSpent  int64     `json:"totalSpent"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
