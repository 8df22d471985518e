package service

import "ridebooking/internal/domain"

// Principal is the authenticated caller of an operation, as resolved by the
// auth layer before the engine is invoked.
type Principal struct {
	UserID string
	Role   domain.Role
}

// Authorization predicates, one per mutating operation. Each is a pure
// function of the principal and (where relevant) the ride, checked before
// any mutation.

func canRequestRide(p Principal) bool {
	return p.Role == domain.RoleCustomer
}

func canAcceptRide(p Principal) bool {
	return p.Role == domain.RoleDriver
}

func canUpdateStatus(p Principal, ride *domain.Ride) bool {
	return p.Role == domain.RoleDriver &&
		ride.DriverID != nil && *ride.DriverID == p.UserID
}

func canProvideFeedback(p Principal, ride *domain.Ride) bool {
	return p.Role == domain.RoleCustomer && ride.CustomerID == p.UserID
}

// canCancelRide allows the ride's own customer or its assigned driver.
func canCancelRide(p Principal, ride *domain.Ride) bool {
	switch p.Role {
	case domain.RoleCustomer:
		return ride.CustomerID == p.UserID
	case domain.RoleDriver:
		return ride.DriverID != nil && *ride.DriverID == p.UserID
	}
	return false
}

func canListFeedback(p Principal) bool {
	return p.Role == domain.RoleManager
}
