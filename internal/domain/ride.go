package domain

import "time"

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusPending    RideStatus = "PENDING"
	RideStatusAccepted   RideStatus = "ACCEPTED"
	RideStatusInProgress RideStatus = "IN_PROGRESS"
	RideStatusCompleted  RideStatus = "COMPLETED"
	RideStatusCancelled  RideStatus = "CANCELLED"
)

// PaymentMethod represents the payment method for a ride.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

// Ride represents a ride request in the system.
//
// DriverID, Rating and Feedback are pointers so that "unset" is distinct
// from an empty or zero value: DriverID stays nil until a driver accepts,
// Rating/Feedback stay nil until the customer submits feedback.
type Ride struct {
	ID              string
	PickupLocation  string
	DropoffLocation string
	Price           float64
	Status          RideStatus
	PaymentMethod   PaymentMethod
	CustomerID      string
	DriverID        *string
	Rating          *int
	Feedback        *string
	Version         int64 // bumped on every update, used for conditional writes
	CreatedAt       time.Time
}

// transitions holds the forward edges of the driver-driven status graph.
// Pending is absent on both sides: a ride leaves Pending only through
// acceptance or cancellation, which carry their own rules.
var transitions = map[RideStatus]RideStatus{
	RideStatusAccepted:   RideStatusInProgress,
	RideStatusInProgress: RideStatusCompleted,
}

// CanTransition reports whether a status update from one status to another
// is legal. Only single forward steps are accepted, no skipping.
func CanTransition(from, to RideStatus) bool {
	next, ok := transitions[from]
	return ok && next == to
}

// IsTerminal reports whether no further status mutation is permitted.
func (s RideStatus) IsTerminal() bool {
	return s == RideStatusCompleted || s == RideStatusCancelled
}

// Cancellable reports whether a ride in this status may still be cancelled.
func (s RideStatus) Cancellable() bool {
	return s == RideStatusPending || s == RideStatusAccepted
}

// ValidRideStatus reports whether the value is a known ride status.
func ValidRideStatus(s RideStatus) bool {
	switch s {
	case RideStatusPending, RideStatusAccepted, RideStatusInProgress,
		RideStatusCompleted, RideStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether the value is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentMethodCash || m == PaymentMethodOnline
}

// HasFeedback reports whether feedback has already been recorded.
func (r *Ride) HasFeedback() bool {
	return r.Rating != nil
}
