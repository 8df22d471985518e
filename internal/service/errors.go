package service

import (
	"errors"
	"fmt"
)

// Base error kinds. Every service error wraps exactly one of these, so
// callers can classify with errors.Is at either level of detail.
var (
	// ErrForbidden is returned when a role or ownership check fails.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned when a field value is malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTransition is returned when an operation is not legal in
	// the ride's current state.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrUnauthenticated is returned when no valid credential is presented.
	ErrUnauthenticated = errors.New("unauthenticated")
)

var (
	// ErrNotCustomer is returned when a non-customer tries to request a ride.
	ErrNotCustomer = fmt.Errorf("%w: only customers can request rides", ErrForbidden)

	// ErrNotDriver is returned when a non-driver tries to accept a ride.
	ErrNotDriver = fmt.Errorf("%w: only drivers can accept rides", ErrForbidden)

	// ErrNotManager is returned when a non-manager requests the feedback report.
	ErrNotManager = fmt.Errorf("%w: only managers can list feedback", ErrForbidden)

	// ErrNotRideCustomer is returned when the caller is not the ride's customer.
	ErrNotRideCustomer = fmt.Errorf("%w: not the ride's customer", ErrForbidden)

	// ErrNotAssignedDriver is returned when the caller is not the ride's driver.
	ErrNotAssignedDriver = fmt.Errorf("%w: not the ride's assigned driver", ErrForbidden)

	// ErrNotRideParty is returned when the caller is neither the ride's
	// customer nor its assigned driver.
	ErrNotRideParty = fmt.Errorf("%w: not a party to this ride", ErrForbidden)

	// ErrEmptyPickupLocation is returned when the pickup location is empty.
	ErrEmptyPickupLocation = fmt.Errorf("%w: pickup location is required", ErrInvalidInput)

	// ErrEmptyDropoffLocation is returned when the dropoff location is empty.
	ErrEmptyDropoffLocation = fmt.Errorf("%w: dropoff location is required", ErrInvalidInput)

	// ErrUnknownPaymentMethod is returned when the payment method is not recognized.
	ErrUnknownPaymentMethod = fmt.Errorf("%w: unknown payment method", ErrInvalidInput)

	// ErrUnknownStatus is returned when the requested status is not recognized.
	ErrUnknownStatus = fmt.Errorf("%w: unknown ride status", ErrInvalidInput)

	// ErrRatingOutOfRange is returned when the rating is outside 1-5.
	ErrRatingOutOfRange = fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)

	// ErrInvalidRideID is returned when the ride ID is empty.
	ErrInvalidRideID = fmt.Errorf("%w: ride id is required", ErrInvalidInput)

	// ErrRideNotPending is returned when accepting a ride that is no longer pending.
	ErrRideNotPending = fmt.Errorf("%w: ride is no longer pending", ErrInvalidTransition)

	// ErrRideTerminal is returned when mutating a completed or cancelled ride.
	ErrRideTerminal = fmt.Errorf("%w: ride is in a terminal state", ErrInvalidTransition)

	// ErrTransitionNotAllowed is returned for a status move outside the
	// transition graph.
	ErrTransitionNotAllowed = fmt.Errorf("%w: status change not allowed from current state", ErrInvalidTransition)

	// ErrRideNotCompleted is returned when rating a ride that has not finished.
	ErrRideNotCompleted = fmt.Errorf("%w: ride is not completed", ErrInvalidTransition)

	// ErrFeedbackAlreadyGiven is returned when feedback was already recorded.
	ErrFeedbackAlreadyGiven = fmt.Errorf("%w: feedback already recorded", ErrInvalidTransition)

	// ErrRideNotCancellable is returned when the ride can no longer be cancelled.
	ErrRideNotCancellable = fmt.Errorf("%w: ride cannot be cancelled in current state", ErrInvalidTransition)

	// ErrInvalidCredentials is returned on a failed sign-in.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)

	// ErrTokenRevoked is returned when a signed-out token is presented.
	ErrTokenRevoked = fmt.Errorf("%w: token has been revoked", ErrUnauthenticated)

	// ErrEmailTaken is returned when signing up with an email already in use.
	ErrEmailTaken = errors.New("email already registered")
)
