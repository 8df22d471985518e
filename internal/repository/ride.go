package repository

import (
	"context"

	"ridebooking/internal/domain"
)

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetByCustomer retrieves all rides requested by the given customer.
	GetByCustomer(ctx context.Context, customerID string) ([]*domain.Ride, error)

	// GetByDriver retrieves all rides assigned to the given driver.
	GetByDriver(ctx context.Context, driverID string) ([]*domain.Ride, error)

	// GetByStatus retrieves all rides in the given status.
	GetByStatus(ctx context.Context, status domain.RideStatus) ([]*domain.Ride, error)

	// GetWithFeedback retrieves all rides that have feedback recorded.
	GetWithFeedback(ctx context.Context) ([]*domain.Ride, error)

	// Update writes the ride conditionally on ride.Version matching the
	// stored row. On success the stored version is bumped and ride.Version
	// reflects the new value. Returns ErrConflict if the row was modified
	// concurrently, ErrNotFound if it does not exist.
	Update(ctx context.Context, ride *domain.Ride) error
}
