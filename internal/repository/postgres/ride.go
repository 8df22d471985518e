package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ridebooking/internal/domain"
	"ridebooking/internal/repository"
)

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

const rideColumns = `id, pickup_location, dropoff_location, price, status, payment_method, customer_id, driver_id, rating, feedback, version, created_at`

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (` + rideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.PickupLocation,
		ride.DropoffLocation,
		ride.Price,
		ride.Status,
		ride.PaymentMethod,
		ride.CustomerID,
		nullString(ride.DriverID),
		nullInt(ride.Rating),
		nullString(ride.Feedback),
		ride.Version,
		ride.CreatedAt,
	)

	return err
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`

	ride, err := scanRide(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return ride, nil
}

// GetByCustomer retrieves all rides requested by the given customer.
func (r *RideRepository) GetByCustomer(ctx context.Context, customerID string) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE customer_id = $1 ORDER BY created_at DESC`
	return r.queryRides(ctx, query, customerID)
}

// GetByDriver retrieves all rides assigned to the given driver.
func (r *RideRepository) GetByDriver(ctx context.Context, driverID string) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE driver_id = $1 ORDER BY created_at DESC`
	return r.queryRides(ctx, query, driverID)
}

// GetByStatus retrieves all rides in the given status.
func (r *RideRepository) GetByStatus(ctx context.Context, status domain.RideStatus) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE status = $1 ORDER BY created_at DESC`
	return r.queryRides(ctx, query, status)
}

// GetWithFeedback retrieves all rides that have feedback recorded.
func (r *RideRepository) GetWithFeedback(ctx context.Context) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE rating IS NOT NULL ORDER BY created_at DESC`
	return r.queryRides(ctx, query)
}

// Update writes the ride conditionally on its loaded version. The WHERE
// clause on version makes each read-modify-write an atomic compare-and-swap:
// a concurrent writer bumps the version and this statement matches zero rows.
func (r *RideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	query := `
		UPDATE rides
		SET status = $1, driver_id = $2, rating = $3, feedback = $4, version = version + 1
		WHERE id = $5 AND version = $6
	`

	result, err := r.q.ExecContext(ctx, query,
		ride.Status,
		nullString(ride.DriverID),
		nullInt(ride.Rating),
		nullString(ride.Feedback),
		ride.ID,
		ride.Version,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		// Distinguish a lost race from a missing row.
		var exists bool
		if err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM rides WHERE id = $1)`, ride.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
		return repository.ErrConflict
	}

	ride.Version++
	return nil
}

func (r *RideRepository) queryRides(ctx context.Context, query string, args ...any) ([]*domain.Ride, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRide(row rowScanner) (*domain.Ride, error) {
	var ride domain.Ride
	var driverID, feedback sql.NullString
	var rating sql.NullInt64

	err := row.Scan(
		&ride.ID,
		&ride.PickupLocation,
		&ride.DropoffLocation,
		&ride.Price,
		&ride.Status,
		&ride.PaymentMethod,
		&ride.CustomerID,
		&driverID,
		&rating,
		&feedback,
		&ride.Version,
		&ride.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if driverID.Valid {
		ride.DriverID = &driverID.String
	}
	if rating.Valid {
		v := int(rating.Int64)
		ride.Rating = &v
	}
	if feedback.Valid {
		ride.Feedback = &feedback.String
	}

	return &ride, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
