package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"ridebooking/internal/domain"
	"ridebooking/internal/repository"
)

// RideService owns the ride lifecycle: creation, acceptance, status
// transitions, cancellation and feedback. Every mutation re-checks its
// precondition atomically with the write through the repository's versioned
// update; a lost race is either reclassified against the fresh state or
// surfaced as a retryable conflict. The service never retries internally.
type RideService struct {
	rideRepo repository.RideRepository
	userRepo repository.UserRepository
	pricer   PricingStrategy
}

// NewRideService creates a new RideService.
func NewRideService(
	rideRepo repository.RideRepository,
	userRepo repository.UserRepository,
	pricer PricingStrategy,
) *RideService {
	return &RideService{
		rideRepo: rideRepo,
		userRepo: userRepo,
		pricer:   pricer,
	}
}

// CreateRideRequest contains the parameters for requesting a ride.
type CreateRideRequest struct {
	PickupLocation  string
	DropoffLocation string
	PaymentMethod   domain.PaymentMethod
}

// CreateRide creates a new ride in PENDING state for the calling customer.
func (s *RideService) CreateRide(ctx context.Context, p Principal, req CreateRideRequest) (*domain.Ride, error) {
	if !canRequestRide(p) {
		return nil, ErrNotCustomer
	}

	if strings.TrimSpace(req.PickupLocation) == "" {
		return nil, ErrEmptyPickupLocation
	}
	if strings.TrimSpace(req.DropoffLocation) == "" {
		return nil, ErrEmptyDropoffLocation
	}
	if !domain.ValidPaymentMethod(req.PaymentMethod) {
		return nil, ErrUnknownPaymentMethod
	}

	ride := &domain.Ride{
		ID:              uuid.New().String(),
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		Price:           s.pricer.Price(req.PickupLocation, req.DropoffLocation),
		Status:          domain.RideStatusPending,
		PaymentMethod:   req.PaymentMethod,
		CustomerID:      p.UserID,
		CreatedAt:       time.Now(),
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	return ride, nil
}

// AcceptRide assigns the calling driver to a pending ride. At most one
// driver wins a given ride: the conditional update fails for everyone who
// read the ride before the winner's write landed.
func (s *RideService) AcceptRide(ctx context.Context, p Principal, rideID string) (*domain.Ride, error) {
	if !canAcceptRide(p) {
		return nil, ErrNotDriver
	}
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if ride.Status != domain.RideStatusPending {
		return nil, ErrRideNotPending
	}

	driverID := p.UserID
	ride.DriverID = &driverID
	ride.Status = domain.RideStatusAccepted

	if err := s.rideRepo.Update(ctx, ride); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, s.classifyAcceptConflict(ctx, rideID)
		}
		return nil, err
	}

	return ride, nil
}

// classifyAcceptConflict decides what a lost accept race means: if the ride
// left PENDING, another driver won; otherwise the write collided with an
// unrelated update and the caller may retry.
func (s *RideService) classifyAcceptConflict(ctx context.Context, rideID string) error {
	fresh, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return err
	}
	if fresh.Status != domain.RideStatusPending {
		return ErrRideNotPending
	}
	return repository.ErrConflict
}

// UpdateStatusRequest contains the parameters for a driver status update.
type UpdateStatusRequest struct {
	RideID string
	Status domain.RideStatus
}

// UpdateStatus moves a ride one step forward along the transition graph
// (ACCEPTED -> IN_PROGRESS -> COMPLETED), on behalf of the assigned driver.
func (s *RideService) UpdateStatus(ctx context.Context, p Principal, req UpdateStatusRequest) (*domain.Ride, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if !domain.ValidRideStatus(req.Status) {
		return nil, ErrUnknownStatus
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	if !canUpdateStatus(p, ride) {
		return nil, ErrNotAssignedDriver
	}

	if err := checkStatusMove(ride.Status, req.Status); err != nil {
		return nil, err
	}

	ride.Status = req.Status

	if err := s.rideRepo.Update(ctx, ride); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, s.classifyStatusConflict(ctx, req.RideID, req.Status)
		}
		return nil, err
	}

	return ride, nil
}

func checkStatusMove(from, to domain.RideStatus) error {
	if from.IsTerminal() {
		return ErrRideTerminal
	}
	if !domain.CanTransition(from, to) {
		return ErrTransitionNotAllowed
	}
	return nil
}

func (s *RideService) classifyStatusConflict(ctx context.Context, rideID string, to domain.RideStatus) error {
	fresh, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return err
	}
	if err := checkStatusMove(fresh.Status, to); err != nil {
		return err
	}
	return repository.ErrConflict
}

// CancelRide cancels a ride that is still PENDING or ACCEPTED. Only the
// ride's own customer or its assigned driver may cancel.
func (s *RideService) CancelRide(ctx context.Context, p Principal, rideID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if !canCancelRide(p, ride) {
		return nil, ErrNotRideParty
	}

	if !ride.Status.Cancellable() {
		return nil, ErrRideNotCancellable
	}

	ride.Status = domain.RideStatusCancelled

	if err := s.rideRepo.Update(ctx, ride); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, s.classifyCancelConflict(ctx, rideID)
		}
		return nil, err
	}

	return ride, nil
}

func (s *RideService) classifyCancelConflict(ctx context.Context, rideID string) error {
	fresh, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return err
	}
	if !fresh.Status.Cancellable() {
		return ErrRideNotCancellable
	}
	return repository.ErrConflict
}

// FeedbackRequest contains the parameters for rating a completed ride.
type FeedbackRequest struct {
	RideID   string
	Rating   int
	Feedback string
}

// ProvideFeedback records the customer's rating and feedback text on a
// completed ride, exactly once.
func (s *RideService) ProvideFeedback(ctx context.Context, p Principal, req FeedbackRequest) (*domain.Ride, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrRatingOutOfRange
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	if !canProvideFeedback(p, ride) {
		return nil, ErrNotRideCustomer
	}

	if ride.Status != domain.RideStatusCompleted {
		return nil, ErrRideNotCompleted
	}
	if ride.HasFeedback() {
		return nil, ErrFeedbackAlreadyGiven
	}

	rating := req.Rating
	feedback := req.Feedback
	ride.Rating = &rating
	ride.Feedback = &feedback

	if err := s.rideRepo.Update(ctx, ride); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, s.classifyFeedbackConflict(ctx, req.RideID)
		}
		return nil, err
	}

	return ride, nil
}

func (s *RideService) classifyFeedbackConflict(ctx context.Context, rideID string) error {
	fresh, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return err
	}
	if fresh.Status != domain.RideStatusCompleted {
		return ErrRideNotCompleted
	}
	if fresh.HasFeedback() {
		return ErrFeedbackAlreadyGiven
	}
	return repository.ErrConflict
}

// RideDetail is a ride joined with its user references for display.
type RideDetail struct {
	Ride     *domain.Ride
	Customer *domain.User
	Driver   *domain.User // nil while unassigned
}

// ListRidesForCustomer returns all rides requested by the given customer,
// each joined with the assigned driver when there is one.
func (s *RideService) ListRidesForCustomer(ctx context.Context, customerID string) ([]*RideDetail, error) {
	customer, err := s.userRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	rides, err := s.rideRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return s.joinDetails(ctx, rides, customer)
}

// ListRidesForDriver returns all rides assigned to the given driver, each
// joined with the requesting customer.
func (s *RideService) ListRidesForDriver(ctx context.Context, driverID string) ([]*RideDetail, error) {
	if _, err := s.userRepo.GetByID(ctx, driverID); err != nil {
		return nil, err
	}

	rides, err := s.rideRepo.GetByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	return s.joinDetails(ctx, rides, nil)
}

// GetCompletedHistory returns the customer's completed rides.
func (s *RideService) GetCompletedHistory(ctx context.Context, customerID string) ([]*RideDetail, error) {
	details, err := s.ListRidesForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var completed []*RideDetail
	for _, d := range details {
		if d.Ride.Status == domain.RideStatusCompleted {
			completed = append(completed, d)
		}
	}
	return completed, nil
}

// ListFeedback returns all rides with recorded feedback, joined with their
// customers. Manager only.
func (s *RideService) ListFeedback(ctx context.Context, p Principal) ([]*RideDetail, error) {
	if !canListFeedback(p) {
		return nil, ErrNotManager
	}

	rides, err := s.rideRepo.GetWithFeedback(ctx)
	if err != nil {
		return nil, err
	}

	return s.joinDetails(ctx, rides, nil)
}

// joinDetails attaches user references to rides. A pre-fetched customer is
// reused across rides that share it; missing referenced users are tolerated
// (the ride still lists, without the stale reference).
func (s *RideService) joinDetails(ctx context.Context, rides []*domain.Ride, customer *domain.User) ([]*RideDetail, error) {
	users := make(map[string]*domain.User)
	if customer != nil {
		users[customer.ID] = customer
	}

	lookup := func(id string) (*domain.User, error) {
		if u, ok := users[id]; ok {
			return u, nil
		}
		u, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				users[id] = nil
				return nil, nil
			}
			return nil, err
		}
		users[id] = u
		return u, nil
	}

	details := make([]*RideDetail, 0, len(rides))
	for _, ride := range rides {
		d := &RideDetail{Ride: ride}

		c, err := lookup(ride.CustomerID)
		if err != nil {
			return nil, err
		}
		d.Customer = c

		if ride.DriverID != nil {
			drv, err := lookup(*ride.DriverID)
			if err != nil {
				return nil, err
			}
			d.Driver = drv
		}

		details = append(details, d)
	}
	return details, nil
}
