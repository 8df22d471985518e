package tests

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"ridebooking/internal/domain"
	"ridebooking/internal/repository"
	"ridebooking/internal/service"
)

// seedRide puts a ride with the given status straight into the repository.
func seedRide(repo *MockRideRepository, id, customerID string, status domain.RideStatus, driverID *string) *domain.Ride {
	ride := &domain.Ride{
		ID:              id,
		PickupLocation:  "Main St 1",
		DropoffLocation: "Airport",
		Price:           42,
		Status:          status,
		PaymentMethod:   domain.PaymentMethodCash,
		CustomerID:      customerID,
		DriverID:        driverID,
		CreatedAt:       time.Now(),
	}
	repo.AddRide(ride)
	return ride
}

func strPtr(s string) *string { return &s }

func TestAcceptRide_OnlyDriversAllowed(t *testing.T) {
	svc, rideRepo, _ := newRideService()
	seedRide(rideRepo, "ride-1", customer.UserID, domain.RideStatusPending, nil)

	for _, p := range []service.Principal{customer, manager} {
		_, err := svc.AcceptRide(context.Background(), p, "ride-1")
		if !errors.Is(err, service.ErrForbidden) {
			t.Errorf("expected forbidden for %s, got %v", p.Role, err)
		}
	}
}

func TestAcceptRide_UnknownRide(t *testing.T) {
	svc, _, _ := newRideService()

	_, err := svc.AcceptRide(context.Background(), driver, "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestAcceptRide_SetsDriverAndStatus(t *testing.T) {
	svc, rideRepo, _ := newRideService()
	seedRide(rideRepo, "ride-1", customer.UserID, domain.RideStatusPending, nil)

	ride, err := svc.AcceptRide(context.Background(), driver, "ride-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ride.Status != domain.RideStatusAccepted {
		t.Errorf("expected ACCEPTED, got %s", ride.Status)
	}
	if ride.DriverID == nil || *ride.DriverID != driver.UserID {
		t.Errorf("expected driver %s assigned", driver.UserID)
	}
}

func TestAcceptRide_SecondDriverLoses(t *testing.T) {
	svc, rideRepo, _ := newRideService()
	seedRide(rideRepo, "ride-1", customer.UserID, domain.RideStatusPending, nil)

	if _, err := svc.AcceptRide(context.Background(), driver, "ride-1"); err != nil {
		t.Fatalf("first accept failed: %v", err)
	}

	d2 := service.Principal{UserID: "driver-2", Role: domain.RoleDriver}
	_, err := svc.AcceptRide(context.Background(), d2, "ride-1")
	if !errors.Is(err, service.ErrRideNotPending) {
		t.Errorf("expected ErrRideNotPending, got %v", err)
	}

	// Ride must be unchanged by the failed attempt.
	stored := rideRepo.GetRide("ride-1")
	if stored.DriverID == nil || *stored.DriverID != driver.UserID {
		t.Errorf("driver must remain %s", driver.UserID)
	}
	if stored.Status != domain.RideStatusAccepted {
		t.Errorf("status must remain ACCEPTED, got %s", stored.Status)
	}
}

func TestAcceptRide_ConcurrentRaceHasOneWinner(t *testing.T) {
	svc, rideRepo, _ := newRideService()
	seedRide(rideRepo, "ride-1", customer.UserID, domain.RideStatusPending, nil)

	const drivers = 20
	var wg sync.WaitGroup
	errs := make([]error, drivers)

	for i := 0; i < drivers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := service.Principal{UserID: fmt.Sprintf("driver-%d", i), Role: domain.RoleDriver}
			_, errs[i] = svc.AcceptRide(context.Background(), p, "ride-1")
		}(i)
	}
	wg.Wait()

	var wins, notPending int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, service.ErrRideNotPending):
			notPending++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Errorf("expected exactly 1 winner, got %d", wins)
	}
	if notPending != drivers-1 {
		t.Errorf("expected %d losers, got %d", drivers-1, notPending)
	}

	stored := rideRepo.GetRide("ride-1")
	if stored.Status != domain.RideStatusAccepted || stored.DriverID == nil {
		t.Error("ride should end up ACCEPTED with a driver assigned")
	}
}

func TestUpdateStatus_RequiresAssignedDriver(t *testing.T) {
	svc, rideRepo, _ := newRideService()
	seedRide(rideRepo, "ride-1", customer.UserID, domain.RideStatusAccepted, strPtr(driver.UserID))

	testCases := []struct {
		name      string
		principal service.Principal
	}{
		{"other driver", service.Principal{UserID: "driver-2", Role: domain.RoleDriver}},
		{"the customer", customer},
		{"a manager", manager},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateStatus(context.Background(), tc.principal, service.UpdateStatusRequest{
				RideID: "ride-1",
				Status: domain.RideStatusInProgress,
			})
			if !errors.Is(err, service.ErrForbidden) {
				t.Errorf("expected forbidden, got %v", err)
			}
		})
	}

	if got := rideRepo.GetRide("ride-1").Status; got != domain.RideStatusAccepted {
		t.Errorf("ride must remain ACCEPTED, got %s", got)
	}
}

func TestUpdateStatus_FollowsTransitionGraph(t *testing.T) {
	testCases := []struct {
		name string
		from domain.RideStatus
		to   domain.RideStatus
		want error
	}{
		{"accepted to in progress", domain.RideStatusAccepted, domain.RideStatusInProgress, nil},
		{"in progress to completed", domain.RideStatusInProgress, domain.RideStatusCompleted, nil},
		{"skip to completed", domain.RideStatusAccepted, domain.RideStatusCompleted, service.ErrTransitionNotAllowed},
		{"backward move", domain.RideStatusInProgress, domain.RideStatusAccepted, service.ErrTransitionNotAllowed},
		{"cancel via update", domain.RideStatusAccepted, domain.RideStatusCancelled, service.ErrTransitionNotAllowed},
		{"update completed ride", domain.RideStatusCompleted, domain.RideStatusInProgress, service.ErrRideTerminal},
		{"update cancelled ride", domain.RideStatusCancelled, domain.RideStatusInProgress, service.ErrRideTerminal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, rideRepo, _ := newRideService()
			seedRide(rideRepo, "ride-1", customer.UserID, tc.from, strPtr(driver.UserID))

			ride, err := svc.UpdateStatus(context.Background(), driver, service.UpdateStatusRequest{
				RideID: "ride-1",
				Status: tc.to,
			})

			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if ride.Status != tc.to {
					t.Errorf("expected %s, got %s", tc.to, ride.Status)
				}
				return
			}

			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
			if got := rideRepo.GetRide("ride-1").Status; got != tc.from {
				t.Errorf("failed update must not mutate: expected %s, got %s", tc.from, got)
			}
		})
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc, rideRepo, _ := newRideService()
	seedRide(rideRepo, "ride-1", customer.UserID, domain.RideStatusAccepted, strPtr(driver.UserID))

	_, err := svc.UpdateStatus(context.Background(), driver, service.UpdateStatusRequest{
		RideID: "ride-1",
		Status: "TELEPORTED",
	})
	if !errors.Is(err, service.ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
}

// TestFullLifecycle drives one ride through the happy path end to end.
func TestFullLifecycle(t *testing.T) {
	svc, rideRepo, _ := newRideService()
	ctx := context.Background()

	ride, err := svc.CreateRide(ctx, customer, service.CreateRideRequest{
		PickupLocation:  "A",
		DropoffLocation: "B",
		PaymentMethod:   domain.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ride.Status != domain.RideStatusPending || ride.DriverID != nil {
		t.Fatal("new ride should be PENDING and unassigned")
	}

	d1 := service.Principal{UserID: "d1", Role: domain.RoleDriver}
	d2 := service.Principal{UserID: "d2", Role: domain.RoleDriver}

	if _, err := svc.AcceptRide(ctx, d1, ride.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if _, err := svc.AcceptRide(ctx, d2, ride.ID); !errors.Is(err, service.ErrRideNotPending) {
		t.Fatalf("second accept should fail with ErrRideNotPending, got %v", err)
	}
	if got := rideRepo.GetRide(ride.ID); *got.DriverID != "d1" {
		t.Fatal("losing accept must not change the assignment")
	}

	if _, err := svc.UpdateStatus(ctx, d1, service.UpdateStatusRequest{RideID: ride.ID, Status: domain.RideStatusInProgress}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, d1, service.UpdateStatusRequest{RideID: ride.ID, Status: domain.RideStatusCompleted}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	got, err := svc.ProvideFeedback(ctx, customer, service.FeedbackRequest{RideID: ride.ID, Rating: 5, Feedback: "great"})
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if got.Rating == nil || *got.Rating != 5 {
		t.Fatal("rating should be stored")
	}

	if _, err := svc.ProvideFeedback(ctx, customer, service.FeedbackRequest{RideID: ride.ID, Rating: 4}); !errors.Is(err, service.ErrFeedbackAlreadyGiven) {
		t.Fatalf("second feedback should fail with ErrFeedbackAlreadyGiven, got %v", err)
	}
}
