package tests

import (
	"context"
	"errors"
	"testing"

	"ridebooking/internal/domain"
	"ridebooking/internal/service"
)

func newRideService() (*service.RideService, *MockRideRepository, *MockUserRepository) {
	rideRepo := NewMockRideRepository()
	userRepo := NewMockUserRepository()
	return service.NewRideService(rideRepo, userRepo, service.NewRandomPricer()), rideRepo, userRepo
}

var (
	customer = service.Principal{UserID: "customer-1", Role: domain.RoleCustomer}
	driver   = service.Principal{UserID: "driver-1", Role: domain.RoleDriver}
	manager  = service.Principal{UserID: "manager-1", Role: domain.RoleManager}
)

func TestCreateRide_OnlyCustomersAllowed(t *testing.T) {
	svc, rideRepo, _ := newRideService()

	testCases := []struct {
		name      string
		principal service.Principal
	}{
		{"driver", driver},
		{"manager", manager},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateRide(context.Background(), tc.principal, service.CreateRideRequest{
				PickupLocation:  "Main St 1",
				DropoffLocation: "Airport",
				PaymentMethod:   domain.PaymentMethodCash,
			})

			if !errors.Is(err, service.ErrForbidden) {
				t.Errorf("expected forbidden error, got %v", err)
			}
		})
	}

	if rideRepo.CreateCallCount != 0 {
		t.Errorf("no ride should have been persisted, got %d creates", rideRepo.CreateCallCount)
	}
}

func TestCreateRide_ValidatesLocations(t *testing.T) {
	svc, _, _ := newRideService()

	testCases := []struct {
		name    string
		pickup  string
		dropoff string
		want    error
	}{
		{"empty pickup", "", "Airport", service.ErrEmptyPickupLocation},
		{"blank pickup", "   ", "Airport", service.ErrEmptyPickupLocation},
		{"empty dropoff", "Main St 1", "", service.ErrEmptyDropoffLocation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateRide(context.Background(), customer, service.CreateRideRequest{
				PickupLocation:  tc.pickup,
				DropoffLocation: tc.dropoff,
				PaymentMethod:   domain.PaymentMethodCash,
			})

			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateRide_ValidatesPaymentMethod(t *testing.T) {
	svc, _, _ := newRideService()

	for _, method := range []string{"", "CARD", "cash"} {
		_, err := svc.CreateRide(context.Background(), customer, service.CreateRideRequest{
			PickupLocation:  "Main St 1",
			DropoffLocation: "Airport",
			PaymentMethod:   domain.PaymentMethod(method),
		})

		if !errors.Is(err, service.ErrUnknownPaymentMethod) {
			t.Errorf("expected ErrUnknownPaymentMethod for %q, got %v", method, err)
		}
	}
}

func TestCreateRide_Success(t *testing.T) {
	svc, rideRepo, _ := newRideService()

	ride, err := svc.CreateRide(context.Background(), customer, service.CreateRideRequest{
		PickupLocation:  "Main St 1",
		DropoffLocation: "Airport",
		PaymentMethod:   domain.PaymentMethodOnline,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ride.ID == "" {
		t.Error("ride should have an ID assigned")
	}
	if ride.Status != domain.RideStatusPending {
		t.Errorf("new ride should be PENDING, got %s", ride.Status)
	}
	if ride.CustomerID != customer.UserID {
		t.Errorf("customer should be %s, got %s", customer.UserID, ride.CustomerID)
	}
	if ride.DriverID != nil {
		t.Error("new ride should have no driver")
	}
	if ride.Rating != nil || ride.Feedback != nil {
		t.Error("new ride should have no feedback")
	}
	if ride.PaymentMethod != domain.PaymentMethodOnline {
		t.Errorf("payment method should be ONLINE, got %s", ride.PaymentMethod)
	}
	if ride.CreatedAt.IsZero() {
		t.Error("created timestamp should be set")
	}
	if rideRepo.CreateCallCount != 1 {
		t.Errorf("expected 1 create, got %d", rideRepo.CreateCallCount)
	}
}

func TestCreateRide_DemoPriceWithinRange(t *testing.T) {
	svc, _, _ := newRideService()

	for i := 0; i < 200; i++ {
		ride, err := svc.CreateRide(context.Background(), customer, service.CreateRideRequest{
			PickupLocation:  "A",
			DropoffLocation: "B",
			PaymentMethod:   domain.PaymentMethodCash,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ride.Price < 20 || ride.Price >= 120 {
			t.Fatalf("demo price %f outside [20, 120)", ride.Price)
		}
	}
}
