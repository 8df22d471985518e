package domain

import "testing"

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		name string
		from RideStatus
		to   RideStatus
		want bool
	}{
		{"accepted to in progress", RideStatusAccepted, RideStatusInProgress, true},
		{"in progress to completed", RideStatusInProgress, RideStatusCompleted, true},
		{"accepted skips to completed", RideStatusAccepted, RideStatusCompleted, false},
		{"pending to accepted via update", RideStatusPending, RideStatusAccepted, false},
		{"pending to in progress", RideStatusPending, RideStatusInProgress, false},
		{"backward in progress to accepted", RideStatusInProgress, RideStatusAccepted, false},
		{"completed to in progress", RideStatusCompleted, RideStatusInProgress, false},
		{"cancelled to accepted", RideStatusCancelled, RideStatusAccepted, false},
		{"in progress to cancelled via update", RideStatusInProgress, RideStatusCancelled, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransition(tc.from, tc.to); got != tc.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []RideStatus{RideStatusCompleted, RideStatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []RideStatus{RideStatusPending, RideStatusAccepted, RideStatusInProgress} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestCancellable(t *testing.T) {
	for _, s := range []RideStatus{RideStatusPending, RideStatusAccepted} {
		if !s.Cancellable() {
			t.Errorf("%s should be cancellable", s)
		}
	}
	for _, s := range []RideStatus{RideStatusInProgress, RideStatusCompleted, RideStatusCancelled} {
		if s.Cancellable() {
			t.Errorf("%s should not be cancellable", s)
		}
	}
}

func TestValidPaymentMethod(t *testing.T) {
	if !ValidPaymentMethod(PaymentMethodCash) || !ValidPaymentMethod(PaymentMethodOnline) {
		t.Error("known payment methods should be valid")
	}
	if ValidPaymentMethod("CARD") {
		t.Error("unknown payment method should be invalid")
	}
}
