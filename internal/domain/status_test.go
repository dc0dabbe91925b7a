package domain

import (
	"testing"
	"time"
)

func TestVehicleStatusTransitions(t *testing.T) {
	if !VehicleStatusAvailable.CanTransition(VehicleStatusOnTrip) {
		t.Fatalf("expected Available -> OnTrip allowed")
	}
	if !VehicleStatusOnTrip.CanTransition(VehicleStatusAvailable) {
		t.Fatalf("expected OnTrip -> Available allowed")
	}
	if !VehicleStatusAvailable.CanTransition(VehicleStatusInShop) {
		t.Fatalf("expected Available -> InShop allowed")
	}
	if !VehicleStatusInShop.CanTransition(VehicleStatusAvailable) {
		t.Fatalf("expected InShop -> Available allowed")
	}
	if VehicleStatusOnTrip.CanTransition(VehicleStatusInShop) {
		t.Fatalf("expected OnTrip -> InShop rejected")
	}
	if VehicleStatusInShop.CanTransition(VehicleStatusOnTrip) {
		t.Fatalf("expected InShop -> OnTrip rejected")
	}
}

func TestDriverStatusTransitions(t *testing.T) {
	if !DriverStatusOffDuty.CanTransition(DriverStatusOnDuty) {
		t.Fatalf("expected OffDuty -> OnDuty allowed")
	}
	if !DriverStatusOnDuty.CanTransition(DriverStatusOffDuty) {
		t.Fatalf("expected OnDuty -> OffDuty allowed")
	}
	if DriverStatusSuspended.CanTransition(DriverStatusOnDuty) {
		t.Fatalf("expected Suspended to be terminal")
	}
	if DriverStatusOffDuty.CanTransition(DriverStatusSuspended) {
		t.Fatalf("suspension must not be reachable from the trip lifecycle")
	}
}

func TestTripStatusTransitions(t *testing.T) {
	if !TripStatusDispatched.CanTransition(TripStatusCompleted) {
		t.Fatalf("expected Dispatched -> Completed allowed")
	}
	if TripStatusCompleted.CanTransition(TripStatusDispatched) {
		t.Fatalf("expected Completed to be terminal")
	}
}

func TestLicenseValidAt(t *testing.T) {
	now := time.Now()
	d := &Driver{LicenseExpiry: now.Add(24 * time.Hour)}
	if !d.LicenseValidAt(now) {
		t.Fatalf("expected license valid before expiry")
	}

	d.LicenseExpiry = now.Add(-24 * time.Hour)
	if d.LicenseValidAt(now) {
		t.Fatalf("expected license invalid after expiry")
	}

	// Expiry exactly at now still counts as valid.
	d.LicenseExpiry = now
	if !d.LicenseValidAt(now) {
		t.Fatalf("expected license valid at the expiry instant")
	}
}
