package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
	"dispatch/internal/service"
)

// newLifecycle wires a TripLifecycle against mocks only. The nil *sql.DB is
// safe for every path that fails validation before a transaction opens.
func newLifecycle(trips *MockTripRepository, drivers *MockDriverRepository, vehicles *MockVehicleRepository, locks *MockLockStore) *service.TripLifecycle {
	return service.NewTripLifecycle(nil, trips, drivers, vehicles, locks, nil)
}

func pendingTrip(id string) *domain.Trip {
	return &domain.Trip{
		ID:             id,
		Origin:         "Colombo",
		Destination:    "Galle",
		PassengerCount: 2,
		Category:       domain.CategoryCasual,
		Status:         domain.TripStatusPending,
		CreatedAt:      time.Now(),
	}
}

func TestCanTransition_Table(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to domain.TripStatus
		want     bool
	}{
		{domain.TripStatusPending, domain.TripStatusConfirmed, true},
		{domain.TripStatusPending, domain.TripStatusCancelled, true},
		{domain.TripStatusPending, domain.TripStatusRejected, true},
		{domain.TripStatusPending, domain.TripStatusInProgress, false},
		{domain.TripStatusPending, domain.TripStatusCompleted, false},
		{domain.TripStatusConfirmed, domain.TripStatusInProgress, true},
		{domain.TripStatusConfirmed, domain.TripStatusCancelled, true},
		{domain.TripStatusConfirmed, domain.TripStatusCompleted, false},
		{domain.TripStatusConfirmed, domain.TripStatusRejected, false},
		{domain.TripStatusConfirmed, domain.TripStatusConfirmed, false},
		{domain.TripStatusInProgress, domain.TripStatusCompleted, true},
		{domain.TripStatusInProgress, domain.TripStatusCancelled, false},
		{domain.TripStatusInProgress, domain.TripStatusInProgress, false},
		// Terminal states allow nothing, including repeats.
		{domain.TripStatusCompleted, domain.TripStatusCompleted, false},
		{domain.TripStatusCompleted, domain.TripStatusPending, false},
		{domain.TripStatusCancelled, domain.TripStatusCancelled, false},
		{domain.TripStatusCancelled, domain.TripStatusConfirmed, false},
		{domain.TripStatusRejected, domain.TripStatusPending, false},
	}

	for _, tc := range cases {
		if got := service.CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestConfirmAssignment_ValidationErrors(t *testing.T) {
	t.Parallel()

	lifecycle := newLifecycle(NewMockTripRepository(), NewMockDriverRepository(), NewMockVehicleRepository(), NewMockLockStore())

	cases := []struct {
		name string
		req  service.ConfirmAssignmentRequest
		want error
	}{
		{
			name: "missing trip id",
			req:  service.ConfirmAssignmentRequest{DriverID: "d1", VehicleID: "v1", EstimatedCost: 100},
			want: service.ErrInvalidTripID,
		},
		{
			name: "missing driver",
			req:  service.ConfirmAssignmentRequest{TripID: "t1", VehicleID: "v1", EstimatedCost: 100},
			want: service.ErrIncompleteAssignment,
		},
		{
			name: "missing vehicle",
			req:  service.ConfirmAssignmentRequest{TripID: "t1", DriverID: "d1", EstimatedCost: 100},
			want: service.ErrIncompleteAssignment,
		},
		{
			name: "non-positive cost",
			req:  service.ConfirmAssignmentRequest{TripID: "t1", DriverID: "d1", VehicleID: "v1"},
			want: service.ErrInvalidCost,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lifecycle.ConfirmAssignment(context.Background(), tc.req)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfirmAssignment_UnknownTrip(t *testing.T) {
	t.Parallel()

	lifecycle := newLifecycle(NewMockTripRepository(), NewMockDriverRepository(), NewMockVehicleRepository(), NewMockLockStore())

	_, err := lifecycle.ConfirmAssignment(context.Background(), service.ConfirmAssignmentRequest{
		TripID: "missing", DriverID: "d1", VehicleID: "v1", EstimatedCost: 100,
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestConfirmAssignment_NonPendingTrip(t *testing.T) {
	t.Parallel()

	trips := NewMockTripRepository()
	trip := pendingTrip("t1")
	trip.Status = domain.TripStatusConfirmed
	trips.AddTrip(trip)

	lifecycle := newLifecycle(trips, NewMockDriverRepository(), NewMockVehicleRepository(), NewMockLockStore())

	_, err := lifecycle.ConfirmAssignment(context.Background(), service.ConfirmAssignmentRequest{
		TripID: "t1", DriverID: "d1", VehicleID: "v1", EstimatedCost: 100,
	})

	var transErr *service.InvalidTransitionError
	if !errors.As(err, &transErr) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if transErr.From != domain.TripStatusConfirmed || transErr.To != domain.TripStatusConfirmed {
		t.Errorf("unexpected transition pair: %+v", transErr)
	}
}

func TestConfirmAssignment_TripLocked(t *testing.T) {
	t.Parallel()

	trips := NewMockTripRepository()
	trips.AddTrip(pendingTrip("t1"))

	locks := NewMockLockStore()
	if held, _ := locks.AcquireTripLock(context.Background(), "t1", time.Minute); !held {
		t.Fatal("setup: could not pre-acquire lock")
	}

	lifecycle := newLifecycle(trips, NewMockDriverRepository(), NewMockVehicleRepository(), locks)

	_, err := lifecycle.ConfirmAssignment(context.Background(), service.ConfirmAssignmentRequest{
		TripID: "t1", DriverID: "d1", VehicleID: "v1", EstimatedCost: 100,
	})
	if !errors.Is(err, service.ErrTripBusy) {
		t.Errorf("expected ErrTripBusy, got %v", err)
	}
}

func TestTransition_ValidationErrors(t *testing.T) {
	t.Parallel()

	trips := NewMockTripRepository()
	trips.AddTrip(pendingTrip("t1"))

	started := pendingTrip("t2")
	started.Status = domain.TripStatusInProgress
	trips.AddTrip(started)

	lifecycle := newLifecycle(trips, NewMockDriverRepository(), NewMockVehicleRepository(), NewMockLockStore())

	cases := []struct {
		name string
		req  service.TransitionRequest
		want error
	}{
		{
			name: "missing trip id",
			req:  service.TransitionRequest{Target: domain.TripStatusCancelled, Reason: "no show"},
			want: service.ErrInvalidTripID,
		},
		{
			name: "unknown target status",
			req:  service.TransitionRequest{TripID: "t1", Target: "vanished"},
			want: service.ErrInvalidStatus,
		},
		{
			name: "confirm without assignment",
			req:  service.TransitionRequest{TripID: "t1", Target: domain.TripStatusConfirmed},
			want: service.ErrIncompleteAssignment,
		},
		{
			name: "cancel without reason",
			req:  service.TransitionRequest{TripID: "t2", Target: domain.TripStatusCancelled},
			want: service.ErrReasonRequired,
		},
		{
			name: "unknown trip",
			req:  service.TransitionRequest{TripID: "nope", Target: domain.TripStatusCompleted},
			want: repository.ErrNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lifecycle.Transition(context.Background(), tc.req)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTransition_IllegalStatusChange(t *testing.T) {
	t.Parallel()

	trips := NewMockTripRepository()
	trips.AddTrip(pendingTrip("t1"))

	done := pendingTrip("t2")
	done.Status = domain.TripStatusCompleted
	trips.AddTrip(done)

	lifecycle := newLifecycle(trips, NewMockDriverRepository(), NewMockVehicleRepository(), NewMockLockStore())

	cases := []struct {
		name   string
		tripID string
		target domain.TripStatus
	}{
		{name: "pending straight to in-progress", tripID: "t1", target: domain.TripStatusInProgress},
		{name: "pending straight to completed", tripID: "t1", target: domain.TripStatusCompleted},
		{name: "completed trip is terminal", tripID: "t2", target: domain.TripStatusCancelled},
		{name: "repeat completion", tripID: "t2", target: domain.TripStatusCompleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := lifecycle.Transition(context.Background(), service.TransitionRequest{
				TripID: tc.tripID, Target: tc.target, Reason: "late",
			})
			var transErr *service.InvalidTransitionError
			if !errors.As(err, &transErr) {
				t.Fatalf("expected InvalidTransitionError, got %v", err)
			}
			if transErr.To != tc.target {
				t.Errorf("expected target %s in error, got %s", tc.target, transErr.To)
			}
		})
	}
}

func TestTransition_TripLocked(t *testing.T) {
	t.Parallel()

	trips := NewMockTripRepository()
	started := pendingTrip("t1")
	started.Status = domain.TripStatusInProgress
	trips.AddTrip(started)

	locks := NewMockLockStore()
	if held, _ := locks.AcquireTripLock(context.Background(), "t1", time.Minute); !held {
		t.Fatal("setup: could not pre-acquire lock")
	}

	lifecycle := newLifecycle(trips, NewMockDriverRepository(), NewMockVehicleRepository(), locks)

	_, err := lifecycle.Transition(context.Background(), service.TransitionRequest{
		TripID: "t1", Target: domain.TripStatusCompleted,
	})
	if !errors.Is(err, service.ErrTripBusy) {
		t.Errorf("expected ErrTripBusy, got %v", err)
	}
}

func TestTransition_LockReleasedAfterFailure(t *testing.T) {
	t.Parallel()

	trips := NewMockTripRepository()
	trips.AddTrip(pendingTrip("t1"))

	locks := NewMockLockStore()
	lifecycle := newLifecycle(trips, NewMockDriverRepository(), NewMockVehicleRepository(), locks)

	_, err := lifecycle.Transition(context.Background(), service.TransitionRequest{
		TripID: "t1", Target: domain.TripStatusCompleted,
	})
	if err == nil {
		t.Fatal("expected a transition error")
	}

	// The per-trip lock must not leak into later requests.
	held, lockErr := locks.AcquireTripLock(context.Background(), "t1", time.Minute)
	if lockErr != nil {
		t.Fatalf("acquire after failure: %v", lockErr)
	}
	if !held {
		t.Error("lock still held after failed transition")
	}
}
