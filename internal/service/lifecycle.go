package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dispatch/internal/domain"
	"dispatch/internal/redis"
	"dispatch/internal/repository"
	"dispatch/internal/repository/postgres"
)

const tripLockTTL = 30 * time.Second

// transitions is the lifecycle table. Any pair not listed is invalid,
// including re-requests of an already-applied transition.
var transitions = map[domain.TripStatus][]domain.TripStatus{
	domain.TripStatusPending:    {domain.TripStatusConfirmed, domain.TripStatusCancelled, domain.TripStatusRejected},
	domain.TripStatusConfirmed:  {domain.TripStatusInProgress, domain.TripStatusCancelled},
	domain.TripStatusInProgress: {domain.TripStatusCompleted},
}

// CanTransition reports whether from → to is a legal status change.
func CanTransition(from, to domain.TripStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TripLifecycle drives trips through their status lifecycle and owns the
// binding and release of assigned resources. Binding re-validates
// availability inside the transaction, so a resource claimed by a
// concurrent request between listing and binding fails the confirmation
// instead of double-booking.
type TripLifecycle struct {
	db           *sql.DB
	tripRepo     repository.TripRepository
	driverRepo   repository.DriverRepository
	vehicleRepo  repository.VehicleRepository
	lockStore    redis.LockStoreInterface
	notification *NotificationService
}

// NewTripLifecycle creates a new TripLifecycle.
func NewTripLifecycle(
	db *sql.DB,
	tripRepo repository.TripRepository,
	driverRepo repository.DriverRepository,
	vehicleRepo repository.VehicleRepository,
	lockStore redis.LockStoreInterface,
	notification *NotificationService,
) *TripLifecycle {
	return &TripLifecycle{
		db:           db,
		tripRepo:     tripRepo,
		driverRepo:   driverRepo,
		vehicleRepo:  vehicleRepo,
		lockStore:    lockStore,
		notification: notification,
	}
}

// ConfirmAssignmentRequest contains the parameters for confirming a trip.
type ConfirmAssignmentRequest struct {
	TripID        string
	DriverID      string
	VehicleID     string
	EstimatedCost float64
}

// ConfirmAssignment binds the chosen driver and vehicle to a pending trip
// and moves it to confirmed. Both resources are claimed with guarded
// updates in one transaction; if either was taken by a concurrent request,
// the whole confirmation fails with ErrResourceUnavailable and nothing is
// bound.
func (l *TripLifecycle) ConfirmAssignment(ctx context.Context, req ConfirmAssignmentRequest) (*domain.Trip, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}
	if req.DriverID == "" || req.VehicleID == "" {
		return nil, ErrIncompleteAssignment
	}
	if req.EstimatedCost <= 0 {
		return nil, ErrInvalidCost
	}

	if l.lockStore != nil {
		locked, err := l.lockStore.AcquireTripLock(ctx, req.TripID, tripLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrTripBusy
		}
		defer l.lockStore.ReleaseTripLock(ctx, req.TripID)
	}

	trip, err := l.tripRepo.GetByID(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	if trip.Status != domain.TripStatusPending {
		return nil, &InvalidTransitionError{From: trip.Status, To: domain.TripStatusConfirmed}
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txTripRepo := postgres.NewTripRepositoryWithTx(tx)
	txDriverRepo := postgres.NewDriverRepositoryWithTx(tx)
	txVehicleRepo := postgres.NewVehicleRepositoryWithTx(tx)

	// Bind both resources. The guarded updates re-validate availability at
	// bind time, not just at candidate-listing time.
	if err = txDriverRepo.BindIfAvailable(ctx, req.DriverID); err != nil {
		if errors.Is(err, repository.ErrResourceClaimed) {
			err = ErrResourceUnavailable
		}
		return nil, err
	}

	if err = txVehicleRepo.BindIfAvailable(ctx, req.VehicleID); err != nil {
		if errors.Is(err, repository.ErrResourceClaimed) {
			err = ErrResourceUnavailable
		}
		return nil, err
	}

	trip.AssignedDriverID = req.DriverID
	trip.AssignedVehicleID = req.VehicleID
	trip.EstimatedCost = req.EstimatedCost
	trip.Status = domain.TripStatusConfirmed
	trip.UpdatedAt = time.Now()

	if err = txTripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	if l.notification != nil {
		_ = l.notification.NotifyTripConfirmed(ctx, trip)
	}

	return trip, nil
}

// TransitionRequest contains the parameters for a status change.
type TransitionRequest struct {
	TripID string
	Target domain.TripStatus
	Reason string
}

// Transition applies a status change to a trip. Cancellations and
// rejections require a reason and release any bound resources back to the
// eligible pool. Completion also releases the resources. Illegal changes,
// including repeats of an already-applied transition, fail with
// InvalidTransitionError.
func (l *TripLifecycle) Transition(ctx context.Context, req TransitionRequest) (*domain.Trip, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}

	if _, ok := domain.ParseTripStatus(string(req.Target)); !ok {
		return nil, ErrInvalidStatus
	}

	// Confirmation goes through ConfirmAssignment, which binds resources.
	if req.Target == domain.TripStatusConfirmed {
		return nil, ErrIncompleteAssignment
	}

	if l.lockStore != nil {
		locked, err := l.lockStore.AcquireTripLock(ctx, req.TripID, tripLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrTripBusy
		}
		defer l.lockStore.ReleaseTripLock(ctx, req.TripID)
	}

	trip, err := l.tripRepo.GetByID(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(trip.Status, req.Target) {
		return nil, &InvalidTransitionError{From: trip.Status, To: req.Target}
	}

	needsReason := req.Target == domain.TripStatusCancelled || req.Target == domain.TripStatusRejected
	if needsReason && req.Reason == "" {
		return nil, ErrReasonRequired
	}

	releaseResources := trip.Active() &&
		(req.Target == domain.TripStatusCancelled || req.Target == domain.TripStatusCompleted)

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txTripRepo := postgres.NewTripRepositoryWithTx(tx)

	previous := trip.Status
	trip.Status = req.Target
	if needsReason {
		trip.CancelReason = req.Reason
	}
	trip.UpdatedAt = time.Now()

	if err = txTripRepo.Update(ctx, trip); err != nil {
		return nil, err
	}

	if releaseResources {
		txDriverRepo := postgres.NewDriverRepositoryWithTx(tx)
		txVehicleRepo := postgres.NewVehicleRepositoryWithTx(tx)

		if trip.AssignedDriverID != "" {
			if err = txDriverRepo.Release(ctx, trip.AssignedDriverID); err != nil {
				return nil, err
			}
		}
		if trip.AssignedVehicleID != "" {
			if err = txVehicleRepo.Release(ctx, trip.AssignedVehicleID); err != nil {
				return nil, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	if l.notification != nil {
		_ = l.notification.NotifyTripTransition(ctx, trip, previous)
	}

	return trip, nil
}
