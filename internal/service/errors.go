package service

import (
	"errors"
	"fmt"

	"dispatch/internal/domain"
)

var (
	// ErrInvalidTripID is returned when trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidDriverID is returned when driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidVehicleID is returned when vehicle ID is empty.
	ErrInvalidVehicleID = errors.New("invalid vehicle id")

	// ErrInvalidOrigin is returned when a trip request has no origin.
	ErrInvalidOrigin = errors.New("invalid origin")

	// ErrInvalidDestination is returned when a trip request has no destination.
	ErrInvalidDestination = errors.New("invalid destination")

	// ErrInvalidPassengerCount is returned when passenger count is below one.
	ErrInvalidPassengerCount = errors.New("passenger count must be at least 1")

	// ErrInvalidCategory is returned when the trip category is not recognized.
	ErrInvalidCategory = errors.New("invalid trip category")

	// ErrInvalidPriority is returned when the trip priority is not recognized.
	ErrInvalidPriority = errors.New("invalid trip priority")

	// ErrMissingContact is returned when a customer request lacks contact details.
	ErrMissingContact = errors.New("contact name, phone and email are required")

	// ErrInvalidStatus is returned when a requested target status is not a
	// known trip status.
	ErrInvalidStatus = errors.New("invalid trip status")

	// ErrInvalidCost is returned when a confirmation carries a non-positive cost.
	ErrInvalidCost = errors.New("estimated cost must be positive")

	// ErrIncompleteAssignment is returned when pending → confirmed is
	// attempted without driver, vehicle and cost all set.
	ErrIncompleteAssignment = errors.New("assignment requires driver, vehicle and estimated cost")

	// ErrResourceUnavailable is returned at bind time when a concurrent
	// request claimed the driver or vehicle first. The caller should
	// re-fetch eligible resources and retry selection.
	ErrResourceUnavailable = errors.New("resource claimed by a concurrent assignment")

	// ErrReasonRequired is returned when a cancellation or rejection is
	// requested without an audit reason.
	ErrReasonRequired = errors.New("a reason is required to cancel or reject a trip")

	// ErrTripBusy is returned when another request holds the trip's
	// dispatch lock.
	ErrTripBusy = errors.New("trip is being processed by another request")
)

// InvalidTransitionError reports a status change that is not permitted from
// the trip's current state. Re-requesting an already-applied transition
// fails the same way, to surface double-submission bugs in the caller.
type InvalidTransitionError struct {
	From domain.TripStatus
	To   domain.TripStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %q to %q", e.From, e.To)
}
