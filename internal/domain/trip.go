package domain

import "time"

// TripStatus represents the current status of a trip.
type TripStatus string

const (
	TripStatusPending    TripStatus = "pending"
	TripStatusConfirmed  TripStatus = "confirmed"
	TripStatusInProgress TripStatus = "in-progress"
	TripStatusCompleted  TripStatus = "completed"
	TripStatusCancelled  TripStatus = "cancelled"
	TripStatusRejected   TripStatus = "rejected"
)

// ParseTripStatus validates a status string.
func ParseTripStatus(s string) (TripStatus, bool) {
	switch TripStatus(s) {
	case TripStatusPending, TripStatusConfirmed, TripStatusInProgress,
		TripStatusCompleted, TripStatusCancelled, TripStatusRejected:
		return TripStatus(s), true
	default:
		return "", false
	}
}

// Terminal reports whether no further transitions are permitted from s.
func (s TripStatus) Terminal() bool {
	switch s {
	case TripStatusCompleted, TripStatusCancelled, TripStatusRejected:
		return true
	default:
		return false
	}
}

// Category classifies a trip and drives pricing multipliers and vehicle
// classification.
type Category string

const (
	CategoryLuxury    Category = "Luxury"
	CategorySafari    Category = "Safari"
	CategoryTour      Category = "Tour"
	CategoryAdventure Category = "Adventure"
	CategoryCasual    Category = "Casual"
)

// ParseCategory validates a category string.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryLuxury, CategorySafari, CategoryTour, CategoryAdventure, CategoryCasual:
		return Category(s), true
	default:
		return "", false
	}
}

// Priority is an optional urgency marker on a trip. Empty means default.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority validates a priority string. Empty input is valid and maps
// to the default (no priority).
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), true
	default:
		return "", false
	}
}

// Trip represents a requested journey from origin to destination.
type Trip struct {
	ID string

	// Route.
	Origin              string
	Destination         string
	Stops               []string
	OriginCoords        *Coordinate
	DestinationCoords   *Coordinate
	EstimatedDistanceKm float64 // 0 means not yet computed

	// Schedule.
	PreferredDate string
	PreferredTime string
	ReturnDate    string // only meaningful for round trips
	ReturnTime    string

	Category       Category
	Priority       Priority
	PassengerCount int
	PassengerNames []string

	// Contact, required for customer-originated requests.
	ContactName  string
	ContactPhone string
	ContactEmail string

	// Advisory vehicle preference, never a hard filter.
	VehicleType string

	// Assignment, empty until confirmed.
	AssignedDriverID  string
	AssignedVehicleID string
	EstimatedCost     float64

	Status       TripStatus
	CancelReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoundTrip reports whether the trip includes a return leg.
func (t *Trip) RoundTrip() bool {
	return t.ReturnDate != ""
}

// AssignmentComplete reports whether driver, vehicle and cost are all set.
func (t *Trip) AssignmentComplete() bool {
	return t.AssignedDriverID != "" && t.AssignedVehicleID != "" && t.EstimatedCost > 0
}

// Active reports whether the trip exclusively holds its assigned resources.
func (t *Trip) Active() bool {
	return t.Status == TripStatusConfirmed || t.Status == TripStatusInProgress
}
