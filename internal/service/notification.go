package service

import (
	"context"
	"log"
	"time"

	"dispatch/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationTripRequested NotificationType = "TRIP_REQUESTED"
	NotificationTripConfirmed NotificationType = "TRIP_CONFIRMED"
	NotificationTripStarted   NotificationType = "TRIP_STARTED"
	NotificationTripCompleted NotificationType = "TRIP_COMPLETED"
	NotificationTripCancelled NotificationType = "TRIP_CANCELLED"
	NotificationTripRejected  NotificationType = "TRIP_REJECTED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	CreatedAt   time.Time
}

// NotificationService delivers lifecycle notifications to customers and
// drivers. Delivery channels (SMS, push, email) are external collaborators;
// this implementation records the event.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyTripRequested records a new customer trip request.
func (s *NotificationService) NotifyTripRequested(ctx context.Context, trip *domain.Trip) error {
	return s.send(Notification{
		Type:        NotificationTripRequested,
		RecipientID: trip.ContactPhone,
		Title:       "Trip Request Received",
		Message:     "We received your trip request and will confirm a driver shortly.",
		CreatedAt:   time.Now(),
	})
}

// NotifyTripConfirmed notifies the customer that a driver and vehicle were
// assigned.
func (s *NotificationService) NotifyTripConfirmed(ctx context.Context, trip *domain.Trip) error {
	return s.send(Notification{
		Type:        NotificationTripConfirmed,
		RecipientID: trip.ContactPhone,
		Title:       "Trip Confirmed",
		Message:     "Your trip from " + trip.Origin + " to " + trip.Destination + " is confirmed.",
		CreatedAt:   time.Now(),
	})
}

// NotifyTripTransition notifies affected parties of a status change.
func (s *NotificationService) NotifyTripTransition(ctx context.Context, trip *domain.Trip, previous domain.TripStatus) error {
	var n Notification
	switch trip.Status {
	case domain.TripStatusInProgress:
		n = Notification{Type: NotificationTripStarted, Title: "Trip Started", Message: "Your trip is underway."}
	case domain.TripStatusCompleted:
		n = Notification{Type: NotificationTripCompleted, Title: "Trip Completed", Message: "Thank you for travelling with us."}
	case domain.TripStatusCancelled:
		n = Notification{Type: NotificationTripCancelled, Title: "Trip Cancelled", Message: "Your trip was cancelled: " + trip.CancelReason}
	case domain.TripStatusRejected:
		n = Notification{Type: NotificationTripRejected, Title: "Trip Rejected", Message: "Your trip request was rejected: " + trip.CancelReason}
	default:
		return nil
	}

	n.RecipientID = trip.ContactPhone
	n.CreatedAt = time.Now()
	return s.send(n)
}

func (s *NotificationService) send(n Notification) error {
	log.Printf("[NOTIFICATION] type=%s recipient=%s title=%q message=%q",
		n.Type, n.RecipientID, n.Title, n.Message)
	return nil
}
