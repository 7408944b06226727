package repository

import (
	"context"

	"dispatch/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetAll retrieves all trips.
	GetAll(ctx context.Context) ([]*domain.Trip, error)

	// GetByStatus retrieves all trips in the given status.
	GetByStatus(ctx context.Context, status domain.TripStatus) ([]*domain.Trip, error)

	// Update updates an existing trip.
	Update(ctx context.Context, trip *domain.Trip) error
}
