package repository

import (
	"context"

	"dispatch/internal/domain"
)

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// Create adds a new vehicle.
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// GetAll retrieves all vehicles.
	GetAll(ctx context.Context) ([]*domain.Vehicle, error)

	// GetAvailable retrieves all vehicles whose availability is "Available".
	GetAvailable(ctx context.Context) ([]*domain.Vehicle, error)

	// UpdateAvailability updates the availability of a vehicle.
	UpdateAvailability(ctx context.Context, id string, availability domain.VehicleAvailability) error

	// BindIfAvailable flips a vehicle from "Available" to "Booked". It
	// reports ErrResourceClaimed when the vehicle was not available.
	BindIfAvailable(ctx context.Context, id string) error

	// Release returns a bound vehicle to the available pool.
	Release(ctx context.Context, id string) error
}
