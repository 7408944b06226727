package repository

import (
	"context"

	"dispatch/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create adds a new driver.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetAll retrieves all drivers.
	GetAll(ctx context.Context) ([]*domain.Driver, error)

	// GetAvailable retrieves all active drivers whose availability is
	// "available".
	GetAvailable(ctx context.Context) ([]*domain.Driver, error)

	// UpdateAvailability updates the availability of a driver.
	UpdateAvailability(ctx context.Context, id string, availability domain.DriverAvailability) error

	// BindIfAvailable flips a driver from "available" to "on-trip". It
	// reports ErrResourceClaimed when the driver was not available, which
	// happens when a concurrent assignment claimed them first.
	BindIfAvailable(ctx context.Context, id string) error

	// Release returns a bound driver to the available pool.
	Release(ctx context.Context, id string) error

	// Deactivate marks a driver inactive. Drivers are never deleted.
	Deactivate(ctx context.Context, id string) error
}
