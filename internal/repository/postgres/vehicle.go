package postgres

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// NewVehicleRepositoryWithTx creates a vehicle repository using a transaction.
func NewVehicleRepositoryWithTx(tx *sql.Tx) *VehicleRepository {
	return &VehicleRepository{q: tx}
}

const vehicleColumns = `
	id, COALESCE(vehicle_type, ''), COALESCE(model, ''), seating_capacity,
	category, availability, base_cost, per_km_cost, fuel_efficiency
`

// Create adds a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, vehicle_type, model, seating_capacity, category, availability, base_cost, per_km_cost, fuel_efficiency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.VehicleType,
		vehicle.Model,
		vehicle.SeatingCapacity,
		vehicle.Category,
		vehicle.Availability,
		vehicle.BaseCost,
		vehicle.PerKmCost,
		vehicle.FuelEfficiency,
	)
	return err
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	vehicle, err := scanVehicle(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return vehicle, nil
}

// GetAll retrieves all vehicles.
func (r *VehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY id`
	return r.queryVehicles(ctx, query)
}

// GetAvailable retrieves all vehicles whose availability is "Available".
func (r *VehicleRepository) GetAvailable(ctx context.Context) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE availability = $1 ORDER BY id`
	return r.queryVehicles(ctx, query, domain.VehicleAvailable)
}

// UpdateAvailability updates the availability of a vehicle.
func (r *VehicleRepository) UpdateAvailability(ctx context.Context, id string, availability domain.VehicleAvailability) error {
	query := `UPDATE vehicles SET availability = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, availability, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// BindIfAvailable flips a vehicle to "Booked", guarded on current
// availability. Losing a race reports ErrResourceClaimed.
func (r *VehicleRepository) BindIfAvailable(ctx context.Context, id string) error {
	query := `UPDATE vehicles SET availability = $1 WHERE id = $2 AND availability = $3`

	result, err := r.q.ExecContext(ctx, query, domain.VehicleBooked, id, domain.VehicleAvailable)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrResourceClaimed
	}

	return nil
}

// Release returns a bound vehicle to the available pool.
func (r *VehicleRepository) Release(ctx context.Context, id string) error {
	query := `UPDATE vehicles SET availability = $1 WHERE id = $2 AND availability = $3`
	_, err := r.q.ExecContext(ctx, query, domain.VehicleAvailable, id, domain.VehicleBooked)
	return err
}

func (r *VehicleRepository) queryVehicles(ctx context.Context, query string, args ...any) ([]*domain.Vehicle, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, rows.Err()
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := row.Scan(
		&vehicle.ID,
		&vehicle.VehicleType,
		&vehicle.Model,
		&vehicle.SeatingCapacity,
		&vehicle.Category,
		&vehicle.Availability,
		&vehicle.BaseCost,
		&vehicle.PerKmCost,
		&vehicle.FuelEfficiency,
	)
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// Ensure VehicleRepository implements repository.VehicleRepository.
var _ repository.VehicleRepository = (*VehicleRepository)(nil)
