package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

const tripColumns = `
	id, origin, destination, stops,
	origin_lat, origin_lng, destination_lat, destination_lng,
	estimated_distance_km,
	preferred_date, preferred_time, return_date, return_time,
	category, priority, passenger_count, passenger_names,
	contact_name, contact_phone, contact_email, vehicle_type,
	assigned_driver_id, assigned_vehicle_id, estimated_cost,
	status, cancel_reason, created_at, updated_at
`

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)
	`

	originLat, originLng := coordColumns(trip.OriginCoords)
	destLat, destLng := coordColumns(trip.DestinationCoords)

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.Origin,
		trip.Destination,
		pq.Array(trip.Stops),
		originLat,
		originLng,
		destLat,
		destLng,
		trip.EstimatedDistanceKm,
		trip.PreferredDate,
		trip.PreferredTime,
		trip.ReturnDate,
		trip.ReturnTime,
		trip.Category,
		trip.Priority,
		trip.PassengerCount,
		pq.Array(trip.PassengerNames),
		trip.ContactName,
		trip.ContactPhone,
		trip.ContactEmail,
		trip.VehicleType,
		trip.AssignedDriverID,
		trip.AssignedVehicleID,
		trip.EstimatedCost,
		trip.Status,
		trip.CancelReason,
		trip.CreatedAt,
		trip.UpdatedAt,
	)

	return err
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := scanTrip(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return trip, nil
}

// GetAll retrieves all trips, newest first.
func (r *TripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips ORDER BY created_at DESC LIMIT 100`
	return r.queryTrips(ctx, query)
}

// GetByStatus retrieves all trips in the given status.
func (r *TripRepository) GetByStatus(ctx context.Context, status domain.TripStatus) ([]*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE status = $1 ORDER BY created_at DESC`
	return r.queryTrips(ctx, query, status)
}

// Update updates an existing trip.
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	query := `
		UPDATE trips
		SET origin = $1, destination = $2, stops = $3,
		    origin_lat = $4, origin_lng = $5, destination_lat = $6, destination_lng = $7,
		    estimated_distance_km = $8,
		    preferred_date = $9, preferred_time = $10, return_date = $11, return_time = $12,
		    category = $13, priority = $14, passenger_count = $15, passenger_names = $16,
		    contact_name = $17, contact_phone = $18, contact_email = $19, vehicle_type = $20,
		    assigned_driver_id = $21, assigned_vehicle_id = $22, estimated_cost = $23,
		    status = $24, cancel_reason = $25, updated_at = $26
		WHERE id = $27
	`

	originLat, originLng := coordColumns(trip.OriginCoords)
	destLat, destLng := coordColumns(trip.DestinationCoords)

	result, err := r.q.ExecContext(ctx, query,
		trip.Origin,
		trip.Destination,
		pq.Array(trip.Stops),
		originLat,
		originLng,
		destLat,
		destLng,
		trip.EstimatedDistanceKm,
		trip.PreferredDate,
		trip.PreferredTime,
		trip.ReturnDate,
		trip.ReturnTime,
		trip.Category,
		trip.Priority,
		trip.PassengerCount,
		pq.Array(trip.PassengerNames),
		trip.ContactName,
		trip.ContactPhone,
		trip.ContactEmail,
		trip.VehicleType,
		trip.AssignedDriverID,
		trip.AssignedVehicleID,
		trip.EstimatedCost,
		trip.Status,
		trip.CancelReason,
		time.Now(),
		trip.ID,
	)
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

func (r *TripRepository) queryTrips(ctx context.Context, query string, args ...any) ([]*domain.Trip, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}

	return trips, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.Trip, error) {
	var trip domain.Trip
	var originLat, originLng, destLat, destLng sql.NullFloat64

	err := row.Scan(
		&trip.ID,
		&trip.Origin,
		&trip.Destination,
		pq.Array(&trip.Stops),
		&originLat,
		&originLng,
		&destLat,
		&destLng,
		&trip.EstimatedDistanceKm,
		&trip.PreferredDate,
		&trip.PreferredTime,
		&trip.ReturnDate,
		&trip.ReturnTime,
		&trip.Category,
		&trip.Priority,
		&trip.PassengerCount,
		pq.Array(&trip.PassengerNames),
		&trip.ContactName,
		&trip.ContactPhone,
		&trip.ContactEmail,
		&trip.VehicleType,
		&trip.AssignedDriverID,
		&trip.AssignedVehicleID,
		&trip.EstimatedCost,
		&trip.Status,
		&trip.CancelReason,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if originLat.Valid && originLng.Valid {
		trip.OriginCoords = &domain.Coordinate{Lat: originLat.Float64, Lng: originLng.Float64}
	}
	if destLat.Valid && destLng.Valid {
		trip.DestinationCoords = &domain.Coordinate{Lat: destLat.Float64, Lng: destLng.Float64}
	}

	return &trip, nil
}

// coordColumns splits an optional coordinate into nullable lat/lng columns.
func coordColumns(c *domain.Coordinate) (sql.NullFloat64, sql.NullFloat64) {
	if c == nil {
		return sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: c.Lat, Valid: true},
		sql.NullFloat64{Float64: c.Lng, Valid: true}
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
