package postgres

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

const driverColumns = `
	id, COALESCE(name, ''), COALESCE(phone, ''), COALESCE(license_type, ''),
	experience_years, rating, availability, base_rate, per_km_rate, active
`

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (id, name, phone, license_type, experience_years, rating, availability, base_rate, per_km_rate, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.Name,
		driver.Phone,
		driver.LicenseType,
		driver.ExperienceYears,
		driver.Rating,
		driver.Availability,
		driver.BaseRate,
		driver.PerKmRate,
		driver.Active,
	)
	return err
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`

	driver, err := scanDriver(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return driver, nil
}

// GetAll retrieves all drivers.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers ORDER BY id`
	return r.queryDrivers(ctx, query)
}

// GetAvailable retrieves all active drivers whose availability is "available".
func (r *DriverRepository) GetAvailable(ctx context.Context) ([]*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE availability = $1 AND active ORDER BY id`
	return r.queryDrivers(ctx, query, domain.DriverAvailable)
}

// UpdateAvailability updates the availability of a driver.
func (r *DriverRepository) UpdateAvailability(ctx context.Context, id string, availability domain.DriverAvailability) error {
	query := `UPDATE drivers SET availability = $1 WHERE id = $2`
	return r.exec(ctx, query, availability, id)
}

// BindIfAvailable flips a driver to "on-trip", guarded on current
// availability. The WHERE clause makes the check-and-bind atomic; losing a
// race reports ErrResourceClaimed.
func (r *DriverRepository) BindIfAvailable(ctx context.Context, id string) error {
	query := `UPDATE drivers SET availability = $1 WHERE id = $2 AND availability = $3 AND active`

	result, err := r.q.ExecContext(ctx, query, domain.DriverOnTrip, id, domain.DriverAvailable)
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

// Release returns a bound driver to the available pool.
func (r *DriverRepository) Release(ctx context.Context, id string) error {
	query := `UPDATE drivers SET availability = $1 WHERE id = $2 AND availability = $3`
	_, err := r.q.ExecContext(ctx, query, domain.DriverAvailable, id, domain.DriverOnTrip)
	return err
}

// Deactivate marks a driver inactive.
func (r *DriverRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE drivers SET active = FALSE WHERE id = $1`
	return r.exec(ctx, query, id)
}

func (r *DriverRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.q.ExecContext(ctx, query, args...)
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

func (r *DriverRepository) queryDrivers(ctx context.Context, query string, args ...any) ([]*domain.Driver, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}

	return drivers, rows.Err()
}

func scanDriver(row rowScanner) (*domain.Driver, error) {
	var driver domain.Driver
	err := row.Scan(
		&driver.ID,
		&driver.Name,
		&driver.Phone,
		&driver.LicenseType,
		&driver.ExperienceYears,
		&driver.Rating,
		&driver.Availability,
		&driver.BaseRate,
		&driver.PerKmRate,
		&driver.Active,
	)
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

// Ensure DriverRepository implements repository.DriverRepository.
var _ repository.DriverRepository = (*DriverRepository)(nil)
