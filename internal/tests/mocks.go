package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

// AddTrip adds a trip to the mock repository.
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0, len(m.trips))
	for _, t := range m.trips {
		copy := *t
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockTripRepository) GetByStatus(ctx context.Context, status domain.TripStatus) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Trip
	for _, t := range m.trips {
		if t.Status == status {
			copy := *t
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockTripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.trips[trip.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *trip
	m.trips[trip.ID] = &copy
	return nil
}

// GetTrip returns a trip for test assertions.
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// CountTrips returns the number of stored trips.
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository. Bind
// and release mirror the guarded-update semantics of the real store, so
// concurrency tests exercise the same claim-once behavior.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver

	// Counters for verification
	BindCallCount    int32
	ReleaseCallCount int32

	// Error injection
	CreateError error
	BindError   error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{
		drivers: make(map[string]*domain.Driver),
	}
}

// AddDriver adds a driver to the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		copy := *d
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockDriverRepository) GetAvailable(ctx context.Context) ([]*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Driver
	for _, d := range m.drivers {
		if d.Availability == domain.DriverAvailable && d.Active {
			copy := *d
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockDriverRepository) UpdateAvailability(ctx context.Context, id string, availability domain.DriverAvailability) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.Availability = availability
	return nil
}

func (m *MockDriverRepository) BindIfAvailable(ctx context.Context, id string) error {
	atomic.AddInt32(&m.BindCallCount, 1)
	if m.BindError != nil {
		return m.BindError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok || driver.Availability != domain.DriverAvailable || !driver.Active {
		return repository.ErrResourceClaimed
	}
	driver.Availability = domain.DriverOnTrip
	return nil
}

func (m *MockDriverRepository) Release(ctx context.Context, id string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil
	}
	if driver.Availability == domain.DriverOnTrip {
		driver.Availability = domain.DriverAvailable
	}
	return nil
}

func (m *MockDriverRepository) Deactivate(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.Active = false
	return nil
}

// GetDriver returns a driver for test assertions.
func (m *MockDriverRepository) GetDriver(id string) *domain.Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drivers[id]
}

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	// Counters for verification
	BindCallCount    int32
	ReleaseCallCount int32

	// Error injection
	CreateError error
	BindError   error
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
	}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		copy := *v
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockVehicleRepository) GetAvailable(ctx context.Context) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Vehicle
	for _, v := range m.vehicles {
		if v.Availability == domain.VehicleAvailable {
			copy := *v
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockVehicleRepository) UpdateAvailability(ctx context.Context, id string, availability domain.VehicleAvailability) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return repository.ErrNotFound
	}
	vehicle.Availability = availability
	return nil
}

func (m *MockVehicleRepository) BindIfAvailable(ctx context.Context, id string) error {
	atomic.AddInt32(&m.BindCallCount, 1)
	if m.BindError != nil {
		return m.BindError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[id]
	if !ok || vehicle.Availability != domain.VehicleAvailable {
		return repository.ErrResourceClaimed
	}
	vehicle.Availability = domain.VehicleBooked
	return nil
}

func (m *MockVehicleRepository) Release(ctx context.Context, id string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil
	}
	if vehicle.Availability == domain.VehicleBooked {
		vehicle.Availability = domain.VehicleAvailable
	}
	return nil
}

// GetVehicle returns a vehicle for test assertions.
func (m *MockVehicleRepository) GetVehicle(id string) *domain.Vehicle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vehicles[id]
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// Error injection
	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]bool),
	}
}

func (m *MockLockStore) AcquireTripLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error) {
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[tripID] {
		return false, nil
	}
	m.locks[tripID] = true
	return true, nil
}

func (m *MockLockStore) ReleaseTripLock(ctx context.Context, tripID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, tripID)
	return nil
}
