package service

import (
	"context"

	"github.com/google/uuid"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// ResourceService handles driver and vehicle onboarding and availability.
type ResourceService struct {
	driverRepo  repository.DriverRepository
	vehicleRepo repository.VehicleRepository
}

// NewResourceService creates a new ResourceService.
func NewResourceService(driverRepo repository.DriverRepository, vehicleRepo repository.VehicleRepository) *ResourceService {
	return &ResourceService{
		driverRepo:  driverRepo,
		vehicleRepo: vehicleRepo,
	}
}

// RegisterDriverRequest contains the parameters for driver onboarding.
type RegisterDriverRequest struct {
	Name            string
	Phone           string
	LicenseType     string
	ExperienceYears int
	Rating          float64
	BaseRate        float64
	PerKmRate       float64
}

// RegisterDriver onboards a new driver as available.
func (s *ResourceService) RegisterDriver(ctx context.Context, req RegisterDriverRequest) (*domain.Driver, error) {
	if req.Name == "" {
		return nil, ErrInvalidDriverID
	}

	rating := req.Rating
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}

	driver := &domain.Driver{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Phone:           req.Phone,
		LicenseType:     req.LicenseType,
		ExperienceYears: req.ExperienceYears,
		Rating:          rating,
		Availability:    domain.DriverAvailable,
		BaseRate:        req.BaseRate,
		PerKmRate:       req.PerKmRate,
		Active:          true,
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return nil, err
	}

	return driver, nil
}

// SetDriverAvailability updates a driver's availability, as flipped by the
// driver themselves or by dispatch staff.
func (s *ResourceService) SetDriverAvailability(ctx context.Context, driverID string, availability string) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	parsed, ok := domain.ParseDriverAvailability(availability)
	if !ok {
		return nil, ErrInvalidStatus
	}

	if err := s.driverRepo.UpdateAvailability(ctx, driverID, parsed); err != nil {
		return nil, err
	}

	return s.driverRepo.GetByID(ctx, driverID)
}

// DeactivateDriver marks a driver inactive; drivers are never deleted.
func (s *ResourceService) DeactivateDriver(ctx context.Context, driverID string) error {
	if driverID == "" {
		return ErrInvalidDriverID
	}
	return s.driverRepo.Deactivate(ctx, driverID)
}

// RegisterVehicleRequest contains the parameters for vehicle onboarding.
type RegisterVehicleRequest struct {
	VehicleType     string
	Model           string
	SeatingCapacity int
	Category        string
	BaseCost        float64
	PerKmCost       float64
	FuelEfficiency  float64
}

// RegisterVehicle onboards a new vehicle as available.
func (s *ResourceService) RegisterVehicle(ctx context.Context, req RegisterVehicleRequest) (*domain.Vehicle, error) {
	if req.SeatingCapacity < 1 {
		return nil, ErrInvalidPassengerCount
	}

	category, ok := domain.ParseCategory(req.Category)
	if !ok {
		return nil, ErrInvalidCategory
	}

	vehicle := &domain.Vehicle{
		ID:              uuid.New().String(),
		VehicleType:     req.VehicleType,
		Model:           req.Model,
		SeatingCapacity: req.SeatingCapacity,
		Category:        category,
		Availability:    domain.VehicleAvailable,
		BaseCost:        req.BaseCost,
		PerKmCost:       req.PerKmCost,
		FuelEfficiency:  req.FuelEfficiency,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	return vehicle, nil
}

// SetVehicleAvailability updates a vehicle's availability.
func (s *ResourceService) SetVehicleAvailability(ctx context.Context, vehicleID string, availability string) (*domain.Vehicle, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	parsed, ok := domain.ParseVehicleAvailability(availability)
	if !ok {
		return nil, ErrInvalidStatus
	}

	if err := s.vehicleRepo.UpdateAvailability(ctx, vehicleID, parsed); err != nil {
		return nil, err
	}

	return s.vehicleRepo.GetByID(ctx, vehicleID)
}
